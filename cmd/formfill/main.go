// Command formfill walks an applicant through a declaration form in the
// terminal. Drafts persist in a local SQLite file between runs; submitted
// demandes are printed as JSON for upload.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/google/uuid"

	demandesService "cdp/internal/demandes/service"
	demandesStore "cdp/internal/demandes/store"
	"cdp/internal/drafts"
	"cdp/internal/forms"
	"cdp/internal/platform/logger"
	id "cdp/pkg/domain"
	"cdp/pkg/requestcontext"
)

func main() {
	dbPath := flag.String("db", "formfill.db", "SQLite file holding drafts")
	formType := flag.String("type", forms.TypeAutorisation, "form type to fill")
	owner := flag.String("owner", "local", "draft owner key")
	verbose := flag.Bool("v", false, "log to stderr")
	flag.Parse()

	log := slog.New(slog.DiscardHandler)
	if *verbose {
		log = logger.NewWithWriter(os.Stderr, "text")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, *dbPath, *formType, *owner, surveyPrompter{}, os.Stdout, log); err != nil {
		fmt.Fprintln(os.Stderr, "formfill:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, dbPath, formType, owner string, prompt Prompter, out io.Writer, log *slog.Logger) error {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	catalog, err := forms.NewBuiltinCatalog()
	if err != nil {
		return err
	}
	def, err := catalog.Definition(formType)
	if err != nil {
		return err
	}
	kv, err := drafts.OpenSQLiteKV(ctx, dbPath)
	if err != nil {
		return err
	}
	defer kv.Close()

	demandes := demandesService.New(demandesStore.NewInMemoryStore(), demandesService.WithLogger(log))
	ctx = requestcontext.WithPrincipal(ctx, id.UserID(uuid.New()), id.RoleDemandeur)

	w := &walker{
		engine: forms.NewEngine(def),
		drafts: drafts.New(kv, drafts.WithLogger(log)),
		owner:  owner,
		prompt: prompt,
		out:    out,
		submit: func(ctx context.Context, formType string, answers forms.Answers) (string, error) {
			d, err := demandes.Submit(ctx, formType, answers)
			if err != nil {
				return "", err
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(d); err != nil {
				return "", err
			}
			return d.NumeroReference, nil
		},
	}
	_, err = w.Run(ctx)
	return err
}
