package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"cdp/internal/drafts"
	"cdp/internal/forms"
	pstrings "cdp/pkg/platform/strings"
)

const (
	actionNext     = "Suivant"
	actionSubmit   = "Soumettre"
	actionPrevious = "Précédent"
	actionSave     = "Enregistrer le brouillon"
	actionQuit     = "Quitter"
)

// Submit records completed answers and returns the assigned reference.
type Submit func(ctx context.Context, formType string, answers forms.Answers) (string, error)

// walker drives one engine page by page through a Prompter.
type walker struct {
	engine *forms.Engine
	drafts *drafts.Store
	owner  string
	prompt Prompter
	out    io.Writer
	submit Submit
}

// Run returns the demande reference on submission, or "" when the user quits.
func (w *walker) Run(ctx context.Context) (string, error) {
	if err := w.offerResume(ctx); err != nil {
		return "", err
	}
	for {
		view := w.engine.View()
		fmt.Fprintf(w.out, "\n%s\nÉtape %d/%d (%d%%) : %s\n", view.Title, view.Page, view.TotalPages, view.Progress, view.PageTitle)
		for _, f := range view.Fields {
			if err := w.askField(ctx, f); err != nil {
				return "", err
			}
		}

		action, err := w.askAction(ctx, view)
		if err != nil {
			return "", err
		}
		switch action {
		case actionNext:
			w.report(w.engine.Advance())
		case actionPrevious:
			w.report(w.engine.Retreat())
		case actionSave:
			w.saveDraft(ctx)
		case actionSubmit:
			ref, err := w.trySubmit(ctx)
			if err != nil {
				return "", err
			}
			if ref != "" {
				return ref, nil
			}
		case actionQuit:
			keep, err := w.prompt.Confirm(ctx, Question{Key: "save_on_quit", Message: "Enregistrer le brouillon avant de quitter ?"}, true)
			if err != nil {
				return "", err
			}
			if keep {
				w.saveDraft(ctx)
			}
			return "", nil
		}
	}
}

func (w *walker) offerResume(ctx context.Context) error {
	saved, err := w.drafts.Load(ctx, w.owner, w.engine.FormType())
	switch {
	case errors.Is(err, drafts.ErrNoDraft):
		return nil
	case err != nil:
		fmt.Fprintf(w.out, "Brouillon indisponible : %v\n", err)
		return nil
	}
	resume, err := w.prompt.Confirm(ctx, Question{Key: "resume", Message: "Un brouillon existe. Le reprendre ?"}, true)
	if err != nil || !resume {
		return err
	}
	if err := w.engine.Replace(saved); err != nil {
		fmt.Fprintf(w.out, "Brouillon ignoré : %v\n", err)
	}
	return nil
}

func (w *walker) askField(ctx context.Context, f forms.Field) error {
	answers := w.engine.Answers()
	if msg, ok := w.engine.Errors()[f.Name]; ok {
		fmt.Fprintf(w.out, "  ! %s\n", msg)
	}
	q := Question{Key: f.Name, Message: f.Label, Default: answers[f.Name]}
	if f.RequiredFor(answers) {
		q.Message += " *"
	}
	for _, o := range f.Options {
		q.Options = append(q.Options, o.Label)
		q.Values = append(q.Values, o.Value)
	}

	var value string
	switch f.Kind {
	case forms.KindRadio:
		if i := slices.Index(q.Values, answers[f.Name]); i >= 0 {
			q.Defaults = []int{i}
		}
		idx, err := w.prompt.Select(ctx, q)
		if err != nil {
			return err
		}
		value = q.Values[idx]
	case forms.KindCheckbox:
		for _, token := range answers.Tokens(f.Name) {
			if i := slices.Index(q.Values, token); i >= 0 {
				q.Defaults = append(q.Defaults, i)
			}
		}
		picked, err := w.prompt.MultiSelect(ctx, q)
		if err != nil {
			return err
		}
		tokens := make([]string, 0, len(picked))
		for _, i := range picked {
			tokens = append(tokens, q.Values[i])
		}
		value = pstrings.JoinTokens(tokens)
	case forms.KindTextarea:
		v, err := w.prompt.TextArea(ctx, q)
		if err != nil {
			return err
		}
		value = v
	default:
		v, err := w.prompt.Input(ctx, q)
		if err != nil {
			return err
		}
		value = v
	}
	return w.engine.Set(f.Name, value)
}

func (w *walker) askAction(ctx context.Context, view forms.View) (string, error) {
	forward := actionNext
	if view.Page == view.TotalPages {
		forward = actionSubmit
	}
	options := []string{forward, actionSave, actionQuit}
	if view.Page > 1 {
		options = []string{forward, actionPrevious, actionSave, actionQuit}
	}
	idx, err := w.prompt.Select(ctx, Question{Key: "action", Message: "Que souhaitez-vous faire ?", Options: options, Values: options})
	if err != nil {
		return "", err
	}
	return options[idx], nil
}

func (w *walker) trySubmit(ctx context.Context) (string, error) {
	var ref string
	err := w.engine.Submit(ctx, func(ctx context.Context, formType string, answers forms.Answers) error {
		r, err := w.submit(ctx, formType, answers)
		ref = r
		return err
	})
	if err != nil {
		w.report(err)
		return "", nil
	}
	if err := w.drafts.Discard(ctx, w.owner, w.engine.FormType()); err != nil {
		fmt.Fprintf(w.out, "Le brouillon n'a pas pu être supprimé : %v\n", err)
	}
	fmt.Fprintf(w.out, "Demande enregistrée sous la référence %s\n", ref)
	return ref, nil
}

func (w *walker) saveDraft(ctx context.Context) {
	if err := w.drafts.Save(ctx, w.owner, w.engine.FormType(), w.engine.Answers()); err != nil {
		fmt.Fprintf(w.out, "Erreur lors de l'enregistrement du brouillon : %v\n", err)
		return
	}
	fmt.Fprintln(w.out, "Brouillon enregistré.")
}

// report prints validation feedback; the fields are re-asked on the next loop.
func (w *walker) report(err error) {
	if err == nil {
		return
	}
	var verr *forms.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintf(w.out, "Veuillez corriger %d champ(s) avant de continuer.\n", len(verr.Fields))
		return
	}
	fmt.Fprintf(w.out, "Erreur : %v\n", err)
}
