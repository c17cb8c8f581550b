// Package workspace holds the per-user session state of the admin UI: the
// active section, the selected form type and the open form engine.
package workspace

//go:generate mockgen -source=workspace.go -destination=mocks/mocks.go -package=mocks Catalog,DraftStore,Submitter,AuditPublisher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"cdp/internal/audit"
	"cdp/internal/demandes/models"
	"cdp/internal/drafts"
	"cdp/internal/forms"
	"cdp/pkg/attrs"
	id "cdp/pkg/domain"
	dErrors "cdp/pkg/domain-errors"
	"cdp/pkg/requestcontext"
)

type Catalog interface {
	Definition(formType string) (*forms.Definition, error)
}

type DraftStore interface {
	Save(ctx context.Context, owner, formType string, answers forms.Answers) error
	Load(ctx context.Context, owner, formType string) (forms.Answers, error)
	Discard(ctx context.Context, owner, formType string) error
}

// Submitter turns completed answers into a recorded demande.
type Submitter interface {
	Submit(ctx context.Context, formType string, answers forms.Answers) (*models.Demande, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

var errNoOpenForm = dErrors.New(dErrors.CodeInvalidRequest, "no form is open")

// State is a point-in-time snapshot of a workspace.
type State struct {
	Section  Section     `json:"section"`
	FormType string      `json:"form_type,omitempty"`
	Form     *forms.View `json:"form,omitempty"`
	Notice   *Notice     `json:"notice,omitempty"`
}

// Workspace is one user's session. All methods are safe for concurrent use;
// the engine it owns is only touched under its lock.
type Workspace struct {
	mu sync.Mutex

	owner id.UserID
	// role is read without mu so the registry can refresh it while an
	// operation holds the lock.
	role atomic.Value // id.Role

	catalog        Catalog
	drafts         DraftStore
	submitter      Submitter
	auditPublisher AuditPublisher
	logger         *slog.Logger

	section  Section
	formType string
	engine   *forms.Engine
	notice   *Notice
}

type deps struct {
	catalog        Catalog
	drafts         DraftStore
	submitter      Submitter
	auditPublisher AuditPublisher
	logger         *slog.Logger
}

func newWorkspace(owner id.UserID, role id.Role, d deps) *Workspace {
	w := &Workspace{
		owner:          owner,
		catalog:        d.catalog,
		drafts:         d.drafts,
		submitter:      d.submitter,
		auditPublisher: d.auditPublisher,
		logger:         d.logger,
		section:        SectionDashboard,
	}
	w.role.Store(role)
	return w
}

func (w *Workspace) currentRole() id.Role {
	role, _ := w.role.Load().(id.Role)
	return role
}

func (w *Workspace) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stateLocked()
}

func (w *Workspace) stateLocked() State {
	st := State{Section: w.section, FormType: w.formType, Notice: w.notice}
	if w.engine != nil {
		v := w.engine.View()
		st.Form = &v
	}
	return st
}

// Navigate switches the active section when the user's role allows it.
func (w *Workspace) Navigate(section Section) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !section.Allows(w.currentRole()) {
		return dErrors.New(dErrors.CodeForbidden, "section not available for this role")
	}
	w.section = section
	return nil
}

// SelectFormType opens a fresh engine for formType, replacing any open form.
// With resume the saved draft, if any, replaces the empty answers.
func (w *Workspace) SelectFormType(ctx context.Context, formType string, resume bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !id.Can(w.currentRole(), id.PermSubmitDemande) {
		return dErrors.New(dErrors.CodeForbidden, "role cannot submit demandes")
	}
	def, err := w.catalog.Definition(formType)
	if err != nil {
		return err
	}
	w.formType = formType
	w.engine = forms.NewEngine(def)
	w.notice = nil
	if resume {
		w.loadDraftLocked(ctx)
	}
	return nil
}

// CloseForm drops the in-memory form. Saved drafts are left in place.
func (w *Workspace) CloseForm() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.engine = nil
	w.formType = ""
}

func (w *Workspace) Set(field, value string) error {
	return w.withEngine(func(e *forms.Engine) error { return e.Set(field, value) })
}

func (w *Workspace) SetMany(values map[string]string) error {
	return w.withEngine(func(e *forms.Engine) error { return e.SetAll(values) })
}

func (w *Workspace) Toggle(field, option string) error {
	return w.withEngine(func(e *forms.Engine) error { return e.Toggle(field, option) })
}

// Next advances the open form. A *forms.ValidationError reports the blocking fields.
func (w *Workspace) Next() error {
	return w.withEngine(func(e *forms.Engine) error { return e.Advance() })
}

func (w *Workspace) Previous() error {
	return w.withEngine(func(e *forms.Engine) error { return e.Retreat() })
}

func (w *Workspace) withEngine(fn func(e *forms.Engine) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.engine == nil {
		return errNoOpenForm
	}
	return fn(w.engine)
}

// SaveDraft overwrites the saved draft of the open form. A storage failure is
// reported through the notice only.
func (w *Workspace) SaveDraft(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.engine == nil {
		return errNoOpenForm
	}
	if err := w.drafts.Save(ctx, w.owner.String(), w.formType, w.engine.Answers()); err != nil {
		w.logger.WarnContext(ctx, "draft save failed",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", w.owner.String(),
			"form_type", w.formType,
			"error", err,
		)
		w.notice = failure(MsgDraftSaveFailed)
		return nil
	}
	w.notice = success(MsgDraftSaved)
	w.logAudit(ctx, audit.ActionDraftSaved, "subject", w.formType)
	return nil
}

// LoadDraft replaces the open form's answers with the saved draft. It reports
// whether a draft was applied; a missing draft is silently ignored.
func (w *Workspace) LoadDraft(ctx context.Context) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.engine == nil {
		return false, errNoOpenForm
	}
	return w.loadDraftLocked(ctx), nil
}

func (w *Workspace) loadDraftLocked(ctx context.Context) bool {
	answers, err := w.drafts.Load(ctx, w.owner.String(), w.formType)
	if errors.Is(err, drafts.ErrNoDraft) {
		return false
	}
	if err == nil {
		err = w.engine.Replace(answers)
	}
	if err != nil {
		w.logger.WarnContext(ctx, "draft load failed",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", w.owner.String(),
			"form_type", w.formType,
			"error", err,
		)
		w.notice = failure(MsgDraftLoadFailed)
		return false
	}
	w.notice = success(MsgDraftLoaded)
	return true
}

// DiscardDraft deletes the saved draft of the selected form type.
func (w *Workspace) DiscardDraft(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.engine == nil {
		return errNoOpenForm
	}
	if err := w.drafts.Discard(ctx, w.owner.String(), w.formType); err != nil {
		return err
	}
	w.logAudit(ctx, audit.ActionDraftDiscarded, "subject", w.formType)
	return nil
}

// Submit hands the completed form to the submitter. On success the side effects
// run in order: the demande is recorded, the form is closed, the demandes
// section becomes active and the selected form type is cleared. On a handoff
// failure the form stays open on the same page with the same answers.
func (w *Workspace) Submit(ctx context.Context) (*models.Demande, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.engine == nil {
		return nil, errNoOpenForm
	}
	var recorded *models.Demande
	err := w.engine.Submit(ctx, func(ctx context.Context, formType string, answers forms.Answers) error {
		d, err := w.submitter.Submit(ctx, formType, answers)
		if err != nil {
			return err
		}
		recorded = d
		return nil
	})
	if err != nil {
		var verr *forms.ValidationError
		if errors.As(err, &verr) {
			return nil, err
		}
		if dErrors.HasCode(err, dErrors.CodeInvalidRequest) {
			return nil, err
		}
		w.logger.ErrorContext(ctx, "form submission failed",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", w.owner.String(),
			"form_type", w.formType,
			"error", err,
		)
		w.notice = failure(MsgSubmissionFailed)
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, MsgSubmissionFailed)
	}

	w.engine = nil
	w.section = SectionDemandes
	w.formType = ""
	w.notice = success(MsgSubmitted)
	return recorded, nil
}

func (w *Workspace) logAudit(ctx context.Context, action audit.Action, attributes ...any) {
	attributes = append(attributes, "user_id", w.owner.String())
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", string(action), "log_type", "audit")
	w.logger.InfoContext(ctx, string(action), args...)
	if w.auditPublisher == nil {
		return
	}
	owner := w.owner
	if err := w.auditPublisher.Emit(ctx, audit.Event{
		Action:  action,
		UserID:  &owner,
		Subject: attrs.String(attributes, "subject"),
	}); err != nil {
		w.logger.WarnContext(ctx, "audit emit failed", "event", string(action), "error", err)
	}
}
