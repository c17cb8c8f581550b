package forms

import (
	"context"
	"slices"

	dErrors "cdp/pkg/domain-errors"
	pstrings "cdp/pkg/platform/strings"
)

// Handoff receives the complete answers of a submitted form.
type Handoff func(ctx context.Context, formType string, answers Answers) error

// ValidationError reports the fields that blocked a page transition.
type ValidationError struct {
	Page   int
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return "page contains invalid or missing fields"
}

// Engine walks one user through the pages of a Definition. It is not safe for
// concurrent use; the owning workspace serialises access.
type Engine struct {
	def       *Definition
	answers   Answers
	errors    FieldErrors
	page      int
	submitted bool
}

func NewEngine(def *Definition) *Engine {
	return &Engine{
		def:     def,
		answers: def.NewAnswers(),
		errors:  FieldErrors{},
		page:    1,
	}
}

func (e *Engine) Definition() *Definition { return e.def }
func (e *Engine) FormType() string        { return e.def.Type }
func (e *Engine) Page() int               { return e.page }
func (e *Engine) TotalPages() int         { return e.def.TotalPages() }
func (e *Engine) Submitted() bool         { return e.submitted }
func (e *Engine) Answers() Answers        { return e.answers.Clone() }
func (e *Engine) Errors() FieldErrors     { return e.errors.Clone() }

// Progress is the completion percentage, (page-1)/(N-1)*100.
func (e *Engine) Progress() int {
	n := e.def.TotalPages()
	if e.submitted || n <= 1 {
		return 100
	}
	return (e.page - 1) * 100 / (n - 1)
}

// Set updates a field and clears its error. Checkbox values are normalised to
// deduplicated tokens; option-bound fields reject undeclared values.
func (e *Engine) Set(field, value string) error {
	if err := e.ensureOpen(); err != nil {
		return err
	}
	f, ok := e.def.Field(field)
	if !ok {
		return dErrors.New(dErrors.CodeInvalidInput, "unknown field: "+field)
	}
	normalized, err := normalize(f, value)
	if err != nil {
		return err
	}
	e.answers[field] = normalized
	delete(e.errors, field)
	return nil
}

// SetAll applies values as one batch: every entry is checked and normalised
// first, and nothing is written unless all of them pass.
func (e *Engine) SetAll(values map[string]string) error {
	if err := e.ensureOpen(); err != nil {
		return err
	}
	staged := make(Answers, len(values))
	for name, value := range values {
		f, ok := e.def.Field(name)
		if !ok {
			return dErrors.New(dErrors.CodeInvalidInput, "unknown field: "+name)
		}
		normalized, err := normalize(f, value)
		if err != nil {
			return err
		}
		staged[name] = normalized
	}
	for name, value := range staged {
		e.answers[name] = value
		delete(e.errors, name)
	}
	return nil
}

// Toggle adds option to a multi-select field, or removes it when present.
func (e *Engine) Toggle(field, option string) error {
	if err := e.ensureOpen(); err != nil {
		return err
	}
	f, ok := e.def.Field(field)
	if !ok {
		return dErrors.New(dErrors.CodeInvalidInput, "unknown field: "+field)
	}
	if f.Kind != KindCheckbox {
		return dErrors.New(dErrors.CodeInvalidInput, "field is not multi-select: "+field)
	}
	if !f.HasOption(option) {
		return dErrors.New(dErrors.CodeInvalidInput, "unknown option for "+field+": "+option)
	}
	tokens := e.answers.Tokens(field)
	if i := slices.Index(tokens, option); i >= 0 {
		tokens = slices.Delete(tokens, i, i+1)
	} else {
		tokens = append(tokens, option)
	}
	e.answers[field] = pstrings.JoinTokens(tokens)
	delete(e.errors, field)
	return nil
}

// ValidatePage recomputes the field errors for page n and reports success.
func (e *Engine) ValidatePage(n int) bool {
	e.errors = validatePage(e.def, n, e.answers)
	return len(e.errors) == 0
}

// Advance moves to the next page once the current page validates.
func (e *Engine) Advance() error {
	if err := e.ensureOpen(); err != nil {
		return err
	}
	if e.page >= e.def.TotalPages() {
		return dErrors.New(dErrors.CodeInvalidRequest, "already on the last page")
	}
	if !e.ValidatePage(e.page) {
		return &ValidationError{Page: e.page, Fields: e.Errors()}
	}
	e.page++
	return nil
}

// Retreat moves to the previous page without validation, never below page 1.
func (e *Engine) Retreat() error {
	if err := e.ensureOpen(); err != nil {
		return err
	}
	if e.page > 1 {
		e.page--
	}
	return nil
}

// Submit validates the last page and hands the answers off. On any failure the
// engine stays open on the last page with its answers intact.
func (e *Engine) Submit(ctx context.Context, handoff Handoff) error {
	if err := e.ensureOpen(); err != nil {
		return err
	}
	last := e.def.TotalPages()
	if e.page != last {
		return dErrors.New(dErrors.CodeInvalidRequest, "form can only be submitted from the last page")
	}
	if !e.ValidatePage(last) {
		return &ValidationError{Page: last, Fields: e.Errors()}
	}
	if err := handoff(ctx, e.def.Type, e.answers.Clone()); err != nil {
		return err
	}
	e.submitted = true
	return nil
}

// Replace discards current answers in favour of loaded ones. Fields absent from
// loaded become empty; unknown fields are rejected.
func (e *Engine) Replace(loaded Answers) error {
	if err := e.ensureOpen(); err != nil {
		return err
	}
	next := e.def.NewAnswers()
	for name, value := range loaded {
		f, ok := e.def.Field(name)
		if !ok {
			return dErrors.New(dErrors.CodeInvalidInput, "unknown field: "+name)
		}
		normalized, err := normalize(f, value)
		if err != nil {
			return err
		}
		next[name] = normalized
	}
	e.answers = next
	e.errors = FieldErrors{}
	return nil
}

func (e *Engine) ensureOpen() error {
	if e.submitted {
		return dErrors.New(dErrors.CodeInvariantViolation, "form already submitted")
	}
	return nil
}

func normalize(f Field, value string) (string, error) {
	switch f.Kind {
	case KindCheckbox:
		tokens := pstrings.SplitTokens(value)
		for _, t := range tokens {
			if !f.HasOption(t) {
				return "", dErrors.New(dErrors.CodeInvalidInput, "unknown option for "+f.Name+": "+t)
			}
		}
		return pstrings.JoinTokens(tokens), nil
	case KindRadio:
		if value != "" && !f.HasOption(value) {
			return "", dErrors.New(dErrors.CodeInvalidInput, "unknown option for "+f.Name+": "+value)
		}
		return value, nil
	default:
		return sanitizeText(value), nil
	}
}
