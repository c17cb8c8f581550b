package handler

import (
	"strings"

	"cdp/internal/demandes/models"
	"cdp/internal/workspace"
	dErrors "cdp/pkg/domain-errors"
)

type NavigateRequest struct {
	Section string `json:"section"`

	section workspace.Section
}

func (r *NavigateRequest) Validate() error {
	sec, err := workspace.ParseSection(strings.TrimSpace(r.Section))
	if err != nil {
		return err
	}
	r.section = sec
	return nil
}

type OpenFormRequest struct {
	Type   string `json:"type"`
	Resume bool   `json:"resume"`
}

func (r *OpenFormRequest) Validate() error {
	r.Type = strings.TrimSpace(r.Type)
	if r.Type == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "type is required")
	}
	return nil
}

type AnswersRequest struct {
	Answers map[string]string `json:"answers"`
}

func (r *AnswersRequest) Validate() error {
	if len(r.Answers) == 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "answers are required")
	}
	return nil
}

type ToggleRequest struct {
	Field  string `json:"field"`
	Option string `json:"option"`
}

func (r *ToggleRequest) Validate() error {
	if r.Field == "" || r.Option == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "field and option are required")
	}
	return nil
}

type validationResponse struct {
	Error  string            `json:"error"`
	Page   int               `json:"page"`
	Fields map[string]string `json:"fields"`
	State  workspace.State   `json:"state"`
}

type submitResponse struct {
	Demande *models.Demande `json:"demande"`
	State   workspace.State `json:"state"`
}

type loadDraftResponse struct {
	Loaded bool            `json:"loaded"`
	State  workspace.State `json:"state"`
}
