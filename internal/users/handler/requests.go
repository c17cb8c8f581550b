package handler

import (
	"strings"

	"cdp/internal/users/models"
	"cdp/internal/users/service"
	id "cdp/pkg/domain"
	dErrors "cdp/pkg/domain-errors"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return dErrors.New(dErrors.CodeBadRequest, "email and password are required")
	}
	return nil
}

type CreateRequest struct {
	Email    string `json:"email"`
	Nom      string `json:"nom"`
	Role     string `json:"role"`
	Password string `json:"password"`

	role id.Role
}

func (r *CreateRequest) Validate() error {
	role, err := id.ParseRole(r.Role)
	if err != nil {
		return err
	}
	r.role = role
	return nil
}

func (r *CreateRequest) toInput() service.CreateInput {
	return service.CreateInput{Email: r.Email, Nom: r.Nom, Role: r.role, Password: r.Password}
}

type UpdateRequest struct {
	Nom      *string `json:"nom"`
	Role     *string `json:"role"`
	Password *string `json:"password"`

	role *id.Role
}

func (r *UpdateRequest) Validate() error {
	if r.Role != nil {
		role, err := id.ParseRole(*r.Role)
		if err != nil {
			return err
		}
		r.role = &role
	}
	return nil
}

func (r *UpdateRequest) toUpdate() models.Update {
	return models.Update{Nom: r.Nom, Role: r.role, Password: r.Password}
}

type listResponse struct {
	Users []*models.User `json:"users"`
	Total int            `json:"total"`
}
