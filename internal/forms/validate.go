package forms

import (
	"regexp"
	"strings"
)

const (
	MsgRequired     = "Ce champ est obligatoire"
	MsgInvalidEmail = "Veuillez entrer une adresse email valide"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// validatePage checks required, conditional and email fields of page n.
func validatePage(def *Definition, n int, answers Answers) FieldErrors {
	errs := FieldErrors{}
	page, ok := def.Page(n)
	if !ok {
		return errs
	}
	for _, f := range page.Fields {
		value := strings.TrimSpace(answers[f.Name])
		if value == "" {
			if f.RequiredFor(answers) {
				errs[f.Name] = requiredMessage(f)
			}
			continue
		}
		if f.Kind == KindEmail && !emailPattern.MatchString(answers[f.Name]) {
			errs[f.Name] = MsgInvalidEmail
		}
	}
	return errs
}

func requiredMessage(f Field) string {
	if f.Message != "" {
		return f.Message
	}
	return MsgRequired
}
