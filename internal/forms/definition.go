// Package forms implements declarative multi-page forms and the paged engine
// that walks a user through them.
package forms

import (
	"fmt"
	"slices"
)

// Kind is the input kind of a field.
type Kind string

const (
	KindText     Kind = "text"
	KindEmail    Kind = "email"
	KindTel      Kind = "tel"
	KindTextarea Kind = "textarea"
	KindCheckbox Kind = "checkbox" // multi-select, comma-joined tokens
	KindRadio    Kind = "radio"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindText, KindEmail, KindTel, KindTextarea, KindCheckbox, KindRadio:
		return true
	}
	return false
}

// HasOptions reports whether values of this kind are restricted to declared options.
func (k Kind) HasOptions() bool {
	return k == KindCheckbox || k == KindRadio
}

// Option is one selectable value of a checkbox or radio field.
type Option struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// Condition makes a field required depending on another field's value.
// Exactly one of Equals or Contains is set.
type Condition struct {
	Field    string `yaml:"field" json:"field"`
	Equals   string `yaml:"equals,omitempty" json:"equals,omitempty"`
	Contains string `yaml:"contains,omitempty" json:"contains,omitempty"`
}

// Holds evaluates the condition against the current answers.
func (c Condition) Holds(answers Answers) bool {
	if c.Contains != "" {
		return answers.HasToken(c.Field, c.Contains)
	}
	return answers[c.Field] == c.Equals
}

type Field struct {
	Name         string     `yaml:"name" json:"name"`
	Label        string     `yaml:"label" json:"label"`
	Kind         Kind       `yaml:"kind" json:"kind"`
	Required     bool       `yaml:"required,omitempty" json:"required,omitempty"`
	RequiredWhen *Condition `yaml:"required_when,omitempty" json:"required_when,omitempty"`
	// Message replaces the generic "required" message.
	Message string   `yaml:"message,omitempty" json:"-"`
	Options []Option `yaml:"options,omitempty" json:"options,omitempty"`
}

// RequiredFor reports whether the field must be filled given the answers.
func (f Field) RequiredFor(answers Answers) bool {
	if f.Required {
		return true
	}
	return f.RequiredWhen != nil && f.RequiredWhen.Holds(answers)
}

// HasOption reports whether value is a declared option.
func (f Field) HasOption(value string) bool {
	return slices.ContainsFunc(f.Options, func(o Option) bool { return o.Value == value })
}

type Page struct {
	Title  string  `yaml:"title" json:"title"`
	Fields []Field `yaml:"fields" json:"fields"`
}

// Definition is an ordered sequence of pages for one form type.
type Definition struct {
	Type  string `yaml:"type" json:"type"`
	Title string `yaml:"title" json:"title"`
	Pages []Page `yaml:"pages" json:"pages"`

	index map[string]Field
}

// TotalPages returns N.
func (d *Definition) TotalPages() int {
	return len(d.Pages)
}

// Field looks up a field by name across all pages.
func (d *Definition) Field(name string) (Field, bool) {
	f, ok := d.index[name]
	return f, ok
}

// Page returns page n (1-based).
func (d *Definition) Page(n int) (Page, bool) {
	if n < 1 || n > len(d.Pages) {
		return Page{}, false
	}
	return d.Pages[n-1], true
}

// FieldNames lists every field in page order.
func (d *Definition) FieldNames() []string {
	names := make([]string, 0, len(d.index))
	for _, p := range d.Pages {
		for _, f := range p.Fields {
			names = append(names, f.Name)
		}
	}
	return names
}

// NewAnswers returns answers with every declared field set to "".
func (d *Definition) NewAnswers() Answers {
	answers := make(Answers, len(d.index))
	for name := range d.index {
		answers[name] = ""
	}
	return answers
}

// check validates the definition structure and builds the field index.
func (d *Definition) check() error {
	if d.Type == "" {
		return fmt.Errorf("form definition has no type")
	}
	if len(d.Pages) == 0 {
		return fmt.Errorf("form %q has no pages", d.Type)
	}
	d.index = make(map[string]Field)
	for i, p := range d.Pages {
		if len(p.Fields) == 0 {
			return fmt.Errorf("form %q page %d has no fields", d.Type, i+1)
		}
		for _, f := range p.Fields {
			if f.Name == "" {
				return fmt.Errorf("form %q page %d has an unnamed field", d.Type, i+1)
			}
			if _, dup := d.index[f.Name]; dup {
				return fmt.Errorf("form %q declares field %q twice", d.Type, f.Name)
			}
			if !f.Kind.IsValid() {
				return fmt.Errorf("form %q field %q has unknown kind %q", d.Type, f.Name, f.Kind)
			}
			if f.Kind.HasOptions() && len(f.Options) == 0 {
				return fmt.Errorf("form %q field %q needs options", d.Type, f.Name)
			}
			d.index[f.Name] = f
		}
	}
	for _, f := range d.index {
		c := f.RequiredWhen
		if c == nil {
			continue
		}
		dep, ok := d.index[c.Field]
		if !ok {
			return fmt.Errorf("form %q field %q depends on unknown field %q", d.Type, f.Name, c.Field)
		}
		if (c.Equals == "") == (c.Contains == "") {
			return fmt.Errorf("form %q field %q condition needs exactly one of equals or contains", d.Type, f.Name)
		}
		if c.Contains != "" && dep.Kind != KindCheckbox {
			return fmt.Errorf("form %q field %q uses contains on non-checkbox field %q", d.Type, f.Name, c.Field)
		}
	}
	return nil
}
