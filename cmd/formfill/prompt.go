package main

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

var errAborted = errors.New("aborted by user")

// Question is one prompt. Key is the field name or a control key; Values
// runs parallel to Options and carries the option values behind the labels.
type Question struct {
	Key      string
	Message  string
	Help     string
	Default  string
	Options  []string
	Values   []string
	Defaults []int
}

// Prompter abstracts the terminal so the walk can be tested without a tty.
type Prompter interface {
	Input(ctx context.Context, q Question) (string, error)
	TextArea(ctx context.Context, q Question) (string, error)
	Select(ctx context.Context, q Question) (int, error)
	MultiSelect(ctx context.Context, q Question) ([]int, error)
	Confirm(ctx context.Context, q Question, def bool) (bool, error)
}

type surveyPrompter struct{}

func (surveyPrompter) Input(ctx context.Context, q Question) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	err := survey.AskOne(&survey.Input{Message: q.Message, Help: q.Help, Default: q.Default}, &out)
	return out, translateSurveyErr(err)
}

func (surveyPrompter) TextArea(ctx context.Context, q Question) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	err := survey.AskOne(&survey.Multiline{Message: q.Message, Help: q.Help, Default: q.Default}, &out)
	return out, translateSurveyErr(err)
}

func (surveyPrompter) Select(ctx context.Context, q Question) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	prompt := &survey.Select{Message: q.Message, Options: q.Options, Help: q.Help}
	if len(q.Defaults) == 1 {
		prompt.Default = q.Options[q.Defaults[0]]
	}
	var out int
	err := survey.AskOne(prompt, &out)
	return out, translateSurveyErr(err)
}

func (surveyPrompter) MultiSelect(ctx context.Context, q Question) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	prompt := &survey.MultiSelect{Message: q.Message, Options: q.Options, Help: q.Help}
	if len(q.Defaults) > 0 {
		defaults := make([]string, 0, len(q.Defaults))
		for _, i := range q.Defaults {
			defaults = append(defaults, q.Options[i])
		}
		prompt.Default = defaults
	}
	var out []int
	err := survey.AskOne(prompt, &out)
	return out, translateSurveyErr(err)
}

func (surveyPrompter) Confirm(ctx context.Context, q Question, def bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	err := survey.AskOne(&survey.Confirm{Message: q.Message, Help: q.Help, Default: def}, &out)
	return out, translateSurveyErr(err)
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return errAborted
	}
	return err
}
