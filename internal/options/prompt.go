package options

import (
	"context"
	"fmt"

	"github.com/farm-stack/create-farm-app/internal/branding"
	"github.com/farm-stack/create-farm-app/internal/prompt"
)

// Question names.
const (
	QuestionProjectName    = "projectName"
	QuestionDisableGit     = "disableGit"
	QuestionDisableInstall = "disableInstall"
)

// Questions returns the questions Prompt would ask for o, in order.
//
// The project name is always asked, even after --name. Only --yes suppresses
// it.
func Questions(o *Options) []prompt.Question {
	questions := []prompt.Question{{
		Name:    QuestionProjectName,
		Message: "What is the name of the project?",
		Kind:    prompt.Input,
		Default: branding.DefaultProjectName(),
	}}

	if !o.DisableGit {
		questions = append(questions, prompt.Question{
			Name:    QuestionDisableGit,
			Message: "Disable git repo?",
			Kind:    prompt.Confirm,
		})
	}

	if !o.DisableInstall {
		questions = append(questions, prompt.Question{
			Name:    QuestionDisableInstall,
			Message: "Don't install dependencies automatically?",
			Kind:    prompt.Confirm,
		})
	}
	return questions
}

// Prompt asks for any option the command line did not force and merges the
// answers into a copy of o. A value set by a flag always wins over an answer.
// Without --name, a non-empty name answer replaces the default name; an
// empty answer keeps it. With SkipPrompts the copy is returned as is and
// asker is never called.
func Prompt(ctx context.Context, o *Options, asker prompt.Asker) (*Options, error) {
	merged := *o
	if o.SkipPrompts {
		return &merged, nil
	}

	answers, err := asker.Ask(ctx, Questions(o))
	if err != nil {
		return nil, fmt.Errorf("prompting for options: %w", err)
	}

	if !o.NameExplicit {
		if name := answers.String(QuestionProjectName); name != "" {
			if err := ValidateName(name); err != nil {
				return nil, &ArgumentError{Err: err}
			}
			merged.ProjectName = name
		}
	}
	merged.DisableGit = o.DisableGit || answers.Bool(QuestionDisableGit)
	merged.DisableInstall = o.DisableInstall || answers.Bool(QuestionDisableInstall)
	return &merged, nil
}
