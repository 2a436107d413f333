package controllers

import (
	"io"

	"github.com/rios0rios0/projectwizard/internal/domain/commands"
)

// NewCreateControllerForTest replaces the terminal prompter and progress output.
func NewCreateControllerForTest(command commands.Create, prompter Prompter, progress Progress) *CreateController {
	return &CreateController{
		command:     command,
		prompter:    prompter,
		newProgress: func(_ io.Writer, _ string) Progress { return progress },
	}
}

var CheckWith = checkWith //nolint:gochecknoglobals // test export
