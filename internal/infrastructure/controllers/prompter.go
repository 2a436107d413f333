package controllers

import (
	"errors"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/manifoldco/promptui"
)

// Prompter asks the user for missing values.
type Prompter interface {
	Text(label, defaultValue string, validate func(string) error) (string, error)
	Select(label string, items []string) (string, error)
}

// PromptuiPrompter is the terminal implementation of Prompter.
type PromptuiPrompter struct{}

func NewPromptuiPrompter() *PromptuiPrompter {
	return &PromptuiPrompter{}
}

func (it *PromptuiPrompter) Text(label, defaultValue string, validate func(string) error) (string, error) {
	prompt := promptui.Prompt{
		Label:   label,
		Default: defaultValue,
	}
	if validate != nil {
		prompt.Validate = validate
	}
	return prompt.Run()
}

func (it *PromptuiPrompter) Select(label string, items []string) (string, error) {
	prompt := promptui.Select{
		Label: label,
		Items: items,
	}
	_, selection, err := prompt.Run()
	return selection, err
}

// checkWith adapts an entities validator, which returns the failure reason or
// an empty string, to a prompt validator.
func checkWith(check func(string) string) func(string) error {
	return func(value string) error {
		if msg := check(value); msg != "" {
			return errors.New(msg)
		}
		return nil
	}
}

// Progress is shown while a long-running command works.
type Progress interface {
	Start()
	Stop()
}

type noProgress struct{}

func (noProgress) Start() {}
func (noProgress) Stop()  {}

// newSpinnerProgress writes a spinner with the message to w.
func newSpinnerProgress(w io.Writer, message string) Progress {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Writer = w
	s.Suffix = " " + message
	return s
}
