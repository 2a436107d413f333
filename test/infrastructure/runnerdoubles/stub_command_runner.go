//go:build integration || unit || test

package runnerdoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"strings"
	"sync"

	"github.com/rios0rios0/projectwizard/internal/infrastructure/repositories/runner"
)

// CommandCall records a single invocation of Run.
type CommandCall struct {
	Name string
	Args []string
	Opts runner.CommandOptions
}

// StubCommandRunner returns canned results keyed by the first argument
// (the CLI subcommand) and records every call.
type StubCommandRunner struct {
	mu sync.Mutex

	Results map[string]runner.CommandResult
	Errs    map[string]error
	Calls   []CommandCall
}

func (s *StubCommandRunner) Run(
	_ context.Context,
	name string,
	args []string,
	opts runner.CommandOptions,
) (runner.CommandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Calls = append(s.Calls, CommandCall{Name: name, Args: args, Opts: opts})

	key := ""
	if len(args) > 0 {
		key = args[0]
	}
	if err := s.Errs[key]; err != nil {
		return runner.CommandResult{}, err
	}
	return s.Results[key], nil
}

// LastCommandLine joins the arguments of the most recent call.
func (s *StubCommandRunner) LastCommandLine() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.Calls) == 0 {
		return ""
	}
	return strings.Join(s.Calls[len(s.Calls)-1].Args, " ")
}
