//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/projectwizard/internal/domain/commands"
	"github.com/rios0rios0/projectwizard/internal/domain/entities"
)

// StubCreateCommand is a stub implementation of commands.Create.
type StubCreateCommand struct {
	ExecuteCallCount int
	Result           *entities.PipelineResult
	ExecuteErr       error
	LastSettings     *entities.Settings
	LastRequest      entities.ProjectRequest
}

var _ commands.Create = (*StubCreateCommand)(nil)

func (s *StubCreateCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	request entities.ProjectRequest,
) (*entities.PipelineResult, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastRequest = request
	return s.Result, s.ExecuteErr
}

// StubListTemplatesCommand is a stub implementation of commands.ListTemplates.
type StubListTemplatesCommand struct {
	ExecuteCallCount int
	Listing          *commands.TemplateListing
	ExecuteErr       error
}

var _ commands.ListTemplates = (*StubListTemplatesCommand)(nil)

func (s *StubListTemplatesCommand) Execute(
	_ context.Context,
	_ *entities.Settings,
) (*commands.TemplateListing, error) {
	s.ExecuteCallCount++
	return s.Listing, s.ExecuteErr
}

// StubListBranchesCommand is a stub implementation of commands.ListBranches.
type StubListBranchesCommand struct {
	ExecuteCallCount int
	Branches         []string
	ExecuteErr       error
	LastTemplate     string
}

var _ commands.ListBranches = (*StubListBranchesCommand)(nil)

func (s *StubListBranchesCommand) Execute(
	_ context.Context,
	_ *entities.Settings,
	template string,
) ([]string, error) {
	s.ExecuteCallCount++
	s.LastTemplate = template
	return s.Branches, s.ExecuteErr
}

// StubCheckTokenCommand is a stub implementation of commands.CheckToken.
type StubCheckTokenCommand struct {
	ExecuteCallCount int
	Login            string
	ExecuteErr       error
}

var _ commands.CheckToken = (*StubCheckTokenCommand)(nil)

func (s *StubCheckTokenCommand) Execute(_ context.Context, _ *entities.Settings) (string, error) {
	s.ExecuteCallCount++
	return s.Login, s.ExecuteErr
}
