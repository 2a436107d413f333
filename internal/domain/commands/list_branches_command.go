package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/rios0rios0/projectwizard/internal/domain/entities"
	"github.com/rios0rios0/projectwizard/internal/domain/repositories"
)

// ListBranches is the interface for the branches command.
type ListBranches interface {
	Execute(ctx context.Context, settings *entities.Settings, template string) ([]string, error)
}

// ListBranchesCommand lists the branches of a template repository.
type ListBranchesCommand struct {
	factory repositories.CollaboratorFactory
}

// NewListBranchesCommand creates a new ListBranchesCommand.
func NewListBranchesCommand(factory repositories.CollaboratorFactory) *ListBranchesCommand {
	return &ListBranchesCommand{factory: factory}
}

// Execute resolves template aliases before querying the hosting service.
func (it *ListBranchesCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	template string,
) ([]string, error) {
	fullName := settings.ResolveTemplate(template)
	if msg := entities.ValidateTemplateRepo(fullName); msg != "" {
		return nil, &entities.ValidationError{Fields: map[string]string{"template repository": msg}}
	}

	hosting := it.factory.Hosting(settings)
	branches, err := hosting.ListBranches(ctx, fullName)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches of %s: %w", fullName, err)
	}
	if len(branches) == 0 {
		return nil, errors.New("repository " + fullName + " has no branches")
	}
	return branches, nil
}
