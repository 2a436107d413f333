package commands

import (
	"context"
	"fmt"
	"sort"

	"github.com/rios0rios0/projectwizard/internal/domain/entities"
	"github.com/rios0rios0/projectwizard/internal/domain/repositories"
)

// ListTemplates is the interface for the templates command.
type ListTemplates interface {
	Execute(ctx context.Context, settings *entities.Settings) (*TemplateListing, error)
}

// TemplateAlias is a configured shortcut for a template repository.
type TemplateAlias struct {
	Alias      string
	Repository string
}

// TemplateListing holds the configured aliases and, when a token is available,
// the repositories the token can read.
type TemplateListing struct {
	Aliases      []TemplateAlias
	Repositories []entities.Repository
}

// ListTemplatesCommand lists candidate template repositories.
type ListTemplatesCommand struct {
	factory repositories.CollaboratorFactory
}

// NewListTemplatesCommand creates a new ListTemplatesCommand.
func NewListTemplatesCommand(factory repositories.CollaboratorFactory) *ListTemplatesCommand {
	return &ListTemplatesCommand{factory: factory}
}

// Execute lists aliases sorted by name, followed by the hosting repositories.
func (it *ListTemplatesCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
) (*TemplateListing, error) {
	listing := &TemplateListing{}
	for alias, repo := range settings.Templates {
		listing.Aliases = append(listing.Aliases, TemplateAlias{Alias: alias, Repository: repo})
	}
	sort.Slice(listing.Aliases, func(i, j int) bool {
		return listing.Aliases[i].Alias < listing.Aliases[j].Alias
	})

	hosting := it.factory.Hosting(settings)
	if !hosting.HasToken() {
		return listing, nil
	}

	repos, err := hosting.ListRepositories(ctx)
	if err != nil {
		return listing, fmt.Errorf("failed to list %s repositories: %w", hosting.Name(), err)
	}
	listing.Repositories = repos
	return listing, nil
}
