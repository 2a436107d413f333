package repositories

import (
	"fmt"
	"sort"

	"github.com/rios0rios0/projectwizard/internal/domain/entities"
	domainRepos "github.com/rios0rios0/projectwizard/internal/domain/repositories"
	"github.com/rios0rios0/projectwizard/internal/infrastructure/repositories/firebase"
	"github.com/rios0rios0/projectwizard/internal/infrastructure/repositories/gogit"
	"github.com/rios0rios0/projectwizard/internal/infrastructure/repositories/runner"
	"github.com/rios0rios0/projectwizard/internal/infrastructure/repositories/workspace"
)

// DefaultHostingProvider is the hosting service used when none is named.
const DefaultHostingProvider = "github"

// HostingFactory is a constructor function that creates a HostingRepository given an auth token.
type HostingFactory func(token string) domainRepos.HostingRepository

// CollaboratorRegistry builds the collaborators of a pipeline run from the
// settings. Hosting implementations are registered by name.
type CollaboratorRegistry struct {
	runner  runner.CommandRunner
	hosting map[string]HostingFactory
}

// NewCollaboratorRegistry creates a registry with no hosting providers.
func NewCollaboratorRegistry(commandRunner runner.CommandRunner) *CollaboratorRegistry {
	return &CollaboratorRegistry{
		runner:  commandRunner,
		hosting: make(map[string]HostingFactory),
	}
}

// Register adds a hosting factory under the given name (e.g. "github").
func (r *CollaboratorRegistry) Register(name string, factory HostingFactory) {
	r.hosting[name] = factory
}

// Names returns the sorted list of registered hosting providers.
func (r *CollaboratorRegistry) Names() []string {
	names := make([]string, 0, len(r.hosting))
	for name := range r.hosting {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HostingFor returns a configured hosting instance for the given name and token.
func (r *CollaboratorRegistry) HostingFor(name, token string) (domainRepos.HostingRepository, error) {
	factory, ok := r.hosting[name]
	if !ok {
		return nil, fmt.Errorf("unknown hosting provider: %q", name)
	}
	return factory(token), nil
}

func (r *CollaboratorRegistry) VersionControl(settings *entities.Settings) domainRepos.VersionControlRepository {
	return gogit.NewGoGitVersionControlRepository(
		settings.GitHub.Token, settings.Git.AuthorName, settings.Git.AuthorEmail)
}

func (r *CollaboratorRegistry) Provisioning(
	settings *entities.Settings,
	account string,
) (domainRepos.ProvisioningRepository, error) {
	return firebase.NewFirebaseProvisioningRepository(r.runner, settings.Firebase.Binary, account)
}

// Hosting returns the default hosting provider. The registry always carries
// it, so a lookup failure is a wiring bug.
func (r *CollaboratorRegistry) Hosting(settings *entities.Settings) domainRepos.HostingRepository {
	hosting, err := r.HostingFor(DefaultHostingProvider, settings.GitHub.Token)
	if err != nil {
		panic(err)
	}
	return hosting
}

func (r *CollaboratorRegistry) Workspace(settings *entities.Settings) domainRepos.WorkspaceRepository {
	return workspace.NewWorkspaceRepository(settings.Workspace.Root)
}
