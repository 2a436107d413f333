package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/projectwizard/internal/domain/repositories"
	ghRepo "github.com/rios0rios0/projectwizard/internal/infrastructure/repositories/github"
	"github.com/rios0rios0/projectwizard/internal/infrastructure/repositories/runner"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(func() runner.CommandRunner {
		return runner.NewExecCommandRunner()
	}); err != nil {
		return err
	}

	// Register the collaborator registry with every hosting factory
	if err := container.Provide(func(commandRunner runner.CommandRunner) *CollaboratorRegistry {
		reg := NewCollaboratorRegistry(commandRunner)
		reg.Register(DefaultHostingProvider, ghRepo.NewGitHubHostingRepository)
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(func(impl *CollaboratorRegistry) domainRepos.CollaboratorFactory {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
