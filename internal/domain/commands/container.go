package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	for _, constructor := range []interface{}{
		NewCreateCommand,
		NewListTemplatesCommand,
		NewListBranchesCommand,
		NewCheckTokenCommand,
	} {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *CreateCommand) Create {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *ListTemplatesCommand) ListTemplates {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *ListBranchesCommand) ListBranches {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *CheckTokenCommand) CheckToken {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
