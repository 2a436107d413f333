package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/rios0rios0/projectwizard/internal/domain/entities"
	"github.com/rios0rios0/projectwizard/internal/domain/repositories"
)

// ErrNoToken is returned when no hosting token is configured.
var ErrNoToken = errors.New("no GitHub token configured (set github.token or GITHUB_TOKEN)")

// CheckToken is the interface for the token command.
type CheckToken interface {
	Execute(ctx context.Context, settings *entities.Settings) (string, error)
}

// CheckTokenCommand validates the configured hosting token.
type CheckTokenCommand struct {
	factory repositories.CollaboratorFactory
}

// NewCheckTokenCommand creates a new CheckTokenCommand.
func NewCheckTokenCommand(factory repositories.CollaboratorFactory) *CheckTokenCommand {
	return &CheckTokenCommand{factory: factory}
}

// Execute returns the login the token belongs to.
func (it *CheckTokenCommand) Execute(ctx context.Context, settings *entities.Settings) (string, error) {
	hosting := it.factory.Hosting(settings)
	if !hosting.HasToken() {
		return "", ErrNoToken
	}

	login, err := hosting.ValidateToken(ctx)
	if err != nil {
		return "", fmt.Errorf("token rejected by %s: %w", hosting.Name(), err)
	}
	return login, nil
}
