package repositories

import (
	"context"

	"github.com/rios0rios0/projectwizard/internal/domain/entities"
)

// HostingRepository abstracts the repository hosting service API.
type HostingRepository interface {
	Name() string
	HasToken() bool
	// CloneURL returns the HTTPS clone URL of an "owner/name" repository.
	CloneURL(fullName string) string
	// CreateRepository creates a repository under owner, or under the token
	// user when owner is empty.
	CreateRepository(
		ctx context.Context,
		owner string,
		input entities.RepositoryInput,
	) (*entities.Repository, error)
	// ValidateToken returns the login the configured token belongs to.
	ValidateToken(ctx context.Context) (string, error)
	ListRepositories(ctx context.Context) ([]entities.Repository, error)
	ListBranches(ctx context.Context, fullName string) ([]string, error)
}
