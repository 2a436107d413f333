//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"

	"github.com/rios0rios0/projectwizard/internal/domain/entities"
	"github.com/rios0rios0/projectwizard/internal/domain/repositories"
)

// CreateRepositoryCall records a single invocation of CreateRepository.
type CreateRepositoryCall struct {
	Owner string
	Input entities.RepositoryInput
}

// SpyHostingRepository implements repositories.HostingRepository as a configurable spy.
type SpyHostingRepository struct {
	Token string
	Login string

	// --- CreateRepository ---
	CreateErr    error
	CreateCalls  []CreateRepositoryCall
	CreatedOwner string // owner reported on the created repository

	// --- ValidateToken ---
	ValidateErr error

	// --- ListRepositories ---
	Repositories []entities.Repository
	ListErr      error

	// --- ListBranches ---
	Branches        []string
	BranchesErr     error
	BranchesQueried []string
}

var _ repositories.HostingRepository = (*SpyHostingRepository)(nil)

func (s *SpyHostingRepository) Name() string   { return "github" }
func (s *SpyHostingRepository) HasToken() bool { return s.Token != "" }

func (s *SpyHostingRepository) CloneURL(fullName string) string {
	return fmt.Sprintf("https://example.com/%s.git", fullName)
}

func (s *SpyHostingRepository) CreateRepository(
	_ context.Context,
	owner string,
	input entities.RepositoryInput,
) (*entities.Repository, error) {
	s.CreateCalls = append(s.CreateCalls, CreateRepositoryCall{Owner: owner, Input: input})
	if s.CreateErr != nil {
		return nil, s.CreateErr
	}

	org := owner
	if org == "" {
		org = s.CreatedOwner
	}
	if org == "" {
		org = "octocat"
	}
	return &entities.Repository{
		ID:            "1",
		Name:          input.Name,
		Organization:  org,
		DefaultBranch: "refs/heads/main",
		RemoteURL:     fmt.Sprintf("https://example.com/%s/%s.git", org, input.Name),
		ProviderName:  "github",
	}, nil
}

func (s *SpyHostingRepository) ValidateToken(_ context.Context) (string, error) {
	return s.Login, s.ValidateErr
}

func (s *SpyHostingRepository) ListRepositories(_ context.Context) ([]entities.Repository, error) {
	return s.Repositories, s.ListErr
}

func (s *SpyHostingRepository) ListBranches(_ context.Context, fullName string) ([]string, error) {
	s.BranchesQueried = append(s.BranchesQueried, fullName)
	return s.Branches, s.BranchesErr
}
