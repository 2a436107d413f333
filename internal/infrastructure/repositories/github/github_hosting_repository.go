package github

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	gh "github.com/google/go-github/v66/github"

	"github.com/rios0rios0/projectwizard/internal/domain/entities"
	"github.com/rios0rios0/projectwizard/internal/domain/repositories"
)

const (
	providerName = "github"
	perPage      = 100
	webBaseURL   = "https://github.com/"
)

// GitHubHostingRepository implements repositories.HostingRepository for GitHub.
type GitHubHostingRepository struct {
	token  string
	client *gh.Client
}

// NewGitHubHostingRepository creates a new GitHub hosting client with the given token.
// An empty token yields an anonymous client.
func NewGitHubHostingRepository(token string) repositories.HostingRepository {
	client := gh.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return &GitHubHostingRepository{
		token:  token,
		client: client,
	}
}

func (p *GitHubHostingRepository) Name() string   { return providerName }
func (p *GitHubHostingRepository) HasToken() bool { return p.token != "" }

// CloneURL returns the HTTPS clone URL of an "owner/name" repository.
func (p *GitHubHostingRepository) CloneURL(fullName string) string {
	return webBaseURL + strings.TrimSuffix(fullName, ".git") + ".git"
}

// CreateRepository creates a repository in the owner organization, or in the
// token user's account when owner is empty or is the token user.
func (p *GitHubHostingRepository) CreateRepository(
	ctx context.Context,
	owner string,
	input entities.RepositoryInput,
) (*entities.Repository, error) {
	org := owner
	if org != "" {
		login, err := p.ValidateToken(ctx)
		if err == nil && strings.EqualFold(login, org) {
			org = ""
		}
	}

	repo, resp, err := p.client.Repositories.Create(ctx, org, &gh.Repository{
		Name:        gh.String(input.Name),
		Description: gh.String(input.Description),
		Private:     gh.Bool(input.Private),
		AutoInit:    gh.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create repository %q%s: %w", input.Name, statusSuffix(resp), err)
	}

	return toRepository(repo, repo.GetOwner().GetLogin()), nil
}

// ValidateToken returns the login of the authenticated user.
func (p *GitHubHostingRepository) ValidateToken(ctx context.Context) (string, error) {
	user, resp, err := p.client.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to get authenticated user%s: %w", statusSuffix(resp), err)
	}
	return user.GetLogin(), nil
}

// ListRepositories lists every repository the token can access.
func (p *GitHubHostingRepository) ListRepositories(ctx context.Context) ([]entities.Repository, error) {
	var allRepos []entities.Repository
	opts := &gh.RepositoryListByAuthenticatedUserOptions{
		Sort:        "updated",
		ListOptions: gh.ListOptions{PerPage: perPage},
	}

	for {
		repos, resp, err := p.client.Repositories.ListByAuthenticatedUser(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list repositories%s: %w", statusSuffix(resp), err)
		}

		for _, r := range repos {
			if r.GetArchived() {
				continue
			}
			allRepos = append(allRepos, *toRepository(r, r.GetOwner().GetLogin()))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allRepos, nil
}

// ListBranches lists the branch names of an "owner/name" repository.
func (p *GitHubHostingRepository) ListBranches(ctx context.Context, fullName string) ([]string, error) {
	owner, name, ok := strings.Cut(fullName, "/")
	if !ok {
		return nil, fmt.Errorf("invalid repository name %q, expected owner/name", fullName)
	}

	var branches []string
	opts := &gh.BranchListOptions{ListOptions: gh.ListOptions{PerPage: perPage}}
	for {
		page, resp, err := p.client.Repositories.ListBranches(ctx, owner, name, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list branches%s: %w", statusSuffix(resp), err)
		}
		for _, branch := range page {
			branches = append(branches, branch.GetName())
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return branches, nil
}

func toRepository(r *gh.Repository, owner string) *entities.Repository {
	defaultBranch := r.GetDefaultBranch()
	if defaultBranch == "" {
		defaultBranch = "main"
	}
	return &entities.Repository{
		ID:            strconv.FormatInt(r.GetID(), 10),
		Name:          r.GetName(),
		Organization:  owner,
		DefaultBranch: "refs/heads/" + defaultBranch,
		RemoteURL:     r.GetCloneURL(),
		SSHURL:        r.GetSSHURL(),
		ProviderName:  providerName,
	}
}

// statusSuffix keeps the HTTP status in the error text for diagnostics.
func statusSuffix(resp *gh.Response) string {
	if resp == nil || resp.Response == nil {
		return ""
	}
	return fmt.Sprintf(" (HTTP %d %s)", resp.StatusCode, http.StatusText(resp.StatusCode))
}
