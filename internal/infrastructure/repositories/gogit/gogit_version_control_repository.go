package gogit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/projectwizard/internal/domain/repositories"
)

// tokenUser is the username GitHub accepts alongside a token for HTTPS basic auth.
const tokenUser = "x-access-token"

// GoGitVersionControlRepository implements repositories.VersionControlRepository
// in-process, without requiring a git binary.
type GoGitVersionControlRepository struct {
	token       string
	authorName  string
	authorEmail string
	now         func() time.Time
}

// NewGoGitVersionControlRepository creates a version control client. The token
// authenticates HTTPS remotes only; local paths and file URLs are used as-is.
func NewGoGitVersionControlRepository(token, authorName, authorEmail string) repositories.VersionControlRepository {
	return &GoGitVersionControlRepository{
		token:       token,
		authorName:  authorName,
		authorEmail: authorEmail,
		now:         time.Now,
	}
}

func (it *GoGitVersionControlRepository) Clone(ctx context.Context, url, branch, dir string) error {
	opts := &git.CloneOptions{
		URL:          url,
		Auth:         it.authFor(url),
		SingleBranch: true,
	}
	if branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(branch)
	}

	logger.Debugf("Cloning %s (%s) into %s", url, branch, dir)
	if _, err := git.PlainCloneContext(ctx, dir, false, opts); err != nil {
		return fmt.Errorf("failed to clone %s at branch %q: %w", url, branch, err)
	}
	return nil
}

func (it *GoGitVersionControlRepository) AddRemote(_ context.Context, dir, name, url string) error {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}

	if _, err = repo.Remote(name); err == nil {
		if err = repo.DeleteRemote(name); err != nil {
			return fmt.Errorf("failed to replace remote %q: %w", name, err)
		}
	}

	if _, err = repo.CreateRemote(&config.RemoteConfig{Name: name, URLs: []string{url}}); err != nil {
		return fmt.Errorf("failed to add remote %q: %w", name, err)
	}
	return nil
}

func (it *GoGitVersionControlRepository) CommitAll(_ context.Context, dir, message string) (bool, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return false, fmt.Errorf("failed to open repository: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("failed to get worktree: %w", err)
	}

	if err = wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return false, fmt.Errorf("failed to stage changes: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("failed to read status: %w", err)
	}
	if status.IsClean() {
		return false, nil
	}

	hash, err := wt.Commit(message, &git.CommitOptions{Author: it.signature()})
	if err != nil {
		return false, fmt.Errorf("failed to commit: %w", err)
	}
	logger.Debugf("Created commit %s", hash.String()[:7])
	return true, nil
}

func (it *GoGitVersionControlRepository) CurrentBranch(dir string) (string, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return "", fmt.Errorf("failed to open repository: %w", err)
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", errors.New("HEAD is detached")
	}
	return head.Name().Short(), nil
}

func (it *GoGitVersionControlRepository) Push(ctx context.Context, dir, remote, branch string) error {
	ref := plumbing.NewBranchReferenceName(branch)
	return it.push(ctx, dir, remote, config.RefSpec(fmt.Sprintf("%s:%s", ref, ref)))
}

func (it *GoGitVersionControlRepository) TagExists(dir, name string) (bool, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return false, fmt.Errorf("failed to open repository: %w", err)
	}

	_, err = repo.Reference(plumbing.NewTagReferenceName(name), false)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up tag %q: %w", name, err)
	}
	return true, nil
}

func (it *GoGitVersionControlRepository) CreateTag(dir, name, message string) error {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}
	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	if _, err = repo.CreateTag(name, head.Hash(), &git.CreateTagOptions{
		Tagger:  it.signature(),
		Message: message,
	}); err != nil {
		return fmt.Errorf("failed to create tag %q: %w", name, err)
	}
	return nil
}

func (it *GoGitVersionControlRepository) PushTag(ctx context.Context, dir, remote, name string) error {
	ref := plumbing.NewTagReferenceName(name)
	return it.push(ctx, dir, remote, config.RefSpec(fmt.Sprintf("%s:%s", ref, ref)))
}

func (it *GoGitVersionControlRepository) push(ctx context.Context, dir, remote string, spec config.RefSpec) error {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}
	rem, err := repo.Remote(remote)
	if err != nil {
		return fmt.Errorf("failed to find remote %q: %w", remote, err)
	}

	var url string
	if urls := rem.Config().URLs; len(urls) > 0 {
		url = urls[0]
	}

	err = repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remote,
		RefSpecs:   []config.RefSpec{spec},
		Auth:       it.authFor(url),
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to push %s to %q: %w", spec.Src(), remote, err)
	}
	return nil
}

func (it *GoGitVersionControlRepository) authFor(url string) transport.AuthMethod {
	if it.token == "" || !strings.HasPrefix(url, "https://") {
		return nil
	}
	return &githttp.BasicAuth{Username: tokenUser, Password: it.token}
}

func (it *GoGitVersionControlRepository) signature() *object.Signature {
	return &object.Signature{
		Name:  it.authorName,
		Email: it.authorEmail,
		When:  it.now(),
	}
}
