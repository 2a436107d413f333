//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/projectwizard/internal/domain/repositories"
)

// CloneCall records a single invocation of Clone.
type CloneCall struct {
	URL    string
	Branch string
	Dir    string
}

// PushCall records a single invocation of Push or PushTag.
type PushCall struct {
	Remote string
	Ref    string
}

// SpyVersionControlRepository implements repositories.VersionControlRepository as a configurable spy.
type SpyVersionControlRepository struct {
	// --- Clone ---
	CloneErr       error
	OnClone        func(dir string) error // optional hook to materialize template files
	BlockClone     bool                   // wait for the context to end instead of cloning
	Clones         []CloneCall
	CloneDeadlines []bool // whether each Clone context carried a deadline

	// --- AddRemote ---
	AddRemoteErr error
	Remotes      map[string]string

	// --- CommitAll ---
	CommitErr       error
	NothingToCommit bool
	CommitMessages  []string

	// --- CurrentBranch ---
	Branch    string
	BranchErr error

	// --- Push ---
	PushErr error
	Pushes  []PushCall

	// --- Tags ---
	ExistingTags map[string]bool
	TagExistsErr error
	CreateTagErr error
	CreatedTags  []string
	PushTagErr   error
	OnPushTag    func() // optional hook run before the tag push returns
	TagPushes    []PushCall
}

var _ repositories.VersionControlRepository = (*SpyVersionControlRepository)(nil)

func (s *SpyVersionControlRepository) Clone(ctx context.Context, url, branch, dir string) error {
	s.Clones = append(s.Clones, CloneCall{URL: url, Branch: branch, Dir: dir})
	_, hasDeadline := ctx.Deadline()
	s.CloneDeadlines = append(s.CloneDeadlines, hasDeadline)
	if s.BlockClone {
		<-ctx.Done()
		return ctx.Err()
	}
	if s.CloneErr != nil {
		return s.CloneErr
	}
	if s.OnClone != nil {
		return s.OnClone(dir)
	}
	return nil
}

func (s *SpyVersionControlRepository) AddRemote(_ context.Context, _, name, url string) error {
	if s.AddRemoteErr != nil {
		return s.AddRemoteErr
	}
	if s.Remotes == nil {
		s.Remotes = map[string]string{}
	}
	s.Remotes[name] = url
	return nil
}

func (s *SpyVersionControlRepository) CommitAll(_ context.Context, _, message string) (bool, error) {
	if s.CommitErr != nil {
		return false, s.CommitErr
	}
	if s.NothingToCommit {
		return false, nil
	}
	s.CommitMessages = append(s.CommitMessages, message)
	return true, nil
}

func (s *SpyVersionControlRepository) CurrentBranch(_ string) (string, error) {
	if s.Branch == "" && s.BranchErr == nil {
		return "main", nil
	}
	return s.Branch, s.BranchErr
}

func (s *SpyVersionControlRepository) Push(_ context.Context, _, remote, branch string) error {
	s.Pushes = append(s.Pushes, PushCall{Remote: remote, Ref: branch})
	return s.PushErr
}

func (s *SpyVersionControlRepository) TagExists(_, name string) (bool, error) {
	return s.ExistingTags[name], s.TagExistsErr
}

func (s *SpyVersionControlRepository) CreateTag(_, name, _ string) error {
	if s.CreateTagErr != nil {
		return s.CreateTagErr
	}
	s.CreatedTags = append(s.CreatedTags, name)
	return nil
}

func (s *SpyVersionControlRepository) PushTag(_ context.Context, _, remote, name string) error {
	s.TagPushes = append(s.TagPushes, PushCall{Remote: remote, Ref: name})
	if s.OnPushTag != nil {
		s.OnPushTag()
	}
	return s.PushTagErr
}
