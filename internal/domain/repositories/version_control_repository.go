package repositories

import "context"

// VersionControlRepository drives the working tree of a workspace.
// Every method operates on the repository rooted at dir.
type VersionControlRepository interface {
	// Clone materializes url at branch into dir.
	Clone(ctx context.Context, url, branch, dir string) error
	AddRemote(ctx context.Context, dir, name, url string) error
	// CommitAll stages every change and commits it. It reports false, without
	// error, when the tree is clean after staging.
	CommitAll(ctx context.Context, dir, message string) (bool, error)
	CurrentBranch(dir string) (string, error)
	Push(ctx context.Context, dir, remote, branch string) error
	TagExists(dir, name string) (bool, error)
	// CreateTag creates an annotated tag at HEAD.
	CreateTag(dir, name, message string) error
	PushTag(ctx context.Context, dir, remote, name string) error
}
