package repositories

import (
	"github.com/rios0rios0/projectwizard/internal/domain/entities"
)

// WorkspaceRepository owns the lifecycle and file access of pipeline workspaces.
// Relative paths are resolved against the workspace root.
type WorkspaceRepository interface {
	Create(projectName string) (entities.WorkspaceHandle, error)
	Remove(handle entities.WorkspaceHandle) error
	Exists(handle entities.WorkspaceHandle, relPath string) bool
	ReadFile(handle entities.WorkspaceHandle, relPath string) ([]byte, error)
	// WriteFile creates parent directories as needed.
	WriteFile(handle entities.WorkspaceHandle, relPath string, data []byte) error
}
