package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/projectwizard/internal/domain/entities"
)

const (
	dirPermission  = 0o755
	filePermission = 0o644
)

// WorkspaceRepository keeps pipeline workspaces on the local filesystem under
// root, or under the OS temporary directory when root is empty.
type WorkspaceRepository struct {
	root string
}

func NewWorkspaceRepository(root string) *WorkspaceRepository {
	return &WorkspaceRepository{root: root}
}

// Create makes a new uniquely named directory for the project.
func (it *WorkspaceRepository) Create(projectName string) (entities.WorkspaceHandle, error) {
	root := it.root
	if root == "" {
		root = os.TempDir()
	}
	if err := os.MkdirAll(root, dirPermission); err != nil {
		return entities.WorkspaceHandle{}, fmt.Errorf("failed to create workspace root %s: %w", root, err)
	}

	dir, err := os.MkdirTemp(root, entities.WorkspacePrefix(projectName, time.Now())+"*")
	if err != nil {
		return entities.WorkspaceHandle{}, fmt.Errorf("failed to create workspace: %w", err)
	}

	logger.Debugf("Created workspace %s", dir)
	return entities.WorkspaceHandle{Path: dir}, nil
}

func (it *WorkspaceRepository) Remove(handle entities.WorkspaceHandle) error {
	if handle.Path == "" {
		return nil
	}
	if err := os.RemoveAll(handle.Path); err != nil {
		return fmt.Errorf("failed to remove workspace %s: %w", handle.Path, err)
	}
	logger.Debugf("Removed workspace %s", handle.Path)
	return nil
}

func (it *WorkspaceRepository) Exists(handle entities.WorkspaceHandle, relPath string) bool {
	path, err := resolve(handle, relPath)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

func (it *WorkspaceRepository) ReadFile(handle entities.WorkspaceHandle, relPath string) ([]byte, error) {
	path, err := resolve(handle, relPath)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

func (it *WorkspaceRepository) WriteFile(handle entities.WorkspaceHandle, relPath string, data []byte) error {
	path, err := resolve(handle, relPath)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(path), dirPermission); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", relPath, err)
	}
	return os.WriteFile(path, data, filePermission)
}

// resolve joins relPath to the workspace, refusing paths that escape it.
func resolve(handle entities.WorkspaceHandle, relPath string) (string, error) {
	if !filepath.IsLocal(relPath) {
		return "", fmt.Errorf("path %q escapes the workspace", relPath)
	}
	return filepath.Join(handle.Path, relPath), nil
}
