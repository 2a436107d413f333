//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"fmt"
	"os"
	"sync"

	"github.com/rios0rios0/projectwizard/internal/domain/entities"
	"github.com/rios0rios0/projectwizard/internal/domain/repositories"
)

// InMemoryWorkspaceRepository implements repositories.WorkspaceRepository on a map.
type InMemoryWorkspaceRepository struct {
	mu sync.Mutex

	Files     map[string][]byte // relPath -> content
	ReadErrs  map[string]error
	WriteErrs map[string]error
	CreateErr error

	Created []entities.WorkspaceHandle
	Removed []entities.WorkspaceHandle
	Writes  []string // relPaths in write order
}

var _ repositories.WorkspaceRepository = (*InMemoryWorkspaceRepository)(nil)

// NewInMemoryWorkspaceRepository returns a workspace seeded with files.
func NewInMemoryWorkspaceRepository(files map[string]string) *InMemoryWorkspaceRepository {
	seeded := make(map[string][]byte, len(files))
	for path, content := range files {
		seeded[path] = []byte(content)
	}
	return &InMemoryWorkspaceRepository{Files: seeded}
}

func (s *InMemoryWorkspaceRepository) Create(projectName string) (entities.WorkspaceHandle, error) {
	if s.CreateErr != nil {
		return entities.WorkspaceHandle{}, s.CreateErr
	}
	handle := entities.WorkspaceHandle{Path: fmt.Sprintf("/workspaces/%s-%d", projectName, len(s.Created))}
	s.Created = append(s.Created, handle)
	return handle, nil
}

func (s *InMemoryWorkspaceRepository) Remove(handle entities.WorkspaceHandle) error {
	s.Removed = append(s.Removed, handle)
	return nil
}

func (s *InMemoryWorkspaceRepository) Exists(_ entities.WorkspaceHandle, relPath string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.Files[relPath]
	return ok
}

func (s *InMemoryWorkspaceRepository) ReadFile(_ entities.WorkspaceHandle, relPath string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ReadErrs[relPath]; err != nil {
		return nil, err
	}
	content, ok := s.Files[relPath]
	if !ok {
		return nil, os.ErrNotExist
	}
	return content, nil
}

func (s *InMemoryWorkspaceRepository) WriteFile(_ entities.WorkspaceHandle, relPath string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.WriteErrs[relPath]; err != nil {
		return err
	}
	if s.Files == nil {
		s.Files = map[string][]byte{}
	}
	s.Files[relPath] = data
	s.Writes = append(s.Writes, relPath)
	return nil
}

// Content returns a file as a string, or "" when it does not exist.
func (s *InMemoryWorkspaceRepository) Content(relPath string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.Files[relPath])
}
