//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"
	"sync"

	"github.com/rios0rios0/projectwizard/internal/domain/entities"
	"github.com/rios0rios0/projectwizard/internal/domain/repositories"
)

// CreateAppCall records a single invocation of CreateApp.
type CreateAppCall struct {
	ProjectID string
	Platform  entities.Platform
	Name      string
	BundleID  string
}

// SpyProvisioningRepository implements repositories.ProvisioningRepository as a configurable spy.
// It is safe for concurrent use so the parallel platform policy can be exercised.
type SpyProvisioningRepository struct {
	mu sync.Mutex

	// --- CreateProject ---
	CreateProjectErrs  []error // consumed one per attempt; nil entries succeed
	CreateProjectErr   error   // returned once CreateProjectErrs is exhausted
	BlockedAttempts    int     // leading attempts that wait for the context to end
	ProjectIDs         []string
	ProjectDisplayName string

	// --- CreateApp ---
	AppOutputs map[entities.Platform]string
	AppErrs    map[entities.Platform]error
	BlockApps  map[entities.Platform]bool // platforms that wait for the context to end
	AppCalls   []CreateAppCall

	// --- DownloadSDKConfig ---
	Configs    map[entities.Platform]string
	ConfigErrs map[entities.Platform]error
	Downloaded []entities.Platform

	// --- Database ---
	DatabaseFound     bool
	DatabaseListErr   error
	CreateDatabaseErr error
	DatabaseLocations []string
	DeployErr         error
	DeployDirs        []string
}

var _ repositories.ProvisioningRepository = (*SpyProvisioningRepository)(nil)

func (s *SpyProvisioningRepository) CreateProject(ctx context.Context, projectID, displayName string) error {
	s.mu.Lock()
	s.ProjectIDs = append(s.ProjectIDs, projectID)
	s.ProjectDisplayName = displayName
	blocked := s.BlockedAttempts > 0
	if blocked {
		s.BlockedAttempts--
	}
	s.mu.Unlock()

	if blocked {
		<-ctx.Done()
		return ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.CreateProjectErrs) > 0 {
		err := s.CreateProjectErrs[0]
		s.CreateProjectErrs = s.CreateProjectErrs[1:]
		return err
	}
	return s.CreateProjectErr
}

func (s *SpyProvisioningRepository) CreateApp(
	ctx context.Context,
	projectID string,
	platform entities.Platform,
	name, bundleID string,
) (string, error) {
	s.mu.Lock()
	s.AppCalls = append(s.AppCalls, CreateAppCall{
		ProjectID: projectID,
		Platform:  platform,
		Name:      name,
		BundleID:  bundleID,
	})
	blocked := s.BlockApps[platform]
	s.mu.Unlock()

	if blocked {
		<-ctx.Done()
		return "", ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.AppErrs[platform]; err != nil {
		return "", err
	}
	if output, ok := s.AppOutputs[platform]; ok {
		return output, nil
	}
	return fmt.Sprintf(`{"status":"success","result":{"appId":"1:1234567890:%s:abcdef"}}`, platform), nil
}

func (s *SpyProvisioningRepository) DownloadSDKConfig(
	_ context.Context,
	_ string,
	platform entities.Platform,
	_ string,
) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Downloaded = append(s.Downloaded, platform)
	if err := s.ConfigErrs[platform]; err != nil {
		return nil, err
	}
	return []byte(s.Configs[platform]), nil
}

func (s *SpyProvisioningRepository) DatabaseExists(_ context.Context, _ string) (bool, error) {
	return s.DatabaseFound, s.DatabaseListErr
}

func (s *SpyProvisioningRepository) CreateDatabase(_ context.Context, _, location string) error {
	s.DatabaseLocations = append(s.DatabaseLocations, location)
	return s.CreateDatabaseErr
}

func (s *SpyProvisioningRepository) DeployRules(_ context.Context, _, dir string) error {
	s.DeployDirs = append(s.DeployDirs, dir)
	return s.DeployErr
}
