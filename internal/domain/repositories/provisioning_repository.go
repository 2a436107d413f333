package repositories

import (
	"context"

	"github.com/rios0rios0/projectwizard/internal/domain/entities"
)

// ProvisioningRepository abstracts the backend provisioning service. All calls
// are scoped by the account the repository was built for.
type ProvisioningRepository interface {
	CreateProject(ctx context.Context, projectID, displayName string) error
	// CreateApp returns the raw service output; the caller extracts the app id.
	CreateApp(
		ctx context.Context,
		projectID string,
		platform entities.Platform,
		name, bundleID string,
	) (string, error)
	DownloadSDKConfig(
		ctx context.Context,
		projectID string,
		platform entities.Platform,
		appID string,
	) ([]byte, error)
	DatabaseExists(ctx context.Context, projectID string) (bool, error)
	CreateDatabase(ctx context.Context, projectID, location string) error
	// DeployRules deploys the rules files found in dir.
	DeployRules(ctx context.Context, projectID, dir string) error
}
