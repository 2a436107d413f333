package repositories

import (
	"github.com/rios0rios0/projectwizard/internal/domain/entities"
)

// CollaboratorFactory builds the external collaborators of one pipeline run
// from the loaded settings, resolving executables and credentials once.
type CollaboratorFactory interface {
	VersionControl(settings *entities.Settings) VersionControlRepository
	Provisioning(settings *entities.Settings, account string) (ProvisioningRepository, error)
	Hosting(settings *entities.Settings) HostingRepository
	Workspace(settings *entities.Settings) WorkspaceRepository
}
