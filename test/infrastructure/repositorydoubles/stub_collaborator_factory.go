//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/projectwizard/internal/domain/entities"
	"github.com/rios0rios0/projectwizard/internal/domain/repositories"
)

// StubCollaboratorFactory hands out preconfigured collaborators.
type StubCollaboratorFactory struct {
	VCS             repositories.VersionControlRepository
	Provisioner     repositories.ProvisioningRepository
	ProvisioningErr error
	Host            repositories.HostingRepository
	Space           repositories.WorkspaceRepository

	Accounts []string
}

var _ repositories.CollaboratorFactory = (*StubCollaboratorFactory)(nil)

func (f *StubCollaboratorFactory) VersionControl(_ *entities.Settings) repositories.VersionControlRepository {
	return f.VCS
}

func (f *StubCollaboratorFactory) Provisioning(
	_ *entities.Settings,
	account string,
) (repositories.ProvisioningRepository, error) {
	f.Accounts = append(f.Accounts, account)
	if f.ProvisioningErr != nil {
		return nil, f.ProvisioningErr
	}
	return f.Provisioner, nil
}

func (f *StubCollaboratorFactory) Hosting(_ *entities.Settings) repositories.HostingRepository {
	return f.Host
}

func (f *StubCollaboratorFactory) Workspace(_ *entities.Settings) repositories.WorkspaceRepository {
	return f.Space
}
