package firebase

import "github.com/rios0rios0/projectwizard/internal/infrastructure/repositories/runner"

// NewWithResolvedBinary skips the PATH lookup.
func NewWithResolvedBinary(commandRunner runner.CommandRunner, binary, account string) *FirebaseProvisioningRepository {
	return newFirebaseProvisioningRepository(commandRunner, binary, account)
}
