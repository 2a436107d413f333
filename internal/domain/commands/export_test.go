package commands

import "time"

// ApplySubstitution exports substitution.apply for testing.
func ApplySubstitution(content, placeholder, namespaced, projectName, bundleID string) string {
	return substitution{
		placeholder:          placeholder,
		namespacedIdentifier: namespaced,
		projectName:          projectName,
		bundleID:             bundleID,
	}.apply(content)
}

// NewCreateCommandForTest builds a CreateCommand with a fixed clock and suffix source.
func NewCreateCommandForTest(
	cmd *CreateCommand,
	now func() time.Time,
	suffix func() string,
) *CreateCommand {
	cmd.now = now
	cmd.suffix = suffix
	cmd.newRunID = func() string { return "test-run" }
	return cmd
}
