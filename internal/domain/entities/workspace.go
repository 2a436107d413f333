package entities

import "time"

const workspaceTimeLayout = "20060102150405"

// WorkspaceHandle is the exclusively owned directory of one pipeline run.
type WorkspaceHandle struct {
	Path string
}

// WorkspacePrefix returns the non-random part of a workspace directory name;
// the workspace collaborator appends a random component to it.
func WorkspacePrefix(projectName string, now time.Time) string {
	return projectName + "-" + now.UTC().Format(workspaceTimeLayout) + "-"
}
