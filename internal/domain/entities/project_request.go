package entities

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

const (
	minDisplayNameLength = 4
	displayNameSuffix    = "-project"
)

var (
	slugPattern         = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	templateRepoPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)
	branchPattern       = regexp.MustCompile(`^[A-Za-z0-9._/-]+$`)
)

// ProjectRequest is the validated input of one provisioning pipeline run.
type ProjectRequest struct {
	ProjectName    string // lowercase alphanumerics and hyphens
	OrgDomain      string // lowercase alphanumerics and hyphens
	TemplateRepo   string // "owner/name" on the hosting service
	TemplateBranch string
	Account        string // provisioning-service account (e.g. "dev@acme.com")
	Description    string // optional
}

// ValidationError lists every rejected field of a ProjectRequest.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s %s", name, e.Fields[name]))
	}
	return "invalid project request: " + strings.Join(parts, "; ")
}

// Validate checks every field and returns a *ValidationError describing all of
// the failures, or nil when the request may enter the pipeline.
func (r ProjectRequest) Validate() error {
	fields := make(map[string]string)

	if msg := ValidateSlug(r.ProjectName); msg != "" {
		fields["project name"] = msg
	}
	if msg := ValidateSlug(r.OrgDomain); msg != "" {
		fields["organization domain"] = msg
	}
	if msg := ValidateTemplateRepo(r.TemplateRepo); msg != "" {
		fields["template repository"] = msg
	}
	if msg := ValidateBranch(r.TemplateBranch); msg != "" {
		fields["template branch"] = msg
	}
	if strings.TrimSpace(r.Account) == "" {
		fields["account"] = "is required"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// BundleID returns the package/bundle identifier shared by all platform apps.
func (r ProjectRequest) BundleID() string {
	return fmt.Sprintf("com.%s.%s", r.OrgDomain, r.ProjectName)
}

// DisplayName returns the provisioning project display name, padded when the
// project name is shorter than the service minimum.
func (r ProjectRequest) DisplayName() string {
	if len(r.ProjectName) >= minDisplayNameLength {
		return r.ProjectName
	}
	return r.ProjectName + displayNameSuffix
}

// ProjectDescription returns the description, or a generated one when none was given.
func (r ProjectRequest) ProjectDescription() string {
	if strings.TrimSpace(r.Description) != "" {
		return r.Description
	}
	return "Firebase-enabled project: " + r.ProjectName
}

// AppName returns the per-platform app display name ("<project>-<platform>").
func (r ProjectRequest) AppName(platform Platform) string {
	return fmt.Sprintf("%s-%s", r.ProjectName, platform)
}

// ValidateSlug returns an empty string for a valid lowercase slug, or the reason it is not.
func ValidateSlug(value string) string {
	if value == "" {
		return "is required"
	}
	if !slugPattern.MatchString(value) {
		return "must contain only lowercase letters, digits and single hyphens"
	}
	return ""
}

// ValidateTemplateRepo returns an empty string for an "owner/name" identifier.
func ValidateTemplateRepo(value string) string {
	if value == "" {
		return "is required"
	}
	if !templateRepoPattern.MatchString(value) {
		return "must have the form owner/name"
	}
	return ""
}

// ValidateBranch returns an empty string for a usable branch name.
func ValidateBranch(value string) string {
	if value == "" {
		return "is required"
	}
	if !branchPattern.MatchString(value) || strings.Contains(value, "..") ||
		strings.HasPrefix(value, "/") || strings.HasSuffix(value, "/") {
		return "is not a valid branch name"
	}
	return ""
}
