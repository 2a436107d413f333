//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/projectwizard/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// ProjectRequestBuilder helps create test project requests with a fluent interface.
type ProjectRequestBuilder struct {
	*testkit.BaseBuilder
	projectName    string
	orgDomain      string
	templateRepo   string
	templateBranch string
	account        string
	description    string
}

// NewProjectRequestBuilder creates a new project request builder with sensible defaults.
func NewProjectRequestBuilder() *ProjectRequestBuilder {
	b := &ProjectRequestBuilder{BaseBuilder: testkit.NewBaseBuilder()}
	b.defaults()
	return b
}

func (b *ProjectRequestBuilder) defaults() {
	b.projectName = "acme-app"
	b.orgDomain = "acme"
	b.templateRepo = "org/template"
	b.templateBranch = "main"
	b.account = "dev@acme.com"
	b.description = ""
}

// WithProjectName sets the project name.
func (b *ProjectRequestBuilder) WithProjectName(name string) *ProjectRequestBuilder {
	b.projectName = name
	return b
}

// WithOrgDomain sets the organization domain.
func (b *ProjectRequestBuilder) WithOrgDomain(domain string) *ProjectRequestBuilder {
	b.orgDomain = domain
	return b
}

// WithTemplateRepo sets the template repository.
func (b *ProjectRequestBuilder) WithTemplateRepo(repo string) *ProjectRequestBuilder {
	b.templateRepo = repo
	return b
}

// WithTemplateBranch sets the template branch.
func (b *ProjectRequestBuilder) WithTemplateBranch(branch string) *ProjectRequestBuilder {
	b.templateBranch = branch
	return b
}

// WithAccount sets the provisioning account.
func (b *ProjectRequestBuilder) WithAccount(account string) *ProjectRequestBuilder {
	b.account = account
	return b
}

// WithDescription sets the description.
func (b *ProjectRequestBuilder) WithDescription(description string) *ProjectRequestBuilder {
	b.description = description
	return b
}

// Build creates the request (satisfies testkit.Builder interface).
func (b *ProjectRequestBuilder) Build() interface{} {
	return b.BuildProjectRequest()
}

// BuildProjectRequest creates the request with a concrete return type.
func (b *ProjectRequestBuilder) BuildProjectRequest() entities.ProjectRequest {
	return entities.ProjectRequest{
		ProjectName:    b.projectName,
		OrgDomain:      b.orgDomain,
		TemplateRepo:   b.templateRepo,
		TemplateBranch: b.templateBranch,
		Account:        b.account,
		Description:    b.description,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *ProjectRequestBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.defaults()
	return b
}

// Clone creates a deep copy of the ProjectRequestBuilder.
func (b *ProjectRequestBuilder) Clone() testkit.Builder {
	return &ProjectRequestBuilder{
		BaseBuilder:    b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		projectName:    b.projectName,
		orgDomain:      b.orgDomain,
		templateRepo:   b.templateRepo,
		templateBranch: b.templateBranch,
		account:        b.account,
		description:    b.description,
	}
}
