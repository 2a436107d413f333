package entities

// PipelineResult is the terminal record of one provisioning run. It is returned
// on success and also next to a fatal error, so identifiers of resources that
// were already created are never lost.
type PipelineResult struct {
	Success               bool
	RunID                 string
	ProvisioningProjectID string
	AppIDs                AppIdentifierSet
	TemplateURL           string
	NewRepoURL            string
	NewRepoFullName       string
	BuildTag              string
	Messages              []string
}

// NewPipelineResult returns an empty result with every platform marked unknown.
func NewPipelineResult(runID, templateURL string) *PipelineResult {
	return &PipelineResult{
		RunID:       runID,
		AppIDs:      NewAppIdentifierSet(),
		TemplateURL: templateURL,
	}
}

// AddMessage appends one progress line.
func (r *PipelineResult) AddMessage(message string) {
	r.Messages = append(r.Messages, message)
}
