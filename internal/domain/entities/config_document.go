package entities

import (
	"errors"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// ErrInvalidConfigDocument is returned when the configuration document does not parse.
var ErrInvalidConfigDocument = errors.New("configuration document is not valid JSON")

//nolint:gochecknoglobals // formatting options shared by every merge
var documentFormat = &pretty.Options{Width: 80, Prefix: "", Indent: "  ", SortKeys: false}

// ConfigMergeInput carries the fresh values merged into the configuration document.
type ConfigMergeInput struct {
	ProjectName string
	Description string
	OrgDomain   string
	ProjectID   string
	BundleID    string
	Payloads    []PlatformPayload
	CreatedAt   time.Time
}

// MergeOutcome summarizes what a merge changed.
type MergeOutcome struct {
	UpdatedKeys   []string
	AddedSections []string
}

// MergeConfigDocument updates doc in place without restructuring it:
//   - scalar keys under "app" are replaced only when they already exist;
//   - an existing "firebase.<platform>" object gets only its existing keys updated;
//   - a missing "firebase.<platform>" object is added whole when "firebase" exists;
//   - the "project" summary section is always written.
//
// Key order is kept and the document is re-indented with two spaces, so merging
// the same input twice is byte-identical. Invalid JSON yields ErrInvalidConfigDocument
// and the original bytes.
func MergeConfigDocument(doc []byte, input ConfigMergeInput) ([]byte, MergeOutcome, error) {
	var outcome MergeOutcome
	if !gjson.ValidBytes(doc) || !gjson.ParseBytes(doc).IsObject() {
		return doc, outcome, ErrInvalidConfigDocument
	}

	out := doc
	var err error

	for _, scalar := range []struct{ path, value string }{
		{"app.name", input.ProjectName},
		{"app.description", input.Description},
	} {
		if scalar.value == "" || !gjson.GetBytes(out, scalar.path).Exists() {
			continue
		}
		if out, err = sjson.SetBytes(out, scalar.path, scalar.value); err != nil {
			return doc, MergeOutcome{}, fmt.Errorf("failed to update %q: %w", scalar.path, err)
		}
		outcome.UpdatedKeys = append(outcome.UpdatedKeys, scalar.path)
	}

	if gjson.GetBytes(out, "firebase").IsObject() {
		for _, platform := range Platforms() {
			payload, ok := findPayload(input.Payloads, platform)
			if !ok {
				continue
			}
			values := ExtractPlatformValues(payload, input.ProjectID, input.BundleID)
			if out, err = mergePlatform(out, platform, values, &outcome); err != nil {
				return doc, MergeOutcome{}, err
			}
		}
	}

	section, err := projectSection(input)
	if err != nil {
		return doc, MergeOutcome{}, err
	}
	if out, err = sjson.SetRawBytes(out, "project", section); err != nil {
		return doc, MergeOutcome{}, fmt.Errorf("failed to write project section: %w", err)
	}
	outcome.AddedSections = append(outcome.AddedSections, "project")

	return pretty.PrettyOptions(out, documentFormat), outcome, nil
}

func mergePlatform(
	doc []byte,
	platform Platform,
	values PlatformValues,
	outcome *MergeOutcome,
) ([]byte, error) {
	if len(values) == 0 {
		return doc, nil
	}

	base := "firebase." + string(platform)
	existing := gjson.GetBytes(doc, base)
	if !existing.Exists() {
		section := []byte("{}")
		var err error
		for _, field := range values {
			if section, err = sjson.SetBytes(section, field.Key, field.Value); err != nil {
				return nil, fmt.Errorf("failed to build %q: %w", base, err)
			}
		}
		if doc, err = sjson.SetRawBytes(doc, base, section); err != nil {
			return nil, fmt.Errorf("failed to add %q: %w", base, err)
		}
		outcome.AddedSections = append(outcome.AddedSections, base)
		return doc, nil
	}
	if !existing.IsObject() {
		return doc, nil
	}

	var err error
	for _, field := range values {
		path := base + "." + field.Key
		if !existing.Get(field.Key).Exists() {
			continue
		}
		if doc, err = sjson.SetBytes(doc, path, field.Value); err != nil {
			return nil, fmt.Errorf("failed to update %q: %w", path, err)
		}
		outcome.UpdatedKeys = append(outcome.UpdatedKeys, path)
	}
	return doc, nil
}

func projectSection(input ConfigMergeInput) ([]byte, error) {
	section := []byte("{}")
	var err error
	for _, field := range []ConfigField{
		{Key: "name", Value: input.ProjectName},
		{Key: "description", Value: input.Description},
		{Key: "org_domain", Value: input.OrgDomain},
		{Key: "created_at", Value: input.CreatedAt.UTC().Format(time.RFC3339)},
	} {
		if section, err = sjson.SetBytes(section, field.Key, field.Value); err != nil {
			return nil, fmt.Errorf("failed to build project section: %w", err)
		}
	}
	return section, nil
}

func findPayload(payloads []PlatformPayload, platform Platform) (PlatformPayload, bool) {
	for _, payload := range payloads {
		if payload.Platform == platform {
			return payload, true
		}
	}
	return PlatformPayload{}, false
}
