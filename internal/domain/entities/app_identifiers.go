package entities

import (
	"crypto/rand"
	"math/big"
)

// Platform tags a per-platform application on the provisioning service.
type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
	PlatformWeb     Platform = "web"

	// UnknownAppID marks a platform whose app could not be created.
	UnknownAppID = "unknown"

	projectIDSuffixLength   = 6
	projectIDSuffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// Platforms returns every platform in pipeline order.
func Platforms() []Platform {
	return []Platform{PlatformIOS, PlatformAndroid, PlatformWeb}
}

// AppIdentifierSet maps each platform to its externally assigned app id.
type AppIdentifierSet map[Platform]string

// NewAppIdentifierSet returns a set with every platform marked unknown.
func NewAppIdentifierSet() AppIdentifierSet {
	set := make(AppIdentifierSet, len(Platforms()))
	for _, platform := range Platforms() {
		set[platform] = UnknownAppID
	}
	return set
}

// Known reports whether the platform has a real app id.
func (s AppIdentifierSet) Known(platform Platform) bool {
	id, ok := s[platform]
	return ok && id != "" && id != UnknownAppID
}

// SuccessCount returns how many platforms have a real app id.
func (s AppIdentifierSet) SuccessCount() int {
	count := 0
	for _, platform := range Platforms() {
		if s.Known(platform) {
			count++
		}
	}
	return count
}

// Clone returns an independent copy.
func (s AppIdentifierSet) Clone() AppIdentifierSet {
	out := make(AppIdentifierSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// ProjectID joins the project name and a random suffix into a provisioning project id.
func ProjectID(projectName, suffix string) string {
	return projectName + "-" + suffix
}

// RandomSuffix returns a random lowercase alphanumeric suffix for project ids.
func RandomSuffix() string {
	out := make([]byte, projectIDSuffixLength)
	limit := big.NewInt(int64(len(projectIDSuffixAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			panic(err)
		}
		out[i] = projectIDSuffixAlphabet[n.Int64()]
	}
	return string(out)
}
