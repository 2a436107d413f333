package entities

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	// AppConfigPath is the configuration document merged after provisioning.
	AppConfigPath = "assets/config/app_config.json"
	// TypedViewPath is the generated TypeScript mirror of the configuration document.
	TypedViewPath = "lib/app_config.ts"

	iosConfigPath     = "ios/Runner/GoogleService-Info.plist"
	androidConfigPath = "android/app/google-services.json"
	webConfigPath     = "web/firebase-config.js"
)

// PlatformConfigPath returns where a platform's downloaded payload is written,
// relative to the workspace.
func PlatformConfigPath(platform Platform) string {
	switch platform {
	case PlatformIOS:
		return iosConfigPath
	case PlatformAndroid:
		return androidConfigPath
	case PlatformWeb:
		return webConfigPath
	default:
		return ""
	}
}

// ConfigField is one key/value pair extracted from a platform payload.
type ConfigField struct {
	Key   string
	Value string
}

// PlatformValues keeps extracted fields in a stable, platform-specific order.
type PlatformValues []ConfigField

// Get returns the value for key, if it was extracted.
func (v PlatformValues) Get(key string) (string, bool) {
	for _, field := range v {
		if field.Key == key {
			return field.Value, true
		}
	}
	return "", false
}

func (v PlatformValues) add(key, value string) PlatformValues {
	if value == "" {
		return v
	}
	for i := range v {
		if v[i].Key == key {
			return v
		}
	}
	return append(v, ConfigField{Key: key, Value: value})
}

// PlatformPayload is one downloaded configuration payload.
type PlatformPayload struct {
	Platform Platform
	Content  []byte
}

var (
	plistKeys = []struct{ plist, config string }{
		{"API_KEY", "apiKey"},
		{"GOOGLE_APP_ID", "appId"},
		{"GCM_SENDER_ID", "messagingSenderId"},
		{"PROJECT_ID", "projectId"},
		{"STORAGE_BUCKET", "storageBucket"},
		{"BUNDLE_ID", "iosBundleId"},
	}
	webKeys = []string{
		"apiKey",
		"authDomain",
		"projectId",
		"storageBucket",
		"messagingSenderId",
		"appId",
		"measurementId",
	}
)

// DefaultStorageBucket is the bucket name the provisioning service assigns to new projects.
func DefaultStorageBucket(projectID string) string {
	return projectID + ".firebasestorage.app"
}

// ExtractPlatformValues reads the configuration fields out of a downloaded
// payload. Fields the payload lacks are omitted, except the derived project id,
// storage bucket and (for iOS) bundle id.
func ExtractPlatformValues(payload PlatformPayload, projectID, bundleID string) PlatformValues {
	var values PlatformValues
	switch payload.Platform {
	case PlatformIOS:
		values = extractPlist(string(payload.Content))
		values = values.add("projectId", projectID)
		values = values.add("storageBucket", DefaultStorageBucket(projectID))
		values = values.add("iosBundleId", bundleID)
	case PlatformAndroid:
		values = extractGoogleServices(payload.Content, bundleID)
		values = values.add("projectId", projectID)
		values = values.add("storageBucket", DefaultStorageBucket(projectID))
	case PlatformWeb:
		values = extractWebLiteral(string(payload.Content))
	}
	return values
}

func extractPlist(content string) PlatformValues {
	var values PlatformValues
	for _, key := range plistKeys {
		re := regexp.MustCompile(fmt.Sprintf(`<key>%s</key>\s*<string>([^<]+)</string>`, key.plist))
		if match := re.FindStringSubmatch(content); len(match) > 1 {
			values = values.add(key.config, strings.TrimSpace(match[1]))
		}
	}
	return values
}

func extractGoogleServices(content []byte, packageName string) PlatformValues {
	if !gjson.ValidBytes(content) {
		return nil
	}

	client := gjson.GetBytes(content,
		fmt.Sprintf(`client.#(client_info.android_client_info.package_name==%q)`, packageName))
	if !client.Exists() {
		client = gjson.GetBytes(content, "client.0")
	}

	apiKey := client.Get("api_key.0.current_key").String()
	if apiKey == "" {
		apiKey = gjson.GetBytes(content, "project_info.api_key").String()
	}

	var values PlatformValues
	values = values.add("apiKey", apiKey)
	values = values.add("appId", client.Get("client_info.mobilesdk_app_id").String())
	values = values.add("messagingSenderId", gjson.GetBytes(content, "project_info.project_number").String())
	values = values.add("projectId", gjson.GetBytes(content, "project_info.project_id").String())
	values = values.add("storageBucket", gjson.GetBytes(content, "project_info.storage_bucket").String())
	return values
}

func extractWebLiteral(content string) PlatformValues {
	var values PlatformValues
	for _, key := range webKeys {
		re := regexp.MustCompile(fmt.Sprintf(`"?%s"?\s*:\s*"([^"]+)"`, key))
		if match := re.FindStringSubmatch(content); len(match) > 1 {
			values = values.add(key, match[1])
		}
	}
	return values
}
