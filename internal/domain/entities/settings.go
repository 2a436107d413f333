package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPlaceholder          = "mytemplate-app"
	DefaultNamespacedIdentifier = "com.meghzone.mytemplate-app"
	DefaultFirebaseBinary       = "firebase"
	DefaultFirebaseLocation     = "us-central1"
	DefaultRetryAttempts        = 3
	DefaultRetryDelay           = 2 * time.Second
	DefaultCloneTimeout         = 5 * time.Minute
	DefaultProvisioningTimeout  = 2 * time.Minute
	DefaultDownloadTimeout      = 30 * time.Second
	DefaultPushTimeout          = 2 * time.Minute
	DefaultAuthorName           = "projectwizard"
	DefaultAuthorEmail          = "projectwizard@users.noreply.github.com"

	githubTokenEnv = "GITHUB_TOKEN"
)

// Settings is the top-level configuration for projectwizard.
type Settings struct {
	GitHub       GitHubConfig       `yaml:"github"`
	Firebase     FirebaseConfig     `yaml:"firebase"`
	Templates    map[string]string  `yaml:"templates"` // alias -> "owner/repo"
	Workspace    WorkspaceConfig    `yaml:"workspace"`
	Timeouts     TimeoutConfig      `yaml:"timeouts"`
	Retry        RetryConfig        `yaml:"retry"`
	Substitution SubstitutionConfig `yaml:"substitution"`
	Extraction   ExtractionConfig   `yaml:"extraction"`
	Execution    ExecutionConfig    `yaml:"execution"`
	Merge        MergeConfig        `yaml:"merge"`
	Git          GitConfig          `yaml:"git"`
}

// GitHubConfig describes the repository hosting account.
type GitHubConfig struct {
	Token   string `yaml:"token"`   // Inline, ${ENV_VAR}, or file path
	Owner   string `yaml:"owner"`   // Organization for new repositories; empty means the token user
	Private bool   `yaml:"private"` // Visibility of created repositories
}

// FirebaseConfig describes the provisioning service CLI.
type FirebaseConfig struct {
	Binary   string `yaml:"binary"`
	Location string `yaml:"location"`
}

type WorkspaceConfig struct {
	Root string `yaml:"root"` // Empty means the OS temp directory
}

// TimeoutConfig bounds each kind of blocking external call.
type TimeoutConfig struct {
	Clone        time.Duration `yaml:"clone"`
	Provisioning time.Duration `yaml:"provisioning"`
	Download     time.Duration `yaml:"download"`
	Push         time.Duration `yaml:"push"`
}

type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	Delay       time.Duration `yaml:"delay"`
}

// SubstitutionConfig controls the textual identifier rename.
type SubstitutionConfig struct {
	Placeholder          string   `yaml:"placeholder"`
	NamespacedIdentifier string   `yaml:"namespaced_identifier"`
	Files                []string `yaml:"files"`
}

type ExtractionConfig struct {
	Patterns []string `yaml:"patterns"`
}

type ExecutionConfig struct {
	ParallelPlatforms bool `yaml:"parallel_platforms"`
}

type MergeConfig struct {
	TypedView bool `yaml:"typed_view"`
}

type GitConfig struct {
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// DefaultSubstitutionFiles returns the template files scanned for identifiers.
func DefaultSubstitutionFiles() []string {
	return []string{
		"pubspec.yaml",
		"android/app/build.gradle",
		"ios/Runner.xcodeproj/project.pbxproj",
		"ios/Runner/Info.plist",
		"web/index.html",
		"README.md",
		"firebase.json",
		"firestore.rules",
		"storage.rules",
	}
}

// NewDefaultSettings returns settings usable without a configuration file.
func NewDefaultSettings() *Settings {
	settings := &Settings{
		GitHub:    GitHubConfig{Private: true},
		Firebase:  FirebaseConfig{Binary: DefaultFirebaseBinary, Location: DefaultFirebaseLocation},
		Templates: map[string]string{},
		Timeouts: TimeoutConfig{
			Clone:        DefaultCloneTimeout,
			Provisioning: DefaultProvisioningTimeout,
			Download:     DefaultDownloadTimeout,
			Push:         DefaultPushTimeout,
		},
		Retry: RetryConfig{MaxAttempts: DefaultRetryAttempts, Delay: DefaultRetryDelay},
		Substitution: SubstitutionConfig{
			Placeholder:          DefaultPlaceholder,
			NamespacedIdentifier: DefaultNamespacedIdentifier,
			Files:                DefaultSubstitutionFiles(),
		},
		Extraction: ExtractionConfig{Patterns: DefaultAppIDPatterns()},
		Merge:      MergeConfig{TypedView: true},
		Git:        GitConfig{AuthorName: DefaultAuthorName, AuthorEmail: DefaultAuthorEmail},
	}
	settings.GitHub.Token = resolveToken(os.Getenv(githubTokenEnv))
	return settings
}

// NewSettings reads and parses a configuration file on top of the defaults,
// expanding environment variables and resolving token file paths.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	settings := NewDefaultSettings()
	envToken := settings.GitHub.Token
	settings.GitHub.Token = ""
	if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.GitHub.Token = resolveToken(settings.GitHub.Token)
	if settings.GitHub.Token == "" {
		settings.GitHub.Token = envToken
	}
	settings.GitHub.Owner = os.ExpandEnv(settings.GitHub.Owner)
	settings.Workspace.Root = os.ExpandEnv(settings.Workspace.Root)
	if settings.Templates == nil {
		settings.Templates = map[string]string{}
	}

	if validateErr := validate(settings); validateErr != nil {
		return nil, validateErr
	}

	return settings, nil
}

// LoadSettings loads the file at path, or discovers one in the standard
// locations when path is empty, falling back to defaults when none exists.
func LoadSettings(path string) (*Settings, error) {
	if path != "" {
		return NewSettings(path)
	}

	found, err := FindConfigFile()
	if err != nil {
		logger.Debugf("No config file found, using defaults: %v", err)
		return NewDefaultSettings(), nil
	}

	logger.Infof("Using config file: %s", found)
	return NewSettings(found)
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".projectwizard.yaml",
		".projectwizard.yml",
		"projectwizard.yaml",
		"projectwizard.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// HasGitHubToken reports whether private repository creation is possible.
func (s *Settings) HasGitHubToken() bool {
	return s.GitHub.Token != ""
}

// ResolveTemplate maps a configured alias to its "owner/repo" identifier.
// Unknown values are returned unchanged.
func (s *Settings) ResolveTemplate(aliasOrRepo string) string {
	if repo, ok := s.Templates[aliasOrRepo]; ok {
		return repo
	}
	return aliasOrRepo
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if info, statErr := os.Stat(resolved); statErr == nil && !info.IsDir() {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// validate checks configuration values the pipeline cannot run without.
func validate(settings *Settings) error {
	if settings.Firebase.Binary == "" {
		return errors.New("firebase.binary is required")
	}
	if settings.Firebase.Location == "" {
		return errors.New("firebase.location is required")
	}
	if settings.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be at least 1, got %d", settings.Retry.MaxAttempts)
	}
	if settings.Retry.Delay < 0 {
		return fmt.Errorf("retry.delay must not be negative, got %s", settings.Retry.Delay)
	}
	for name, value := range map[string]time.Duration{
		"clone":        settings.Timeouts.Clone,
		"provisioning": settings.Timeouts.Provisioning,
		"download":     settings.Timeouts.Download,
		"push":         settings.Timeouts.Push,
	} {
		if value < 0 {
			return fmt.Errorf("timeouts.%s must not be negative, got %s", name, value)
		}
	}
	if settings.Substitution.Placeholder == "" {
		return errors.New("substitution.placeholder is required")
	}
	for alias, repo := range settings.Templates {
		if msg := ValidateTemplateRepo(repo); msg != "" {
			return fmt.Errorf("templates.%s %s", alias, msg)
		}
	}
	for i, pattern := range settings.Extraction.Patterns {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("extraction.patterns[%d] is not a valid expression: %w", i, err)
		}
	}
	return nil
}
