//go:build unit

package commands_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/rios0rios0/projectwizard/internal/domain/commands"
	"github.com/rios0rios0/projectwizard/internal/domain/entities"
	"github.com/rios0rios0/projectwizard/internal/infrastructure/repositories/workspace"
	"github.com/rios0rios0/projectwizard/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/projectwizard/test/infrastructure/repositorydoubles"
)

const templateConfig = `{
  "app": {"name": "mytemplate-app", "version": "1.0.0"},
  "firebase": {
    "android": {"apiKey": "old", "appId": "old"},
    "ios": {"apiKey": "old"}
  }
}`

const androidServices = `{
  "project_info": {"project_number": "42", "project_id": "acme-app-abc123"},
  "client": [{
    "client_info": {"mobilesdk_app_id": "1:42:android:aa", "android_client_info": {"package_name": "com.acme.acme-app"}},
    "api_key": [{"current_key": "android-key"}]
  }]
}`

func fixedClock() time.Time {
	return time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)
}

type pipelineFixture struct {
	vcs      *doubles.SpyVersionControlRepository
	prov     *doubles.SpyProvisioningRepository
	host     *doubles.SpyHostingRepository
	space    *doubles.InMemoryWorkspaceRepository
	factory  *doubles.StubCollaboratorFactory
	settings *entities.Settings
}

func newPipelineFixture() *pipelineFixture {
	settings := entities.NewDefaultSettings()
	settings.GitHub.Token = ""
	settings.Retry.Delay = 0

	fixture := &pipelineFixture{
		vcs: &doubles.SpyVersionControlRepository{},
		prov: &doubles.SpyProvisioningRepository{
			Configs: map[entities.Platform]string{
				entities.PlatformIOS:     "<key>API_KEY</key><string>ios-key</string>",
				entities.PlatformAndroid: androidServices,
				entities.PlatformWeb:     `{"apiKey": "web-key", "appId": "1:42:web:cc"}`,
			},
		},
		host: &doubles.SpyHostingRepository{},
		space: doubles.NewInMemoryWorkspaceRepository(map[string]string{
			"pubspec.yaml":             "name: mytemplate-app\n",
			"android/app/build.gradle": `applicationId "com.meghzone.mytemplate-app"`,
			entities.AppConfigPath:     templateConfig,
		}),
		settings: settings,
	}
	fixture.factory = &doubles.StubCollaboratorFactory{
		VCS:         fixture.vcs,
		Provisioner: fixture.prov,
		Host:        fixture.host,
		Space:       fixture.space,
	}
	return fixture
}

func (f *pipelineFixture) command() *commands.CreateCommand {
	return commands.NewCreateCommandForTest(
		commands.NewCreateCommand(f.factory), fixedClock, func() string { return "abc123" })
}

func hasMessage(messages []string, parts ...string) bool {
	for _, message := range messages {
		matched := true
		for _, part := range parts {
			if !strings.Contains(message, part) {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

func TestCreateCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should provision a project end to end", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPipelineFixture()
		cmd := commands.NewCreateCommandForTest(
			commands.NewCreateCommand(fixture.factory), fixedClock, entities.RandomSuffix)
		request := entitybuilders.NewProjectRequestBuilder().BuildProjectRequest()

		// when
		result, err := cmd.Execute(context.Background(), fixture.settings, request)

		// then
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Regexp(t, `^acme-app-[a-z0-9]{6}$`, result.ProvisioningProjectID)
		assert.Positive(t, result.AppIDs.SuccessCount())
		assert.Equal(t, "https://example.com/org/template.git", result.TemplateURL)
		assert.Equal(t, "name: acme-app\n", fixture.space.Content("pubspec.yaml"))
		assert.Equal(t, `applicationId "com.acme.acme-app"`, fixture.space.Content("android/app/build.gradle"))
		assert.Equal(t, []string{"dev@acme.com"}, fixture.factory.Accounts)
		assert.Len(t, fixture.space.Removed, 1)
	})

	t.Run("should pass derived names to the provisioning service", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPipelineFixture()
		request := entitybuilders.NewProjectRequestBuilder().BuildProjectRequest()

		// when
		result, err := fixture.command().Execute(context.Background(), fixture.settings, request)

		// then
		require.NoError(t, err)
		assert.Equal(t, "acme-app-abc123", result.ProvisioningProjectID)
		assert.Equal(t, "acme-app", fixture.prov.ProjectDisplayName)
		require.Len(t, fixture.prov.AppCalls, 3)
		for i, platform := range entities.Platforms() {
			call := fixture.prov.AppCalls[i]
			assert.Equal(t, platform, call.Platform)
			assert.Equal(t, "acme-app-"+string(platform), call.Name)
			assert.Equal(t, "com.acme.acme-app", call.BundleID)
			assert.Equal(t, "1:1234567890:"+string(platform)+":abcdef", result.AppIDs[platform])
		}
	})

	t.Run("should fail at project creation after three attempts and remove the workspace", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		fixture := newPipelineFixture()
		fixture.factory.Space = workspace.NewWorkspaceRepository(root)
		fixture.prov.CreateProjectErr = errors.New("exit status 1: project id taken")
		request := entitybuilders.NewProjectRequestBuilder().BuildProjectRequest()

		// when
		result, err := fixture.command().Execute(context.Background(), fixture.settings, request)

		// then
		require.Error(t, err)
		assert.True(t, entities.IsFatal(err))
		assert.Equal(t, entities.StageProjectCreation, entities.StageOf(err))
		assert.Contains(t, err.Error(), "exit status 1")
		assert.Len(t, fixture.prov.ProjectIDs, 3)
		assert.False(t, result.Success)
		entries, readErr := os.ReadDir(root)
		require.NoError(t, readErr)
		assert.Empty(t, entries)
	})

	t.Run("should tolerate a failed iOS app when the others succeed", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPipelineFixture()
		fixture.prov.AppErrs = map[entities.Platform]error{
			entities.PlatformIOS: errors.New("exit status 2"),
		}
		request := entitybuilders.NewProjectRequestBuilder().BuildProjectRequest()

		// when
		result, err := fixture.command().Execute(context.Background(), fixture.settings, request)

		// then
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, entities.UnknownAppID, result.AppIDs[entities.PlatformIOS])
		assert.True(t, result.AppIDs.Known(entities.PlatformAndroid))
		assert.True(t, result.AppIDs.Known(entities.PlatformWeb))
		assert.True(t, hasMessage(result.Messages, "tolerated", "app-creation", "ios"))
		assert.NotContains(t, fixture.prov.Downloaded, entities.PlatformIOS)
	})

	t.Run("should fail when no app can be created", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPipelineFixture()
		fixture.prov.AppOutputs = map[entities.Platform]string{
			entities.PlatformIOS:     "Error",
			entities.PlatformAndroid: "Error",
			entities.PlatformWeb:     "Error",
		}
		request := entitybuilders.NewProjectRequestBuilder().BuildProjectRequest()

		// when
		result, err := fixture.command().Execute(context.Background(), fixture.settings, request)

		// then
		require.Error(t, err)
		assert.Equal(t, entities.StageAppCreation, entities.StageOf(err))
		assert.Equal(t, "acme-app-abc123", result.ProvisioningProjectID)
		assert.Empty(t, fixture.vcs.CommitMessages)
		assert.Len(t, fixture.space.Removed, 1)
	})

	t.Run("should abort without provisioning when the clone fails", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPipelineFixture()
		fixture.vcs.CloneErr = errors.New("remote branch main not found")
		request := entitybuilders.NewProjectRequestBuilder().BuildProjectRequest()

		// when
		_, err := fixture.command().Execute(context.Background(), fixture.settings, request)

		// then
		require.Error(t, err)
		assert.Equal(t, entities.StageClone, entities.StageOf(err))
		assert.Empty(t, fixture.prov.ProjectIDs)
		assert.Len(t, fixture.space.Removed, 1)
	})

	t.Run("should reject an invalid request before any side effect", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPipelineFixture()
		request := entitybuilders.NewProjectRequestBuilder().WithProjectName("Bad Name").BuildProjectRequest()

		// when
		result, err := fixture.command().Execute(context.Background(), fixture.settings, request)

		// then
		var validationErr *entities.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Nil(t, result)
		assert.Empty(t, fixture.factory.Accounts)
		assert.Empty(t, fixture.space.Created)
		assert.Empty(t, fixture.vcs.Clones)
	})

	t.Run("should resolve template aliases before cloning", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPipelineFixture()
		fixture.settings.Templates = map[string]string{"flutter": "acme/flutter-template"}
		request := entitybuilders.NewProjectRequestBuilder().WithTemplateRepo("flutter").BuildProjectRequest()

		// when
		_, err := fixture.command().Execute(context.Background(), fixture.settings, request)

		// then
		require.NoError(t, err)
		require.Len(t, fixture.vcs.Clones, 1)
		assert.Equal(t, "https://example.com/acme/flutter-template.git", fixture.vcs.Clones[0].URL)
		assert.Equal(t, "main", fixture.vcs.Clones[0].Branch)
	})

	t.Run("should merge downloaded configs into the existing document", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPipelineFixture()
		request := entitybuilders.NewProjectRequestBuilder().BuildProjectRequest()

		// when
		_, err := fixture.command().Execute(context.Background(), fixture.settings, request)

		// then
		require.NoError(t, err)
		merged := fixture.space.Content(entities.AppConfigPath)
		assert.Equal(t, "acme-app", gjson.Get(merged, "app.name").String())
		assert.Equal(t, "android-key", gjson.Get(merged, "firebase.android.apiKey").String())
		assert.Equal(t, "1:42:android:aa", gjson.Get(merged, "firebase.android.appId").String())
		assert.Equal(t, "ios-key", gjson.Get(merged, "firebase.ios.apiKey").String())
		assert.Equal(t, "web-key", gjson.Get(merged, "firebase.web.apiKey").String())
		assert.Equal(t, "2026-10-15T09:30:00Z", gjson.Get(merged, "project.created_at").String())
		assert.Contains(t, fixture.space.Content(entities.TypedViewPath), "export const appConfig")
		assert.Contains(t, fixture.space.Content(entities.PlatformConfigPath(entities.PlatformAndroid)), "android-key")
	})

	t.Run("should write nothing to the config path when the document is absent", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPipelineFixture()
		delete(fixture.space.Files, entities.AppConfigPath)
		request := entitybuilders.NewProjectRequestBuilder().BuildProjectRequest()

		// when
		result, err := fixture.command().Execute(context.Background(), fixture.settings, request)

		// then
		require.NoError(t, err)
		assert.NotContains(t, fixture.space.Writes, entities.AppConfigPath)
		assert.NotContains(t, fixture.space.Writes, entities.TypedViewPath)
		assert.True(t, hasMessage(result.Messages, "config-merge", "skipped"))
	})

	t.Run("should leave an invalid document untouched with a warning", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPipelineFixture()
		invalid := `{"app": {"name": "mytemplate-app"`
		fixture.space.Files[entities.AppConfigPath] = []byte(invalid)
		request := entitybuilders.NewProjectRequestBuilder().BuildProjectRequest()

		// when
		result, err := fixture.command().Execute(context.Background(), fixture.settings, request)

		// then
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, invalid, fixture.space.Content(entities.AppConfigPath))
		assert.NotContains(t, fixture.space.Writes, entities.AppConfigPath)
		assert.True(t, hasMessage(result.Messages, "tolerated", "config-merge"))
	})

	t.Run("should skip the private repository without a token and keep the tag local", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPipelineFixture()
		request := entitybuilders.NewProjectRequestBuilder().BuildProjectRequest()

		// when
		result, err := fixture.command().Execute(context.Background(), fixture.settings, request)

		// then
		require.NoError(t, err)
		assert.Empty(t, result.NewRepoURL)
		assert.Empty(t, fixture.host.CreateCalls)
		assert.Equal(t, "base-build-2026-10-15", result.BuildTag)
		assert.Equal(t, []string{"base-build-2026-10-15"}, fixture.vcs.CreatedTags)
		assert.Empty(t, fixture.vcs.TagPushes)
		assert.Empty(t, fixture.vcs.Pushes)
		assert.True(t, hasMessage(result.Messages, "private-repository", "skipped"))
	})

	t.Run("should create and push to a private repository when a token is configured", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPipelineFixture()
		fixture.host.Token = "ghp_test"
		fixture.settings.GitHub.Owner = "acme-org"
		request := entitybuilders.NewProjectRequestBuilder().BuildProjectRequest()

		// when
		result, err := fixture.command().Execute(context.Background(), fixture.settings, request)

		// then
		require.NoError(t, err)
		require.Len(t, fixture.host.CreateCalls, 1)
		assert.Equal(t, "acme-org", fixture.host.CreateCalls[0].Owner)
		assert.True(t, fixture.host.CreateCalls[0].Input.Private)
		assert.Equal(t, "https://example.com/acme-org/acme-app.git", result.NewRepoURL)
		assert.Equal(t, "acme-org/acme-app", result.NewRepoFullName)
		assert.Equal(t, result.NewRepoURL, fixture.vcs.Remotes["new-origin"])
		assert.Equal(t, []doubles.PushCall{{Remote: "new-origin", Ref: "main"}}, fixture.vcs.Pushes)
		assert.Equal(t, []doubles.PushCall{{Remote: "new-origin", Ref: "base-build-2026-10-15"}}, fixture.vcs.TagPushes)
	})

	t.Run("should keep the repository URL when the push fails", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPipelineFixture()
		fixture.host.Token = "ghp_test"
		fixture.vcs.PushErr = errors.New("HTTP 403")
		request := entitybuilders.NewProjectRequestBuilder().BuildProjectRequest()

		// when
		result, err := fixture.command().Execute(context.Background(), fixture.settings, request)

		// then
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.NotEmpty(t, result.NewRepoURL)
		assert.True(t, hasMessage(result.Messages, "tolerated", "private-repository", "HTTP 403"))
		assert.Empty(t, fixture.vcs.TagPushes)
	})

	t.Run("should suffix the tag with a timestamp when the date tag exists", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPipelineFixture()
		fixture.vcs.ExistingTags = map[string]bool{"base-build-2026-10-15": true}
		request := entitybuilders.NewProjectRequestBuilder().BuildProjectRequest()

		// when
		result, err := fixture.command().Execute(context.Background(), fixture.settings, request)

		// then
		require.NoError(t, err)
		assert.Equal(t, "base-build-2026-10-15-1792056600", result.BuildTag)
	})

	t.Run("should tolerate tag and database failures", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPipelineFixture()
		fixture.prov.DatabaseListErr = errors.New("exit status 1")
		fixture.vcs.CreateTagErr = errors.New("reference locked")
		request := entitybuilders.NewProjectRequestBuilder().BuildProjectRequest()

		// when
		result, err := fixture.command().Execute(context.Background(), fixture.settings, request)

		// then
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Empty(t, result.BuildTag)
		assert.True(t, hasMessage(result.Messages, "tolerated", "database"))
		assert.True(t, hasMessage(result.Messages, "tolerated", "build-tag", "reference locked"))
	})

	t.Run("should create the database and deploy rules when none exists", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPipelineFixture()
		request := entitybuilders.NewProjectRequestBuilder().BuildProjectRequest()

		// when
		_, err := fixture.command().Execute(context.Background(), fixture.settings, request)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{entities.DefaultFirebaseLocation}, fixture.prov.DatabaseLocations)
		assert.Len(t, fixture.prov.DeployDirs, 1)
		assert.Contains(t, fixture.space.Content(entities.FirestoreRulesPath), "timestamp.date(2027, 10, 15)")
		assert.Contains(t, fixture.space.Content(entities.FirebaseJSONPath), "firestore.rules")
	})

	t.Run("should keep the rules shipped by the template", func(t *testing.T) {
		t.Parallel()

		// given
		templateRules := "rules_version = '2';\nallow read: if request.auth != null;\n"
		fixture := newPipelineFixture()
		fixture.space.Files[entities.FirestoreRulesPath] = []byte(templateRules)
		request := entitybuilders.NewProjectRequestBuilder().BuildProjectRequest()

		// when
		_, err := fixture.command().Execute(context.Background(), fixture.settings, request)

		// then
		require.NoError(t, err)
		assert.Equal(t, templateRules, fixture.space.Content(entities.FirestoreRulesPath))
		assert.NotContains(t, fixture.space.Writes, entities.FirestoreRulesPath)
		assert.Len(t, fixture.prov.DeployDirs, 1)
	})

	t.Run("should leave rules untouched when the database already exists", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPipelineFixture()
		fixture.prov.DatabaseFound = true
		request := entitybuilders.NewProjectRequestBuilder().BuildProjectRequest()

		// when
		result, err := fixture.command().Execute(context.Background(), fixture.settings, request)

		// then
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Empty(t, fixture.prov.DatabaseLocations)
		assert.Empty(t, fixture.prov.DeployDirs)
		assert.NotContains(t, fixture.space.Writes, entities.FirestoreRulesPath)
		assert.True(t, hasMessage(result.Messages, "database", "already exists"))
	})

	t.Run("should clone with a deadline", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPipelineFixture()
		request := entitybuilders.NewProjectRequestBuilder().BuildProjectRequest()

		// when
		_, err := fixture.command().Execute(context.Background(), fixture.settings, request)

		// then
		require.NoError(t, err)
		assert.Equal(t, []bool{true}, fixture.vcs.CloneDeadlines)
	})

	t.Run("should fail at clone when the clone exceeds its timeout", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPipelineFixture()
		fixture.settings.Timeouts.Clone = 20 * time.Millisecond
		fixture.vcs.BlockClone = true
		request := entitybuilders.NewProjectRequestBuilder().BuildProjectRequest()

		// when
		_, err := fixture.command().Execute(context.Background(), fixture.settings, request)

		// then
		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, entities.StageClone, entities.StageOf(err))
		assert.Empty(t, fixture.prov.ProjectIDs)
	})

	t.Run("should retry a project creation that exceeds its timeout", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPipelineFixture()
		fixture.settings.Timeouts.Provisioning = 20 * time.Millisecond
		fixture.prov.BlockedAttempts = 1
		suffixes := []string{"aaa111", "bbb222"}
		cmd := commands.NewCreateCommandForTest(commands.NewCreateCommand(fixture.factory), fixedClock,
			func() string {
				suffix := suffixes[0]
				suffixes = suffixes[1:]
				return suffix
			})
		request := entitybuilders.NewProjectRequestBuilder().BuildProjectRequest()

		// when
		result, err := cmd.Execute(context.Background(), fixture.settings, request)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"acme-app-aaa111", "acme-app-bbb222"}, fixture.prov.ProjectIDs)
		assert.Equal(t, "acme-app-bbb222", result.ProvisioningProjectID)
	})

	t.Run("should tolerate a platform app that exceeds its timeout", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPipelineFixture()
		fixture.settings.Timeouts.Provisioning = 20 * time.Millisecond
		fixture.prov.BlockApps = map[entities.Platform]bool{entities.PlatformWeb: true}
		request := entitybuilders.NewProjectRequestBuilder().BuildProjectRequest()

		// when
		result, err := fixture.command().Execute(context.Background(), fixture.settings, request)

		// then
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, entities.UnknownAppID, result.AppIDs[entities.PlatformWeb])
		assert.True(t, result.AppIDs.Known(entities.PlatformIOS))
		assert.True(t, result.AppIDs.Known(entities.PlatformAndroid))
		assert.True(t, hasMessage(result.Messages, "tolerated", "app-creation", "web", "deadline exceeded"))
	})

	t.Run("should report success when cancelled after the last stage", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPipelineFixture()
		fixture.host.Token = "ghp_test"
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		fixture.vcs.OnPushTag = cancel
		request := entitybuilders.NewProjectRequestBuilder().BuildProjectRequest()

		// when
		result, err := fixture.command().Execute(ctx, fixture.settings, request)

		// then
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "base-build-2026-10-15", result.BuildTag)
		assert.Len(t, fixture.vcs.TagPushes, 1)
	})

	t.Run("should not commit a clean tree", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPipelineFixture()
		fixture.vcs.NothingToCommit = true
		request := entitybuilders.NewProjectRequestBuilder().BuildProjectRequest()

		// when
		result, err := fixture.command().Execute(context.Background(), fixture.settings, request)

		// then
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.True(t, hasMessage(result.Messages, "commit", "nothing to commit"))
	})

	t.Run("should fail fatally when the commit fails", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPipelineFixture()
		fixture.vcs.CommitErr = errors.New("index locked")
		request := entitybuilders.NewProjectRequestBuilder().BuildProjectRequest()

		// when
		result, err := fixture.command().Execute(context.Background(), fixture.settings, request)

		// then
		require.Error(t, err)
		assert.Equal(t, entities.StageCommit, entities.StageOf(err))
		assert.Equal(t, 3, result.AppIDs.SuccessCount())
	})

	t.Run("should produce the same log with the parallel platform policy", func(t *testing.T) {
		t.Parallel()

		// given
		sequential := newPipelineFixture()
		parallel := newPipelineFixture()
		parallel.settings.Execution.ParallelPlatforms = true
		request := entitybuilders.NewProjectRequestBuilder().BuildProjectRequest()

		// when
		sequentialResult, sequentialErr := sequential.command().Execute(
			context.Background(), sequential.settings, request)
		parallelResult, parallelErr := parallel.command().Execute(
			context.Background(), parallel.settings, request)

		// then
		require.NoError(t, sequentialErr)
		require.NoError(t, parallelErr)
		assert.Equal(t, sequentialResult.Messages, parallelResult.Messages)
		assert.Equal(t, sequentialResult.AppIDs, parallelResult.AppIDs)
	})

	t.Run("should stop at the first stage boundary after cancellation", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPipelineFixture()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		request := entitybuilders.NewProjectRequestBuilder().BuildProjectRequest()

		// when
		_, err := fixture.command().Execute(ctx, fixture.settings, request)

		// then
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, entities.StageClone, entities.StageOf(err))
		assert.Empty(t, fixture.vcs.Clones)
		assert.Len(t, fixture.space.Removed, 1)
	})

	t.Run("should fail before creating a workspace when the provisioning tool is missing", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newPipelineFixture()
		fixture.factory.ProvisioningErr = errors.New(`executable "firebase" not found`)
		request := entitybuilders.NewProjectRequestBuilder().BuildProjectRequest()

		// when
		_, err := fixture.command().Execute(context.Background(), fixture.settings, request)

		// then
		require.Error(t, err)
		assert.Equal(t, entities.StageProjectCreation, entities.StageOf(err))
		assert.True(t, entities.IsFatal(err))
		assert.Empty(t, fixture.space.Created)
	})

	t.Run("should clone into a real workspace and remove it afterwards", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		fixture := newPipelineFixture()
		fixture.factory.Space = workspace.NewWorkspaceRepository(root)
		var cloneDir string
		fixture.vcs.OnClone = func(dir string) error {
			cloneDir = dir
			return os.WriteFile(filepath.Join(dir, "README.md"), []byte("# mytemplate-app\n"), 0o600)
		}
		request := entitybuilders.NewProjectRequestBuilder().BuildProjectRequest()

		// when
		result, err := fixture.command().Execute(context.Background(), fixture.settings, request)

		// then
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Regexp(t, `^acme-app-\d{14}-`, filepath.Base(cloneDir))
		_, statErr := os.Stat(cloneDir)
		assert.True(t, os.IsNotExist(statErr))
	})
}
