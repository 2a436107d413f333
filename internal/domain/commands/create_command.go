package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/projectwizard/internal/domain/entities"
	"github.com/rios0rios0/projectwizard/internal/domain/repositories"
)

const (
	newRemoteName  = "new-origin"
	buildTagPrefix = "base-build-"
	buildTagLayout = "2006-01-02"
	tolerantPrefix = "tolerated "
)

// Create is the interface for the provisioning pipeline.
type Create interface {
	Execute(
		ctx context.Context,
		settings *entities.Settings,
		request entities.ProjectRequest,
	) (*entities.PipelineResult, error)
}

// CreateCommand drives a new project into existence:
// clone -> substitute -> provision -> download -> merge -> commit -> push -> tag.
type CreateCommand struct {
	factory  repositories.CollaboratorFactory
	now      func() time.Time
	suffix   func() string
	newRunID func() string
}

// NewCreateCommand creates a new CreateCommand building its collaborators with factory.
func NewCreateCommand(factory repositories.CollaboratorFactory) *CreateCommand {
	return &CreateCommand{
		factory:  factory,
		now:      time.Now,
		suffix:   entities.RandomSuffix,
		newRunID: func() string { return uuid.NewString() },
	}
}

// Execute validates the request and runs the ten pipeline stages in order.
// A fatal failure returns the partial result next to a *entities.StageError.
func (it *CreateCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	request entities.ProjectRequest,
) (*entities.PipelineResult, error) {
	request.TemplateRepo = settings.ResolveTemplate(request.TemplateRepo)
	if err := request.Validate(); err != nil {
		return nil, err
	}

	extractor, err := entities.NewAppIDExtractor(settings.Extraction.Patterns)
	if err != nil {
		return nil, entities.NewFatal(entities.StageAppCreation, "invalid app id extraction patterns", err)
	}
	provisioning, err := it.factory.Provisioning(settings, request.Account)
	if err != nil {
		return nil, entities.NewFatal(entities.StageProjectCreation, "failed to initialize provisioning service", err)
	}

	hosting := it.factory.Hosting(settings)
	workspace := it.factory.Workspace(settings)
	runID := it.newRunID()

	run := &pipelineRun{
		settings:     settings,
		request:      request,
		vcs:          it.factory.VersionControl(settings),
		provisioning: provisioning,
		hosting:      hosting,
		workspace:    workspace,
		extractor:    extractor,
		now:          it.now,
		suffix:       it.suffix,
		result:       entities.NewPipelineResult(runID, hosting.CloneURL(request.TemplateRepo)),
		log: logger.WithFields(logger.Fields{
			"run_id":  runID,
			"project": request.ProjectName,
		}),
	}

	handle, err := workspace.Create(request.ProjectName)
	if err != nil {
		return run.result, entities.NewFatal(entities.StageClone, "failed to create workspace", err)
	}
	run.handle = handle
	defer func() {
		if removeErr := workspace.Remove(handle); removeErr != nil {
			run.log.Warnf("Failed to remove workspace %q: %v", handle.Path, removeErr)
		}
	}()

	return run.execute(ctx)
}

type stageStep struct {
	stage entities.Stage
	run   func(ctx context.Context) error
}

// pipelineRun holds the state of one pipeline invocation.
type pipelineRun struct {
	settings     *entities.Settings
	request      entities.ProjectRequest
	vcs          repositories.VersionControlRepository
	provisioning repositories.ProvisioningRepository
	hosting      repositories.HostingRepository
	workspace    repositories.WorkspaceRepository
	extractor    *entities.AppIDExtractor
	now          func() time.Time
	suffix       func() string
	log          *logger.Entry

	handle        entities.WorkspaceHandle
	result        *entities.PipelineResult
	payloads      []entities.PlatformPayload
	primaryRemote string
}

func (it *pipelineRun) execute(ctx context.Context) (*entities.PipelineResult, error) {
	steps := []stageStep{
		{entities.StageClone, it.clone},
		{entities.StageSubstitution, it.substitute},
		{entities.StageProjectCreation, it.createProject},
		{entities.StageAppCreation, it.createApps},
		{entities.StageDatabase, it.provisionDatabase},
		{entities.StageConfigDownload, it.downloadConfigs},
		{entities.StageConfigMerge, it.mergeConfig},
		{entities.StageCommit, it.commit},
		{entities.StagePrivateRepository, it.publish},
		{entities.StageBuildTag, it.tag},
	}

	for _, step := range steps {
		stageLog := it.log.WithField("stage", step.stage)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return it.fail(entities.NewFatal(step.stage, "pipeline cancelled", ctxErr))
		}

		stageLog.Debug("Stage started")
		err := step.run(ctx)
		if err == nil {
			continue
		}

		var stageErr *entities.StageError
		if !errors.As(err, &stageErr) {
			stageErr = entities.NewFatal(step.stage, "unexpected failure", err)
		}
		if stageErr.Kind == entities.KindFatal {
			stageLog.Errorf("Stage failed: %v", stageErr)
			return it.fail(stageErr)
		}
		it.tolerate(stageErr)
	}

	it.result.Success = true
	it.log.Infof("Pipeline finished: %d of %d apps created", it.result.AppIDs.SuccessCount(), len(entities.Platforms()))
	return it.result, nil
}

func (it *pipelineRun) fail(err *entities.StageError) (*entities.PipelineResult, error) {
	it.result.AddMessage("failed " + err.Error())
	return it.result, err
}

// tolerate logs a tolerable failure and records it in the progress log.
func (it *pipelineRun) tolerate(err *entities.StageError) {
	it.log.WithField("stage", err.Stage).Warn(err.Error())
	it.result.AddMessage(tolerantPrefix + err.Error())
}

func (it *pipelineRun) progress(stage entities.Stage, format string, args ...any) {
	message := fmt.Sprintf("%s: %s", stage, fmt.Sprintf(format, args...))
	it.log.WithField("stage", stage).Info(message)
	it.result.AddMessage(message)
}

func (it *pipelineRun) clone(ctx context.Context) error {
	cloneCtx, cancel := withTimeout(ctx, it.settings.Timeouts.Clone)
	defer cancel()

	err := it.vcs.Clone(cloneCtx, it.result.TemplateURL, it.request.TemplateBranch, it.handle.Path)
	if err != nil {
		return entities.NewFatal(entities.StageClone,
			fmt.Sprintf("failed to clone %s at %s", it.request.TemplateRepo, it.request.TemplateBranch), err)
	}

	it.progress(entities.StageClone, "cloned %s at %s", it.request.TemplateRepo, it.request.TemplateBranch)
	return nil
}

func (it *pipelineRun) substitute(_ context.Context) error {
	rules := substitution{
		placeholder:          it.settings.Substitution.Placeholder,
		namespacedIdentifier: it.settings.Substitution.NamespacedIdentifier,
		projectName:          it.request.ProjectName,
		bundleID:             it.request.BundleID(),
	}

	changed := 0
	for _, file := range it.settings.Substitution.Files {
		if !it.workspace.Exists(it.handle, file) {
			continue
		}

		content, err := it.workspace.ReadFile(it.handle, file)
		if err != nil {
			it.tolerate(entities.NewTolerable(entities.StageSubstitution, "failed to read "+file, err))
			continue
		}

		updated := rules.apply(string(content))
		if updated == string(content) {
			continue
		}
		if err = it.workspace.WriteFile(it.handle, file, []byte(updated)); err != nil {
			it.tolerate(entities.NewTolerable(entities.StageSubstitution, "failed to write "+file, err))
			continue
		}
		changed++
	}

	it.progress(entities.StageSubstitution, "renamed identifiers in %d file(s)", changed)
	return nil
}

func (it *pipelineRun) createProject(ctx context.Context) error {
	policy := RetryPolicy{
		MaxAttempts: it.settings.Retry.MaxAttempts,
		Delay:       it.settings.Retry.Delay,
	}
	generate := func() string {
		return entities.ProjectID(it.request.ProjectName, it.suffix())
	}
	create := func(ctx context.Context, projectID string) error {
		callCtx, cancel := withTimeout(ctx, it.settings.Timeouts.Provisioning)
		defer cancel()
		return it.provisioning.CreateProject(callCtx, projectID, it.request.DisplayName())
	}

	projectID, attempts, err := CreateWithRetry(ctx, policy, generate, create)
	if err != nil {
		return entities.NewFatal(entities.StageProjectCreation,
			fmt.Sprintf("failed to create project after %d attempt(s)", attempts), err)
	}

	it.result.ProvisioningProjectID = projectID
	it.progress(entities.StageProjectCreation, "created project %s", projectID)
	return nil
}

func (it *pipelineRun) createApps(ctx context.Context) error {
	projectID := it.result.ProvisioningProjectID
	bundleID := it.request.BundleID()

	outcomes := it.forEachPlatform(ctx, entities.Platforms(),
		func(ctx context.Context, platform entities.Platform) (string, error) {
			callCtx, cancel := withTimeout(ctx, it.settings.Timeouts.Provisioning)
			defer cancel()

			output, err := it.provisioning.CreateApp(
				callCtx, projectID, platform, it.request.AppName(platform), bundleID)
			if err != nil {
				return "", err
			}
			appID := it.extractor.Extract(output)
			if appID == entities.UnknownAppID {
				return "", errors.New("no app id found in service output")
			}
			return appID, nil
		})

	for _, outcome := range outcomes {
		if outcome.err != nil {
			it.result.AppIDs[outcome.platform] = entities.UnknownAppID
			it.tolerate(entities.NewTolerable(entities.StageAppCreation,
				fmt.Sprintf("%s app creation failed", outcome.platform), outcome.err))
			continue
		}
		it.result.AppIDs[outcome.platform] = outcome.value
		it.progress(entities.StageAppCreation, "created %s app %s", outcome.platform, outcome.value)
	}

	if it.result.AppIDs.SuccessCount() == 0 {
		return entities.NewFatal(entities.StageAppCreation, "no platform app could be created", nil)
	}
	return nil
}

func (it *pipelineRun) provisionDatabase(ctx context.Context) error {
	projectID := it.result.ProvisioningProjectID

	callCtx, cancel := withTimeout(ctx, it.settings.Timeouts.Provisioning)
	defer cancel()

	exists, err := it.provisioning.DatabaseExists(callCtx, projectID)
	if err != nil {
		return entities.NewTolerable(entities.StageDatabase, "failed to list databases", err)
	}
	if exists {
		it.progress(entities.StageDatabase, "default database already exists, rules left unchanged")
		return nil
	}
	if err = it.provisioning.CreateDatabase(callCtx, projectID, it.settings.Firebase.Location); err != nil {
		return entities.NewTolerable(entities.StageDatabase, "failed to create default database", err)
	}

	// files shipped by the template win over the generated defaults
	files := []struct {
		path    string
		content []byte
	}{
		{entities.FirestoreRulesPath, entities.FirestoreRules(it.now())},
		{entities.FirebaseJSONPath, entities.FirebaseJSON()},
		{entities.FirestoreIndexesPath, entities.FirestoreIndexes()},
	}
	for _, file := range files {
		if it.workspace.Exists(it.handle, file.path) {
			continue
		}
		if err = it.workspace.WriteFile(it.handle, file.path, file.content); err != nil {
			return entities.NewTolerable(entities.StageDatabase, "failed to write "+file.path, err)
		}
	}

	if err = it.provisioning.DeployRules(callCtx, projectID, it.handle.Path); err != nil {
		return entities.NewTolerable(entities.StageDatabase, "failed to deploy rules", err)
	}

	it.progress(entities.StageDatabase, "default database ready in %s", it.settings.Firebase.Location)
	return nil
}

func (it *pipelineRun) downloadConfigs(ctx context.Context) error {
	projectID := it.result.ProvisioningProjectID

	var platforms []entities.Platform
	for _, platform := range entities.Platforms() {
		if it.result.AppIDs.Known(platform) {
			platforms = append(platforms, platform)
		}
	}

	outcomes := it.forEachPlatform(ctx, platforms,
		func(ctx context.Context, platform entities.Platform) (string, error) {
			callCtx, cancel := withTimeout(ctx, it.settings.Timeouts.Download)
			defer cancel()

			content, err := it.provisioning.DownloadSDKConfig(
				callCtx, projectID, platform, it.result.AppIDs[platform])
			if err != nil {
				return "", err
			}
			if err = it.workspace.WriteFile(it.handle, entities.PlatformConfigPath(platform), content); err != nil {
				return "", err
			}
			return string(content), nil
		})

	for _, outcome := range outcomes {
		if outcome.err != nil {
			it.tolerate(entities.NewTolerable(entities.StageConfigDownload,
				fmt.Sprintf("%s config download failed", outcome.platform), outcome.err))
			continue
		}
		it.payloads = append(it.payloads, entities.PlatformPayload{
			Platform: outcome.platform,
			Content:  []byte(outcome.value),
		})
		it.progress(entities.StageConfigDownload, "wrote %s", entities.PlatformConfigPath(outcome.platform))
	}
	return nil
}

func (it *pipelineRun) mergeConfig(_ context.Context) error {
	if !it.workspace.Exists(it.handle, entities.AppConfigPath) {
		it.progress(entities.StageConfigMerge, "skipped, %s not found", entities.AppConfigPath)
		return nil
	}

	doc, err := it.workspace.ReadFile(it.handle, entities.AppConfigPath)
	if err != nil {
		return entities.NewTolerable(entities.StageConfigMerge, "failed to read "+entities.AppConfigPath, err)
	}

	merged, outcome, err := entities.MergeConfigDocument(doc, entities.ConfigMergeInput{
		ProjectName: it.request.ProjectName,
		Description: it.request.ProjectDescription(),
		OrgDomain:   it.request.OrgDomain,
		ProjectID:   it.result.ProvisioningProjectID,
		BundleID:    it.request.BundleID(),
		Payloads:    it.payloads,
		CreatedAt:   it.now(),
	})
	if err != nil {
		return entities.NewTolerable(entities.StageConfigMerge, entities.AppConfigPath+" left untouched", err)
	}

	if err = it.workspace.WriteFile(it.handle, entities.AppConfigPath, merged); err != nil {
		return entities.NewTolerable(entities.StageConfigMerge, "failed to write "+entities.AppConfigPath, err)
	}
	it.progress(entities.StageConfigMerge, "updated %d key(s), added %d section(s)",
		len(outcome.UpdatedKeys), len(outcome.AddedSections))

	if it.settings.Merge.TypedView {
		if err = it.workspace.WriteFile(it.handle, entities.TypedViewPath, entities.RenderTypedView(merged)); err != nil {
			return entities.NewTolerable(entities.StageConfigMerge, "failed to write "+entities.TypedViewPath, err)
		}
	}
	return nil
}

func (it *pipelineRun) commit(ctx context.Context) error {
	message := fmt.Sprintf("Setup %s with Firebase configuration - %s",
		it.request.ProjectName, it.now().Format(time.RFC3339))

	committed, err := it.vcs.CommitAll(ctx, it.handle.Path, message)
	if err != nil {
		return entities.NewFatal(entities.StageCommit, "failed to commit changes", err)
	}
	if !committed {
		it.progress(entities.StageCommit, "working tree clean, nothing to commit")
		return nil
	}
	it.progress(entities.StageCommit, "committed %q", message)
	return nil
}

func (it *pipelineRun) publish(ctx context.Context) error {
	if !it.hosting.HasToken() {
		it.progress(entities.StagePrivateRepository, "skipped, no %s token configured", it.hosting.Name())
		return nil
	}

	callCtx, cancel := withTimeout(ctx, it.settings.Timeouts.Push)
	defer cancel()

	repo, err := it.hosting.CreateRepository(callCtx, it.settings.GitHub.Owner, entities.RepositoryInput{
		Name:        it.request.ProjectName,
		Description: it.request.ProjectDescription(),
		Private:     it.settings.GitHub.Private,
	})
	if err != nil {
		return entities.NewTolerable(entities.StagePrivateRepository, "failed to create repository", err)
	}
	it.result.NewRepoURL = repo.RemoteURL
	it.result.NewRepoFullName = repo.Organization + "/" + repo.Name
	it.progress(entities.StagePrivateRepository, "created %s", it.result.NewRepoFullName)

	if err = it.vcs.AddRemote(callCtx, it.handle.Path, newRemoteName, repo.RemoteURL); err != nil {
		return entities.NewTolerable(entities.StagePrivateRepository, "failed to add remote "+newRemoteName, err)
	}
	branch, err := it.vcs.CurrentBranch(it.handle.Path)
	if err != nil {
		return entities.NewTolerable(entities.StagePrivateRepository, "failed to resolve current branch", err)
	}
	if err = it.vcs.Push(callCtx, it.handle.Path, newRemoteName, branch); err != nil {
		return entities.NewTolerable(entities.StagePrivateRepository, "failed to push "+branch, err)
	}

	it.primaryRemote = newRemoteName
	it.progress(entities.StagePrivateRepository, "pushed %s to %s", branch, it.result.NewRepoURL)
	return nil
}

func (it *pipelineRun) tag(ctx context.Context) error {
	now := it.now()
	name := buildTagPrefix + now.Format(buildTagLayout)

	exists, err := it.vcs.TagExists(it.handle.Path, name)
	if err != nil {
		return entities.NewTolerable(entities.StageBuildTag, "failed to look up tag "+name, err)
	}
	if exists {
		name = name + "-" + strconv.FormatInt(now.Unix(), 10)
	}

	if err = it.vcs.CreateTag(it.handle.Path, name, "Base build for "+it.request.ProjectName); err != nil {
		return entities.NewTolerable(entities.StageBuildTag, "failed to create tag "+name, err)
	}
	it.result.BuildTag = name

	if it.primaryRemote == "" {
		it.progress(entities.StageBuildTag, "created %s, not pushed (no private repository)", name)
		return nil
	}

	callCtx, cancel := withTimeout(ctx, it.settings.Timeouts.Push)
	defer cancel()
	if err = it.vcs.PushTag(callCtx, it.handle.Path, it.primaryRemote, name); err != nil {
		return entities.NewTolerable(entities.StageBuildTag, "failed to push tag "+name, err)
	}
	it.progress(entities.StageBuildTag, "created and pushed %s", name)
	return nil
}

type platformOutcome struct {
	platform entities.Platform
	value    string
	err      error
}

// forEachPlatform runs fn once per platform, sequentially or concurrently
// depending on the execution policy. Outcomes are returned in platform order
// either way so the progress log stays deterministic.
func (it *pipelineRun) forEachPlatform(
	ctx context.Context,
	platforms []entities.Platform,
	fn func(ctx context.Context, platform entities.Platform) (string, error),
) []platformOutcome {
	outcomes := make([]platformOutcome, len(platforms))

	if !it.settings.Execution.ParallelPlatforms {
		for i, platform := range platforms {
			value, err := fn(ctx, platform)
			outcomes[i] = platformOutcome{platform: platform, value: value, err: err}
		}
		return outcomes
	}

	var group errgroup.Group
	for i, platform := range platforms {
		group.Go(func() error {
			value, err := fn(ctx, platform)
			outcomes[i] = platformOutcome{platform: platform, value: value, err: err}
			return nil
		})
	}
	_ = group.Wait()
	return outcomes
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
