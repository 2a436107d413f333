package controllers

import (
	"fmt"
	"io"
	"sort"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/projectwizard/internal/domain/commands"
	"github.com/rios0rios0/projectwizard/internal/domain/entities"
)

const (
	defaultBranch      = "main"
	otherTemplateEntry = "other (owner/name)"
)

// CreateController handles the "create" subcommand.
type CreateController struct {
	command     commands.Create
	prompter    Prompter
	newProgress func(w io.Writer, message string) Progress
}

// NewCreateController creates a new CreateController.
func NewCreateController(command commands.Create) *CreateController {
	return &CreateController{
		command:     command,
		prompter:    NewPromptuiPrompter(),
		newProgress: newSpinnerProgress,
	}
}

// GetBind returns the Cobra command metadata for the create controller.
func (it *CreateController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "create",
		Short: "Create a Firebase-enabled project from a template repository",
		Long: `Clone a template repository, rename it for the new project, provision
a Firebase project with iOS, Android and Web apps, merge their configuration
into the application config, and publish the result as a new repository.

The template may be an "owner/name" repository or an alias from the
"templates" section of the configuration file.`,
	}
}

// Execute runs the provisioning pipeline and prints its result.
func (it *CreateController) Execute(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	applyCreateOverrides(cmd, settings)

	request := requestFromFlags(cmd)
	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		if request, err = it.complete(request, settings); err != nil {
			logger.Errorf("Prompt aborted: %v", err)
			return err
		}
	}

	progress := Progress(noProgress{})
	if verbose, _ := cmd.Flags().GetBool("verbose"); !verbose {
		progress = it.newProgress(cmd.ErrOrStderr(), fmt.Sprintf("Creating %s...", request.ProjectName))
	}

	progress.Start()
	result, runErr := it.command.Execute(commandContext(cmd), settings, request)
	progress.Stop()

	if result != nil {
		printResult(cmd.OutOrStdout(), result)
	}
	if runErr != nil {
		logger.Errorf("Project creation failed: %v", runErr)
		return runErr
	}

	logger.Infof("Project %q created", request.ProjectName)
	return nil
}

// AddFlags adds the create-specific flags to the given Cobra command.
func (it *CreateController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("name", "n", "", "Project name (lowercase letters, digits and hyphens)")
	cmd.Flags().StringP("org-domain", "o", "", "Organization domain used in the bundle id (com.<org>.<name>)")
	cmd.Flags().StringP("template", "t", "", "Template repository (owner/name) or configured alias")
	cmd.Flags().StringP("branch", "b", defaultBranch, "Template branch to clone")
	cmd.Flags().StringP("account", "a", "", "Firebase account that owns the new project")
	cmd.Flags().StringP("description", "d", "", "Project description")
	cmd.Flags().String("owner", "", "Owner of the new repository (default: the token user)")
	cmd.Flags().Bool("private", true, "Create the new repository as private")
	cmd.Flags().Bool("parallel", false, "Create the platform apps concurrently")
	cmd.Flags().BoolP("interactive", "i", false, "Prompt for missing values")
}

func requestFromFlags(cmd *cobra.Command) entities.ProjectRequest {
	name, _ := cmd.Flags().GetString("name")
	org, _ := cmd.Flags().GetString("org-domain")
	template, _ := cmd.Flags().GetString("template")
	branch, _ := cmd.Flags().GetString("branch")
	account, _ := cmd.Flags().GetString("account")
	description, _ := cmd.Flags().GetString("description")

	return entities.ProjectRequest{
		ProjectName:    strings.TrimSpace(name),
		OrgDomain:      strings.TrimSpace(org),
		TemplateRepo:   strings.TrimSpace(template),
		TemplateBranch: strings.TrimSpace(branch),
		Account:        strings.TrimSpace(account),
		Description:    description,
	}
}

// applyCreateOverrides lets explicitly set flags win over the config file.
func applyCreateOverrides(cmd *cobra.Command, settings *entities.Settings) {
	if cmd.Flags().Changed("owner") {
		settings.GitHub.Owner, _ = cmd.Flags().GetString("owner")
	}
	if cmd.Flags().Changed("private") {
		settings.GitHub.Private, _ = cmd.Flags().GetBool("private")
	}
	if cmd.Flags().Changed("parallel") {
		settings.Execution.ParallelPlatforms, _ = cmd.Flags().GetBool("parallel")
	}
}

// complete prompts for every field the flags left empty.
func (it *CreateController) complete(
	request entities.ProjectRequest,
	settings *entities.Settings,
) (entities.ProjectRequest, error) {
	var err error

	if request.ProjectName == "" {
		if request.ProjectName, err = it.prompter.Text("Project name", "", checkWith(entities.ValidateSlug)); err != nil {
			return request, err
		}
	}
	if request.OrgDomain == "" {
		if request.OrgDomain, err = it.prompter.Text(
			"Organization domain", "", checkWith(entities.ValidateSlug)); err != nil {
			return request, err
		}
	}
	if request.TemplateRepo == "" {
		if request.TemplateRepo, err = it.promptTemplate(settings); err != nil {
			return request, err
		}
	}
	if request.TemplateBranch == "" {
		if request.TemplateBranch, err = it.prompter.Text(
			"Template branch", defaultBranch, checkWith(entities.ValidateBranch)); err != nil {
			return request, err
		}
	}
	if request.Account == "" {
		if request.Account, err = it.prompter.Text("Firebase account", "", checkWith(required)); err != nil {
			return request, err
		}
	}
	if request.Description == "" {
		if request.Description, err = it.prompter.Text("Description (optional)", "", nil); err != nil {
			return request, err
		}
	}

	return request, nil
}

// promptTemplate offers the configured aliases first, then free input.
func (it *CreateController) promptTemplate(settings *entities.Settings) (string, error) {
	validate := checkWith(func(value string) string {
		return entities.ValidateTemplateRepo(settings.ResolveTemplate(value))
	})

	if len(settings.Templates) == 0 {
		return it.prompter.Text("Template repository", "", validate)
	}

	aliases := make([]string, 0, len(settings.Templates)+1)
	for alias := range settings.Templates {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	aliases = append(aliases, otherTemplateEntry)

	selected, err := it.prompter.Select("Template", aliases)
	if err != nil {
		return "", err
	}
	if selected != otherTemplateEntry {
		return selected, nil
	}
	return it.prompter.Text("Template repository", "", validate)
}

func required(value string) string {
	if strings.TrimSpace(value) == "" {
		return "is required"
	}
	return ""
}

func printResult(w io.Writer, result *entities.PipelineResult) {
	status := "succeeded"
	if !result.Success {
		status = "failed"
	}

	_, _ = fmt.Fprintf(w, "Pipeline %s (run %s)\n", status, result.RunID)
	printField(w, "Firebase project", result.ProvisioningProjectID)
	for _, platform := range entities.Platforms() {
		printField(w, fmt.Sprintf("%s app", platform), result.AppIDs[platform])
	}
	printField(w, "Template", result.TemplateURL)
	printField(w, "Repository", result.NewRepoURL)
	printField(w, "Build tag", result.BuildTag)

	for _, message := range result.Messages {
		logger.Debug(message)
	}
}

func printField(w io.Writer, label, value string) {
	if value == "" {
		return
	}
	_, _ = fmt.Fprintf(w, "  %-18s %s\n", label+":", value)
}
