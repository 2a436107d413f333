package controllers

import (
	"fmt"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/projectwizard/internal/domain/commands"
	"github.com/rios0rios0/projectwizard/internal/domain/entities"
)

// TemplatesController handles the "templates" subcommand.
type TemplatesController struct {
	command commands.ListTemplates
}

// NewTemplatesController creates a new TemplatesController.
func NewTemplatesController(command commands.ListTemplates) *TemplatesController {
	return &TemplatesController{command: command}
}

// GetBind returns the Cobra command metadata for the templates controller.
func (it *TemplatesController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "templates",
		Short: "List template aliases and candidate template repositories",
	}
}

func (it *TemplatesController) Execute(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	listing, err := it.command.Execute(commandContext(cmd), settings)
	if listing != nil {
		out := cmd.OutOrStdout()
		if len(listing.Aliases) > 0 {
			_, _ = fmt.Fprintln(out, "Aliases:")
			for _, alias := range listing.Aliases {
				_, _ = fmt.Fprintf(out, "  %-20s %s\n", alias.Alias, alias.Repository)
			}
		}
		if len(listing.Repositories) > 0 {
			_, _ = fmt.Fprintln(out, "Repositories:")
			for _, repo := range listing.Repositories {
				_, _ = fmt.Fprintf(out, "  %s/%s (%s)\n",
					repo.Organization, repo.Name, strings.TrimPrefix(repo.DefaultBranch, "refs/heads/"))
			}
		}
	}

	if err != nil {
		logger.Errorf("Listing templates failed: %v", err)
		return err
	}
	if !settings.HasGitHubToken() {
		logger.Info("Set GITHUB_TOKEN to also list the repositories your token can read")
	}
	return nil
}
