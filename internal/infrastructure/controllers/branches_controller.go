package controllers

import (
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/projectwizard/internal/domain/commands"
	"github.com/rios0rios0/projectwizard/internal/domain/entities"
)

// BranchesController handles the "branches" subcommand.
type BranchesController struct {
	command commands.ListBranches
}

// NewBranchesController creates a new BranchesController.
func NewBranchesController(command commands.ListBranches) *BranchesController {
	return &BranchesController{command: command}
}

// GetBind returns the Cobra command metadata for the branches controller.
func (it *BranchesController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "branches <owner/name|alias>",
		Short: "List the branches of a template repository",
	}
}

func (it *BranchesController) Execute(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		err := errors.New("expected exactly one template repository or alias")
		logger.Error(err)
		return err
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	branches, err := it.command.Execute(commandContext(cmd), settings, args[0])
	if err != nil {
		logger.Errorf("Listing branches failed: %v", err)
		return err
	}

	for _, branch := range branches {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), branch)
	}
	return nil
}
