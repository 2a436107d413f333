package controllers

import (
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/projectwizard/internal/domain/commands"
	"github.com/rios0rios0/projectwizard/internal/domain/entities"
)

// TokenController handles the "token" subcommand.
type TokenController struct {
	command commands.CheckToken
}

// NewTokenController creates a new TokenController.
func NewTokenController(command commands.CheckToken) *TokenController {
	return &TokenController{command: command}
}

// GetBind returns the Cobra command metadata for the token controller.
func (it *TokenController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "token",
		Short: "Check that the configured GitHub token is accepted",
	}
}

func (it *TokenController) Execute(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	login, err := it.command.Execute(commandContext(cmd), settings)
	if err != nil {
		logger.Errorf("Token check failed: %v", err)
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Token is valid for %s\n", login)
	return nil
}
