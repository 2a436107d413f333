package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/projectwizard/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewCreateController); err != nil {
		return err
	}
	if err := container.Provide(NewTemplatesController); err != nil {
		return err
	}
	if err := container.Provide(NewBranchesController); err != nil {
		return err
	}
	if err := container.Provide(NewTokenController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	createController *CreateController,
	templatesController *TemplatesController,
	branchesController *BranchesController,
	tokenController *TokenController,
) *[]entities.Controller {
	return &[]entities.Controller{
		createController,
		templatesController,
		branchesController,
		tokenController,
	}
}
