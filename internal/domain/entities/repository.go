package entities

import (
	gitforgeEntities "github.com/rios0rios0/gitforge/domain/entities"
)

// Repository is re-exported from gitforge.
type Repository = gitforgeEntities.Repository

// RepositoryInput describes a repository to be created on the hosting service.
type RepositoryInput struct {
	Name        string
	Description string
	Private     bool
}
