package entities

import (
	"errors"
	"fmt"
)

// Stage names one step of the provisioning pipeline.
type Stage string

const (
	StageValidation        Stage = "validation"
	StageClone             Stage = "clone"
	StageSubstitution      Stage = "substitution"
	StageProjectCreation   Stage = "project-creation"
	StageAppCreation       Stage = "app-creation"
	StageDatabase          Stage = "database"
	StageConfigDownload    Stage = "config-download"
	StageConfigMerge       Stage = "config-merge"
	StageCommit            Stage = "commit"
	StagePrivateRepository Stage = "private-repository"
	StageBuildTag          Stage = "build-tag"
)

// Stages returns the pipeline stages in execution order.
func Stages() []Stage {
	return []Stage{
		StageClone,
		StageSubstitution,
		StageProjectCreation,
		StageAppCreation,
		StageDatabase,
		StageConfigDownload,
		StageConfigMerge,
		StageCommit,
		StagePrivateRepository,
		StageBuildTag,
	}
}

// StageKind says whether a stage failure aborts the pipeline.
type StageKind string

const (
	KindFatal     StageKind = "fatal"
	KindTolerable StageKind = "tolerable"
)

// StageError is a failure attributed to a named pipeline stage.
type StageError struct {
	Stage Stage
	Kind  StageKind
	Msg   string
	Cause error
}

func (e *StageError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Stage, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %v", e.Stage, e.Msg, e.Cause)
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

// NewFatal builds a StageError that aborts the pipeline.
func NewFatal(stage Stage, msg string, cause error) *StageError {
	return &StageError{Stage: stage, Kind: KindFatal, Msg: msg, Cause: cause}
}

// NewTolerable builds a StageError that is logged and recorded but does not abort.
func NewTolerable(stage Stage, msg string, cause error) *StageError {
	return &StageError{Stage: stage, Kind: KindTolerable, Msg: msg, Cause: cause}
}

// StageOf returns the stage an error is attributed to, or "" when it carries none.
func StageOf(err error) Stage {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr.Stage
	}
	return ""
}

// IsFatal reports whether err is a fatal StageError.
func IsFatal(err error) bool {
	var stageErr *StageError
	return errors.As(err, &stageErr) && stageErr.Kind == KindFatal
}
