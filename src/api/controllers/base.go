package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"server/src/utils"
)

// StageError marks which pipeline stage a failure came from. Stages are
// independently observable: a later stage failing does not roll back the
// earlier ones, so the stage name is the only reconciliation signal an
// operator gets.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("at %s: %s", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Code surfaces the underlying HTTP status, defaulting to a server error.
func (e *StageError) Code() int {
	var httpErr *utils.HTTPError
	if errors.As(e.Err, &httpErr) {
		return httpErr.Code
	}
	return http.StatusInternalServerError
}

func stageError(ctx context.Context, stage string, err error) error {
	utils.LoggerFromContext(ctx).WithError(err).WithField("stage", stage).Warning("trade pipeline stage failed")
	return &StageError{Stage: stage, Err: err}
}
