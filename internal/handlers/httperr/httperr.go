// Package httperr maps service errors onto huma status errors.
package httperr

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/danielgtaylor/huma/v2"

	"github.com/warwickallen/allen-app-challenge-2026/internal/apperr"
	"github.com/warwickallen/allen-app-challenge-2026/internal/logging"
)

// From converts err into the huma error for its kind. Errors that are not one
// of the apperr kinds become a 500 whose detail does not leak the cause.
func From(err error) error {
	if err == nil {
		return nil
	}

	var (
		validation      *apperr.ValidationError
		unauthenticated *apperr.UnauthenticatedError
		forbidden       *apperr.ForbiddenError
		notFound        *apperr.NotFoundError
		statusErr       huma.StatusError
	)
	switch {
	case errors.As(err, &validation):
		return huma.NewError(http.StatusBadRequest, validation.Message)
	case errors.As(err, &unauthenticated):
		return huma.NewError(http.StatusUnauthorized, unauthenticated.Message)
	case errors.As(err, &forbidden):
		return huma.NewError(http.StatusForbidden, forbidden.Message)
	case errors.As(err, &notFound):
		return huma.NewError(http.StatusNotFound, notFound.Message)
	case errors.As(err, &statusErr):
		return statusErr
	}
	return huma.NewError(http.StatusInternalServerError, "internal server error")
}

// Respond records err on the request's log line and converts it with From.
func Respond(ctx context.Context, err error) error {
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("error", err.Error())
	}
	return From(err)
}

var badRequestOnce sync.Once

// UseBadRequestForValidation makes huma answer request validation failures
// (a missing field, a pattern or format mismatch) with 400 instead of 422.
// huma builds every error through huma.NewError, so the override is global.
func UseBadRequestForValidation() {
	badRequestOnce.Do(func() {
		base := huma.NewError
		huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
			if status == http.StatusUnprocessableEntity {
				status = http.StatusBadRequest
			}
			return base(status, msg, errs...)
		}
	})
}
