package http

import (
	"errors"
	"net/http"

	"etching/internal/core/domain/model/workflow"
	"etching/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// writeError maps application errors onto status codes. Workflow failures
// are returned in full so that callers can show every broken rule at once.
func writeError(ctx echo.Context, err error) error {
	if failures, ok := workflow.FailuresOf(err); ok {
		body := validationErrorResponse{
			Code:     http.StatusUnprocessableEntity,
			Message:  "request breaks workflow rules",
			Failures: make([]failureResponse, 0, len(failures)),
		}
		for _, f := range failures {
			body.Failures = append(body.Failures, failureResponse{
				Kind:    f.Kind.String(),
				Field:   f.Field,
				Message: f.Message,
			})
		}
		return ctx.JSON(http.StatusUnprocessableEntity, body)
	}

	status := http.StatusInternalServerError
	message := "internal error"
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, errs.ErrVersionIsInvalid):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status, message = http.StatusBadRequest, err.Error()
	default:
		ctx.Logger().Error(err)
	}

	return ctx.JSON(status, errorResponse{Code: status, Message: message})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: message})
}
