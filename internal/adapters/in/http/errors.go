package http

import (
	"errors"
	"net/http"
	"time"

	"folio/internal/core/domain/model/kernel"
	"folio/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// writeError maps the error kind onto a status. Unclassified failures are
// reported without their message.
func writeError(ctx echo.Context, err error) error {
	kind := errs.Classify(err)

	var status int
	message := err.Error()
	switch kind {
	case errs.KindValidation:
		status = http.StatusBadRequest
	case errs.KindNotFound:
		status = http.StatusNotFound
	case errs.KindInvalidTransition:
		status = http.StatusConflict
	case errs.KindRetryable:
		status = http.StatusServiceUnavailable
		message = "The order is busy, retry the request"
	default:
		status = http.StatusInternalServerError
		message = "Internal error"
	}

	if status >= http.StatusInternalServerError {
		ctx.Logger().Errorf("%s %s: %v", ctx.Request().Method, ctx.Path(), err)
	}

	return ctx.JSON(status, ErrorResponse{Code: status, Kind: kind.String(), Message: message})
}

func writeBindError(ctx echo.Context, err error) error {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Kind:    errs.KindValidation.String(),
			Message: "Invalid request body",
		})
	}
	return writeError(ctx, errInvalid("body", err))
}

func errRequired(param string) error {
	return errs.NewValueIsRequiredError(param)
}

func errInvalid(param string, cause error) error {
	return errs.NewValueIsInvalidErrorWithCause(param, cause)
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		return kernel.UUID{}, errInvalid(name, err)
	}
	return id, nil
}

const dateLayout = "2006-01-02"

// dayRange reads the inclusive from/to days, defaulting to the first of the
// current business month through today.
func (s *Server) dayRange(ctx echo.Context) (time.Time, time.Time, error) {
	today := s.calendar.Today()
	from := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := today

	if raw := ctx.QueryParam("from"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, errInvalid("from", err)
		}
		from = parsed
	}
	if raw := ctx.QueryParam("to"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, errInvalid("to", err)
		}
		to = parsed
	}
	return from, to, nil
}
