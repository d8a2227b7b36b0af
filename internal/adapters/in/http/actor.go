package http

import (
	"errors"
	"net/http"
	"strings"

	"folio/internal/core/domain/model/kernel"
	"folio/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Identity headers set by the gateway after authentication.
const (
	HeaderTenantID = "X-Tenant-ID"
	HeaderBranchID = "X-Branch-ID"
	HeaderUserID   = "X-User-ID"
	HeaderRole     = "X-Role"
)

const actorKey = "actor"

// RequireActor builds the actor from the identity headers and rejects the
// request with 401 when they are missing or malformed.
func RequireActor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		actor, err := actorFromHeaders(ctx.Request().Header)
		if err != nil {
			return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
				Code:    http.StatusUnauthorized,
				Kind:    "unauthorized",
				Message: "Invalid actor context: " + err.Error(),
			})
		}
		ctx.Set(actorKey, actor)
		return next(ctx)
	}
}

func actorFromHeaders(h http.Header) (kernel.Actor, error) {
	tenantID, tenantErr := headerUUID(h, HeaderTenantID)
	userID, userErr := headerUUID(h, HeaderUserID)
	role, roleErr := kernel.ParseRole(strings.ToUpper(strings.TrimSpace(h.Get(HeaderRole))))

	var branchID *kernel.UUID
	var branchErr error
	if raw := strings.TrimSpace(h.Get(HeaderBranchID)); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			branchErr = errs.NewValueIsInvalidErrorWithCause(HeaderBranchID, err)
		} else {
			branchID = &id
		}
	}

	if err := errors.Join(tenantErr, userErr, roleErr, branchErr); err != nil {
		return kernel.Actor{}, err
	}
	return kernel.NewActor(tenantID, branchID, userID, role)
}

func headerUUID(h http.Header, name string) (kernel.UUID, error) {
	raw := strings.TrimSpace(h.Get(name))
	if raw == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(name)
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

// actorOf is only valid behind RequireActor.
func actorOf(ctx echo.Context) kernel.Actor {
	actor, _ := ctx.Get(actorKey).(kernel.Actor)
	return actor
}
