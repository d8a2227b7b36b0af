package kernel_test

import (
	"testing"

	"folio/internal/core/domain/model/kernel"
	"folio/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewActor(t *testing.T) {
	tenantID := kernel.NewUUID()
	branchID := kernel.NewUUID()
	userID := kernel.NewUUID()

	t.Run("should create branch actor", func(t *testing.T) {
		actor, err := kernel.NewActor(tenantID, &branchID, userID, kernel.RoleEmployee)

		require.NoError(t, err)
		require.NoError(t, actor.Validate())
		assert.True(t, actor.TenantID().IsEqual(tenantID))
		assert.True(t, actor.BranchID().IsEqual(branchID))
		assert.True(t, actor.UserID().IsEqual(userID))
		assert.Equal(t, kernel.RoleEmployee, actor.Role())
	})

	t.Run("should allow admin without branch", func(t *testing.T) {
		actor, err := kernel.NewActor(tenantID, nil, userID, kernel.RoleAdmin)

		require.NoError(t, err)
		assert.Nil(t, actor.BranchID())
	})

	t.Run("should require branch for non admin", func(t *testing.T) {
		_, err := kernel.NewActor(tenantID, nil, userID, kernel.RoleManager)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "branchId")
	})

	t.Run("should join all validation errors", func(t *testing.T) {
		_, err := kernel.NewActor(kernel.UUID{}, nil, kernel.UUID{}, kernel.RoleUnknown)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "role is invalid")
		assert.Contains(t, err.Error(), "branchId")
	})

	t.Run("zero value actor is not constructed", func(t *testing.T) {
		var actor kernel.Actor

		assert.Equal(t, kernel.ErrActorIsNotConstructed, actor.Validate())
	})

	t.Run("branch accessor returns a copy", func(t *testing.T) {
		actor, _ := kernel.NewActor(tenantID, &branchID, userID, kernel.RoleOwner)

		copied := actor.BranchID()
		*copied = kernel.NewUUID()

		assert.True(t, actor.BranchID().IsEqual(branchID))
	})
}

func TestParseRole(t *testing.T) {
	for _, role := range []kernel.Role{kernel.RoleAdmin, kernel.RoleOwner, kernel.RoleManager, kernel.RoleEmployee} {
		t.Run(role.String(), func(t *testing.T) {
			parsed, err := kernel.ParseRole(role.String())

			require.NoError(t, err)
			assert.Equal(t, role, parsed)
		})
	}

	_, err := kernel.ParseRole("superuser")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, "UNKNOWN", kernel.Role(42).String())
}
