package audit

import (
	"testing"
	"time"

	"folio/internal/core/domain/model/kernel"
	"folio/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	tenantID := kernel.NewUUID()
	actorID := kernel.NewUUID()
	now := time.Date(2026, 10, 15, 18, 0, 0, 0, time.UTC)

	entry, err := NewEntry(tenantID, OrderConfirmed, EntityOrder, "42", nil, &actorID, now)
	require.NoError(t, err)

	assert.Equal(t, OrderConfirmed, entry.Action)
	assert.Equal(t, "42", entry.EntityID)
	assert.NotNil(t, entry.Meta)
	assert.True(t, entry.ActorID.IsEqual(actorID))
	assert.Equal(t, now, entry.CreatedAt)
}

func TestNewEntry_Validation(t *testing.T) {
	now := time.Now()

	_, err := NewEntry(kernel.NewUUID(), "", EntityOrder, "1", nil, nil, now)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = NewEntry(kernel.NewUUID(), OrderCreated, EntityOrder, " ", nil, nil, now)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = NewEntry(kernel.UUID{}, OrderCreated, EntityOrder, "1", nil, nil, now)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
