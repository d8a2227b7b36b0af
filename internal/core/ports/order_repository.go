// Package ports defines the persistence contracts the core writes through.
// Every repository obtained from a UnitOfWork is bound to its transaction.
package ports

import (
	"context"

	"folio/internal/core/domain/model/kernel"
	"folio/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates.
type OrderRepository interface {
	// Add inserts a new order. The order number must be unique per tenant.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes back an order previously loaded with GetForUpdate.
	Update(ctx context.Context, aggregate *order.Order) error

	// GetForUpdate loads the order scoped to (id, tenantID) and holds an
	// exclusive row lock on it until the transaction ends. Returns an
	// ObjectNotFoundError when no row matches the pair.
	GetForUpdate(ctx context.Context, id kernel.UUID, tenantID kernel.UUID) (*order.Order, error)
}
