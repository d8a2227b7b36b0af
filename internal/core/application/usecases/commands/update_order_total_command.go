package commands

import (
	"errors"

	"folio/internal/core/domain/model/kernel"
	"folio/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrUpdateOrderTotalCommandIsNotConstructed = errors.New(
	"UpdateOrderTotalCommand must be created via NewUpdateOrderTotalCommand constructor",
)

// UpdateOrderTotalCommand edits the amounts of an order. A nil advance keeps
// the current one.
type UpdateOrderTotalCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	total   decimal.Decimal
	advance *decimal.Decimal
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewUpdateOrderTotalCommand(
	orderID kernel.UUID,
	total decimal.Decimal,
	advance *decimal.Decimal,
	actor kernel.Actor,
) (UpdateOrderTotalCommand, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return UpdateOrderTotalCommand{}, err
	}

	return UpdateOrderTotalCommand{
		orderID: orderID,
		total:   total,
		advance: advance,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderTotalCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderTotalCommandIsNotConstructed)
}

func (c UpdateOrderTotalCommand) OrderID() kernel.UUID      { return c.orderID }
func (c UpdateOrderTotalCommand) Total() decimal.Decimal    { return c.total }
func (c UpdateOrderTotalCommand) Advance() *decimal.Decimal { return c.advance }
func (c UpdateOrderTotalCommand) Actor() kernel.Actor       { return c.actor }
