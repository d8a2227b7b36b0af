package commands

import (
	"errors"

	"folio/internal/core/domain/model/kernel"
	"folio/internal/pkg/guard"
)

var ErrConfirmOrderCommandIsNotConstructed = errors.New(
	"ConfirmOrderCommand must be created via NewConfirmOrderCommand constructor",
)

// ConfirmOrderCommand turns a DRAFT order into a sale.
type ConfirmOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewConfirmOrderCommand(orderID kernel.UUID, actor kernel.Actor) (ConfirmOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return ConfirmOrderCommand{}, err
	}

	return ConfirmOrderCommand{
		orderID: orderID,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmOrderCommand) Validate() error {
	return c.guard.Validate(ErrConfirmOrderCommandIsNotConstructed)
}

func (c ConfirmOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ConfirmOrderCommand) Actor() kernel.Actor {
	return c.actor
}
