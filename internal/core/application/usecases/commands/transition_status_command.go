package commands

import (
	"errors"
	"strings"

	"folio/internal/core/domain/model/kernel"
	"folio/internal/core/domain/model/order"
	"folio/internal/pkg/guard"
)

var ErrTransitionStatusCommandIsNotConstructed = errors.New(
	"TransitionStatusCommand must be created via NewTransitionStatusCommand constructor",
)

// TransitionStatusCommand moves an order to target. reason is kept only for
// cancellations.
type TransitionStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Status
	reason  string
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewTransitionStatusCommand(
	orderID kernel.UUID,
	target order.Status,
	reason string,
	actor kernel.Actor,
) (TransitionStatusCommand, error) {
	if err := errors.Join(orderID.Validate(), target.Validate(), actor.Validate()); err != nil {
		return TransitionStatusCommand{}, err
	}

	return TransitionStatusCommand{
		orderID: orderID,
		target:  target,
		reason:  strings.TrimSpace(reason),
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c TransitionStatusCommand) Validate() error {
	return c.guard.Validate(ErrTransitionStatusCommandIsNotConstructed)
}

func (c TransitionStatusCommand) OrderID() kernel.UUID { return c.orderID }
func (c TransitionStatusCommand) Target() order.Status { return c.target }
func (c TransitionStatusCommand) Reason() string       { return c.reason }
func (c TransitionStatusCommand) Actor() kernel.Actor  { return c.actor }
