package commands

import (
	"errors"
	"fmt"
	"time"

	"folio/internal/core/domain/model/kernel"
	"folio/internal/pkg/errs"
	"folio/internal/pkg/guard"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var ErrCreateDraftCommandIsNotConstructed = errors.New(
	"CreateDraftCommand must be created via NewCreateDraftCommand constructor",
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// DraftInput is the client-supplied part of a new order. Tenant, branch and
// responsible user are never taken from here.
type DraftInput struct {
	Number        string          `validate:"omitempty,max=32"`
	CustomerName  string          `validate:"required,max=160"`
	CustomerPhone string          `validate:"required,max=32"`
	Description   string          `validate:"max=2000"`
	DeliveryDate  *time.Time      `validate:"omitempty"`
	Total         decimal.Decimal `validate:"-"`
	Advance       decimal.Decimal `validate:"-"`
}

// CreateDraftCommand registers a new order in DRAFT for the acting user.
//
// Example:
//
//	cmd, err := NewCreateDraftCommand(actor, DraftInput{
//	    CustomerName:  "Lucia",
//	    CustomerPhone: "55 1234 5678",
//	    Total:         decimal.NewFromInt(1000),
//	}, "MX")
type CreateDraftCommand struct { //nolint:recvcheck //using for validation
	actor kernel.Actor
	input DraftInput
	phone kernel.Phone

	guard guard.ConstructorGuard
}

// NewCreateDraftCommand validates the input and normalizes the customer phone
// to E.164, reading national numbers in phoneRegion.
func NewCreateDraftCommand(actor kernel.Actor, input DraftInput, phoneRegion string) (CreateDraftCommand, error) {
	cmd := CreateDraftCommand{
		input: input,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		validateInput(input),
	); err != nil {
		return CreateDraftCommand{}, err
	}

	phone, err := kernel.NewPhone(input.CustomerPhone, phoneRegion)
	if err != nil {
		return CreateDraftCommand{}, err
	}
	cmd.phone = phone

	return cmd, nil
}

func (c CreateDraftCommand) Validate() error {
	return c.guard.Validate(ErrCreateDraftCommandIsNotConstructed)
}

func (c CreateDraftCommand) Actor() kernel.Actor {
	return c.actor
}

func (c CreateDraftCommand) Input() DraftInput {
	return c.input
}

// Phone returns the normalized customer phone.
func (c CreateDraftCommand) Phone() kernel.Phone {
	return c.phone
}

func (c *CreateDraftCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

// validateInput maps validator failures onto the error taxonomy.
func validateInput(input DraftInput) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs.NewValueIsInvalidErrorWithCause("draft", err)
	}

	joined := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			joined = append(joined, errs.NewValueIsRequiredError(fe.Field()))
			continue
		}
		joined = append(joined, errs.NewValueIsInvalidErrorWithCause(fe.Field(), fmt.Errorf("failed %q rule", fe.Tag())))
	}
	return errors.Join(joined...)
}
