package kernel

import (
	"fmt"
	"strings"

	"folio/internal/pkg/errs"

	"github.com/ttacon/libphonenumber"
)

// Phone is a customer phone number normalized to E.164.
type Phone struct {
	e164 string
}

// NewPhone parses raw using defaultRegion for numbers without a country prefix.
func NewPhone(raw, defaultRegion string) (Phone, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Phone{}, errs.NewValueIsRequiredError("customerPhone")
	}

	parsed, err := libphonenumber.Parse(raw, defaultRegion)
	if err != nil {
		return Phone{}, errs.NewValueIsInvalidErrorWithCause("customerPhone", err)
	}
	if !libphonenumber.IsValidNumber(parsed) {
		return Phone{}, errs.NewValueIsInvalidErrorWithCause("customerPhone", fmt.Errorf("%q is not a valid number", raw))
	}

	return Phone{e164: libphonenumber.Format(parsed, libphonenumber.E164)}, nil
}

// RestorePhone rebuilds a Phone already normalized by NewPhone.
func RestorePhone(e164 string) Phone {
	return Phone{e164: e164}
}

func (p Phone) String() string {
	return p.e164
}

func (p Phone) IsZero() bool {
	return p.e164 == ""
}
