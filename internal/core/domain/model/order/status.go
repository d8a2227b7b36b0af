package order

import (
	"fmt"

	"folio/internal/pkg/errs"
)

// Status is the authoritative lifecycle state of an order.
//
// State transitions:
//
//	DRAFT ──┬──> CONFIRMED ──┬──> IN_PRODUCTION ──> READY ──> DELIVERED
//	        │                │
//	        └──> CANCELLED <─┘
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Draft
	Confirmed
	InProduction
	Ready
	Delivered
	Cancelled
)

var statusNames = map[Status]string{
	Draft:        "DRAFT",
	Confirmed:    "CONFIRMED",
	InProduction: "IN_PRODUCTION",
	Ready:        "READY",
	Delivered:    "DELIVERED",
	Cancelled:    "CANCELLED",
}

// transitions lists the allowed targets per status. A status missing from the
// map, or mapped to an empty set, is terminal.
var transitions = map[Status][]Status{
	Draft:        {Confirmed, Cancelled},
	Confirmed:    {InProduction, Cancelled},
	InProduction: {Ready},
	Ready:        {Delivered},
	Delivered:    {},
	Cancelled:    {},
}

// AllStatuses returns every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Draft, Confirmed, InProduction, Ready, Delivered, Cancelled}
}

// ParseStatus maps a status name such as "IN_PRODUCTION" onto Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// AllowedTargets returns a copy of the statuses reachable in one step.
func (s Status) AllowedTargets() []Status {
	targets := transitions[s]
	out := make([]Status, len(targets))
	copy(out, targets)
	return out
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// TransitionTo returns target if s -> target is an allowed edge. Any other pair
// fails with an InvalidTransitionError; there is no override.
func (s Status) TransitionTo(target Status) (Status, error) {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return target, nil
		}
	}
	return s, errs.NewInvalidTransitionError(s, target)
}

// Legacy returns the shadow value mirrored for downstream consumers.
func (s Status) Legacy() LegacyStatus {
	switch s {
	case Cancelled:
		return LegacyCancelled
	case InProduction, Ready, Delivered:
		return LegacyInProduction
	default:
		return LegacyActive
	}
}

// LegacyStatus mirrors cancellation and production state for consumers that
// predate Status. It is written on every change and never read for decisions.
type LegacyStatus string

const (
	LegacyActive       LegacyStatus = "active"
	LegacyInProduction LegacyStatus = "production"
	LegacyCancelled    LegacyStatus = "cancelled"
)
