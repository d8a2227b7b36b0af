package kernel

import (
	"errors"
	"fmt"

	"folio/internal/pkg/errs"
	"folio/internal/pkg/guard"
)

var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Role is the pre-normalized role of the acting user. Role strings coming from
// the identity provider are mapped onto this closed set before reaching the core.
type Role int

const (
	RoleUnknown Role = iota
	RoleAdmin
	RoleOwner
	RoleManager
	RoleEmployee
)

var roleNames = map[Role]string{
	RoleAdmin:    "ADMIN",
	RoleOwner:    "OWNER",
	RoleManager:  "MANAGER",
	RoleEmployee: "EMPLOYEE",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "UNKNOWN"
}

func (r Role) Validate() error {
	if _, ok := roleNames[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// ParseRole maps an upper-case role name onto Role.
func ParseRole(s string) (Role, error) {
	for role, name := range roleNames {
		if name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%q is not a valid role", s))
}

// Actor is the trusted identity context of an operation. The core never
// re-derives tenant or branch membership; it only requires the context to be
// well formed.
type Actor struct {
	tenantID UUID
	branchID *UUID
	userID   UUID
	role     Role

	guard guard.ConstructorGuard
}

// NewActor validates the actor context. Only admins may act without a branch.
func NewActor(tenantID UUID, branchID *UUID, userID UUID, role Role) (Actor, error) {
	var branchErr error
	if branchID != nil {
		branchErr = branchID.Validate()
	} else if role != RoleAdmin {
		branchErr = errs.NewValueIsRequiredError("branchId")
	}

	if err := errors.Join(
		tenantID.Validate(),
		userID.Validate(),
		role.Validate(),
		branchErr,
	); err != nil {
		return Actor{}, err
	}

	return Actor{
		tenantID: tenantID,
		branchID: branchID,
		userID:   userID,
		role:     role,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) TenantID() UUID {
	return a.tenantID
}

// BranchID is nil only for admins acting at tenant level.
func (a Actor) BranchID() *UUID {
	if a.branchID == nil {
		return nil
	}
	id := *a.branchID
	return &id
}

func (a Actor) UserID() UUID {
	return a.userID
}

func (a Actor) Role() Role {
	return a.role
}
