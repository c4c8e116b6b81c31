package tracking

import (
	"fmt"

	"tracking/internal/pkg/errs"
)

// Role identifies the kind of actor requesting a transition. Transition
// legality is a function of (status, action, role); the allow-list in
// TransitionPolicy is the single source of truth for what each role may do.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleDelivery is the courier assigned to the delivery.
	RoleDelivery

	// RoleMerchant is the merchant preparing the order.
	RoleMerchant

	// RoleCustomer is the ordering customer.
	RoleCustomer

	// RoleAdmin is a back-office operator with unrestricted transitions.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "unknown",
		RoleDelivery: "delivery",
		RoleMerchant: "merchant",
		RoleCustomer: "customer",
		RoleAdmin:    "admin",
	}
}

// Validate checks if the Role is one of the enumerated actor kinds.
func (r Role) Validate() error {
	if r == RoleUnknown {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire name of the role, e.g. "merchant".
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

// RoleFromString parses a wire name produced by String.
func RoleFromString(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if name == s && role != RoleUnknown {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role name", s))
}
