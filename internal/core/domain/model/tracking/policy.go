package tracking

import (
	"fmt"
	"slices"

	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

// transitionRule binds an action to its single resulting status and the roles
// allowed to request it.
type transitionRule struct {
	target Status
	roles  []Role
}

// TransitionPolicy is the authoritative transition table of the state machine:
// for every non-terminal status it lists the permitted actions, the status each
// action results in, and the roles allowed to request it.
//
// The policy is immutable after construction. NewTransitionPolicy verifies the
// table's structural invariants, so a status accidentally left without an
// outgoing edge fails at startup instead of stranding deliveries at runtime.
type TransitionPolicy struct {
	rules map[Status]map[Action]transitionRule
	guard guard.ConstructorGuard
}

// ErrTransitionPolicyIsNotConstructed is returned when using a zero-value policy.
var ErrTransitionPolicyIsNotConstructed = errs.NewValueIsRequiredError(
	"transition policy must be created via NewTransitionPolicy constructor")

// NewTransitionPolicy builds the transition table and verifies it:
//   - every non-terminal status has at least one outgoing action
//   - terminal statuses have none
//   - every action maps to exactly one resulting status across the whole table
//   - every rule names at least one role and a valid target
func NewTransitionPolicy() (TransitionPolicy, error) {
	everyone := []Role{RoleDelivery, RoleMerchant, RoleCustomer, RoleAdmin}

	rules := map[Status]map[Action]transitionRule{
		StatusAssigned: {
			ActionStartPickup: {StatusHeadingToPickup, []Role{RoleDelivery, RoleAdmin}},
			// A courier can accept an order while already standing at the
			// pickup point, so arrival is reachable without the heading leg.
			ActionArrivePickup: {StatusAtPickup, []Role{RoleDelivery, RoleAdmin}},
			ActionCancel:       {StatusCancelled, everyone},
		},
		StatusHeadingToPickup: {
			ActionArrivePickup: {StatusAtPickup, []Role{RoleDelivery, RoleAdmin}},
			ActionCancel:       {StatusCancelled, []Role{RoleDelivery, RoleMerchant, RoleAdmin}},
		},
		StatusAtPickup: {
			ActionConfirmPickup: {StatusPickedUp, []Role{RoleDelivery, RoleMerchant, RoleAdmin}},
			ActionCancel:        {StatusCancelled, []Role{RoleDelivery, RoleMerchant, RoleAdmin}},
		},
		StatusPickedUp: {
			ActionStartDelivery: {StatusHeadingToDelivery, []Role{RoleDelivery, RoleAdmin}},
			ActionCancel:        {StatusCancelled, []Role{RoleAdmin}},
		},
		StatusHeadingToDelivery: {
			ActionArriveDelivery: {StatusAtDelivery, []Role{RoleDelivery, RoleAdmin}},
			ActionCancel:         {StatusCancelled, []Role{RoleAdmin}},
		},
		StatusAtDelivery: {
			ActionComplete: {StatusDelivered, []Role{RoleDelivery, RoleAdmin}},
			ActionCancel:   {StatusCancelled, []Role{RoleAdmin}},
		},
	}

	p := TransitionPolicy{
		rules: rules,
		guard: guard.NewConstructorGuard(),
	}

	if err := p.verify(); err != nil {
		return TransitionPolicy{}, err
	}

	return p, nil
}

var defaultPolicy = func() TransitionPolicy {
	p, err := NewTransitionPolicy()
	if err != nil {
		panic(fmt.Sprintf("transition policy is inconsistent: %v", err))
	}
	return p
}()

// DefaultTransitionPolicy returns the policy built at package initialization.
func DefaultTransitionPolicy() TransitionPolicy {
	return defaultPolicy
}

// Validate checks if the policy was properly constructed.
func (p TransitionPolicy) Validate() error {
	return p.guard.Validate(ErrTransitionPolicyIsNotConstructed)
}

// Resolve returns the status the action results in, after checking that the
// action exists for the current status and that the role is allowed to request
// it. On any violation it returns an IllegalTransitionError and the record is
// to be left untouched by the caller.
func (p TransitionPolicy) Resolve(current Status, action Action, role Role) (Status, error) {
	if err := p.Validate(); err != nil {
		return StatusUnknown, err
	}
	if current.IsTerminal() {
		return StatusUnknown, NewTerminalStateError(current)
	}

	actions, ok := p.rules[current]
	if !ok {
		return StatusUnknown, NewIllegalTransitionError(current, action, role)
	}

	rule, ok := actions[action]
	if !ok || !slices.Contains(rule.roles, role) {
		return StatusUnknown, NewIllegalTransitionError(current, action, role)
	}

	return rule.target, nil
}

// AllowedActions lists the actions the given role may request in the given
// status, in no particular order. Empty for terminal statuses.
func (p TransitionPolicy) AllowedActions(current Status, role Role) []Action {
	actions := make([]Action, 0, 2)
	for action, rule := range p.rules[current] {
		if slices.Contains(rule.roles, role) {
			actions = append(actions, action)
		}
	}
	return actions
}

func (p TransitionPolicy) verify() error {
	actionTargets := make(map[Action]Status)

	for status, actions := range p.rules {
		if err := status.Validate(); err != nil {
			return err
		}
		if status.IsTerminal() {
			return errs.NewValueIsInvalidErrorWithCause("transition policy",
				fmt.Errorf("terminal status %s must not have outgoing transitions", status))
		}
		if len(actions) == 0 {
			return errs.NewValueIsInvalidErrorWithCause("transition policy",
				fmt.Errorf("status %s has no outgoing transitions", status))
		}

		for action, rule := range actions {
			if err := action.Validate(); err != nil {
				return err
			}
			if err := rule.target.Validate(); err != nil {
				return err
			}
			if len(rule.roles) == 0 {
				return errs.NewValueIsInvalidErrorWithCause("transition policy",
					fmt.Errorf("transition %s/%s allows no roles", status, action))
			}
			if target, seen := actionTargets[action]; seen && target != rule.target {
				return errs.NewValueIsInvalidErrorWithCause("transition policy",
					fmt.Errorf("action %s maps to both %s and %s", action, target, rule.target))
			}
			actionTargets[action] = rule.target
		}
	}

	// Every non-terminal status must appear as a rule source.
	for _, status := range []Status{
		StatusAssigned, StatusHeadingToPickup, StatusAtPickup,
		StatusPickedUp, StatusHeadingToDelivery, StatusAtDelivery,
	} {
		if _, ok := p.rules[status]; !ok {
			return errs.NewValueIsInvalidErrorWithCause("transition policy",
				fmt.Errorf("status %s has no outgoing transitions", status))
		}
	}

	return nil
}
