// Package services provides domain services for the delivery tracking engine.
// It implements business logic that spans multiple domain concepts and doesn't
// naturally belong to a single aggregate root.
//
// The package includes:
//   - GeofenceEvaluator: A domain service deciding, from a validated location
//     fix and the record's fixed pickup/drop-off coordinates, whether an
//     automatic lifecycle transition should be proposed.
//
// Domain services are pure: they hold configuration but no per-record state.
// Debounce and confirmation of automatic proposals are applied by the
// application layer on top of the evaluator's output.
package services
