// Package tracking implements the delivery tracking aggregate and its state machine.
//
// DeliveryTracking is the central mutable entity of the engine: it carries the
// lifecycle status of a single delivery, the optimistic-concurrency version, the
// short-lived operation lock, the courier's last validated location, and the
// append-only transition history.
//
// The state machine is expressed as a typed TransitionPolicy: a table mapping
// (status, action) to the resulting status plus an explicit per-role allow-list.
// The table is verified for completeness at construction time, so a status with
// no outgoing edge is caught before the engine serves a single request.
//
// Side effects are limited to producing human-readable notification messages;
// dispatching them is the responsibility of external collaborators.
package tracking
