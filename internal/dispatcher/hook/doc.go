// Package hook provides the before/after middleware of the command kernel.
//
// Hooks intercept command dispatch for logging, validation, history
// recording and other cross-cutting concerns. They are ordered by priority;
// hooks with equal priority run in registration order.
//
// # Hook Types
//
//   - PreDispatchHook: runs before the handler. It may rewrite the command,
//     inject values into the execution context, or cancel the dispatch.
//   - PostDispatchHook: runs after the handler. It may inspect or modify
//     the result before it is committed.
//
// # Priority System
//
//   - Pre-hooks: higher priority runs first.
//   - Post-hooks: lower priority runs first, higher runs last (to see final results).
//
// Standard priority constants are provided:
//
//	PriorityAudit      = 1000 // audit and timing
//	PriorityValidation = 800  // validation before processing
//	PriorityHistory    = 500  // history snapshot and recording
//
// # Built-in Hooks
//
//   - AuditHook: logs all dispatched commands through slog
//   - TimingHook: reports handler durations
//   - FilterHook: allows or blocks commands with a predicate
package hook
