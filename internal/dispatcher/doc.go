// Package dispatcher is the command kernel: it routes commands to handlers,
// runs middleware around them and commits their results.
//
// # Architecture
//
// The dispatcher resolves a command type through two tiers:
//
//  1. Handler Registry: maps command types to handlers per scope. A scope
//     is a zone id or the global scope. Lookup tries the active zone, then
//     its ancestors nearest first, then the global scope.
//
//  2. Namespace Router: routes application commands by namespace prefix
//     (e.g., "todo.delete" is routed to the "todo" namespace handler).
//
// # Dispatch Cycle
//
// When a command is dispatched:
//
//  1. An ExecutionContext is built from the committed focus and data
//  2. The handler is resolved; a missing handler is an error
//  3. The handler's when guard runs; false blocks the command
//  4. Pre-dispatch hooks run (can rewrite the command or cancel it)
//  5. The handler runs (with optional panic recovery)
//  6. Post-dispatch hooks run (history records here)
//  7. A successful result's focus and data are committed
//  8. Follow-up commands from the result are dispatched; more than one
//     runs inside a single history transaction
//  9. Subscribers receive every committed change
//
// The cycle is synchronous and runs to completion before the next
// dispatch starts. Handlers never dispatch directly; they return follow-up
// commands in Result.Dispatch.
//
// # Usage
//
//	d := dispatcher.NewWithDefaults()
//	d.SetZones(zones)
//	d.RegisterHandler(command.Navigate, navigateHandler)
//	d.RegisterScoped("board", "card.open", openHandler, canOpen)
//	d.RegisterNamespace("todo", todoHandler)
//
//	unsubscribe := d.Subscribe(func(c dispatcher.Change) { render(c.Next) })
//	defer unsubscribe()
//
//	result := d.Dispatch(command.New(command.Navigate, command.NavigatePayload{Direction: geom.DirDown}))
package dispatcher
