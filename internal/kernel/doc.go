// Package kernel assembles a focus kernel instance: the zone registry, the
// command dispatcher with the built-in OS handlers, history, keymaps,
// clipboard and optional persistence.
//
// Every kernel is independent. Tests and hosts create as many as they need
// and release each with Dispose.
//
//	k, err := kernel.New(kernel.Options{Logger: logger})
//	if err != nil {
//		return err
//	}
//	defer k.Dispose()
//
//	k.Register("list", zone.Metadata{Config: zone.Preset(zone.RoleListbox), Items: ids})
//	k.Dispatch(command.New(command.Navigate, command.NavigatePayload{Direction: geom.DirDown}))
package kernel
