// Package config loads the kernel configuration.
//
// A configuration file is TOML or YAML, chosen by extension. Fields absent
// from the file keep the values from Default. A minimal TOML file:
//
//	[history]
//	limit = 100
//
//	[navigation]
//	edge_entry_tolerance = 40
//	typeahead_timeout_ms = 750
//
//	[keymap]
//	file = "keys.toml"
//
//	[[keymap.bindings]]
//	keys = "Ctrl+D"
//	command = "OS_DELETE"
//
// Watch reloads a keymap file whenever it changes on disk.
package config
