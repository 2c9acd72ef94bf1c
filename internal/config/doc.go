// Package config loads field profiles for numentry.
//
// A profile is a TOML file describing one numeric field: its units,
// bounds, resolution, rendering and increment policy. Decimal settings
// are written as strings so that they keep their exact value:
//
//	[field]
//	units = "frequency"
//	min = "0"
//	max = "6e9"
//	resolution = "1"
//	value = "999"
//
//	[increment]
//	wheel = "1000"
//	prefer_unit_step = true
//
//	[catalog]
//	path = "units.yaml"
//
//	[log]
//	level = "debug"
//
// The units setting names a set from the optional YAML unit catalog, or
// one of the standard sets. Relative catalog paths are resolved against
// the profile's directory.
//
// # Live reload
//
// Watcher observes a profile on disk with fsnotify and hands each
// successfully reloaded profile to a callback. Invalid edits are
// reported and the previous profile stays in effect.
package config
