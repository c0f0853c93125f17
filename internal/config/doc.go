// Package config defines the nwjs-swap settings and provides helpers to
// load, validate and save them in YAML format.
//
// Settings are layered: built-in defaults, then the settings file, then
// NWJS_SWAP_* environment variables. Command-line flags are applied on top
// by the caller.
package config
