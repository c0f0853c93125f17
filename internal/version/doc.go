// Package version exposes build metadata for nwjs-swap.
//
// Version, Commit and BuildTime are injected with -ldflags at release time.
// Short and Full render them for the version command; UserAgent identifies
// the tool to the runtime download host.
package version
