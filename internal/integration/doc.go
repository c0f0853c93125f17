// Package integration runs the whole swap pipeline against real folders
// and a local HTTP server.
package integration
