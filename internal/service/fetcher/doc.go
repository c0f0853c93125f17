// Package fetcher locates an NW.js runtime for a swap: it builds the
// download URL for a release, downloads the archive and unpacks it, or
// hands back a runtime folder the user already has.
package fetcher
