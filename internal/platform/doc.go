// Package platform isolates every operating-system difference a runtime swap
// cares about behind one Platform value selected at startup: the download
// tokens, the executable suffix and candidate names, the executable
// permission bit and the optional desktop-shortcut collaborator.
package platform
