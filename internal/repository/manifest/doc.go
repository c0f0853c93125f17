// Package manifest reads and writes the NW.js package.json of a game.
//
// Document keeps the top-level keys in file order and every value as the
// original JSON text, so rewriting the file after changing one field leaves
// all other fields, including ones this tool does not know about, untouched.
// Lint checks the well-known NW.js fields against an embedded JSON schema.
package manifest
