// Package validator checks that a folder is a packaged RPG Maker MV game
// and repairs its package.json so NW.js accepts it.
//
// NW.js refuses to start an application whose manifest has no name. When
// the name is missing or blank one is derived from the folder name and the
// manifest is written back with every other field left as it was.
package validator
