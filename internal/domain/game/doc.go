// Package game describes the on-disk shape of a packaged RPG Maker MV game:
// which paths belong to the game, which paths belong to the NW.js runtime and
// may be removed, and the error kinds a runtime swap can fail with.
//
// Every list here is an ordered, statically declared sequence; callers iterate
// them in order and never discover names dynamically.
package game
