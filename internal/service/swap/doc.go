// Package swap replaces the NW.js runtime inside an RPG Maker MV game folder.
//
// A run validates the folder, optionally backs it up, resolves a runtime,
// copies the game's own files into a holding area, empties the folder,
// installs the runtime, copies the game files back and finally renames the
// runtime executable and strips files the game does not need.
//
// Nothing in the game folder is deleted until the holding area is known to
// contain package.json and www.
package swap
