// Package prompt asks for swap settings on a terminal when the tool is
// started without a game folder.
package prompt
