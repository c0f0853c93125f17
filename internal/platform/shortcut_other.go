//go:build !windows

package platform

//nolint:ireturn // Variant selection.
func nativeShortcuts() ShortcutCreator {
	return NoShortcuts{}
}
