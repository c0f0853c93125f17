package platform

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Download host tokens.
const (
	TokenWindows = "win"
	TokenMacOS   = "osx"
	TokenLinux   = "linux"

	ArchX64   = "x64"
	ArchARM64 = "arm64"
	ArchIA32  = "ia32"

	windowsSuffix = ".exe"

	// ExecutableMode is applied to runtime binaries outside Windows.
	ExecutableMode os.FileMode = 0o755
)

//nolint:gochecknoglobals // Static lookup tables.
var (
	osTokens = map[string]string{
		"windows": TokenWindows,
		"darwin":  TokenMacOS,
		"linux":   TokenLinux,
	}

	// archTokens maps raw machine names to download tokens.
	archTokens = map[string]string{
		"AMD64":  ArchX64,
		"x86_64": ArchX64,
		"arm64":  ArchARM64,
		"i386":   ArchIA32,
		"x86":    ArchIA32,
	}

	// goMachines maps GOARCH values to the machine names above.
	goMachines = map[string]string{
		"amd64": "x86_64",
		"arm64": "arm64",
		"386":   "i386",
	}

	// runtimeBinaries are the file names NW.js ships its executable under.
	runtimeBinaries = []string{"nw", "nwjs"}
)

// Shortcut describes a desktop shortcut to create next to the game.
type Shortcut struct {
	// Path is where the shortcut file is written.
	Path string
	// Target is the executable the shortcut launches.
	Target string
	// WorkingDir is the directory the executable starts in.
	WorkingDir string
	// Description is shown as the shortcut tooltip.
	Description string
}

// ShortcutCreator creates desktop shortcuts. Implementations that cannot
// create shortcuts return ("", nil).
type ShortcutCreator interface {
	CreateShortcut(ctx context.Context, shortcut Shortcut) (string, error)
}

// Platform is the per-OS capability set used by the swap pipeline.
type Platform struct {
	// GOOS is the operating system this variant was built for.
	GOOS string
	// OSToken is the platform part of the runtime archive name.
	OSToken string
	// ArchToken is the architecture part of the runtime archive name.
	ArchToken string
	// Shortcuts is the optional shortcut collaborator; never nil.
	Shortcuts ShortcutCreator
}

// Detect returns the variant for the running process.
func Detect() *Platform {
	p := For(runtime.GOOS, MachineFromGOARCH(runtime.GOARCH))
	p.Shortcuts = nativeShortcuts()

	return p
}

// For returns the variant for goos and a raw machine name. Shortcut creation
// is disabled; use Detect for the native collaborator.
func For(goos, machine string) *Platform {
	return &Platform{
		GOOS:      goos,
		OSToken:   OSToken(goos),
		ArchToken: ArchToken(machine),
		Shortcuts: NoShortcuts{},
	}
}

// OSToken maps an operating system name to its download token.
// Unknown systems fall back to the Windows token.
func OSToken(goos string) string {
	if token, ok := osTokens[goos]; ok {
		return token
	}

	return TokenWindows
}

// ArchToken maps a raw machine name to its download token.
// Unknown machines fall back to x64.
func ArchToken(machine string) string {
	if token, ok := archTokens[machine]; ok {
		return token
	}

	return ArchX64
}

// MachineFromGOARCH translates a GOARCH value into a raw machine name.
// Unknown values are returned unchanged.
func MachineFromGOARCH(goarch string) string {
	if machine, ok := goMachines[goarch]; ok {
		return machine
	}

	return goarch
}

// IsWindows reports whether this is the Windows-family variant.
func (p *Platform) IsWindows() bool {
	return p.OSToken == TokenWindows
}

// ArchiveExtension is ".zip" on Windows and ".tar.gz" elsewhere.
func (p *Platform) ArchiveExtension() string {
	if p.IsWindows() {
		return ".zip"
	}

	return ".tar.gz"
}

// ExecutableName applies the native executable suffix to name.
// A suffix the user already typed is not doubled.
func (p *Platform) ExecutableName(name string) string {
	name = TrimExecutableSuffix(name)
	if p.IsWindows() {
		return name + windowsSuffix
	}

	return name
}

// ExecutableCandidates lists the runtime executable names to look for, in priority order.
func (p *Platform) ExecutableCandidates() []string {
	switch {
	case p.IsWindows():
		return []string{"nw" + windowsSuffix, "nwjs" + windowsSuffix}
	case p.OSToken == TokenMacOS:
		return []string{"nwjs", "nw"}
	default:
		return []string{"nw", "nwjs"}
	}
}

// IsRuntimeBinary reports whether name is one of the runtime executable names
// that need the executable bit.
func (p *Platform) IsRuntimeBinary(name string) bool {
	for _, binary := range runtimeBinaries {
		if name == binary {
			return true
		}
	}

	return false
}

// MarkExecutable sets the executable permission bits. No-op on Windows.
func (p *Platform) MarkExecutable(path string) error {
	if p.IsWindows() {
		return nil
	}

	if err := os.Chmod(path, ExecutableMode); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}

	return nil
}

// TrimExecutableSuffix strips a trailing ".exe" in any letter case.
func TrimExecutableSuffix(name string) string {
	name = strings.TrimSpace(name)
	if strings.HasSuffix(strings.ToLower(name), windowsSuffix) {
		return name[:len(name)-len(windowsSuffix)]
	}

	return name
}

// NoShortcuts is the ShortcutCreator for platforms without shortcut support.
type NoShortcuts struct{}

// CreateShortcut does nothing.
func (NoShortcuts) CreateShortcut(context.Context, Shortcut) (string, error) {
	return "", nil
}
