//go:build windows

package platform

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

// sFalse is returned by CoInitializeEx when COM is already initialized on the thread.
const sFalse = 0x00000001

// wscriptShortcuts creates .lnk files through the WScript.Shell COM object.
type wscriptShortcuts struct{}

//nolint:ireturn // Variant selection.
func nativeShortcuts() ShortcutCreator {
	return wscriptShortcuts{}
}

// CreateShortcut writes shortcut.Path pointing at shortcut.Target.
func (wscriptShortcuts) CreateShortcut(_ context.Context, shortcut Shortcut) (string, error) {
	// COM apartments are per OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		var oleErr *ole.OleError
		if !errors.As(err, &oleErr) || oleErr.Code() != sFalse {
			return "", fmt.Errorf("initialize COM: %w", err)
		}
	}
	defer ole.CoUninitialize()

	unknown, err := oleutil.CreateObject("WScript.Shell")
	if err != nil {
		return "", fmt.Errorf("create WScript.Shell: %w", err)
	}
	defer unknown.Release()

	shell, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return "", fmt.Errorf("query WScript.Shell: %w", err)
	}
	defer shell.Release()

	created, err := oleutil.CallMethod(shell, "CreateShortcut", shortcut.Path)
	if err != nil {
		return "", fmt.Errorf("create shortcut: %w", err)
	}

	link := created.ToIDispatch()
	defer link.Release()

	properties := []struct {
		name  string
		value string
	}{
		{"TargetPath", shortcut.Target},
		{"WorkingDirectory", shortcut.WorkingDir},
		{"Description", shortcut.Description},
	}
	for _, property := range properties {
		if _, err = oleutil.PutProperty(link, property.name, property.value); err != nil {
			return "", fmt.Errorf("set shortcut %s: %w", property.name, err)
		}
	}

	if _, err = oleutil.CallMethod(link, "Save"); err != nil {
		return "", fmt.Errorf("save shortcut: %w", err)
	}

	return shortcut.Path, nil
}
