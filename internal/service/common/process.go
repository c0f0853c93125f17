//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"os"

	"github.com/mitchellh/go-ps"
)

// Process is a running process matched by executable name.
type Process struct {
	// PID is the process identifier.
	PID int
	// Executable is the process executable name.
	Executable string
}

// RunningProcesses lists processes, other than the current one, whose
// executable name is in names.
func RunningProcesses(names []string) ([]Process, error) {
	wanted := sliceToSet(names)

	processList, err := ps.Processes()
	if err != nil {
		return nil, err
	}

	thisProcessID := os.Getpid()

	var matched []Process

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if _, found := wanted[process.Executable()]; !found {
			continue
		}

		matched = append(matched, Process{
			PID:        process.Pid(),
			Executable: process.Executable(),
		})
	}

	return matched, nil
}

// sliceToSet converts a slice to a set for quick lookups.
func sliceToSet[T comparable](elements []T) map[T]struct{} {
	result := make(map[T]struct{}, len(elements))
	for _, value := range elements {
		result[value] = struct{}{}
	}

	return result
}
