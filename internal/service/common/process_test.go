//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRunningProcesses never reports the current process and ignores unknown names.
func TestRunningProcesses(t *testing.T) {
	t.Parallel()

	matched, err := RunningProcesses([]string{"definitely-not-a-running-binary-7f3a"})
	require.NoError(t, err)
	require.Empty(t, matched)
}

// TestSliceToSet checks membership.
func TestSliceToSet(t *testing.T) {
	t.Parallel()

	set := sliceToSet([]string{"nw", "nwjs", "nw"})
	require.Len(t, set, 2)
	require.Contains(t, set, "nwjs")
}
