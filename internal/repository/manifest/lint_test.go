package manifest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestLint_Valid accepts a typical RPG Maker MV manifest.
func TestLint_Valid(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte(`{"name":"my-game","main":"index.html","window":{"width":816,"height":624,"toolbar":false}}`))
	require.NoError(t, err)

	issues, err := Lint(doc)
	require.NoError(t, err)
	require.Empty(t, issues)
}

// TestLint_Issues reports type problems with their location.
func TestLint_Issues(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte(`{"name":"My Game","window":{"width":"wide"}}`))
	require.NoError(t, err)

	issues, err := Lint(doc)
	require.NoError(t, err)
	require.NotEmpty(t, issues)

	paths := make([]string, 0, len(issues))
	for _, issue := range issues {
		paths = append(paths, issue.Path)
		require.NotEmpty(t, issue.String())
	}

	require.Contains(t, paths, "/name")
	require.Contains(t, paths, "/window/width")
}
