package main

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func stubBuild(t *testing.T) {
	t.Helper()
	previous := currentBuild()
	t.Cleanup(func() {
		version, commit, date = previous.Version, previous.Commit, previous.Date
	})
	version, commit, date = "1.2.3", "abcdef1", "2026-10-03"
}

func TestVersionPrintsBuildDetails(t *testing.T) {
	stubBuild(t)

	stdout, _, err := executeCommand("version")
	require.NoError(t, err)
	require.Contains(t, stdout, "filtration 1.2.3")
	require.Contains(t, stdout, "commit: abcdef1")
	require.Contains(t, stdout, "2026-10-03")
	require.Contains(t, stdout, runtime.Version())
}

func TestVersionShort(t *testing.T) {
	stubBuild(t)

	stdout, _, err := executeCommand("version", "--short")
	require.NoError(t, err)
	require.Equal(t, "1.2.3\n", stdout)
}
