package main

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	assert.Contains(t, buf.String(), "graphcheck dev")
}

func TestExecute_ConfigFailure(t *testing.T) {
	// Without a host the configuration is invalid and Execute must report
	// failure before any connection attempt.
	t.Setenv("FALKORDB_HOST", "")
	require.NoError(t, os.Unsetenv("FALKORDB_HOST"))

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	code := Execute(context.Background())
	assert.Equal(t, exitError, code)
}

func TestGlobalFlagsRegistered(t *testing.T) {
	for _, name := range []string{"config", "env-file", "verbose", "no-color"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "missing flag %s", name)
	}
}
