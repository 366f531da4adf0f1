package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gookit/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.Disable()
	os.Exit(m.Run())
}

// capture runs fn with cmd output redirected to a buffer.
func capture(t *testing.T, cmd *cobra.Command, fn func() error) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	defer func() {
		cmd.SetOut(nil)
		cmd.SetErr(nil)
	}()

	err := fn()
	return buf.String(), err
}

// withFlags sets the persistent flag variables for one test.
func withFlags(t *testing.T, config, source string) {
	t.Helper()

	origCfg, origSource, origLevel := cfgFile, sourcePath, logLevel
	t.Cleanup(func() {
		cfgFile, sourcePath, logLevel = origCfg, origSource, origLevel
	})
	cfgFile, sourcePath = config, source
}

const sampleCSV = "Dex Number,Name,In Collection Check\n" +
	"1,Bulbasaur,True\n" +
	"2,Ivysaur,False\n" +
	"152,Chikorita,1\n" +
	"x,Missingno,True\n" +
	"2000,Ghost,True\n"

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Pokedex.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))
	return path
}

func TestExecute(t *testing.T) {
	assert.NotNil(t, Execute)
}

func TestVersionVariables(t *testing.T) {
	assert.NotEmpty(t, Version, "Version should not be empty")
	assert.NotEmpty(t, Commit, "Commit should not be empty")
}

func TestCLIFlagsVariables(t *testing.T) {
	assert.Equal(t, "", cfgFile, "cfgFile should default to built-in config")
	assert.Equal(t, "", logLevel)
	assert.Equal(t, "", logFormat)
	assert.Equal(t, "", sourcePath)
	assert.False(t, noColor)
}

func TestCommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "inspect", "generations", "validate", "version"} {
		assert.True(t, names[want], "%s command should be added to root command", want)
	}
}
