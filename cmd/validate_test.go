package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOutputCommand() (*cobra.Command, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	c := &cobra.Command{}
	c.SetOut(buf)
	c.SetErr(buf)
	return c, buf
}

func TestRunValidate_CleanFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "binds.txt")
	content := "# header\nF1 \"Target_Self\"\nSpace \"+power_exec Distribute_Shields\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	c, buf := newOutputCommand()
	err := runValidate(c, []string{path})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "2 bindings")
	assert.Contains(t, buf.String(), "1 comments")
}

func TestRunValidate_ReportsBadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "binds.txt")
	content := "F1 \"Target_Self\"\nTHIS IS GARBAGE\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	c, buf := newOutputCommand()
	err := runValidate(c, []string{path})

	require.ErrorIs(t, err, errValidationFailed)
	assert.Contains(t, buf.String(), "line 2")
}

func TestRunValidate_WarnsOnUnknownKeyName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "binds.txt")
	content := "Bananas \"Target_Self\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	c, buf := newOutputCommand()
	err := runValidate(c, []string{path})

	require.NoError(t, err, "unknown key names warn, they do not fail validation")
	assert.Contains(t, buf.String(), "unrecognized key name \"Bananas\"")
}

func TestRunValidate_MissingFile(t *testing.T) {
	c, _ := newOutputCommand()
	err := runValidate(c, []string{filepath.Join(t.TempDir(), "nope.txt")})
	assert.Error(t, err)
}

func TestRunKeys_Check(t *testing.T) {
	c, buf := newOutputCommand()
	keysCheck = "ctrl+f1"
	t.Cleanup(func() { keysCheck = "" })

	require.NoError(t, runKeys(c, nil))
	assert.Contains(t, buf.String(), "Ctrl+F1")
}

func TestRunKeys_CheckInvalid(t *testing.T) {
	c, buf := newOutputCommand()
	keysCheck = "NotAKey"
	t.Cleanup(func() { keysCheck = "" })

	err := runKeys(c, nil)
	require.ErrorIs(t, err, errInvalidKeyName)
	assert.Contains(t, buf.String(), "not a recognized key name")
}
