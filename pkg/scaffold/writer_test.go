package scaffold

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWriteRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my-prompts")
	artifacts := Generate(baseOptions())

	w := NewWriter(zap.NewNop())
	require.NoError(t, w.Write(dir, artifacts))

	for _, a := range artifacts {
		data, err := os.ReadFile(filepath.Join(dir, a.Path))
		require.NoError(t, err)
		assert.Equal(t, a.Content, string(data), "content mismatch for %s", a.Path)
	}
}

func TestWriteMarksExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no executable bit on windows")
	}

	dir := filepath.Join(t.TempDir(), "my-prompts")
	w := NewWriter(zap.NewNop())
	require.NoError(t, w.Write(dir, Generate(baseOptions())))

	info, err := os.Stat(filepath.Join(dir, "run.sh"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0o100, "run.sh should be executable by owner")

	info, err = os.Stat(filepath.Join(dir, "go.mod"))
	require.NoError(t, err)
	assert.Zero(t, info.Mode()&0o100, "go.mod should not be executable")
}

func TestWriteCreatesNestedDirectories(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "proj")
	w := NewWriter(zap.NewNop())

	err := w.Write(dir, []Artifact{{Path: filepath.Join("scripts", "setup.sh"), Content: "#!/bin/sh\n", Executable: true}})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "scripts", "setup.sh"))
	assert.NoError(t, err)
}

func TestWriteAbortsOnFirstFailure(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "proj")
	w := NewWriter(zap.NewNop())

	// a file where a directory must go makes the second artifact unwritable
	artifacts := []Artifact{
		{Path: "first.txt", Content: "ok"},
		{Path: filepath.Join("first.txt", "nested.txt"), Content: "cannot land"},
		{Path: "third.txt", Content: "never written"},
	}
	err := w.Write(dir, artifacts)
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "first.txt"))
	assert.NoError(t, statErr, "files written before the failure stay in place")
	_, statErr = os.Stat(filepath.Join(dir, "third.txt"))
	assert.True(t, os.IsNotExist(statErr), "artifacts after the failure are not written")
}
