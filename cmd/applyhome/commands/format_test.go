package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPath_DryRunThenWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "청약정보_20250620.md")
	original := "| 항목 | 내용 |\n| --- | --- |\n| 주택유형 | 아파트 |\n"

	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("| a | b |"), 0o644))

	var out bytes.Buffer

	err := formatPath(&out, dir, false)
	require.ErrorIs(t, err, ErrUnformatted)
	assert.Contains(t, out.String(), "Would format")

	unchanged, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(unchanged))

	out.Reset()
	require.NoError(t, formatPath(&out, dir, true))
	assert.Contains(t, out.String(), "Scanned: 1 files")

	out.Reset()
	require.NoError(t, formatPath(&out, dir, false))
	assert.Contains(t, out.String(), "Changed: 0 files")
}

func TestFormatPath_SkipsHiddenDirs(t *testing.T) {
	dir := t.TempDir()
	hidden := filepath.Join(dir, ".git")

	require.NoError(t, os.MkdirAll(hidden, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(hidden, "x.md"), []byte("| a | b |\n|---|---|\n"), 0o644))

	var out bytes.Buffer

	require.NoError(t, formatPath(&out, dir, false))
	assert.Contains(t, out.String(), "Scanned: 0 files")
}
