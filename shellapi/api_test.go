package shellapi_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jero98772/Filesystem/filesystem"
	"github.com/jero98772/Filesystem/shellapi"
)

func mountedFS(t *testing.T) *filesystem.FileSystem {
	t.Helper()
	path := filepath.Join(t.TempDir(), "image.img")
	result := shellapi.CreateFilesystem(path, 1)
	require.Equal(t, "ok", result["status"])

	fs, err := shellapi.OpenFilesystem(path)
	require.NoError(t, err)
	t.Cleanup(func() { fs.Close() })
	return fs
}

func TestCreateFilesystemResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.img")
	result := shellapi.CreateFilesystem(path, 1)
	require.Equal(t, "ok", result["status"])
	require.Contains(t, result["message"], path)
}

func TestMkdirTouchWriteReadCycle(t *testing.T) {
	fs := mountedFS(t)

	r := shellapi.ExecuteCommand(fs, "mkdir", []string{"/docs"})
	require.Equal(t, "ok", r["status"])

	r = shellapi.ExecuteCommand(fs, "touch", []string{"/docs/readme.txt"})
	require.Equal(t, "ok", r["status"])

	r = shellapi.ExecuteCommand(fs, "write", []string{"/docs/readme.txt", "hello", "world"})
	require.Equal(t, "ok", r["status"])

	r = shellapi.ExecuteCommand(fs, "read", []string{"/docs/readme.txt"})
	require.Equal(t, "hello world", r["content"])

	r = shellapi.ExecuteCommand(fs, "ls", []string{"/docs"})
	require.Equal(t, []string{"readme.txt"}, r["entries"])
}

func TestInfoNotFound(t *testing.T) {
	fs := mountedFS(t)
	r := shellapi.ExecuteCommand(fs, "info", []string{"/missing"})
	require.Equal(t, "File not found: /missing", r["error"])
}

func TestUsageErrorOnMissingArgument(t *testing.T) {
	fs := mountedFS(t)
	r := shellapi.ExecuteCommand(fs, "mkdir", nil)
	require.Contains(t, r, "error")
}

func TestUnknownCommand(t *testing.T) {
	fs := mountedFS(t)
	r := shellapi.ExecuteCommand(fs, "frobnicate", nil)
	require.Equal(t, "Unknown command: frobnicate", r["error"])
}

func TestStats(t *testing.T) {
	fs := mountedFS(t)
	r := shellapi.ExecuteCommand(fs, "stats", nil)
	require.Contains(t, r, "total_blocks")
	require.Contains(t, r, "free_blocks")
	require.Contains(t, r, "used_inodes")
}

func TestHelpListsCommands(t *testing.T) {
	fs := mountedFS(t)
	r := shellapi.ExecuteCommand(fs, "help", nil)
	commands, ok := r["commands"].(map[string]string)
	require.True(t, ok)
	require.Contains(t, commands, "mkdir")
}
