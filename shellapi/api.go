// Package shellapi is the narrow interface the out-of-scope HTTP wrapper and
// interactive shell front-ends consume: create/open an image and dispatch
// one of a fixed command set against it. Everything here returns a plain
// Result map so a front-end can serialize it directly to JSON, matching the
// original command dispatcher's contract.
package shellapi

import (
	"errors"
	"fmt"
	"strings"

	diskoerrors "github.com/jero98772/Filesystem/errors"
	"github.com/jero98772/Filesystem/filesystem"
)

// Result is a JSON-shaped response from CreateFilesystem or ExecuteCommand.
type Result map[string]any

// CreateFilesystem builds a new image and closes it, returning a
// status/message result or an error result if creation failed.
func CreateFilesystem(path string, sizeMB int) Result {
	fs, err := filesystem.Create(path, sizeMB)
	if err != nil {
		return Result{"error": err.Error()}
	}
	defer fs.Close()

	return Result{
		"status":  "ok",
		"message": fmt.Sprintf("created %s (%d MiB)", path, sizeMB),
	}
}

// OpenFilesystem mounts an existing image.
func OpenFilesystem(path string) (*filesystem.FileSystem, error) {
	return filesystem.Open(path)
}

// ExecuteCommand dispatches one shell-style command against an already
// mounted filesystem.
func ExecuteCommand(fs *filesystem.FileSystem, command string, args []string) Result {
	switch command {
	case "ls":
		return cmdLs(fs, args)
	case "tree":
		return cmdTree(fs, args)
	case "mkdir":
		return cmdMkdir(fs, args)
	case "touch":
		return cmdTouch(fs, args)
	case "write":
		return cmdWrite(fs, args)
	case "read":
		return cmdRead(fs, args)
	case "rm":
		return cmdRm(fs, args)
	case "info":
		return cmdInfo(fs, args)
	case "stats":
		return cmdStats(fs)
	case "help":
		return cmdHelp()
	default:
		return Result{"error": fmt.Sprintf("Unknown command: %s", command)}
	}
}

func arg(args []string, i int, def string) string {
	if i < len(args) {
		return args[i]
	}
	return def
}

// cmdLs degrades to an empty listing rather than an error result for a
// missing or non-directory path: ls has no {error} shape in the command
// table, only {path, entries}.
func cmdLs(fs *filesystem.FileSystem, args []string) Result {
	path := arg(args, 0, "/")
	entries, err := fs.ListDirectory(path)
	if err != nil {
		entries = []string{}
	}
	return Result{"path": path, "entries": entries}
}

// cmdTree degrades to an empty tree rather than an error result for a
// missing path, mirroring cmdLs.
func cmdTree(fs *filesystem.FileSystem, args []string) Result {
	path := arg(args, 0, "/")
	lines, err := fs.Tree(path)
	if err != nil {
		lines = []string{}
	}
	return Result{"path": path, "tree": lines}
}

func cmdMkdir(fs *filesystem.FileSystem, args []string) Result {
	if len(args) < 1 {
		return Result{"error": diskoerrors.ErrUsage.WithMessage("mkdir <path>").Error()}
	}
	path := args[0]
	if err := fs.CreateDirectory(path); err != nil {
		return Result{"error": err.Error()}
	}
	return Result{"status": "ok", "message": fmt.Sprintf("created directory %s", path)}
}

func cmdTouch(fs *filesystem.FileSystem, args []string) Result {
	if len(args) < 1 {
		return Result{"error": diskoerrors.ErrUsage.WithMessage("touch <path>").Error()}
	}
	path := args[0]
	if err := fs.CreateFile(path); err != nil {
		return Result{"error": err.Error()}
	}
	return Result{"status": "ok", "message": fmt.Sprintf("created file %s", path)}
}

func cmdWrite(fs *filesystem.FileSystem, args []string) Result {
	if len(args) < 2 {
		return Result{"error": diskoerrors.ErrUsage.WithMessage("write <path> <text>").Error()}
	}
	path := args[0]
	text := strings.Join(args[1:], " ")
	if err := fs.WriteFile(path, []byte(text)); err != nil {
		return Result{"error": err.Error()}
	}
	return Result{"status": "ok", "message": fmt.Sprintf("wrote %d bytes to %s", len(text), path)}
}

// cmdRead degrades to empty content rather than an error result when path
// doesn't resolve to a readable file; only the missing-argument usage error
// above is a real {error} result, per the command table.
func cmdRead(fs *filesystem.FileSystem, args []string) Result {
	if len(args) < 1 {
		return Result{"error": diskoerrors.ErrUsage.WithMessage("read <path>").Error()}
	}
	path := args[0]
	content, err := fs.ReadFile(path)
	if err != nil {
		content = []byte{}
	}
	return Result{"path": path, "content": string(content)}
}

func cmdRm(fs *filesystem.FileSystem, args []string) Result {
	if len(args) < 1 {
		return Result{"error": diskoerrors.ErrUsage.WithMessage("rm <path>").Error()}
	}
	path := args[0]
	if err := fs.DeleteFile(path); err != nil {
		return Result{"error": err.Error()}
	}
	return Result{"status": "ok", "message": fmt.Sprintf("removed %s", path)}
}

func cmdInfo(fs *filesystem.FileSystem, args []string) Result {
	if len(args) < 1 {
		return Result{"error": diskoerrors.ErrUsage.WithMessage("info <path>").Error()}
	}
	path := args[0]
	info, err := fs.GetFileInfo(path)
	if err != nil {
		if errors.Is(err, diskoerrors.ErrNotFound) {
			return Result{"error": fmt.Sprintf("File not found: %s", path)}
		}
		return Result{"error": err.Error()}
	}
	return Result{
		"path":     path,
		"type":     info.Type,
		"size":     info.Size,
		"created":  info.Created,
		"modified": info.Modified,
		"accessed": info.Accessed,
	}
}

func cmdStats(fs *filesystem.FileSystem) Result {
	s := fs.GetStats()
	return Result{
		"total_blocks": s.TotalBlocks,
		"free_blocks":  s.FreeBlocks,
		"used_blocks":  s.TotalBlocks - s.FreeBlocks,
		"total_inodes": s.TotalInodes,
		"used_inodes":  s.UsedInodes,
		"free_inodes":  s.TotalInodes - s.UsedInodes,
	}
}

func cmdHelp() Result {
	return Result{"commands": map[string]string{
		"ls":    "ls [path] - list directory contents",
		"tree":  "tree [path] - render a directory tree",
		"mkdir": "mkdir <path> - create a directory",
		"touch": "touch <path> - create an empty file",
		"write": "write <path> <text> - write text to a file",
		"read":  "read <path> - print a file's content",
		"rm":    "rm <path> - delete a file",
		"info":  "info <path> - show metadata for a path",
		"stats": "stats - show image-wide statistics",
		"help":  "help - show this message",
	}}
}
