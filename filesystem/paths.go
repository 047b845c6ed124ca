package filesystem

import (
	"strings"

	"github.com/jero98772/Filesystem/internal/common"
	"github.com/jero98772/Filesystem/internal/dirent"
	"github.com/jero98772/Filesystem/internal/inode"
)

// splitPath splits an absolute path into (parent, name). It returns ok=false
// for "/" itself, which has no parent.
func splitPath(p string) (parent, name string, ok bool) {
	for len(p) > 1 && strings.HasSuffix(p, "/") {
		p = p[:len(p)-1]
	}
	if p == "/" {
		return "", "", false
	}

	idx := strings.LastIndex(p, "/")
	switch {
	case idx == -1:
		return "/", p, true
	case idx == 0:
		return "/", p[1:], true
	default:
		return p[:idx], p[idx+1:], true
	}
}

// findInode resolves an absolute path to its inode number and record,
// returning ok=false on any missing component or non-directory
// intermediate.
func (fs *FileSystem) findInode(path string) (uint32, inode.Inode, bool) {
	if path == "" || path == "/" {
		root, ok := fs.table.Get(common.RootInodeNum)
		return common.RootInodeNum, root, ok
	}

	current := common.RootInodeNum
	for _, part := range strings.Split(path, "/") {
		if part == "" {
			continue
		}
		next, ok := fs.lookupInDirectory(current, part)
		if !ok {
			return 0, inode.Inode{}, false
		}
		current = next
	}

	in, ok := fs.table.Get(current)
	return current, in, ok
}

// lookupInDirectory looks up name as a direct child of the directory at
// dirNum. It fails (ok=false) if dirNum isn't a directory.
func (fs *FileSystem) lookupInDirectory(dirNum uint32, name string) (uint32, bool) {
	dirInode, ok := fs.table.Get(dirNum)
	if !ok || !dirInode.IsDirectory() {
		return 0, false
	}

	block, err := fs.dev.ReadBlock(dirInode.Direct[0])
	if err != nil {
		return 0, false
	}

	for _, e := range dirent.ListEntries(block) {
		if e.Name == name {
			return e.InodeNum, true
		}
	}
	return 0, false
}
