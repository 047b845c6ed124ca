package filesystem

import (
	"strings"

	"github.com/jero98772/Filesystem/errors"
	"github.com/jero98772/Filesystem/internal/dirent"
)

// Tree renders a preorder traversal of path as a slice of display lines, the
// first being the node itself with no prefix. Child lines are prefixed by
// the parent's cumulative prefix plus a connector ("└── " for the last
// child, "├── " otherwise); each level of depth appends a literal tab to
// the prefix passed further down. A directory revisited within the current
// branch is reported as a cycle and not descended into again.
func (fs *FileSystem) Tree(path string) ([]string, error) {
	num, in, ok := fs.findInode(path)
	if !ok {
		return nil, errors.ErrNotFound.WithMessage(path)
	}

	label := "/"
	if path != "" && path != "/" {
		label = strings.TrimRight(path, "/")
		if idx := strings.LastIndex(label, "/"); idx != -1 {
			label = label[idx+1:]
		}
	}

	icon := "📄 "
	if in.IsDirectory() {
		icon = "📁 "
	}
	lines := []string{icon + label}

	if in.IsDirectory() {
		visited := map[uint32]bool{num: true}
		fs.treeChildren(num, "\t", &lines, visited)
	}

	return lines, nil
}

func (fs *FileSystem) treeChildren(dirNum uint32, prefix string, lines *[]string, visited map[uint32]bool) {
	dirInode, ok := fs.table.Get(dirNum)
	if !ok {
		return
	}
	block, err := fs.dev.ReadBlock(dirInode.Direct[0])
	if err != nil {
		return
	}

	entries := dirent.ListEntries(block)
	childPrefix := prefix + "\t"

	for i, e := range entries {
		connector := "├── "
		if i == len(entries)-1 {
			connector = "└── "
		}

		childInode, ok := fs.table.Get(e.InodeNum)
		if !ok {
			continue
		}

		icon := "📄 "
		isDir := childInode.IsDirectory()
		if isDir {
			icon = "📁 "
		}

		*lines = append(*lines, prefix+connector+icon+e.Name)

		if !isDir {
			continue
		}

		if visited[e.InodeNum] {
			*lines = append(*lines, childPrefix+"└── ⚠️  [CYCLE DETECTED]")
			continue
		}

		visited[e.InodeNum] = true
		fs.treeChildren(e.InodeNum, childPrefix, lines, visited)
		delete(visited, e.InodeNum)
	}
}
