package filesystem

import (
	"time"

	"github.com/jero98772/Filesystem/errors"
	"github.com/jero98772/Filesystem/internal/common"
	"github.com/jero98772/Filesystem/internal/dirent"
	"github.com/jero98772/Filesystem/internal/inode"
)

// Info is the result of GetFileInfo.
type Info struct {
	Type     string
	Size     uint32
	Created  uint64
	Modified uint64
	Accessed uint64
}

// Stats is the result of GetStats.
type Stats struct {
	TotalBlocks uint32
	FreeBlocks  uint32
	TotalInodes uint32
	UsedInodes  uint32
}

// CreateFile creates an empty regular file at path.
func (fs *FileSystem) CreateFile(path string) error {
	parent, name, ok := splitPath(path)
	if !ok {
		return errors.ErrInvalidName.WithMessage(path)
	}
	if dirent.ContainsNUL(name) {
		return errors.ErrInvalidName.WithMessage(name)
	}
	return fs.createObject(parent, name, inode.Regular)
}

// CreateDirectory creates an empty directory at path.
func (fs *FileSystem) CreateDirectory(path string) error {
	parent, name, ok := splitPath(path)
	if !ok {
		return errors.ErrInvalidName.WithMessage(path)
	}
	if dirent.ContainsNUL(name) {
		return errors.ErrInvalidName.WithMessage(name)
	}
	return fs.createObject(parent, name, inode.Directory)
}

func (fs *FileSystem) createObject(parentPath, name string, t inode.FileType) error {
	parentNum, parentInode, ok := fs.findInode(parentPath)
	if !ok || !parentInode.IsDirectory() {
		return errors.ErrNotFound.WithMessage(parentPath)
	}
	if _, exists := fs.lookupInDirectory(parentNum, name); exists {
		return errors.ErrExists.WithMessage(name)
	}
	if fs.table.Len() >= inode.MaxLiveInodes {
		return errors.ErrNoSpaceOnDevice.WithMessage("inode table full")
	}

	// The number is consumed here and never reused, even if the rest of
	// this creation fails below (invariant: inode numbers monotonically
	// increase and are never recycled).
	newNum := fs.nextInode
	fs.nextInode++

	newInode := inode.New(t, time.Now())

	var dataBlock uint32
	hasDataBlock := false
	if t == inode.Directory {
		blk, err := fs.alloc.AllocateBlock()
		if err != nil {
			return errors.ErrNoSpaceOnDevice.WithMessage("directory block")
		}
		if err := fs.dev.WriteBlock(blk, make([]byte, common.BlockSize)); err != nil {
			fs.alloc.FreeBlock(blk)
			return err
		}
		newInode.Direct[0] = blk
		newInode.BlockCount = 1
		dataBlock = blk
		hasDataBlock = true
	}

	fs.table.Set(newNum, newInode)

	parentBlock, err := fs.dev.ReadBlock(parentInode.Direct[0])
	if err != nil {
		fs.rollbackCreate(newNum, hasDataBlock, dataBlock)
		return err
	}

	if !dirent.AddEntry(parentBlock, dirent.Entry{InodeNum: newNum, Name: name}) {
		fs.rollbackCreate(newNum, hasDataBlock, dataBlock)
		return errors.ErrDirectoryFull.WithMessage(parentPath)
	}

	if err := fs.dev.WriteBlock(parentInode.Direct[0], parentBlock); err != nil {
		fs.rollbackCreate(newNum, hasDataBlock, dataBlock)
		return err
	}

	return fs.sync()
}

func (fs *FileSystem) rollbackCreate(num uint32, hasDataBlock bool, dataBlock uint32) {
	fs.table.Delete(num)
	if hasDataBlock {
		fs.alloc.FreeBlock(dataBlock)
	}
}

// WriteFile overwrites path's content with data, silently truncating
// anything beyond DIRECT_BLOCKS*BlockSize.
func (fs *FileSystem) WriteFile(path string, data []byte) error {
	num, in, ok := fs.findInode(path)
	if !ok {
		return errors.ErrNotFound.WithMessage(path)
	}
	if !in.IsRegular() {
		return errors.ErrTypeMismatch.WithMessage(path)
	}

	for i := uint32(0); i < in.BlockCount && i < inode.DirectBlocks; i++ {
		if in.Direct[i] != 0 {
			fs.alloc.FreeBlock(in.Direct[i])
			in.Direct[i] = 0
		}
	}
	in.Size = 0
	in.BlockCount = 0

	maxBytes := inode.DirectBlocks * common.BlockSize
	if len(data) > maxBytes {
		data = data[:maxBytes]
	}
	blocksNeeded := (len(data) + common.BlockSize - 1) / common.BlockSize

	allocated := make([]uint32, 0, blocksNeeded)
	for i := 0; i < blocksNeeded; i++ {
		blk, err := fs.alloc.AllocateBlock()
		if err != nil {
			for _, b := range allocated {
				fs.alloc.FreeBlock(b)
			}
			fs.table.Set(num, in)
			fs.sync()
			return errors.ErrNoSpaceOnDevice.WithMessage(path)
		}
		allocated = append(allocated, blk)
	}

	for i, blk := range allocated {
		start := i * common.BlockSize
		end := start + common.BlockSize
		if end > len(data) {
			end = len(data)
		}
		chunk := make([]byte, common.BlockSize)
		copy(chunk, data[start:end])

		if err := fs.dev.WriteBlock(blk, chunk); err != nil {
			for _, b := range allocated {
				fs.alloc.FreeBlock(b)
			}
			fs.table.Set(num, in)
			fs.sync()
			return err
		}
		in.Direct[i] = blk
	}

	in.Size = uint32(len(data))
	in.BlockCount = uint32(len(allocated))
	in.Modified = uint64(time.Now().Unix())
	fs.table.Set(num, in)

	return fs.sync()
}

// ReadFile returns path's content, or ErrNotFound/ErrTypeMismatch.
func (fs *FileSystem) ReadFile(path string) ([]byte, error) {
	_, in, ok := fs.findInode(path)
	if !ok {
		return nil, errors.ErrNotFound.WithMessage(path)
	}
	if !in.IsRegular() {
		return nil, errors.ErrTypeMismatch.WithMessage(path)
	}

	var buf []byte
	for i := uint32(0); i < in.BlockCount && i < inode.DirectBlocks; i++ {
		if in.Direct[i] == 0 {
			break
		}
		block, err := fs.dev.ReadBlock(in.Direct[i])
		if err != nil {
			return nil, err
		}
		buf = append(buf, block...)
	}

	if uint32(len(buf)) > in.Size {
		buf = buf[:in.Size]
	}
	return buf, nil
}

// DeleteFile removes a regular file. Deleting a directory is rejected with
// ErrTypeMismatch rather than orphaning its contents.
func (fs *FileSystem) DeleteFile(path string) error {
	parent, name, ok := splitPath(path)
	if !ok {
		return errors.ErrInvalidName.WithMessage(path)
	}

	parentNum, parentInode, ok := fs.findInode(parent)
	if !ok || !parentInode.IsDirectory() {
		return errors.ErrNotFound.WithMessage(path)
	}

	targetNum, exists := fs.lookupInDirectory(parentNum, name)
	if !exists {
		return errors.ErrNotFound.WithMessage(path)
	}

	targetInode, _ := fs.table.Get(targetNum)
	if targetInode.IsDirectory() {
		return errors.ErrTypeMismatch.WithMessage(path)
	}

	for i := uint32(0); i < targetInode.BlockCount && i < inode.DirectBlocks; i++ {
		if targetInode.Direct[i] != 0 {
			fs.alloc.FreeBlock(targetInode.Direct[i])
		}
	}
	fs.table.Delete(targetNum)

	parentBlock, err := fs.dev.ReadBlock(parentInode.Direct[0])
	if err != nil {
		return err
	}
	newBlock, _ := dirent.RemoveEntry(parentBlock, name)
	if err := fs.dev.WriteBlock(parentInode.Direct[0], newBlock); err != nil {
		return err
	}

	return fs.sync()
}

// ListDirectory returns the names of path's direct children, in insertion
// order.
func (fs *FileSystem) ListDirectory(path string) ([]string, error) {
	_, in, ok := fs.findInode(path)
	if !ok {
		return nil, errors.ErrNotFound.WithMessage(path)
	}
	if !in.IsDirectory() {
		return nil, errors.ErrTypeMismatch.WithMessage(path)
	}

	block, err := fs.dev.ReadBlock(in.Direct[0])
	if err != nil {
		return nil, err
	}

	entries := dirent.ListEntries(block)
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names, nil
}

// GetFileInfo returns metadata about path, or ErrNotFound.
func (fs *FileSystem) GetFileInfo(path string) (Info, error) {
	_, in, ok := fs.findInode(path)
	if !ok {
		return Info{}, errors.ErrNotFound.WithMessage(path)
	}

	typ := "REGULAR"
	if in.IsDirectory() {
		typ = "DIRECTORY"
	}

	return Info{
		Type:     typ,
		Size:     in.Size,
		Created:  in.Created,
		Modified: in.Modified,
		Accessed: in.Accessed,
	}, nil
}

// GetStats returns image-wide occupancy statistics.
func (fs *FileSystem) GetStats() Stats {
	return Stats{
		TotalBlocks: fs.sb.TotalBlocks,
		FreeBlocks:  fs.alloc.FreeBlocks(),
		TotalInodes: fs.sb.InodeCount,
		UsedInodes:  uint32(fs.table.Len()),
	}
}
