// Package filesystem implements the mounted image: path resolution,
// file/directory operations, and the sync routine that keeps the
// superblock, bitmap, and inode table on disk consistent with memory.
//
// A FileSystem is exclusively owned by its mounter for the duration of the
// mount; there is no locking and no concurrent-access support, matching the
// single-threaded, single-mount model this image format targets.
package filesystem

import (
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/jero98772/Filesystem/internal/allocator"
	"github.com/jero98772/Filesystem/internal/blockdev"
	"github.com/jero98772/Filesystem/internal/common"
	"github.com/jero98772/Filesystem/internal/inode"
	"github.com/jero98772/Filesystem/internal/superblock"
)

// FileSystem is a mounted image.
type FileSystem struct {
	dev       *blockdev.Device
	sb        superblock.Superblock
	alloc     *allocator.Allocator
	table     *inode.Table
	nextInode uint32
}

// Create builds a brand new image at path of sizeMB MiB: superblock,
// bitmap, a one-entry inode table holding just the root directory, and the
// root's (empty, zeroed) data block.
func Create(path string, sizeMB int) (*FileSystem, error) {
	dev, err := blockdev.Create(path, sizeMB)
	if err != nil {
		return nil, err
	}

	alloc := allocator.New(dev.TotalBlocks)

	rootBlock, err := alloc.AllocateBlock()
	if err != nil {
		dev.Close()
		return nil, err
	}

	root := inode.New(inode.Directory, time.Now())
	root.Direct[0] = rootBlock
	root.BlockCount = 1

	table := inode.NewTable()
	table.Set(common.RootInodeNum, root)

	fs := &FileSystem{
		dev:       dev,
		sb:        superblock.New(dev.TotalBlocks),
		alloc:     alloc,
		table:     table,
		nextInode: common.RootInodeNum + 1,
	}

	if err := fs.dev.WriteBlock(rootBlock, make([]byte, common.BlockSize)); err != nil {
		dev.Close()
		return nil, err
	}

	if err := fs.sync(); err != nil {
		dev.Close()
		return nil, err
	}

	return fs, nil
}

// Open mounts an existing image, rejecting it if the superblock's magic
// number is wrong.
func Open(path string) (*FileSystem, error) {
	dev, err := blockdev.Open(path)
	if err != nil {
		return nil, err
	}

	sbBlock, err := dev.ReadBlock(common.SuperblockNum)
	if err != nil {
		dev.Close()
		return nil, err
	}
	sb := superblock.FromBytes(sbBlock)
	if err := sb.Validate(); err != nil {
		dev.Close()
		return nil, err
	}

	bitmapBlock, err := dev.ReadBlock(common.BitmapBlockNum)
	if err != nil {
		dev.Close()
		return nil, err
	}
	alloc := allocator.FromBytes(bitmapBlock, sb.TotalBlocks)

	tableBlock, err := dev.ReadBlock(common.InodeTableBlockNum)
	if err != nil {
		dev.Close()
		return nil, err
	}
	table := inode.DecodeTable(tableBlock)

	return &FileSystem{
		dev:       dev,
		sb:        sb,
		alloc:     alloc,
		table:     table,
		nextInode: table.MaxInode() + 1,
	}, nil
}

// Close releases the underlying block device. It does not sync; every
// mutating operation already syncs before returning.
func (fs *FileSystem) Close() error {
	return fs.dev.Close()
}

// sync rewrites the superblock, bitmap, and inode table to their fixed
// block positions, aggregating any write failures instead of stopping at
// the first one, since the three blocks are otherwise independent.
func (fs *FileSystem) sync() error {
	var result *multierror.Error

	fs.sb.FreeBlocks = fs.alloc.FreeBlocks()
	if err := fs.dev.WriteBlock(common.SuperblockNum, fs.sb.ToBytes()); err != nil {
		result = multierror.Append(result, err)
	}

	bitmapBuf := make([]byte, common.BlockSize)
	copy(bitmapBuf, fs.alloc.Bytes())
	if err := fs.dev.WriteBlock(common.BitmapBlockNum, bitmapBuf); err != nil {
		result = multierror.Append(result, err)
	}

	if err := fs.dev.WriteBlock(common.InodeTableBlockNum, inode.EncodeTable(fs.table)); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}
