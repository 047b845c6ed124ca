// Package common holds constants shared across the on-disk codec packages
// so the block size and layout boundaries have exactly one definition.
package common

const (
	// BlockSize is the fixed size, in bytes, of every block in an image.
	BlockSize = 4096

	// SuperblockNum is the block holding the superblock.
	SuperblockNum uint32 = 0

	// BitmapBlockNum is the block holding the allocation bitmap.
	BitmapBlockNum uint32 = 1

	// InodeTableBlockNum is the block holding the packed inode table.
	InodeTableBlockNum uint32 = 2

	// ReservedBlocks is the number of low blocks (0-9) marked allocated at
	// image initialization, before any data block is ever handed out.
	ReservedBlocks uint32 = 10

	// FirstDataBlock is the first block index available to the allocator.
	FirstDataBlock uint32 = ReservedBlocks

	// RootInodeNum is the inode number of the filesystem root directory.
	RootInodeNum uint32 = 1
)
