// Package superblock codecs the image-global metadata block: magic number,
// block size, total blocks, inode-count capacity hint, free-block count, and
// the root inode pointer. It is a pure codec plus a validation helper; it
// never touches I/O itself.
package superblock

import (
	"encoding/binary"

	"github.com/jero98772/Filesystem/errors"
	"github.com/jero98772/Filesystem/internal/common"
)

const (
	Magic             uint32 = 0xDEADBEEF
	DefaultInodeCount uint32 = 1000
)

// Superblock is the first 24 bytes of block 0; the remainder of the block is
// zero-padded on encode and ignored on decode.
type Superblock struct {
	Magic       uint32
	BlockSize   uint32
	TotalBlocks uint32
	InodeCount  uint32
	FreeBlocks  uint32
	RootInode   uint32
}

// New builds the superblock written at image-creation time: free_blocks
// accounts for the reserved low blocks, and root_inode is always 1.
func New(totalBlocks uint32) Superblock {
	return Superblock{
		Magic:       Magic,
		BlockSize:   common.BlockSize,
		TotalBlocks: totalBlocks,
		InodeCount:  DefaultInodeCount,
		FreeBlocks:  totalBlocks - common.ReservedBlocks,
		RootInode:   common.RootInodeNum,
	}
}

// FromBytes decodes a superblock from a full block. It is lenient: it does
// not validate the magic number. Call Validate separately for that.
func FromBytes(data []byte) Superblock {
	return Superblock{
		Magic:       binary.LittleEndian.Uint32(data[0:4]),
		BlockSize:   binary.LittleEndian.Uint32(data[4:8]),
		TotalBlocks: binary.LittleEndian.Uint32(data[8:12]),
		InodeCount:  binary.LittleEndian.Uint32(data[12:16]),
		FreeBlocks:  binary.LittleEndian.Uint32(data[16:20]),
		RootInode:   binary.LittleEndian.Uint32(data[20:24]),
	}
}

// ToBytes always produces a full common.BlockSize-byte block.
func (sb Superblock) ToBytes() []byte {
	buf := make([]byte, common.BlockSize)
	binary.LittleEndian.PutUint32(buf[0:4], sb.Magic)
	binary.LittleEndian.PutUint32(buf[4:8], sb.BlockSize)
	binary.LittleEndian.PutUint32(buf[8:12], sb.TotalBlocks)
	binary.LittleEndian.PutUint32(buf[12:16], sb.InodeCount)
	binary.LittleEndian.PutUint32(buf[16:20], sb.FreeBlocks)
	binary.LittleEndian.PutUint32(buf[20:24], sb.RootInode)
	return buf
}

// Validate reports a CorruptImage-tagged error if the magic number doesn't
// match, for callers (tests, a mount path) that want to reject bad images
// instead of silently trusting FromBytes.
func (sb Superblock) Validate() error {
	if sb.Magic != Magic {
		return errors.ErrFileSystemCorrupted.WithMessage("bad superblock magic")
	}
	return nil
}
