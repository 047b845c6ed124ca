// Package allocator tracks free/used data blocks with a bitmap, one bit per
// block, backed by github.com/boljen/go-bitmap the same way the teacher
// repo's disk drivers track free blocks and free inodes.
package allocator

import (
	"github.com/boljen/go-bitmap"

	"github.com/jero98772/Filesystem/errors"
	"github.com/jero98772/Filesystem/internal/common"
)

// Allocator is an eager, linear-scan bitmap allocator: acceptable at the
// scale this image format targets.
type Allocator struct {
	bits  bitmap.Bitmap
	total uint32
}

// New builds a fresh allocator over totalBlocks blocks with blocks
// 0..ReservedBlocks-1 pre-marked allocated.
func New(totalBlocks uint32) *Allocator {
	a := &Allocator{
		bits:  bitmap.New(int(totalBlocks)),
		total: totalBlocks,
	}
	for i := uint32(0); i < common.ReservedBlocks && i < totalBlocks; i++ {
		a.bits.Set(int(i), true)
	}
	return a
}

// FromBytes adopts a serialized bitmap as-is, with no re-validation.
func FromBytes(data []byte, totalBlocks uint32) *Allocator {
	bm := bitmap.New(int(totalBlocks))
	for i := uint32(0); i < totalBlocks; i++ {
		byteIdx := i / 8
		bitIdx := i % 8
		if int(byteIdx) >= len(data) {
			break
		}
		if data[byteIdx]&(1<<bitIdx) != 0 {
			bm.Set(int(i), true)
		}
	}
	return &Allocator{bits: bm, total: totalBlocks}
}

// AllocateBlock returns the lowest-indexed free block, marking it allocated,
// or ErrNoSpaceOnDevice if none is free.
func (a *Allocator) AllocateBlock() (uint32, error) {
	for i := uint32(0); i < a.total; i++ {
		if !a.bits.Get(int(i)) {
			a.bits.Set(int(i), true)
			return i, nil
		}
	}
	return 0, errors.ErrNoSpaceOnDevice
}

// FreeBlock clears bit n. It is a no-op (not an error) for an out-of-range
// index, matching the source's tolerant behavior.
func (a *Allocator) FreeBlock(n uint32) {
	if n >= a.total {
		return
	}
	a.bits.Set(int(n), false)
}

// IsAllocated reports whether block n is currently marked allocated.
func (a *Allocator) IsAllocated(n uint32) bool {
	if n >= a.total {
		return false
	}
	return a.bits.Get(int(n))
}

// FreeBlocks counts the zero bits across the full bitmap range.
func (a *Allocator) FreeBlocks() uint32 {
	var free uint32
	for i := uint32(0); i < a.total; i++ {
		if !a.bits.Get(int(i)) {
			free++
		}
	}
	return free
}

// Bytes returns the raw serialized bitmap, LSB-first within each byte.
func (a *Allocator) Bytes() []byte {
	return a.bits.Data(false)
}
