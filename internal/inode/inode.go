// Package inode codecs the 128-byte on-disk inode record and the single
// packed inode-table block it lives in.
package inode

import (
	"encoding/binary"
	"time"
)

const (
	Size         = 128
	DirectBlocks = 12
)

type FileType byte

const (
	Regular   FileType = 1
	Directory FileType = 2
)

// Inode mirrors the fixed 128-byte on-disk record described in the image
// layout: one file_type byte, size/block_count, 12 direct block pointers,
// the (unused) indirect pointers, and three timestamps.
type Inode struct {
	Type                FileType
	Size                uint32
	BlockCount          uint32
	Direct              [DirectBlocks]uint32
	IndirectBlock       uint32
	DoubleIndirectBlock uint32
	Created             uint64
	Modified            uint64
	Accessed            uint64
}

// New builds a zero-data inode of the given type, stamping all three
// timestamps to now.
func New(t FileType, now time.Time) Inode {
	ts := uint64(now.Unix())
	return Inode{
		Type:     t,
		Created:  ts,
		Modified: ts,
		Accessed: ts,
	}
}

// FromBytes decodes a 128-byte record. An unrecognized file_type byte
// decodes as Regular, matching the source's lenient behavior.
func FromBytes(data []byte) Inode {
	var in Inode

	switch data[0] {
	case byte(Directory):
		in.Type = Directory
	default:
		in.Type = Regular
	}

	in.Size = binary.LittleEndian.Uint32(data[4:8])
	in.BlockCount = binary.LittleEndian.Uint32(data[8:12])
	for i := 0; i < DirectBlocks; i++ {
		off := 12 + i*4
		in.Direct[i] = binary.LittleEndian.Uint32(data[off : off+4])
	}
	in.IndirectBlock = binary.LittleEndian.Uint32(data[60:64])
	in.DoubleIndirectBlock = binary.LittleEndian.Uint32(data[64:68])
	in.Created = binary.LittleEndian.Uint64(data[68:76])
	in.Modified = binary.LittleEndian.Uint64(data[76:84])
	in.Accessed = binary.LittleEndian.Uint64(data[84:92])

	return in
}

// ToBytes packs the inode into a zero-initialized 128-byte buffer.
func (in Inode) ToBytes() []byte {
	buf := make([]byte, Size)

	buf[0] = byte(in.Type)
	binary.LittleEndian.PutUint32(buf[4:8], in.Size)
	binary.LittleEndian.PutUint32(buf[8:12], in.BlockCount)
	for i := 0; i < DirectBlocks; i++ {
		off := 12 + i*4
		binary.LittleEndian.PutUint32(buf[off:off+4], in.Direct[i])
	}
	binary.LittleEndian.PutUint32(buf[60:64], in.IndirectBlock)
	binary.LittleEndian.PutUint32(buf[64:68], in.DoubleIndirectBlock)
	binary.LittleEndian.PutUint64(buf[68:76], in.Created)
	binary.LittleEndian.PutUint64(buf[76:84], in.Modified)
	binary.LittleEndian.PutUint64(buf[84:92], in.Accessed)

	return buf
}

func (in Inode) IsDirectory() bool {
	return in.Type == Directory
}

func (in Inode) IsRegular() bool {
	return in.Type == Regular
}
