package inode

import (
	"encoding/binary"

	"github.com/jero98772/Filesystem/internal/common"
)

// RecordSize is the on-disk size of one inode-table record: a u32 inode
// number followed by the 128-byte inode.
const RecordSize = 4 + Size

// MaxLiveInodes is the practical cap imposed by packing the whole table into
// a single common.BlockSize-byte block: floor(4096/132) = 31. The
// superblock's inode_count field advertises a larger capacity hint, but the
// table never holds more than this many live records.
const MaxLiveInodes = common.BlockSize / RecordSize

// Table is the in-memory inode table, keeping insertion order so
// re-serialization is deterministic.
type Table struct {
	order []uint32
	byNum map[uint32]Inode
}

// NewTable builds an empty table.
func NewTable() *Table {
	return &Table{byNum: make(map[uint32]Inode)}
}

// Get returns the inode with the given number and whether it exists.
func (t *Table) Get(num uint32) (Inode, bool) {
	in, ok := t.byNum[num]
	return in, ok
}

// Set inserts or updates the inode at num, preserving its original position
// in iteration order if it already existed.
func (t *Table) Set(num uint32, in Inode) {
	if _, exists := t.byNum[num]; !exists {
		t.order = append(t.order, num)
	}
	t.byNum[num] = in
}

// Delete removes the inode at num, if present.
func (t *Table) Delete(num uint32) {
	if _, exists := t.byNum[num]; !exists {
		return
	}
	delete(t.byNum, num)
	for i, n := range t.order {
		if n == num {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of live inodes in the table.
func (t *Table) Len() int {
	return len(t.order)
}

// MaxInode returns the highest inode number currently in the table, or 0 if
// the table is empty.
func (t *Table) MaxInode() uint32 {
	var max uint32
	for _, n := range t.order {
		if n > max {
			max = n
		}
	}
	return max
}

// EncodeTable packs the table into a zero-initialized full block, in
// insertion order, stopping once no more records fit. Trailing zero bytes
// act as the end-of-table terminator on decode.
func EncodeTable(t *Table) []byte {
	buf := make([]byte, common.BlockSize)

	offset := 0
	for _, num := range t.order {
		if offset+RecordSize > common.BlockSize {
			break
		}
		in := t.byNum[num]
		binary.LittleEndian.PutUint32(buf[offset:offset+4], num)
		copy(buf[offset+4:offset+RecordSize], in.ToBytes())
		offset += RecordSize
	}

	return buf
}

// DecodeTable reads records from a full block until an inode_num of 0 is
// seen or fewer than RecordSize bytes remain.
func DecodeTable(data []byte) *Table {
	t := NewTable()

	offset := 0
	for offset+RecordSize <= len(data) {
		num := binary.LittleEndian.Uint32(data[offset : offset+4])
		if num == 0 {
			break
		}
		in := FromBytes(data[offset+4 : offset+RecordSize])
		t.Set(num, in)
		offset += RecordSize
	}

	return t
}
