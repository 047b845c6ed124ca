// Package dirent codecs the variable-length directory-entry records packed
// into a directory's single data block, and the scan/add/remove algorithms
// that operate on a raw block of them.
package dirent

import (
	"encoding/binary"
	"strings"
	"unicode/utf8"

	"github.com/jero98772/Filesystem/internal/common"
)

// HeaderSize is the size of the fixed inode_num+name_len prefix of a record.
const HeaderSize = 8

// Entry is one directory entry: an inode number and its name within the
// directory.
type Entry struct {
	InodeNum uint32
	Name     string
}

// Encode produces inode_num(u32 LE) || name_len(u32 LE) || name bytes, with
// no trailing padding.
func (e Entry) Encode() []byte {
	nameBytes := []byte(e.Name)
	buf := make([]byte, HeaderSize+len(nameBytes))
	binary.LittleEndian.PutUint32(buf[0:4], e.InodeNum)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(nameBytes)))
	copy(buf[HeaderSize:], nameBytes)
	return buf
}

// Decode reads one entry starting at data[0], returning the entry and the
// number of bytes consumed (HeaderSize + name_len). Invalid UTF-8 in the
// name is replaced per Go's usual decode-with-replacement rules.
func Decode(data []byte) (Entry, int) {
	inodeNum := binary.LittleEndian.Uint32(data[0:4])
	nameLen := binary.LittleEndian.Uint32(data[4:8])
	name := string(data[HeaderSize : HeaderSize+int(nameLen)])
	if !utf8.ValidString(name) {
		name = strings.ToValidUTF8(name, "�")
	}
	return Entry{InodeNum: inodeNum, Name: name}, HeaderSize + int(nameLen)
}

// ContainsNUL reports whether name has an embedded NUL byte, which would
// desynchronize the end-of-entries scan if it were ever written.
func ContainsNUL(name string) bool {
	return strings.ContainsRune(name, 0)
}

// ListEntries scans a directory's raw data block and decodes entries in
// order until the end-of-entries sentinel (a zero byte at a record's start)
// or the block's end.
func ListEntries(block []byte) []Entry {
	var entries []Entry

	offset := 0
	for offset < len(block) {
		if block[offset] == 0 {
			break
		}
		if offset+HeaderSize > len(block) {
			break
		}
		e, consumed := Decode(block[offset:])
		if offset+consumed > len(block) {
			break
		}
		entries = append(entries, e)
		offset += consumed
	}

	return entries
}

// AddEntry appends e to the end of the existing entries in block, in place.
// It returns false (no-op, no mutation) if the entry would not fit, leaving
// block unchanged.
func AddEntry(block []byte, e Entry) bool {
	offset := endOfEntries(block)
	encoded := e.Encode()

	if offset+len(encoded) > common.BlockSize {
		return false
	}

	copy(block[offset:offset+len(encoded)], encoded)
	return true
}

// RemoveEntry rebuilds block without the entry named name, returning the new
// block and whether an entry was actually removed.
func RemoveEntry(block []byte, name string) ([]byte, bool) {
	entries := ListEntries(block)

	found := false
	newBlock := make([]byte, common.BlockSize)
	offset := 0
	for _, e := range entries {
		if e.Name == name && !found {
			found = true
			continue
		}
		encoded := e.Encode()
		copy(newBlock[offset:offset+len(encoded)], encoded)
		offset += len(encoded)
	}

	return newBlock, found
}

func endOfEntries(block []byte) int {
	offset := 0
	for offset < len(block) {
		if block[offset] == 0 {
			break
		}
		if offset+HeaderSize > len(block) {
			break
		}
		nameLen := binary.LittleEndian.Uint32(block[offset+4 : offset+8])
		consumed := HeaderSize + int(nameLen)
		if offset+consumed > len(block) {
			break
		}
		offset += consumed
	}
	return offset
}
