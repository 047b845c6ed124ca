package dirent_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jero98772/Filesystem/internal/common"
	"github.com/jero98772/Filesystem/internal/dirent"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	e := dirent.Entry{InodeNum: 7, Name: "readme.txt"}
	decoded, consumed := dirent.Decode(e.Encode())

	require.Equal(t, e, decoded)
	require.Equal(t, dirent.HeaderSize+len("readme.txt"), consumed)
}

func TestListEntriesStopsAtZeroMarker(t *testing.T) {
	block := make([]byte, common.BlockSize)
	a := dirent.Entry{InodeNum: 2, Name: "a"}
	b := dirent.Entry{InodeNum: 3, Name: "bb"}

	require.True(t, dirent.AddEntry(block, a))
	require.True(t, dirent.AddEntry(block, b))

	entries := dirent.ListEntries(block)
	require.Equal(t, []dirent.Entry{a, b}, entries)
}

func TestAddEntryRejectsWhenFull(t *testing.T) {
	block := make([]byte, common.BlockSize)
	longName := make([]byte, common.BlockSize-dirent.HeaderSize)
	for i := range longName {
		longName[i] = 'x'
	}
	first := dirent.Entry{InodeNum: 1, Name: string(longName)}
	require.True(t, dirent.AddEntry(block, first))

	second := dirent.Entry{InodeNum: 2, Name: "y"}
	ok := dirent.AddEntry(block, second)
	require.False(t, ok)

	entries := dirent.ListEntries(block)
	require.Len(t, entries, 1)
}

func TestRemoveEntry(t *testing.T) {
	block := make([]byte, common.BlockSize)
	a := dirent.Entry{InodeNum: 2, Name: "a"}
	b := dirent.Entry{InodeNum: 3, Name: "b"}
	require.True(t, dirent.AddEntry(block, a))
	require.True(t, dirent.AddEntry(block, b))

	newBlock, found := dirent.RemoveEntry(block, "a")
	require.True(t, found)

	entries := dirent.ListEntries(newBlock)
	require.Equal(t, []dirent.Entry{b}, entries)
}

func TestRemoveEntryNotFound(t *testing.T) {
	block := make([]byte, common.BlockSize)
	a := dirent.Entry{InodeNum: 2, Name: "a"}
	require.True(t, dirent.AddEntry(block, a))

	_, found := dirent.RemoveEntry(block, "missing")
	require.False(t, found)
}

func TestContainsNUL(t *testing.T) {
	require.True(t, dirent.ContainsNUL("bad\x00name"))
	require.False(t, dirent.ContainsNUL("good-name"))
}
