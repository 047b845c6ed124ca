package inode_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jero98772/Filesystem/internal/inode"
)

func TestRoundTrip(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	in := inode.New(inode.Directory, now)
	in.Size = 4096
	in.BlockCount = 1
	in.Direct[0] = 42

	decoded := inode.FromBytes(in.ToBytes())
	require.Equal(t, in, decoded)
}

func TestToBytesIsFixedSize(t *testing.T) {
	in := inode.New(inode.Regular, time.Now())
	require.Len(t, in.ToBytes(), inode.Size)
}

func TestUnknownTypeDecodesAsRegular(t *testing.T) {
	buf := make([]byte, inode.Size)
	buf[0] = 0xFF

	decoded := inode.FromBytes(buf)
	require.Equal(t, inode.Regular, decoded.Type)
}

func TestIsDirectoryIsRegular(t *testing.T) {
	d := inode.New(inode.Directory, time.Now())
	require.True(t, d.IsDirectory())
	require.False(t, d.IsRegular())

	f := inode.New(inode.Regular, time.Now())
	require.True(t, f.IsRegular())
	require.False(t, f.IsDirectory())
}
