package superblock_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	diskoerrors "github.com/jero98772/Filesystem/errors"
	"github.com/jero98772/Filesystem/internal/common"
	"github.com/jero98772/Filesystem/internal/superblock"
)

func TestNewDefaults(t *testing.T) {
	sb := superblock.New(256)
	require.Equal(t, superblock.Magic, sb.Magic)
	require.EqualValues(t, common.BlockSize, sb.BlockSize)
	require.EqualValues(t, 256, sb.TotalBlocks)
	require.EqualValues(t, 246, sb.FreeBlocks)
	require.EqualValues(t, 1, sb.RootInode)
}

func TestRoundTrip(t *testing.T) {
	sb := superblock.New(1024)
	sb.FreeBlocks = 900

	decoded := superblock.FromBytes(sb.ToBytes())
	require.Equal(t, sb, decoded)
}

func TestToBytesIsFullBlock(t *testing.T) {
	sb := superblock.New(256)
	require.Len(t, sb.ToBytes(), common.BlockSize)
}

func TestValidateAcceptsGoodMagic(t *testing.T) {
	sb := superblock.New(256)
	require.NoError(t, sb.Validate())
}

func TestValidateRejectsBadMagic(t *testing.T) {
	sb := superblock.New(256)
	sb.Magic = 0x12345678

	err := sb.Validate()
	require.Error(t, err)
	require.ErrorIs(t, err, diskoerrors.ErrFileSystemCorrupted)
}
