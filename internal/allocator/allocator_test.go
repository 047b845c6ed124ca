package allocator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	diskoerrors "github.com/jero98772/Filesystem/errors"
	"github.com/jero98772/Filesystem/internal/allocator"
	"github.com/jero98772/Filesystem/internal/common"
)

func TestNewReservesLowBlocks(t *testing.T) {
	a := allocator.New(256)
	for i := uint32(0); i < common.ReservedBlocks; i++ {
		require.True(t, a.IsAllocated(i))
	}
	require.False(t, a.IsAllocated(common.ReservedBlocks))
	require.EqualValues(t, 256-common.ReservedBlocks, a.FreeBlocks())
}

func TestAllocateIsLowestFirst(t *testing.T) {
	a := allocator.New(16)

	n, err := a.AllocateBlock()
	require.NoError(t, err)
	require.EqualValues(t, common.ReservedBlocks, n)

	n2, err := a.AllocateBlock()
	require.NoError(t, err)
	require.EqualValues(t, common.ReservedBlocks+1, n2)
}

func TestAllocateExhaustion(t *testing.T) {
	a := allocator.New(common.ReservedBlocks + 1)

	_, err := a.AllocateBlock()
	require.NoError(t, err)

	_, err = a.AllocateBlock()
	require.ErrorIs(t, err, diskoerrors.ErrNoSpaceOnDevice)
}

func TestFreeBlockThenReallocate(t *testing.T) {
	a := allocator.New(16)
	n, err := a.AllocateBlock()
	require.NoError(t, err)

	a.FreeBlock(n)
	require.False(t, a.IsAllocated(n))

	n2, err := a.AllocateBlock()
	require.NoError(t, err)
	require.Equal(t, n, n2)
}

func TestFreeBlockOutOfRangeIsNoop(t *testing.T) {
	a := allocator.New(16)
	require.NotPanics(t, func() { a.FreeBlock(1000) })
}

func TestBytesRoundTripThroughFromBytes(t *testing.T) {
	a := allocator.New(64)
	_, err := a.AllocateBlock()
	require.NoError(t, err)

	data := a.Bytes()
	restored := allocator.FromBytes(data, 64)

	for i := uint32(0); i < 64; i++ {
		require.Equal(t, a.IsAllocated(i), restored.IsAllocated(i), "block %d", i)
	}
}
