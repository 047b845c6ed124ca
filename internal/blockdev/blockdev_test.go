package blockdev_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"

	"github.com/jero98772/Filesystem/internal/blockdev"
)

func TestCreateDerivesBlockCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.bin")

	dev, err := blockdev.Create(path, 1)
	require.NoError(t, err)
	defer dev.Close()

	require.EqualValues(t, 256, dev.TotalBlocks)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.EqualValues(t, 1024*1024, info.Size())
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.bin")
	dev, err := blockdev.Create(path, 1)
	require.NoError(t, err)
	defer dev.Close()

	payload := make([]byte, blockdev.BlockSize)
	for i := range payload {
		payload[i] = byte(i % 251)
	}

	require.NoError(t, dev.WriteBlock(5, payload))

	got, err := dev.ReadBlock(5)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestOpenReopenPreservesData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.bin")
	dev, err := blockdev.Create(path, 1)
	require.NoError(t, err)

	payload := make([]byte, blockdev.BlockSize)
	payload[0] = 0xAB
	require.NoError(t, dev.WriteBlock(3, payload))
	require.NoError(t, dev.Close())

	reopened, err := blockdev.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	require.EqualValues(t, 256, reopened.TotalBlocks)
	got, err := reopened.ReadBlock(3)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestOutOfBoundsBlock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.bin")
	dev, err := blockdev.Create(path, 1)
	require.NoError(t, err)
	defer dev.Close()

	_, err = dev.ReadBlock(dev.TotalBlocks)
	require.Error(t, err)

	err = dev.WriteBlock(dev.TotalBlocks, make([]byte, blockdev.BlockSize))
	require.Error(t, err)
}

func TestWrongSizeWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.bin")
	dev, err := blockdev.Create(path, 1)
	require.NoError(t, err)
	defer dev.Close()

	err = dev.WriteBlock(0, make([]byte, 10))
	require.Error(t, err)
}

func TestInMemoryStream(t *testing.T) {
	backing := make([]byte, 4*blockdev.BlockSize)
	stream := bytesextra.NewReadWriteSeeker(backing)
	dev := blockdev.NewFromStream(stream, 4)

	payload := make([]byte, blockdev.BlockSize)
	payload[10] = 42
	require.NoError(t, dev.WriteBlock(1, payload))

	got, err := dev.ReadBlock(1)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}
