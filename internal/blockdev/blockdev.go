// Package blockdev implements fixed-size random-access block I/O over a host
// file, the lowest layer of the image: every other package reads and writes
// whole 4096-byte blocks through a Device and never touches the stream
// directly.
package blockdev

import (
	"fmt"
	"io"
	"os"

	"github.com/jero98772/Filesystem/internal/common"
)

const BlockSize = common.BlockSize

// syncer is implemented by *os.File; in-memory test streams don't need it.
type syncer interface {
	Sync() error
}

// Device wraps a stream that behaves like a block device: reads and writes
// only happen in whole BlockSize units at block-aligned offsets.
type Device struct {
	stream      io.ReadWriteSeeker
	TotalBlocks uint32
}

// Create truncates/creates the host file at path to exactly sizeMB MiB,
// zero-filled, and returns a Device over it.
func Create(path string, sizeMB int) (*Device, error) {
	if sizeMB <= 0 {
		return nil, fmt.Errorf("blockdev: size must be positive, got %d MiB", sizeMB)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	totalBytes := int64(sizeMB) * 1024 * 1024
	if err := f.Truncate(totalBytes); err != nil {
		f.Close()
		return nil, err
	}

	return NewFromStream(f, uint32(totalBytes/BlockSize)), nil
}

// Open mounts an existing host file at path, deriving TotalBlocks from its
// size.
func Open(path string) (*Device, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	return NewFromStream(f, uint32(info.Size()/BlockSize)), nil
}

// NewFromStream wraps an arbitrary stream (a real file or an in-memory
// io.ReadWriteSeeker) as a block device with totalBlocks blocks.
func NewFromStream(stream io.ReadWriteSeeker, totalBlocks uint32) *Device {
	return &Device{stream: stream, TotalBlocks: totalBlocks}
}

func (d *Device) checkBounds(n uint32) error {
	if n >= d.TotalBlocks {
		return fmt.Errorf("blockdev: block %d out of range [0, %d)", n, d.TotalBlocks)
	}
	return nil
}

// ReadBlock returns exactly BlockSize bytes read from block n.
func (d *Device) ReadBlock(n uint32) ([]byte, error) {
	if err := d.checkBounds(n); err != nil {
		return nil, err
	}

	if _, err := d.stream.Seek(int64(n)*BlockSize, io.SeekStart); err != nil {
		return nil, err
	}

	buf := make([]byte, BlockSize)
	if _, err := io.ReadFull(d.stream, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteBlock writes data (which must be exactly BlockSize bytes) to block n
// and flushes it to the underlying stream when possible.
func (d *Device) WriteBlock(n uint32, data []byte) error {
	if err := d.checkBounds(n); err != nil {
		return err
	}
	if len(data) != BlockSize {
		return fmt.Errorf("blockdev: write to block %d must be %d bytes, got %d", n, BlockSize, len(data))
	}

	if _, err := d.stream.Seek(int64(n)*BlockSize, io.SeekStart); err != nil {
		return err
	}
	if _, err := d.stream.Write(data); err != nil {
		return err
	}

	if s, ok := d.stream.(syncer); ok {
		return s.Sync()
	}
	return nil
}

// Close releases the underlying stream if it implements io.Closer.
func (d *Device) Close() error {
	if c, ok := d.stream.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
