// Package rom gives bounds-checked, in-place write access to a fixed-layout
// ROM image. The image is never created, resized or truncated; every write
// must land inside the existing file.
package rom

import (
	"fmt"
	"os"

	"github.com/kodagames/romtext/pkg/log"
)

// BoundsError reports a write range that does not fit inside the image.
type BoundsError struct {
	Offset int64
	Length int
	Size   int64
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("range [0x%X, 0x%X) does not fit in image of %d bytes", e.Offset, e.Offset+int64(e.Length), e.Size)
}

// Image is a ROM image opened for in-place patching.
type Image struct {
	file *os.File
	path string
	size int64
}

// Open opens an existing image read-write.
func Open(path string) (*Image, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		log.Errorf("[rom] Failed to open image %s: %s", path, err.Error())
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		if cerr := f.Close(); cerr != nil {
			log.Errorf("[rom] Failed to close image %s: %s", path, cerr.Error())
		}
		return nil, fmt.Errorf("failed to stat image: %w", err)
	}
	log.Debugf("[rom] Opened image %s (%d bytes)", path, info.Size())
	return &Image{file: f, path: path, size: info.Size()}, nil
}

// Size returns the image size in bytes.
func (img *Image) Size() int64 {
	return img.size
}

// CheckRange verifies that [off, off+length) lies inside the image.
func (img *Image) CheckRange(off int64, length int) error {
	if off < 0 || off+int64(length) > img.size {
		return &BoundsError{Offset: off, Length: length, Size: img.size}
	}
	return nil
}

// WriteAt patches data into the image at the absolute offset.
func (img *Image) WriteAt(data []byte, off int64) error {
	if err := img.CheckRange(off, len(data)); err != nil {
		return err
	}
	if _, err := img.file.WriteAt(data, off); err != nil {
		log.Errorf("[rom] Failed to write %d bytes at 0x%X to %s: %s", len(data), off, img.path, err.Error())
		return fmt.Errorf("failed to write image at 0x%X: %w", off, err)
	}
	log.Debugf("[rom] Wrote %d bytes at 0x%X to %s", len(data), off, img.path)
	return nil
}

// Close closes the underlying file.
func (img *Image) Close() error {
	if img.file == nil {
		return nil
	}
	return img.file.Close()
}
