// Package patch runs the full insertion pipeline: load the dialogue script,
// encode it, derive the pointer table, validate the declared capacity and
// patch both blocks into the target image.
package patch

import (
	"fmt"

	"github.com/kodagames/romtext/pkg/config"
	"github.com/kodagames/romtext/pkg/encoding"
	"github.com/kodagames/romtext/pkg/log"
	"github.com/kodagames/romtext/pkg/pointer"
	"github.com/kodagames/romtext/pkg/rom"
	"github.com/kodagames/romtext/pkg/script"
)

// CapacityError reports an encoded block larger than the script's declared
// capacity.
type CapacityError struct {
	Encoded  int
	Capacity int
}

// Excess returns how many bytes the encoded block is over capacity.
func (e *CapacityError) Excess() int {
	return e.Encoded - e.Capacity
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("encoded text is %d bytes, %d over the declared capacity of %d: remove %d bytes from the script",
		e.Encoded, e.Excess(), e.Capacity, e.Excess())
}

// Result summarizes a successful patch run.
type Result struct {
	TextOffset     int64
	PointersOffset int64
	EncodedBytes   int
	PointerCount   int
	FreeBytes      int
}

// Run encodes the script at scriptPath and patches the image at imagePath
// according to layout. Every validation happens before the image is touched;
// the text block and the pointer table are then written in sequence. The two
// writes are not atomic: if the second fails after the first succeeded the
// image is left partially patched and must be restored from a good dump.
func Run(scriptPath, imagePath string, layout config.LayoutConfig, table encoding.Table) (*Result, error) {
	sc, err := script.Load(scriptPath)
	if err != nil {
		return nil, err
	}

	records, err := encoding.ParseRecords(sc.Lines)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", scriptPath, err)
	}

	block, offsets := encoding.Encode(records, table)
	if len(block) > sc.Capacity {
		capErr := &CapacityError{Encoded: len(block), Capacity: sc.Capacity}
		log.Errorf("[patch] %s", capErr.Error())
		return nil, capErr
	}

	builder := &pointer.Builder{
		Base:     layout.TextStartOffset,
		Distance: layout.PointersDistance,
		Strict:   layout.StrictPointers,
	}
	ptrs, err := builder.Build(offsets)
	if err != nil {
		log.Errorf("[patch] Failed to build pointer table: %s", err.Error())
		return nil, fmt.Errorf("failed to build pointer table: %w", err)
	}

	img, err := rom.Open(imagePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := img.Close(); cerr != nil {
			log.Errorf("[patch] Failed to close image %s: %s", imagePath, cerr.Error())
		}
	}()

	// Both target ranges are checked up front so an undersized image is
	// rejected before the first byte is written.
	if err := img.CheckRange(layout.TextStartOffset, len(block)); err != nil {
		return nil, fmt.Errorf("text block: %w", err)
	}
	if err := img.CheckRange(layout.PointersStartOffset, len(ptrs)); err != nil {
		return nil, fmt.Errorf("pointer table: %w", err)
	}

	if err := img.WriteAt(block, layout.TextStartOffset); err != nil {
		return nil, fmt.Errorf("failed to write text block: %w", err)
	}
	if err := img.WriteAt(ptrs, layout.PointersStartOffset); err != nil {
		return nil, fmt.Errorf("failed to write pointer table: %w", err)
	}

	res := &Result{
		TextOffset:     layout.TextStartOffset,
		PointersOffset: layout.PointersStartOffset,
		EncodedBytes:   len(block),
		PointerCount:   pointer.Count(ptrs),
		FreeBytes:      sc.Capacity - len(block),
	}
	log.Infof("[patch] Wrote %d text bytes at 0x%X and %d pointers at 0x%X (%d bytes free)",
		res.EncodedBytes, res.TextOffset, res.PointerCount, res.PointersOffset, res.FreeBytes)
	return res, nil
}
