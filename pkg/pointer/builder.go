// Pointer table derivation for fixed-layout ROM text blocks.
package pointer

import (
	"fmt"
)

// Builder derives the two-byte pointer table from the running byte totals
// produced during encoding. Base is the absolute offset of the text block in
// the image; Distance is the fixed correction between stored text addresses
// and the address space the game resolves pointers in.
type Builder struct {
	Base     int64
	Distance int64
	// Strict rejects corrected pointers outside 0..0xFFFF instead of
	// truncating them to the low 16 bits.
	Strict bool
}

// RangeError reports a corrected pointer that does not fit in 16 bits.
type RangeError struct {
	Record int
	Value  int64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("pointer for record %d is out of range: corrected value 0x%X does not fit in 16 bits", e.Record, e.Value)
}

// Build converts the running totals from encoding into the serialized
// pointer table. For N records it emits N-1 pointers, one per record except
// the trailing one; pointer i locates the first byte of record i.
//
// Each pointer is the record's absolute start offset minus Distance, with
// its two bytes swapped and the swapped value emitted most-significant byte
// first. The swap-then-split order is the wire contract and is kept as-is;
// out-of-range values truncate to their low 16 bits unless Strict is set.
func (b *Builder) Build(offsets []int) ([]byte, error) {
	if len(offsets) == 0 {
		return nil, nil
	}

	raw := make([]int64, 0, len(offsets))
	raw = append(raw, b.Base)
	for _, end := range offsets[:len(offsets)-1] {
		raw = append(raw, b.Base+int64(end))
	}
	// The trailing record gets no pointer of its own.
	raw = raw[:len(raw)-1]

	table := make([]byte, 0, len(raw)*2)
	for i, ptr := range raw {
		corrected := ptr - b.Distance
		if b.Strict && (corrected < 0 || corrected > 0xFFFF) {
			return nil, &RangeError{Record: i, Value: corrected}
		}
		swapped := ((corrected >> 8) & 0xFF) | ((corrected & 0xFF) << 8)
		table = append(table, byte((swapped>>8)&0xFF), byte(swapped&0xFF))
	}
	return table, nil
}

// Count reports how many pointers a serialized table holds.
func Count(table []byte) int {
	return len(table) / 2
}
