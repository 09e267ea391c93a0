// Text encoding for fixed-layout ROM dialogue blocks.
// Each input line is one record: the displayed text followed by a single
// terminator character that the game's text routine stops on. Records are
// substituted through a Table and serialized back to back, with the running
// byte total after each record kept for pointer derivation.
package encoding

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrEmptyRecord marks a record that has no terminator character. The byte
// stream has no record separators, so a record without its terminator would
// silently merge into the next one.
var ErrEmptyRecord = errors.New("record is empty and has no terminator character")

// Record is one line of dialogue text: the content followed by its
// terminator character.
type Record struct {
	Content    string
	Terminator rune
}

// ParseRecord splits a source line into content and terminator.
func ParseRecord(line string) (Record, error) {
	runes := []rune(line)
	if len(runes) == 0 {
		return Record{}, ErrEmptyRecord
	}
	return Record{
		Content:    string(runes[:len(runes)-1]),
		Terminator: runes[len(runes)-1],
	}, nil
}

// ParseRecords converts source lines into records, in order.
func ParseRecords(lines []string) ([]Record, error) {
	records := make([]Record, 0, len(lines))
	for i, line := range lines {
		rec, err := ParseRecord(line)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Encode serializes records through the substitution table. It returns the
// encoded block and the running byte total after each record; the total
// after record i is the start offset of record i+1 within the block.
func Encode(records []Record, table Table) ([]byte, []int) {
	var block []byte
	offsets := make([]int, 0, len(records))
	for _, rec := range records {
		for _, r := range rec.Content {
			block = appendRune(block, table, r)
		}
		// The terminator is encoded on its own, immediately after the
		// content it terminates.
		block = appendRune(block, table, rec.Terminator)
		offsets = append(offsets, len(block))
	}
	return block, offsets
}

func appendRune(dst []byte, table Table, r rune) []byte {
	r = table.Replace(r)
	if !utf8.ValidRune(r) {
		// Unencodable characters are dropped, not flagged.
		return dst
	}
	return utf8.AppendRune(dst, r)
}
