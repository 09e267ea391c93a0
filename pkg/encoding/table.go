package encoding

import (
	"fmt"
	"unicode/utf8"
)

// Table maps a source character to the character whose encoded byte the
// target font expects. Characters absent from the table pass through with
// their natural encoding.
type Table map[rune]rune

// DefaultTable returns the substitution table for the stock ROM font, which
// has no glyphs for accented Spanish characters and repurposes punctuation
// slots for them.
func DefaultTable() Table {
	return Table{
		'?': '#',
		'¿': '$',
		'á': '%',
		'é': 'K',
		'í': 'W',
		'ó': 'X',
		'ú': 'w',
		'ñ': ')',
		'Á': '\'',
		'É': '(',
	}
}

// TableFromStrings builds a Table from a config-file mapping. Every key and
// value must be exactly one character.
func TableFromStrings(m map[string]string) (Table, error) {
	if len(m) == 0 {
		return nil, nil
	}
	table := make(Table, len(m))
	for from, to := range m {
		src, err := singleRune(from)
		if err != nil {
			return nil, fmt.Errorf("table key %q: %w", from, err)
		}
		dst, err := singleRune(to)
		if err != nil {
			return nil, fmt.Errorf("table value %q: %w", to, err)
		}
		table[src] = dst
	}
	return table, nil
}

func singleRune(s string) (rune, error) {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return 0, fmt.Errorf("not a valid character")
	}
	if size != len(s) {
		return 0, fmt.Errorf("must be exactly one character")
	}
	return r, nil
}

// Replace maps a single character through the table, returning it unchanged
// when no substitution is defined.
func (t Table) Replace(r rune) rune {
	if out, ok := t[r]; ok {
		return out
	}
	return r
}
