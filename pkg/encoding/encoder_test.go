package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRecord(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Record
		wantErr bool
	}{
		{
			name: "ASCII line",
			line: "Hi!",
			want: Record{Content: "Hi", Terminator: '!'},
		},
		{
			name: "single character line is all terminator",
			line: "*",
			want: Record{Content: "", Terminator: '*'},
		},
		{
			name: "multi-byte characters split on runes",
			line: "¿Qué?",
			want: Record{Content: "¿Qué", Terminator: '?'},
		},
		{
			name:    "empty line",
			line:    "",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseRecord(tt.line)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrEmptyRecord)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, rec)
		})
	}
}

func TestParseRecords_ReportsRecordNumber(t *testing.T) {
	_, err := ParseRecords([]string{"Hi!", "", "Bye."})
	assert.ErrorIs(t, err, ErrEmptyRecord)
	assert.Contains(t, err.Error(), "record 2")
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name        string
		lines       []string
		table       Table
		wantBlock   []byte
		wantOffsets []int
	}{
		{
			name:        "no substitutions",
			lines:       []string{"Hi!", "Bye."},
			table:       DefaultTable(),
			wantBlock:   []byte("Hi!Bye."),
			wantOffsets: []int{3, 7},
		},
		{
			name:        "substituted accents collapse to single bytes",
			lines:       []string{"¿Qué?"},
			table:       DefaultTable(),
			wantBlock:   []byte("$QuK#"),
			wantOffsets: []int{5},
		},
		{
			name:        "unmapped multi-byte characters keep their UTF-8 encoding",
			lines:       []string{"für."},
			table:       DefaultTable(),
			wantBlock:   []byte("für."),
			wantOffsets: []int{5},
		},
		{
			name:        "terminator goes through the table too",
			lines:       []string{"Sí?"},
			table:       DefaultTable(),
			wantBlock:   []byte("SW#"),
			wantOffsets: []int{3},
		},
		{
			name:        "nil table passes everything through",
			lines:       []string{"¿Qué?"},
			table:       nil,
			wantBlock:   []byte("¿Qué?"),
			wantOffsets: []int{7},
		},
		{
			name:        "no records",
			lines:       nil,
			table:       DefaultTable(),
			wantBlock:   nil,
			wantOffsets: []int{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ParseRecords(tt.lines)
			assert.NoError(t, err)
			block, offsets := Encode(records, tt.table)
			assert.Equal(t, tt.wantBlock, block)
			assert.Equal(t, tt.wantOffsets, offsets)
		})
	}
}

func TestEncode_EveryDefaultTableEntry(t *testing.T) {
	want := map[rune]byte{
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
	table := DefaultTable()
	assert.Len(t, table, len(want))
	for src, dst := range want {
		block, offsets := Encode([]Record{{Terminator: src}}, table)
		assert.Equal(t, []byte{dst}, block, "entry %q", src)
		assert.Equal(t, []int{1}, offsets)
	}
}

func TestEncode_Deterministic(t *testing.T) {
	records, err := ParseRecords([]string{"¿Dónde está?", "¡Aquí!"})
	assert.NoError(t, err)
	block1, offsets1 := Encode(records, DefaultTable())
	block2, offsets2 := Encode(records, DefaultTable())
	assert.Equal(t, block1, block2)
	assert.Equal(t, offsets1, offsets2)
}

func TestTableFromStrings(t *testing.T) {
	tests := []struct {
		name    string
		in      map[string]string
		want    Table
		wantErr bool
	}{
		{
			name: "empty map means no override",
			in:   map[string]string{},
			want: nil,
		},
		{
			name: "single character entries",
			in:   map[string]string{"ü": "U", "?": "#"},
			want: Table{'ü': 'U', '?': '#'},
		},
		{
			name:    "multi-character key",
			in:      map[string]string{"ab": "c"},
			wantErr: true,
		},
		{
			name:    "empty value",
			in:      map[string]string{"a": ""},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := TableFromStrings(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, table)
		})
	}
}
