package script

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kodagames/romtext/pkg/log"
)

func init() {
	log.Init(log.Config{
		Level:   "debug",
		Console: true,
	})
}

func TestParse(t *testing.T) {
	tests := []struct {
		name         string
		input        []byte
		wantCapacity int
		wantLines    []string
		wantErr      bool
	}{
		{
			name:         "capacity and records",
			input:        []byte("100\nHi!\nBye.\n"),
			wantCapacity: 100,
			wantLines:    []string{"Hi!", "Bye."},
		},
		{
			name:         "capacity line tolerates surrounding whitespace",
			input:        []byte("  2048  \nHola.\n"),
			wantCapacity: 2048,
			wantLines:    []string{"Hola."},
		},
		{
			name:         "records lose trailing whitespace but keep leading",
			input:        []byte("64\n  Hola. \t\n"),
			wantCapacity: 64,
			wantLines:    []string{"  Hola."},
		},
		{
			name:         "CRLF line endings",
			input:        []byte("64\r\nHi!\r\n"),
			wantCapacity: 64,
			wantLines:    []string{"Hi!"},
		},
		{
			// 0xBF is '¿' and 0xE9 is 'é' in ISO 8859-1
			name:         "legacy single-byte encoding decodes",
			input:        []byte("32\n\xbfQu\xe9?\n"),
			wantCapacity: 32,
			wantLines:    []string{"¿Qué?"},
		},
		{
			name:         "capacity only",
			input:        []byte("16\n"),
			wantCapacity: 16,
			wantLines:    nil,
		},
		{
			name:    "non-integer capacity",
			input:   []byte("lots\nHi!\n"),
			wantErr: true,
		},
		{
			name:    "empty input",
			input:   []byte(""),
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := Parse(bytes.NewReader(tt.input))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCapacity)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantCapacity, sc.Capacity)
			assert.Equal(t, tt.wantLines, sc.Lines)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.txt")
	err := os.WriteFile(path, []byte("100\nHi!\nBye.\n"), 0644)
	assert.NoError(t, err)

	sc, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, 100, sc.Capacity)
	assert.Equal(t, []string{"Hi!", "Bye."}, sc.Lines)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
