// Package script loads the dialogue script that drives a patch run. The
// script is a legacy single-byte encoded text file: the first line declares
// the byte capacity of the target text block, every following line is one
// dialogue record.
package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/kodagames/romtext/pkg/log"
)

// ErrInvalidCapacity marks a script whose first line is not a decimal byte
// capacity.
var ErrInvalidCapacity = errors.New("first line is not a decimal capacity declaration")

// Script is a parsed dialogue script.
type Script struct {
	Capacity int      // declared capacity of the text block, in bytes
	Lines    []string // one dialogue record per line, in file order
}

// Load reads and parses the script file at path.
func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		log.Errorf("[script] Failed to open script file %s: %s", path, err.Error())
		return nil, fmt.Errorf("failed to open script file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Errorf("[script] Failed to close script file %s: %s", path, cerr.Error())
		}
	}()

	sc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debugf("[script] Loaded %s: capacity %d bytes, %d records", path, sc.Capacity, len(sc.Lines))
	return sc, nil
}

// Parse reads an ISO 8859-1 encoded script. The capacity declaration is
// validated before any record is read; record lines keep their leading
// whitespace and lose only the trailing whitespace and line ending.
func Parse(r io.Reader) (*Script, error) {
	scanner := bufio.NewScanner(transform.NewReader(r, charmap.ISO8859_1.NewDecoder()))

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read script: %w", err)
		}
		return nil, fmt.Errorf("script is empty: %w", ErrInvalidCapacity)
	}
	capacity, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return nil, fmt.Errorf("%q: %w", scanner.Text(), ErrInvalidCapacity)
	}

	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), " \t\r\n\v\f"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	return &Script{Capacity: capacity, Lines: lines}, nil
}
