// Package input reads the raw sales log from disk, tolerating the
// mixed encodings the upstream export is known to produce.
package input

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// ReadLines reads a sales log file and returns its data lines, header
// stripped. A missing file surfaces the underlying fs.ErrNotExist so
// callers can distinguish it from decode failures.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sales data: %w", err)
	}
	text, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return DataLines(text), nil
}

// fallbacks are tried in order when the file is not valid UTF-8.
var fallbacks = []struct {
	name string
	enc  encoding.Encoding
}{
	{"latin-1", charmap.ISO8859_1},
	{"cp1252", charmap.Windows1252},
}

// Decode converts raw file bytes to text. UTF-8 is preferred; otherwise
// the legacy single-byte encodings are tried in order.
func Decode(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	for _, fb := range fallbacks {
		decoded, err := fb.enc.NewDecoder().Bytes(data)
		if err != nil {
			continue
		}
		return string(decoded), nil
	}
	return "", fmt.Errorf("no supported encoding could decode input")
}

// DataLines splits decoded text into trimmed, non-empty lines and drops
// the header row. The result feeds the parser directly.
func DataLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) > 0 {
		lines = lines[1:]
	}
	return lines
}
