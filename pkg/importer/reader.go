package importer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/amasdatadriven/backend/pkg/models"
	"github.com/shopspring/decimal"
)

// SampleSize is the number of bytes inspected for delimiter detection.
const SampleSize = 2048

// Delimiters are the candidates for delimiter detection, in order of preference.
var Delimiters = []rune{',', '\t', ';', '|'}

var bom = []byte{0xef, 0xbb, 0xbf}

// DetectDelimiter returns the delimiter used in a sample of CSV data.
//
// A candidate scores one point for every line on which it occurs as often
// as on the first line. Candidates that do not occur on the first line are
// ignored. When no candidate qualifies, the comma is returned.
func DetectDelimiter(sample []byte) rune {
	lines := sampleLines(sample)
	if len(lines) == 0 {
		return ','
	}

	best, bestScore, bestCount := ',', 0, 0
	for _, candidate := range Delimiters {
		header := countUnquoted(lines[0], candidate)
		if header == 0 {
			continue
		}

		score := 0
		for _, line := range lines {
			if countUnquoted(line, candidate) == header {
				score++
			}
		}

		if score > bestScore || (score == bestScore && header > bestCount) {
			best, bestScore, bestCount = candidate, score, header
		}
	}

	return best
}

// sampleLines splits the sample into non-empty lines. The last line is
// dropped when the sample was cut off in the middle of it.
func sampleLines(sample []byte) []string {
	truncated := len(sample) >= SampleSize && !bytes.HasSuffix(sample, []byte("\n"))

	var lines []string
	for _, line := range strings.Split(string(sample), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	if truncated && len(lines) > 1 {
		lines = lines[:len(lines)-1]
	}

	return lines
}

// countUnquoted counts the occurrences of r outside of double quotes.
func countUnquoted(line string, r rune) int {
	count, quoted := 0, false
	for _, c := range line {
		switch {
		case c == '"':
			quoted = !quoted
		case c == r && !quoted:
			count++
		}
	}

	return count
}

// ParseDelimiter parses a delimiter given by a user. The empty string
// means the delimiter is detected.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case "tab", `\t`, "\t":
		return '\t', nil
	}

	for _, d := range Delimiters {
		if s == string(d) {
			return d, nil
		}
	}

	return 0, fmt.Errorf("%w: unsupported delimiter %q, use one of ',', ';', '|' or 'tab'", models.ErrValidation, s)
}

// NewReader returns a CSV reader for the input. A leading byte order mark
// is skipped. If delimiter is 0, it is detected from the start of the input.
func NewReader(r io.Reader, delimiter rune) *csv.Reader {
	buffered := bufio.NewReaderSize(r, SampleSize)

	if start, err := buffered.Peek(len(bom)); err == nil && bytes.Equal(start, bom) {
		_, _ = buffered.Discard(len(bom))
	}

	if delimiter == 0 {
		// Peek returns what is available when the input is shorter than the sample
		sample, _ := buffered.Peek(SampleSize)
		delimiter = DetectDelimiter(sample)
	}

	reader := csv.NewReader(buffered)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return reader
}

// Header maps column names to their index in a record.
type Header map[string]int

// ReadHeader reads the first record and returns the column positions.
// Column names are trimmed. An empty input yields io.EOF.
func ReadHeader(reader *csv.Reader) (Header, error) {
	record, err := reader.Read()
	if err != nil {
		return nil, err
	}

	header := make(Header, len(record))
	for i, name := range record {
		name = strings.TrimSpace(name)
		if _, ok := header[name]; !ok {
			header[name] = i
		}
	}

	return header, nil
}

// Lookup returns the index of the first of the names that is present.
func (h Header) Lookup(names ...string) (int, bool) {
	for _, name := range names {
		if i, ok := h[name]; ok {
			return i, true
		}
	}

	return 0, false
}

// LookupFold is like Lookup, but compares the names case-insensitively.
func (h Header) LookupFold(names ...string) (int, bool) {
	if i, ok := h.Lookup(names...); ok {
		return i, true
	}

	for _, name := range names {
		for column, i := range h {
			if strings.EqualFold(column, name) {
				return i, true
			}
		}
	}

	return 0, false
}

// Value returns the trimmed field at index i, or the empty string if the
// record is too short.
func Value(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}

	return strings.TrimSpace(record[i])
}

// Line returns the line of the record that was read last. It must only be
// called after a successful Read.
func Line(reader *csv.Reader) int {
	line, _ := reader.FieldPos(0)
	return line
}

var thousands = regexp.MustCompile(`^-?[0-9]{1,3}(,[0-9]{3})+(\.[0-9]+)?$`)

// ParseAmount parses a number from a CSV field. A leading currency sign
// and thousands separators as in "$1,250.50" are accepted.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return decimal.Zero, errors.New("must not be empty")
	}

	if thousands.MatchString(s) {
		s = strings.ReplaceAll(s, ",", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("'%s' is not a number", s)
	}

	return d, nil
}
