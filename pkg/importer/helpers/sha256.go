package helpers

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// Sha256String calculates the SHA256 hash of a given string and returns its string representation.
func Sha256String(input string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(input)))
}

// RecordHash returns the hash of a CSV record. Fields are trimmed so that
// the same row exported with different padding yields the same hash.
func RecordHash(record []string) string {
	fields := make([]string, len(record))
	for i, field := range record {
		fields[i] = strings.TrimSpace(field)
	}

	return Sha256String(strings.Join(fields, "\x1f"))
}
