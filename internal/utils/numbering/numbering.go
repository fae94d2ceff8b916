package numbering

import (
	"fmt"
	"strconv"
	"strings"
)

// Format renders a document number as PREFIX-YEAR-SEQ with the sequence zero-padded to four digits.
func Format(prefix string, year, seq int) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, year, seq)
}

// Parse splits a document number into its year and sequence.
// ok is false for anything that is not PREFIX-YEAR-SEQ with the expected prefix.
func Parse(number, prefix string) (year, seq int, ok bool) {
	parts := strings.Split(number, "-")
	if len(parts) != 3 || parts[0] != prefix {
		return 0, 0, false
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	seq, err = strconv.Atoi(parts[2])
	if err != nil || seq < 1 {
		return 0, 0, false
	}
	return year, seq, true
}

// NextSequence returns the sequence that follows last within year.
// An empty or malformed last number, or one from another year, restarts at 1.
func NextSequence(last, prefix string, year int) int {
	if last == "" {
		return 1
	}
	lastYear, lastSeq, ok := Parse(last, prefix)
	if !ok || lastYear != year {
		return 1
	}
	return lastSeq + 1
}

// Next returns the number that follows last for the given prefix and year.
func Next(last, prefix string, year int) string {
	return Format(prefix, year, NextSequence(last, prefix, year))
}
