package models

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

const (
	mrnPrefix      = "MRN-"
	mrnErrorPrefix = "MRN-ERR-"
)

// NextMRN derives the next sequential request number from the log's request-id
// column, oldest to newest. The column is scanned from the end backwards for
// the last entry of the form "MRN-<digits>"; the new number is that value plus
// one, zero-padded to 3 digits (wider numbers simply widen the field).
//
// If no entry matches but non-empty entries exist, the count of non-empty
// entries minus one is used instead, treating the first non-empty row as a
// header. An empty or header-only column yields "MRN-001".
//
// Two callers racing between the column read and the subsequent append can
// allocate the same number. That is an accepted limitation of scanning a
// shared, externally editable store; callers wanting atomicity must serialize
// allocation externally.
func NextMRN(column []string) string {
	next := 1
	if len(column) > 1 {
		last := 0
		for i := len(column) - 1; i >= 0; i-- {
			if n, ok := parseSequence(column[i]); ok {
				last = n
				break
			}
		}
		if last == 0 {
			nonEmpty := 0
			for _, v := range column {
				if strings.TrimSpace(v) != "" {
					nonEmpty++
				}
			}
			last = max(nonEmpty-1, 0)
		}
		next = last + 1
	}
	return fmt.Sprintf("%s%03d", mrnPrefix, next)
}

// ErrorMRN builds the non-submittable sentinel identifier embedding the
// current time. Callers must reject any identifier for which IsErrorMRN
// reports true before writing to the log.
func ErrorMRN(now time.Time) string {
	return mrnErrorPrefix + now.Format("150405")
}

// IsErrorMRN reports whether the identifier carries the error marker.
func IsErrorMRN(mrn string) bool {
	return strings.Contains(mrn, mrnErrorPrefix)
}

// parseSequence extracts N from "MRN-N" where N is a non-empty all-digit
// suffix. Anything else, including error sentinels, does not match.
func parseSequence(s string) (int, bool) {
	if !strings.HasPrefix(s, mrnPrefix) {
		return 0, false
	}
	digits := s[len(mrnPrefix):]
	if digits == "" {
		return 0, false
	}
	n := 0
	for _, r := range digits {
		if !unicode.IsDigit(r) {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
