package core

import (
	"strconv"
	"strings"
)

// CleanString trims surrounding whitespace, lowering the result when asked to.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		s = strings.ToLower(s)
	}
	return s
}

// ParseID parses a record id; ok is false unless s holds a positive integer.
func ParseID(s string) (id int64, ok bool) {
	id, err := strconv.ParseInt(CleanString(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
