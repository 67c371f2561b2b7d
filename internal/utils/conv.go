package utils

import (
	"strconv"
)

// ParseID parses a positive numeric route parameter.
func ParseID(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// ParseOptionalID parses an optional select value; empty means no reference.
func ParseOptionalID(s string) (*uint, bool) {
	if s == "" {
		return nil, true
	}
	id, ok := ParseID(s)
	if !ok {
		return nil, false
	}
	return &id, true
}
