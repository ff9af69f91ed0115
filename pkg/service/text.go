package service

import "strings"

// indexFrom returns the absolute index of the first occurrence of term in s
// at or after from, or -1. Index-based substring semantics: positions refer
// to bytes of the plain-text projection.
func indexFrom(s, term string, from int) int {
	i := strings.Index(s[from:], term)
	if i < 0 {
		return -1
	}
	return from + i
}
