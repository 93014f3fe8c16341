package utils

import "strings"

// StringPtrOrNil converts a raw cell value to a *string, mapping empty or
// whitespace-only input to nil so optional columns stay NULL in the store.
func StringPtrOrNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
