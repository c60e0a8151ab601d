package easy

import (
	"slices"
	"unicode/utf8"
)

// StringList is an append-only list of strings, used for HTTPHEADER.
type StringList struct {
	items []string
}

// NewStringList returns an empty list.
func NewStringList() *StringList {
	return &StringList{}
}

// Append adds s. Invalid UTF-8 is rejected and the list is left unchanged.
func (l *StringList) Append(s string) error {
	if !utf8.ValidString(s) {
		return ErrInvalidUTF8
	}
	l.items = append(l.items, s)
	return nil
}

// Items returns a copy of the list contents.
func (l *StringList) Items() []string {
	if l == nil {
		return nil
	}
	return slices.Clone(l.items)
}

// Len reports the number of entries.
func (l *StringList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}
