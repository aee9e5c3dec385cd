// Package utils holds small pointer helpers for the nullable columns of the store.
package utils

import "strings"

func Ptr[T any](v T) *T {
	return &v
}

func OrZero[T comparable](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}

// Is reports whether p is set and points at v.
func Is[T comparable](p *T, v T) bool {
	return p != nil && *p == v
}

// Returns nil on an empty or all whitespace string, otherwise the trimmed value
func StringOrNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
