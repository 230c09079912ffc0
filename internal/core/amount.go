// Package core holds the ledger domain: dates, amount parsing, the
// reserve rule, period resolution and summary aggregation. It has no
// dependencies beyond the standard library so the accounting rules stay
// testable in isolation.
package core

import (
	"math"
	"strconv"
	"strings"
)

// ParseAmount converts user-entered text into a positive monetary amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Parsing fails closed: anything that is not a finite number greater than
// zero returns ErrInvalidAmount, never a silent zero.
func ParseAmount(s string) (float64, error) {
	v, err := parseNumber(s)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// ParseBalance converts user-entered text into an initial balance. Unlike
// ParseAmount any finite value is accepted, matching the original
// behavior where a negative starting balance was allowed.
func ParseBalance(s string) (float64, error) {
	return parseNumber(s)
}

func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidAmount
	}
	return v, nil
}
