// Package core holds the task record model and the statistics engine.
//
// This file contains parsing and display helpers for logged hours.
package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseHours converts user or sheet input into a positive number of hours.
//
// It accepts both dot (1.5) and comma (1,5) decimal separators, since sheets
// rendered with a European locale return formatted values with a comma.
// Returns an error for empty input, non-numeric text, NaN/Inf, zero or
// negative values.
//
// Examples:
//
//	ParseHours("2.5")  -> 2.5, nil
//	ParseHours("2,5")  -> 2.5, nil
//	ParseHours("0")    -> 0, ErrInvalidHours
func ParseHours(s string) (float64, error) {
	raw := s
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, &ValidationError{Field: "hours", Value: raw, Err: ErrInvalidHours}
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	h, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ValidationError{Field: "hours", Value: raw, Err: ErrInvalidHours}
	}
	if err := ValidateHours(h); err != nil {
		return 0, &ValidationError{Field: "hours", Value: raw, Err: ErrInvalidHours}
	}
	return h, nil
}

// ValidateHours enforces hours > 0 on an already parsed value.
func ValidateHours(h float64) error {
	if math.IsNaN(h) || math.IsInf(h, 0) || h <= 0 {
		return &ValidationError{Field: "hours", Value: strconv.FormatFloat(h, 'f', -1, 64), Err: ErrInvalidHours}
	}
	return nil
}

// TruncateHours cuts h to two decimal places. It is for display only; sums
// keep full precision. The small bias absorbs binary representation error so
// that 2.3 stays 2.30 instead of becoming 2.29.
func TruncateHours(h float64) float64 {
	return math.Trunc(h*100+1e-9) / 100
}

// FormatHours renders hours as "2.50h".
func FormatHours(h float64) string {
	return fmt.Sprintf("%.2fh", TruncateHours(h))
}
