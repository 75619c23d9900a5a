// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ycmd

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Parser converts a raw value. previous is the current value of the option
// or argument, its default the first time, so a parser can accumulate.
type Parser func(value string, previous any) (any, error)

// Port is an IP port number.
type Port uint16

// ParseInt parses a base 10 int.
func ParseInt(value string, _ any) (any, error) {
	i, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid int value %q", value)
	}
	return i, nil
}

// ParseUint parses a base 10 uint.
func ParseUint(value string, _ any) (any, error) {
	u, err := strconv.ParseUint(value, 10, 0)
	if err != nil {
		return nil, fmt.Errorf("invalid uint value %q", value)
	}
	return uint(u), nil
}

// ParseFloat parses a float64.
func ParseFloat(value string, _ any) (any, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid float value %q", value)
	}
	return f, nil
}

// ParseBool parses a boolean literal as accepted by strconv.ParseBool.
func ParseBool(value string, _ any) (any, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil, fmt.Errorf("invalid bool value %q", value)
	}
	return b, nil
}

// ParseDuration parses a time.Duration ("1h30m").
func ParseDuration(value string, _ any) (any, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return nil, fmt.Errorf("invalid duration %q", value)
	}
	return d, nil
}

// ParseURL parses a *url.URL.
func ParseURL(value string, _ any) (any, error) {
	u, err := url.Parse(value)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", value, err)
	}
	return u, nil
}

// ParsePort parses a Port in 0-65535.
func ParsePort(value string, _ any) (any, error) {
	return parsePort(value, 0, 65535)
}

// PortRange returns a parser for ports in [min, max].
func PortRange(min, max uint16) Parser {
	return func(value string, _ any) (any, error) {
		return parsePort(value, min, max)
	}
}

func parsePort(value string, min, max uint16) (any, error) {
	p, err := strconv.ParseUint(value, 10, 16)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return nil, fmt.Errorf("port must be between %d and %d, got %q", min, max, value)
		}
		return nil, fmt.Errorf("invalid port value %q", value)
	}
	if uint16(p) < min || uint16(p) > max {
		return nil, fmt.Errorf("port must be between %d and %d, got %d", min, max, p)
	}
	return Port(p), nil
}

// Collect appends value to previous, which must be nil or a []string.
// Used as the parser of a repeatable option it gathers every occurrence.
func Collect(value string, previous any) (any, error) {
	prev, _ := previous.([]string)
	return append(append([]string(nil), prev...), value), nil
}

// Split parses a comma separated list, dropping empty items.
func Split(value string, _ any) (any, error) {
	parts := strings.Split(value, ",")
	vals := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		vals = append(vals, part)
	}
	return vals, nil
}

// isNumeric checks if a string is a number (e.g., "10", "-10", "3.14", "-3.14")
func isNumeric(s string) bool {
	if len(s) == 0 {
		return false
	}

	start := 0
	if s[0] == '-' || s[0] == '+' {
		if len(s) == 1 {
			return false
		}
		start = 1
	}

	hasDigit := false
	hasDot := false
	for i := start; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			hasDigit = true
		case s[i] == '.' && !hasDot:
			hasDot = true
		default:
			return false
		}
	}
	return hasDigit
}

func isBoolLiteral(s string) bool {
	_, err := strconv.ParseBool(s)
	return err == nil
}
