// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package env writes structs as KEY=value lines for shell and systemd
// environment files.
package env

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// Write writes v as an environment file called name.
func Write(name string, v any) error {
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := Encode(f, v); err != nil {
		return fmt.Errorf("failed to marshal env: %v", err)
	}
	return f.Close()
}

// Encode writes one KEY=value line per field of the struct v that has an
// `env:"KEY"` tag, in field order. Zero fields are skipped unless the tag
// carries ",keep". Slices are joined with commas; values that a shell would
// split are quoted.
func Encode(w io.Writer, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("env: cannot encode %T, want a struct", v)
	}
	rt := rv.Type()
	for i := 0; i < rv.NumField(); i++ {
		field := rv.Field(i)
		name, opts, _ := strings.Cut(rt.Field(i).Tag.Get("env"), ",")
		if name == "" || !rt.Field(i).IsExported() {
			continue
		}
		if field.IsZero() && opts != "keep" {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s=%s\n", name, quote(format(field))); err != nil {
			return err
		}
	}
	return nil
}

func format(v reflect.Value) string {
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		parts := make([]string, v.Len())
		for i := range parts {
			parts[i] = fmt.Sprint(v.Index(i).Interface())
		}
		return strings.Join(parts, ",")
	case reflect.Ptr:
		if v.IsNil() {
			return ""
		}
	}
	return fmt.Sprint(v.Interface())
}

func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"'`$\\#;&|<>()*?") {
		return strconv.Quote(s)
	}
	return s
}
