// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package flagset lets code that defines its flags with pflag run under an
// ycmd command tree.
//
// Import turns every flag of a pflag.FlagSet into an ycmd Option; after a
// parse, Apply writes the resolved values back with FlagSet.Set so the
// variables bound to the flag set see them.
package flagset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/yeetrun/ycmd/pkg/ycmd"
)

func isList(f *pflag.Flag) bool {
	t := f.Value.Type()
	return strings.HasSuffix(t, "Slice") || strings.HasSuffix(t, "Array")
}

func isBool(f *pflag.Flag) bool {
	return f.Value.Type() == "bool"
}

// definition returns the ycmd flags definition of f: "-p, --pre <string>".
func definition(f *pflag.Flag) string {
	var b strings.Builder
	if f.Shorthand != "" {
		fmt.Fprintf(&b, "-%s, ", f.Shorthand)
	}
	fmt.Fprintf(&b, "--%s", f.Name)
	if isBool(f) {
		return b.String()
	}
	varname, _ := pflag.UnquoteUsage(f)
	if varname == "" {
		varname = "value"
	}
	varname = strings.ReplaceAll(varname, " ", "-")
	if f.NoOptDefVal != "" {
		fmt.Fprintf(&b, " [%s]", varname)
	} else {
		fmt.Fprintf(&b, " <%s>", varname)
	}
	return b.String()
}

func hasDefault(f *pflag.Flag) bool {
	switch f.DefValue {
	case "", "[]":
		return false
	case "false":
		return !isBool(f)
	}
	return true
}

// Import adds an Option to c for every flag of fs, in lexical order.
// Boolean flags take no argument, flags with a NoOptDefVal take an optional
// argument preset to it, and slice flags collect one value per occurrence.
func Import(c *ycmd.Command, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		_, usage := pflag.UnquoteUsage(f)
		opt, e := ycmd.NewOption(definition(f), usage)
		if e != nil {
			err = fmt.Errorf("flag %q: %w", f.Name, e)
			return
		}
		if hasDefault(f) {
			opt.SetDefault(f.DefValue)
		}
		if f.NoOptDefVal != "" && !isBool(f) {
			opt.SetPreset(f.NoOptDefVal)
		}
		if isList(f) {
			opt.SetParser(ycmd.Collect)
		}
		opt.SetHidden(f.Hidden || f.Deprecated != "")
		if e := c.AddOption(opt); e != nil {
			err = fmt.Errorf("flag %q: %w", f.Name, e)
		}
	})
	return err
}

// Apply sets every flag of fs that was given a value for c in r, from the
// command line, the environment, a config source or an implication.
// Defaults are left alone so fs.Changed still reports what was asked for.
func Apply(r *ycmd.Result, c *ycmd.Command, fs *pflag.FlagSet) error {
	values := r.For(c)
	if values == nil {
		return fmt.Errorf("command %q was not dispatched", c.FullName())
	}
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		v, ok := values[f.Name]
		if err != nil || !ok || r.Source(f.Name) == ycmd.SourceDefault {
			return
		}
		for _, raw := range raws(v) {
			if e := fs.Set(f.Name, raw); e != nil {
				err = fmt.Errorf("failed to set flag %q: %w", f.Name, e)
				return
			}
		}
	})
	return err
}

func raws(v any) []string {
	switch v := v.(type) {
	case []string:
		return v
	case bool:
		return []string{strconv.FormatBool(v)}
	case string:
		return []string{v}
	}
	return []string{fmt.Sprint(v)}
}
