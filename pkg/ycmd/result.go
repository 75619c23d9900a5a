// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ycmd

import (
	"fmt"
	"maps"
	"strconv"
)

// Source is where an option value came from.
type Source string

const (
	SourceDefault Source = "default"
	SourceCLI     Source = "cli"
	SourceEnv     Source = "env"
	SourceConfig  Source = "config"
	SourceImplied Source = "implied"
)

// custom reports whether a value from s was asked for rather than assumed.
func (s Source) custom() bool {
	return s != "" && s != SourceDefault && s != SourceImplied
}

// state holds what one parse resolved for one command.
type state struct {
	argv    []string
	values  map[string]any
	sources map[string]Source
}

func (st *state) set(name string, v any, src Source) {
	st.values[name] = v
	st.sources[name] = src
}

func (st *state) has(name string) bool {
	_, ok := st.values[name]
	return ok
}

// Result is the outcome of one parse. The Command tree is never written
// to, so a tree may be parsed again or concurrently.
type Result struct {
	path   []*Command
	states map[*Command]*state
	args   []any
	help   *Command
}

func newResult() *Result {
	return &Result{states: make(map[*Command]*state)}
}

// enter appends c to the dispatched path and seeds its defaults.
func (r *Result) enter(c *Command) *state {
	st := &state{
		values:  make(map[string]any),
		sources: make(map[string]Source),
	}
	for _, o := range c.options {
		if o.def != nil {
			st.set(o.Name(), o.def, SourceDefault)
		}
	}
	r.path = append(r.path, c)
	r.states[c] = st
	return st
}

// Command returns the command that was dispatched to, or the command being
// resolved when parsing failed.
func (r *Result) Command() *Command {
	if len(r.path) == 0 {
		return nil
	}
	return r.path[len(r.path)-1]
}

// Path returns the dispatched commands from the root to Command.
func (r *Result) Path() []*Command {
	return r.path
}

// HelpTarget returns the command help was requested for.
func (r *Result) HelpTarget() *Command {
	if r.help != nil {
		return r.help
	}
	return r.Command()
}

// Argv returns the operands and unknown arguments left to the terminal
// command.
func (r *Result) Argv() []string {
	if st := r.terminal(); st != nil {
		return st.argv
	}
	return nil
}

// Args returns the coerced arguments of the terminal command, one per
// declared Argument. A variadic argument is a single slice.
func (r *Result) Args() []any {
	return r.args
}

// Arg returns argument i, or nil.
func (r *Result) Arg(i int) any {
	if i < 0 || i >= len(r.args) {
		return nil
	}
	return r.args[i]
}

// ArgString returns argument i formatted as a string, or "".
func (r *Result) ArgString(i int) string {
	return stringOf(r.Arg(i))
}

// ArgStrings returns a variadic argument as strings.
func (r *Result) ArgStrings(i int) []string {
	return stringsOf(r.Arg(i))
}

func (r *Result) terminal() *state {
	if c := r.Command(); c != nil {
		return r.states[c]
	}
	return nil
}

// lookup finds name on the nearest command of the path that has it.
func (r *Result) lookup(name string) (*state, bool) {
	for i := len(r.path) - 1; i >= 0; i-- {
		st := r.states[r.path[i]]
		if st.has(name) {
			return st, true
		}
	}
	return nil, false
}

// Value returns the value of the option called name, looking from the
// terminal command up to the root.
func (r *Result) Value(name string) (any, bool) {
	st, ok := r.lookup(name)
	if !ok {
		return nil, false
	}
	return st.values[name], true
}

// Source returns where the value of name came from, or "" if it has none.
func (r *Result) Source(name string) Source {
	st, ok := r.lookup(name)
	if !ok {
		return ""
	}
	return st.sources[name]
}

// Opts returns the option values of the terminal command.
func (r *Result) Opts() map[string]any {
	if st := r.terminal(); st != nil {
		return maps.Clone(st.values)
	}
	return map[string]any{}
}

// OptsWithGlobals returns the option values of every command on the path,
// with nearer commands winning.
func (r *Result) OptsWithGlobals() map[string]any {
	out := make(map[string]any)
	for _, c := range r.path {
		maps.Copy(out, r.states[c].values)
	}
	return out
}

// For returns the option values resolved for c, or nil if c was not on the
// path.
func (r *Result) For(c *Command) map[string]any {
	st, ok := r.states[c]
	if !ok {
		return nil
	}
	return maps.Clone(st.values)
}

// String returns the value of name as a string.
func (r *Result) String(name string) string {
	v, _ := r.Value(name)
	return stringOf(v)
}

// Bool returns the value of name as a bool. Unset is false.
func (r *Result) Bool(name string) bool {
	v, _ := r.Value(name)
	switch v := v.(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	}
	return false
}

// Int returns the value of name as an int. Unset or unparsable is 0.
func (r *Result) Int(name string) int {
	v, _ := r.Value(name)
	switch v := v.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint:
		return int(v)
	case float64:
		return int(v)
	case string:
		i, _ := strconv.Atoi(v)
		return i
	}
	return 0
}

// Strings returns the value of name as a list of strings.
func (r *Result) Strings(name string) []string {
	v, _ := r.Value(name)
	return stringsOf(v)
}

func stringOf(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(v)
}

func stringsOf(v any) []string {
	switch v := v.(type) {
	case nil:
		return nil
	case []string:
		return v
	case []any:
		out := make([]string, len(v))
		for i, e := range v {
			out[i] = stringOf(e)
		}
		return out
	}
	return []string{stringOf(v)}
}
