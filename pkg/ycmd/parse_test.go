// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ycmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yeetrun/ycmd/pkg/process"
)

type mapSource map[string]any

func (m mapSource) Lookup(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

// newYver builds a version tool tree running in fake.
func newYver(fake *process.Fake) *Command {
	root := New("yver").SetVersion("1.2.3").SetProcess(fake)
	root.Option("-v, --verbose", "Log more")

	bump := root.Command("bump <part> [version]", "Bump a version").Alias("b")
	bump.Option("-p, --pre <id>", "Prerelease identifier").SetEnv("YVER_PRE")
	bump.Option("--meta [m]", "Build metadata").SetPreset("build")

	sort := root.Command("sort <versions...>", "Sort versions")
	sort.Option("-r, --reverse", "Sort descending")

	satisfies := root.Command("satisfies <version>", "Check a version")
	satisfies.Option("-c, --conditions <condition...>", "Constraints")
	return root
}

type outcome struct {
	Path []string
	Args []any
	Opts map[string]any
}

func summarize(r *Result) outcome {
	var path []string
	for _, c := range r.Path() {
		path = append(path, c.Name())
	}
	return outcome{Path: path, Args: r.Args(), Opts: r.OptsWithGlobals()}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want outcome
	}{
		{
			name: "alias with subcommand option and global flag",
			argv: []string{"b", "minor", "1.2.3", "--pre", "rc", "-v"},
			want: outcome{
				Path: []string{"yver", "bump"},
				Args: []any{"minor", "1.2.3"},
				Opts: map[string]any{"verbose": true, "pre": "rc"},
			},
		},
		{
			name: "global flag after subcommand name",
			argv: []string{"bump", "-v", "minor"},
			want: outcome{
				Path: []string{"yver", "bump"},
				Args: []any{"minor", nil},
				Opts: map[string]any{"verbose": true},
			},
		},
		{
			name: "optional argument uses preset",
			argv: []string{"bump", "minor", "--meta"},
			want: outcome{
				Path: []string{"yver", "bump"},
				Args: []any{"minor", nil},
				Opts: map[string]any{"meta": "build"},
			},
		},
		{
			name: "optional argument takes next operand",
			argv: []string{"bump", "--meta", "sha", "minor"},
			want: outcome{
				Path: []string{"yver", "bump"},
				Args: []any{"minor", nil},
				Opts: map[string]any{"meta": "sha"},
			},
		},
		{
			name: "attached long value starting with dash",
			argv: []string{"bump", "minor", "--pre=-rc1"},
			want: outcome{
				Path: []string{"yver", "bump"},
				Args: []any{"minor", nil},
				Opts: map[string]any{"pre": "-rc1"},
			},
		},
		{
			name: "attached short value",
			argv: []string{"bump", "minor", "-prc"},
			want: outcome{
				Path: []string{"yver", "bump"},
				Args: []any{"minor", nil},
				Opts: map[string]any{"pre": "rc"},
			},
		},
		{
			name: "variadic argument",
			argv: []string{"sort", "3.0", "1.0", "2.0", "-r"},
			want: outcome{
				Path: []string{"yver", "sort"},
				Args: []any{[]string{"3.0", "1.0", "2.0"}},
				Opts: map[string]any{"reverse": true},
			},
		},
		{
			name: "delimiter makes flags operands",
			argv: []string{"sort", "--", "-5", "3"},
			want: outcome{
				Path: []string{"yver", "sort"},
				Args: []any{[]string{"-5", "3"}},
				Opts: map[string]any{},
			},
		},
		{
			name: "delimiter after subcommand flag",
			argv: []string{"sort", "-r", "--", "-5"},
			want: outcome{
				Path: []string{"yver", "sort"},
				Args: []any{[]string{"-5"}},
				Opts: map[string]any{"reverse": true},
			},
		},
		{
			name: "delimiter hides help flag",
			argv: []string{"bump", "--", "--help"},
			want: outcome{
				Path: []string{"yver", "bump"},
				Args: []any{"--help", nil},
				Opts: map[string]any{},
			},
		},
		{
			name: "variadic option",
			argv: []string{"satisfies", "1.2.3", "-c", ">=1.0", "<2.0"},
			want: outcome{
				Path: []string{"yver", "satisfies"},
				Args: []any{"1.2.3"},
				Opts: map[string]any{"conditions": []string{">=1.0", "<2.0"}},
			},
		},
		{
			name: "repeated variadic option accumulates",
			argv: []string{"satisfies", "1.2.3", "-c", ">=1.0", "--conditions", "<2.0"},
			want: outcome{
				Path: []string{"yver", "satisfies"},
				Args: []any{"1.2.3"},
				Opts: map[string]any{"conditions": []string{">=1.0", "<2.0"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := newYver(&process.Fake{}).Resolve(tt.argv, ParseOptions{})
			if err != nil {
				t.Fatalf("Resolve(%q) error = %v", tt.argv, err)
			}
			if diff := cmp.Diff(tt.want, summarize(r)); diff != "" {
				t.Errorf("Resolve(%q) mismatch (-want +got):\n%s", tt.argv, diff)
			}
		})
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name       string
		argv       []string
		want       error
		reason     string
		suggestion string
		help       bool
	}{
		{
			name:   "missing subcommand",
			argv:   []string{},
			want:   ErrMissingArgument,
			reason: "missing subcommand",
			help:   true,
		},
		{
			name:       "unknown command",
			argv:       []string{"bmp", "minor"},
			want:       ErrUnknownCommand,
			reason:     "unknown command 'bmp'",
			suggestion: "bump",
		},
		{
			name:   "missing argument",
			argv:   []string{"bump"},
			want:   ErrMissingArgument,
			reason: "missing required argument 'part'",
		},
		{
			name:   "missing variadic argument",
			argv:   []string{"sort", "-r"},
			want:   ErrMissingArgument,
			reason: "missing required argument 'versions'",
		},
		{
			name:   "excess arguments",
			argv:   []string{"bump", "minor", "1.2.3", "x"},
			want:   ErrExcessArguments,
			reason: "too many arguments for 'bump'. Expected 2 arguments but got 3.",
		},
		{
			name:   "option missing its argument",
			argv:   []string{"bump", "minor", "--pre"},
			want:   ErrInvalidArgument,
			reason: "option '-p, --pre <id>' requires an argument",
		},
		{
			name:       "unknown long option",
			argv:       []string{"bump", "minor", "--pree", "rc"},
			want:       ErrUnknownOption,
			reason:     "unknown option '--pree'",
			suggestion: "--pre",
		},
		{
			name:       "unknown attached long option",
			argv:       []string{"bump", "minor", "--pree=rc"},
			want:       ErrUnknownOption,
			reason:     "unknown option '--pree=rc'",
			suggestion: "--pre",
		},
		{
			name:   "unknown short option",
			argv:   []string{"bump", "minor", "-x"},
			want:   ErrUnknownOption,
			reason: "unknown option '-x'",
		},
		{
			name:   "subcommand option before subcommand",
			argv:   []string{"--pre", "rc", "bump", "minor"},
			want:   ErrUnknownOption,
			reason: "unknown option '--pre'",
		},
		{
			name:   "variadic option absorbs operands",
			argv:   []string{"satisfies", "-c", ">=1.0", "1.2.3"},
			want:   ErrMissingArgument,
			reason: "missing required argument 'version'",
		},
		{
			name:   "help for unknown command",
			argv:   []string{"help", "xyzzy"},
			want:   ErrUnknownCommand,
			reason: "unknown command 'xyzzy'",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newYver(&process.Fake{}).Resolve(tt.argv, ParseOptions{})
			if !errors.Is(err, tt.want) {
				t.Fatalf("Resolve(%q) error = %v, want %v", tt.argv, err, tt.want)
			}
			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("Resolve(%q) error %T is not an *Error", tt.argv, err)
			}
			if e.Reason != tt.reason {
				t.Errorf("Reason = %q, want %q", e.Reason, tt.reason)
			}
			if e.Suggestion != tt.suggestion {
				t.Errorf("Suggestion = %q, want %q", e.Suggestion, tt.suggestion)
			}
			if e.Help != tt.help {
				t.Errorf("Help = %v, want %v", e.Help, tt.help)
			}
			if e.ExitCode != 2 {
				t.Errorf("ExitCode = %d, want 2", e.ExitCode)
			}
		})
	}
}

func TestCombinedShortFlags(t *testing.T) {
	newTar := func() *Command {
		c := New("tar")
		c.Option("-x", "Extract")
		c.Option("-v", "Verbose")
		c.Option("-f, --file <path>", "Archive")
		c.Argument("[members...]", "")
		return c
	}
	tests := []struct {
		argv []string
		opts map[string]any
		args []any
	}{
		{argv: []string{"-xvf", "a.tar"}, opts: map[string]any{"x": true, "v": true, "file": "a.tar"}, args: []any{nil}},
		{argv: []string{"-xfa.tar"}, opts: map[string]any{"x": true, "file": "a.tar"}, args: []any{nil}},
		{argv: []string{"-vx", "m1", "m2"}, opts: map[string]any{"x": true, "v": true}, args: []any{[]string{"m1", "m2"}}},
		{argv: []string{"--file=a.tar", "m1"}, opts: map[string]any{"file": "a.tar"}, args: []any{[]string{"m1"}}},
		{argv: []string{"--file="}, opts: map[string]any{"file": ""}, args: []any{nil}},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.argv, " "), func(t *testing.T) {
			r, err := newTar().Resolve(tt.argv, ParseOptions{})
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if diff := cmp.Diff(tt.opts, r.Opts()); diff != "" {
				t.Errorf("Opts() mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.args, r.Args()); diff != "" {
				t.Errorf("Args() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	for _, argv := range [][]string{{"-xz"}, {"-zx"}} {
		_, err := newTar().Resolve(argv, ParseOptions{})
		if !errors.Is(err, ErrUnknownOption) {
			t.Errorf("Resolve(%q) error = %v, want unknown-option", argv, err)
		}
	}
}

func TestBooleanValues(t *testing.T) {
	noOperands := func() *Command {
		c := New("prog")
		c.Option("--debug", "")
		return c
	}
	withOperands := func() *Command {
		c := noOperands()
		c.Argument("[x]", "")
		return c
	}
	tests := []struct {
		name  string
		cmd   *Command
		argv  []string
		debug bool
		args  []any
	}{
		{name: "bare", cmd: noOperands(), argv: []string{"--debug"}, debug: true},
		{name: "attached false", cmd: noOperands(), argv: []string{"--debug=false"}, debug: false},
		{name: "next literal without operands", cmd: noOperands(), argv: []string{"--debug", "false"}, debug: false},
		{name: "next literal with operands", cmd: withOperands(), argv: []string{"--debug", "false"}, debug: true, args: []any{"false"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := tt.cmd.Resolve(tt.argv, ParseOptions{})
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got := r.Bool("debug"); got != tt.debug {
				t.Errorf("Bool(debug) = %v, want %v", got, tt.debug)
			}
			if r.Source("debug") != SourceCLI {
				t.Errorf("Source(debug) = %q, want cli", r.Source("debug"))
			}
			if tt.args != nil {
				if diff := cmp.Diff(tt.args, r.Args()); diff != "" {
					t.Errorf("Args() mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}

	r, err := noOperands().Resolve([]string{"--debug=yes"}, ParseOptions{})
	if err != nil {
		t.Fatalf("Resolve(--debug=yes) error = %v", err)
	}
	if v, _ := r.Value("debug"); v != "yes" {
		t.Errorf("Value(debug) = %#v, want %q", v, "yes")
	}
	if r.Source("debug") != SourceCLI {
		t.Errorf("Source(debug) = %q, want cli", r.Source("debug"))
	}

	_, err = withOperands().Resolve([]string{"--debug", "x", "y"}, ParseOptions{})
	if !errors.Is(err, ErrExcessArguments) {
		t.Errorf("Resolve(--debug x y) error = %v, want excess-arguments", err)
	}
}

func TestNegativeNumberArgument(t *testing.T) {
	newProg := func() *Command {
		c := New("prog")
		c.Option("--offset <n>", "").SetParser(ParseInt)
		return c
	}
	for _, argv := range [][]string{{"--offset", "-5"}, {"--offset=-5"}} {
		r, err := newProg().Resolve(argv, ParseOptions{})
		if err != nil {
			t.Fatalf("Resolve(%q) error = %v", argv, err)
		}
		if got := r.Int("offset"); got != -5 {
			t.Errorf("Resolve(%q) offset = %d, want -5", argv, got)
		}
	}
	_, err := newProg().Resolve([]string{"--offset", "-x"}, ParseOptions{})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Resolve(--offset -x) error = %v, want invalid-argument", err)
	}
}

func TestNonUTF8Values(t *testing.T) {
	c := New("prog")
	c.Argument("<file>", "")
	c.Argument("[rest...]", "")
	c.Option("-n, --name <name>", "")
	tests := []struct {
		argv []string
		file string
		name string
	}{
		{argv: []string{"a\xffb"}, file: "a\xffb"},
		{argv: []string{"--name=x\xfe", "f"}, file: "f", name: "x\xfe"},
		{argv: []string{"-nx\xfe", "f"}, file: "f", name: "x\xfe"},
		{argv: []string{"--name", "\xc3", "--", "\xe9t\xe9"}, file: "\xe9t\xe9", name: "\xc3"},
	}
	for _, tt := range tests {
		r, err := c.Resolve(tt.argv, ParseOptions{})
		if err != nil {
			t.Fatalf("Resolve(%q) error = %v", tt.argv, err)
		}
		if got := r.ArgString(0); got != tt.file {
			t.Errorf("Resolve(%q) file = %q, want %q", tt.argv, got, tt.file)
		}
		if got := r.String("name"); got != tt.name {
			t.Errorf("Resolve(%q) name = %q, want %q", tt.argv, got, tt.name)
		}
	}
}

func TestChoicesAndParsers(t *testing.T) {
	newProg := func() *Command {
		c := New("prog")
		c.Option("--format <f>", "").SetChoices("json", "env").SetDefault("json")
		c.Option("--port <p>", "").SetParser(ParsePort)
		c.Option("--tag <t>", "").SetParser(Collect)
		c.Argument("[count]", "").SetParser(ParseInt).SetDefault(1)
		return c
	}

	r, err := newProg().Resolve([]string{"--port", "8080", "--tag", "a", "--tag", "b", "3"}, ParseOptions{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := map[string]any{"format": "json", "port": Port(8080), "tag": []string{"a", "b"}}
	if diff := cmp.Diff(want, r.Opts()); diff != "" {
		t.Errorf("Opts() mismatch (-want +got):\n%s", diff)
	}
	if r.Source("format") != SourceDefault {
		t.Errorf("Source(format) = %q, want default", r.Source("format"))
	}
	if got := r.Arg(0); got != 3 {
		t.Errorf("Arg(0) = %v, want 3", got)
	}

	r, err = newProg().Resolve([]string{}, ParseOptions{})
	if err != nil {
		t.Fatalf("Resolve([]) error = %v", err)
	}
	if got := r.Arg(0); got != 1 {
		t.Errorf("Arg(0) = %v, want default 1", got)
	}

	_, err = newProg().Resolve([]string{"--format", "xml"}, ParseOptions{})
	if want := "option '--format <f>' argument 'xml' is invalid. Allowed choices are json, env."; err == nil || err.Error() != want {
		t.Errorf("Resolve(--format xml) error = %v, want %q", err, want)
	}

	_, err = newProg().Resolve([]string{"--port", "70000"}, ParseOptions{})
	var e *Error
	if !errors.As(err, &e) || e.Kind != InvalidArgument || e.Cause == nil {
		t.Errorf("Resolve(--port 70000) error = %#v, want invalid-argument with a cause", err)
	}

	bump := New("bump")
	bump.Argument("<part>", "").SetChoices("major", "minor", "patch")
	_, err = bump.Resolve([]string{"huge"}, ParseOptions{})
	if want := "command-argument value 'huge' is invalid for argument 'part'. Allowed choices are major, minor, patch."; err == nil || err.Error() != want {
		t.Errorf("Resolve(huge) error = %v, want %q", err, want)
	}
}

func TestMandatoryOption(t *testing.T) {
	newProg := func(env map[string]string) *Command {
		c := New("prog").SetProcess(&process.Fake{Env: env})
		c.Option("--profile <name!>", "").SetEnv("PROFILE")
		c.Option("--token <t>", "").SetMandatory(true).SetDefault("abc")
		return c
	}
	_, err := newProg(nil).Resolve([]string{"--bogus"}, ParseOptions{})
	if want := "required option '--profile <name!>' not specified"; !errors.Is(err, ErrMissingMandatoryOption) || err.Error() != want {
		t.Errorf("Resolve() error = %v, want %q", err, want)
	}
	r, err := newProg(map[string]string{"PROFILE": "prod"}).Resolve([]string{}, ParseOptions{})
	if err != nil {
		t.Fatalf("Resolve() with env error = %v", err)
	}
	if r.String("profile") != "prod" || r.String("token") != "abc" {
		t.Errorf("Opts() = %v", r.Opts())
	}
}

func TestConflictsAndDepends(t *testing.T) {
	newProg := func() *Command {
		c := New("prog")
		c.Option("--json", "").SetConflicts("text")
		c.Option("--text", "")
		c.Option("--format <f>", "").SetDefault("json")
		c.Option("--raw", "").SetConflicts("format")
		c.Option("--cert <f>", "").SetDepends("key")
		c.Option("--key <f>", "")
		return c
	}
	tests := []struct {
		argv   []string
		want   error
		reason string
	}{
		{argv: []string{"--json", "--text"}, want: ErrConflictingOption, reason: "option '--json' cannot be used with option '--text'"},
		{argv: []string{"--raw", "--format", "env"}, want: ErrConflictingOption, reason: "option '--raw' cannot be used with option '--format <f>'"},
		{argv: []string{"--raw"}},
		{argv: []string{"--json"}},
		{argv: []string{"--cert", "a"}, want: ErrDependsOnMissingOption, reason: "option '--cert <f>' depends on option '--key <f>'"},
		{argv: []string{"--cert", "a", "--key", "b"}},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.argv, " "), func(t *testing.T) {
			_, err := newProg().Resolve(tt.argv, ParseOptions{})
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Resolve() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) || err.Error() != tt.reason {
				t.Errorf("Resolve() error = %v, want %q", err, tt.reason)
			}
		})
	}
}

func TestImplies(t *testing.T) {
	root := New("yver")
	root.Option("-v, --verbose", "")
	root.Option("--ci", "").SetImplies(map[string]any{"color": "never"})
	root.Option("--color [when]", "").SetDefault("auto")
	sub := root.Command("bump", "")
	sub.Option("--trace", "").SetImplies(map[string]any{"verbose": true})

	r, err := root.Resolve([]string{"--ci", "bump", "--trace"}, ParseOptions{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if r.String("color") != "never" || r.Source("color") != SourceImplied {
		t.Errorf("color = %v from %q, want never from implied", r.String("color"), r.Source("color"))
	}
	if !r.Bool("verbose") || r.Source("verbose") != SourceImplied {
		t.Errorf("verbose = %v from %q, want true from implied", r.Bool("verbose"), r.Source("verbose"))
	}
	if got := r.For(root)["verbose"]; got != true {
		t.Errorf("For(root)[verbose] = %v, want the implied value on the owner", got)
	}

	r, err = root.Resolve([]string{"--ci", "--color", "always", "bump"}, ParseOptions{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if r.String("color") != "always" || r.Source("color") != SourceCLI {
		t.Errorf("color = %v from %q, want always from cli", r.String("color"), r.Source("color"))
	}
}

func TestEnvPrecedence(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		argv   []string
		pre    string
		source Source
	}{
		{name: "env", env: map[string]string{"YVER_PRE": "beta"}, argv: []string{"bump", "minor"}, pre: "beta", source: SourceEnv},
		{name: "cli beats env", env: map[string]string{"YVER_PRE": "beta"}, argv: []string{"bump", "minor", "--pre", "rc"}, pre: "rc", source: SourceCLI},
		{name: "unset", argv: []string{"bump", "minor"}, pre: "", source: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := newYver(&process.Fake{Env: tt.env}).Resolve(tt.argv, ParseOptions{})
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if r.String("pre") != tt.pre || r.Source("pre") != tt.source {
				t.Errorf("pre = %q from %q, want %q from %q", r.String("pre"), r.Source("pre"), tt.pre, tt.source)
			}
		})
	}
}

func TestEnvBoolean(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{value: "", want: true},
		{value: "1", want: true},
		{value: "false", want: false},
	}
	for _, tt := range tests {
		c := New("prog").SetProcess(&process.Fake{Env: map[string]string{"DEBUG": tt.value}})
		c.Option("--debug", "").SetEnv("DEBUG")
		r, err := c.Resolve([]string{}, ParseOptions{})
		if err != nil {
			t.Fatalf("Resolve() with DEBUG=%q error = %v", tt.value, err)
		}
		if r.Bool("debug") != tt.want {
			t.Errorf("DEBUG=%q: Bool(debug) = %v, want %v", tt.value, r.Bool("debug"), tt.want)
		}
	}

	c := New("prog").SetProcess(&process.Fake{Env: map[string]string{"DEBUG": "nah"}})
	c.Option("--debug", "").SetEnv("DEBUG")
	_, err := c.Resolve([]string{}, ParseOptions{})
	if want := "option '--debug' argument 'nah' from env 'DEBUG' is invalid. Expected a boolean."; err == nil || err.Error() != want {
		t.Errorf("Resolve() error = %v, want %q", err, want)
	}
}

func TestConfig(t *testing.T) {
	src := mapSource{
		"verbose":              true,
		"bump.pre":             "rc",
		"satisfies.conditions": []any{">=1", "<2"},
	}
	tests := []struct {
		name   string
		env    map[string]string
		argv   []string
		key    string
		want   any
		source Source
	}{
		{name: "root option", argv: []string{"bump", "minor"}, key: "verbose", want: true, source: SourceConfig},
		{name: "subcommand option", argv: []string{"bump", "minor"}, key: "pre", want: "rc", source: SourceConfig},
		{name: "env beats config", env: map[string]string{"YVER_PRE": "beta"}, argv: []string{"bump", "minor"}, key: "pre", want: "beta", source: SourceEnv},
		{name: "cli beats config", argv: []string{"bump", "minor", "-p", "alpha"}, key: "pre", want: "alpha", source: SourceCLI},
		{name: "list", argv: []string{"satisfies", "1.2.3"}, key: "conditions", want: []string{">=1", "<2"}, source: SourceConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newYver(&process.Fake{Env: tt.env}).SetConfig(src)
			r, err := root.Resolve(tt.argv, ParseOptions{})
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			got, _ := r.Value(tt.key)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Value(%s) mismatch (-want +got):\n%s", tt.key, diff)
			}
			if r.Source(tt.key) != tt.source {
				t.Errorf("Source(%s) = %q, want %q", tt.key, r.Source(tt.key), tt.source)
			}
		})
	}

	c := New("prog").SetConfig(mapSource{"count": "x", "release.pre": "beta"})
	c.Option("--count <n>", "").SetParser(ParseInt)
	_, err := c.Resolve([]string{}, ParseOptions{})
	if err == nil || !strings.Contains(err.Error(), "from config key 'count'") {
		t.Errorf("Resolve() error = %v, want a config key error", err)
	}

	c = New("prog").SetConfig(mapSource{"release.pre": "beta"})
	c.Option("--pre <id>", "").SetConfigKey("release.pre")
	r, err := c.Resolve([]string{}, ParseOptions{})
	if err != nil || r.String("pre") != "beta" {
		t.Errorf("Resolve() with a config key = %v, %v", r.Opts(), err)
	}
}

func TestConfigFile(t *testing.T) {
	errMissing := errors.New("no such file")
	load := func(path string) (ConfigSource, error) {
		if path != "yver.toml" {
			return nil, errMissing
		}
		return mapSource{"bump.pre": "rc"}, nil
	}
	newRoot := func(env map[string]string) *Command {
		root := newYver(&process.Fake{Env: env})
		root.Option("--config <path>", "").SetEnv("YVER_CONFIG")
		return root.SetConfigFile("config", load)
	}

	r, err := newRoot(nil).Resolve([]string{"--config", "yver.toml", "bump", "minor"}, ParseOptions{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if r.String("pre") != "rc" || r.Source("pre") != SourceConfig {
		t.Errorf("pre = %q from %q, want rc from config", r.String("pre"), r.Source("pre"))
	}

	r, err = newRoot(map[string]string{"YVER_CONFIG": "yver.toml"}).Resolve([]string{"bump", "minor"}, ParseOptions{})
	if err != nil {
		t.Fatalf("Resolve() with YVER_CONFIG error = %v", err)
	}
	if r.String("pre") != "rc" {
		t.Errorf("pre = %q, want rc", r.String("pre"))
	}

	r, err = newRoot(nil).Resolve([]string{"bump", "minor"}, ParseOptions{})
	if err != nil || r.String("pre") != "" {
		t.Errorf("Resolve() without config = %q, %v", r.String("pre"), err)
	}

	_, err = newRoot(nil).Resolve([]string{"--config", "missing.toml", "bump", "minor"}, ParseOptions{})
	if !errors.Is(err, ErrInvalidArgument) || !errors.Is(err, errMissing) {
		t.Errorf("Resolve() with a bad config error = %v, want invalid-argument wrapping the loader error", err)
	}
}

func TestHelpRequests(t *testing.T) {
	tests := []struct {
		argv   []string
		target string
	}{
		{argv: []string{"--help"}, target: "yver"},
		{argv: []string{"-h"}, target: "yver"},
		{argv: []string{"bump", "--help"}, target: "bump"},
		{argv: []string{"b", "-h"}, target: "bump"},
		{argv: []string{"bump", "minor", "1.2.3", "x", "--help"}, target: "bump"},
		{argv: []string{"help"}, target: "yver"},
		{argv: []string{"help", "sort"}, target: "sort"},
		{argv: []string{"help", "b"}, target: "bump"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.argv, " "), func(t *testing.T) {
			r, err := newYver(&process.Fake{}).Resolve(tt.argv, ParseOptions{})
			if !errors.Is(err, ErrHelp) {
				t.Fatalf("Resolve() error = %v, want ErrHelp", err)
			}
			if got := r.HelpTarget().Name(); got != tt.target {
				t.Errorf("HelpTarget() = %q, want %q", got, tt.target)
			}
		})
	}
}

func TestVersionRequest(t *testing.T) {
	for _, argv := range [][]string{{"-V"}, {"--version"}, {"bump", "minor", "-V"}} {
		if _, err := newYver(&process.Fake{}).Resolve(argv, ParseOptions{}); !errors.Is(err, ErrVersion) {
			t.Errorf("Resolve(%q) error = %v, want ErrVersion", argv, err)
		}
	}
}

func TestDefaultCommand(t *testing.T) {
	newRoot := func() *Command {
		root := New("yver")
		root.Command("max <versions...>", "Print the highest version")
		root.Command("sort <versions...>", "")
		return root.SetDefaultCommand("max")
	}

	r, err := newRoot().Resolve([]string{"1.0", "2.0"}, ParseOptions{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := outcome{Path: []string{"yver", "max"}, Args: []any{[]string{"1.0", "2.0"}}, Opts: map[string]any{}}
	if diff := cmp.Diff(want, summarize(r)); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}

	r, err = newRoot().Resolve([]string{"sort", "1.0"}, ParseOptions{})
	if err != nil || r.Command().Name() != "sort" {
		t.Errorf("Resolve(sort) = %v, %v", r.Command(), err)
	}

	r, err = newRoot().Resolve([]string{"--help"}, ParseOptions{})
	if !errors.Is(err, ErrHelp) || r.HelpTarget().Name() != "yver" {
		t.Errorf("Resolve(--help) = %v, %v; want help for the root", r.HelpTarget(), err)
	}

	if _, err := newRoot().Resolve([]string{}, ParseOptions{}); !errors.Is(err, ErrMissingArgument) {
		t.Errorf("Resolve([]) error = %v, want missing-argument from the default command", err)
	}
}

func TestUnknownStrategy(t *testing.T) {
	root := newYver(&process.Fake{})
	root.Lookup("bump").SetUnknown(AllowUnknownOptions)
	r, err := root.Resolve([]string{"bump", "minor", "--x"}, ParseOptions{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if diff := cmp.Diff([]string{"minor", "--x"}, r.Argv()); diff != "" {
		t.Errorf("Argv() mismatch (-want +got):\n%s", diff)
	}

	root = newYver(&process.Fake{})
	root.Lookup("bump").SetUnknown(AllowExcessArguments)
	r, err = root.Resolve([]string{"bump", "a", "b", "c"}, ParseOptions{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if diff := cmp.Diff([]any{"a", "b"}, r.Args()); diff != "" {
		t.Errorf("Args() mismatch (-want +got):\n%s", diff)
	}
	if _, err := root.Resolve([]string{"bump", "a", "--x"}, ParseOptions{}); !errors.Is(err, ErrUnknownOption) {
		t.Errorf("Resolve() error = %v, want unknown-option", err)
	}
}

func TestResolveIsRepeatable(t *testing.T) {
	root := newYver(&process.Fake{})
	first, err := root.Resolve([]string{"bump", "minor", "--pre", "rc", "-v"}, ParseOptions{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	second, err := root.Resolve([]string{"bump", "major"}, ParseOptions{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if first.String("pre") != "rc" || first.ArgString(0) != "minor" || !first.Bool("verbose") {
		t.Errorf("first result changed: %v %v", first.OptsWithGlobals(), first.Args())
	}
	if second.String("pre") != "" || second.ArgString(0) != "major" || second.Bool("verbose") {
		t.Errorf("second result leaked state: %v %v", second.OptsWithGlobals(), second.Args())
	}
}

func TestParseFrom(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		opts ParseOptions
		fake []string
	}{
		{name: "user", argv: []string{"bump", "minor"}},
		{name: "program", argv: []string{"yver", "bump", "minor"}, opts: ParseOptions{From: FromProgram}},
		{name: "script", argv: []string{"node", "yver.js", "bump", "minor"}, opts: ParseOptions{From: FromScript}},
		{name: "process argv", fake: []string{"/usr/bin/yver", "bump", "minor"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := newYver(&process.Fake{Argv: tt.fake}).Resolve(tt.argv, tt.opts)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if r.Command().Name() != "bump" || r.ArgString(0) != "minor" {
				t.Errorf("Resolve() = %s %v", r.Command().Name(), r.Args())
			}
		})
	}
}

func TestResultAccessors(t *testing.T) {
	root := newYver(&process.Fake{})
	r, err := root.Resolve([]string{"satisfies", "1.2.3", "-c", "a", "b"}, ParseOptions{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got := r.Arg(5); got != nil {
		t.Errorf("Arg(5) = %v, want nil", got)
	}
	if got := r.ArgStrings(0); !cmp.Equal(got, []string{"1.2.3"}) {
		t.Errorf("ArgStrings(0) = %v", got)
	}
	if got := r.Strings("conditions"); !cmp.Equal(got, []string{"a", "b"}) {
		t.Errorf("Strings(conditions) = %v", got)
	}
	if _, ok := r.Value("pre"); ok {
		t.Error("Value(pre) found an option of another subcommand")
	}
	if r.For(root.Lookup("bump")) != nil {
		t.Error("For(bump) returned values for a command off the path")
	}
	if got := r.Path()[0]; got != root {
		t.Errorf("Path()[0] = %v, want the root", got.Name())
	}
}
