// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ycmd

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/yeetrun/ycmd/pkg/process"
)

func TestParseHooks(t *testing.T) {
	var calls []string
	record := func(name string, err error) ActionFunc {
		return func(ctx context.Context, r *Result) error {
			calls = append(calls, name)
			return err
		}
	}

	tests := []struct {
		name      string
		actionErr error
		preErr    error
		want      []string
	}{
		{
			name: "success",
			want: []string{"root pre", "bump pre", "bump", "bump post", "root post"},
		},
		{
			name:      "action fails",
			actionErr: errors.New("boom"),
			want:      []string{"root pre", "bump pre", "bump"},
		},
		{
			name:   "pre hook fails",
			preErr: errors.New("nope"),
			want:   []string{"root pre"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls = nil
			root := newYver(&process.Fake{})
			root.SetPreAction(record("root pre", tt.preErr)).SetPostAction(record("root post", nil))
			root.Lookup("bump").
				SetPreAction(record("bump pre", nil)).
				SetAction(record("bump", tt.actionErr)).
				SetPostAction(record("bump post", nil))

			_, err := root.Parse([]string{"bump", "minor"}, ParseOptions{})
			wantErr := tt.actionErr
			if tt.preErr != nil {
				wantErr = tt.preErr
			}
			if !errors.Is(err, wantErr) {
				t.Errorf("Parse() error = %v, want %v", err, wantErr)
			}
			if !reflect.DeepEqual(calls, tt.want) {
				t.Errorf("calls = %q, want %q", calls, tt.want)
			}
		})
	}
}

type ctxKey struct{}

func TestParseContextPassesContext(t *testing.T) {
	root := newYver(&process.Fake{})
	var got any
	root.Lookup("sort").SetAction(func(ctx context.Context, r *Result) error {
		got = ctx.Value(ctxKey{})
		return nil
	})
	ctx := context.WithValue(context.Background(), ctxKey{}, "value")
	if _, err := root.ParseContext(ctx, []string{"sort", "1.0"}, ParseOptions{}); err != nil {
		t.Fatalf("ParseContext() error = %v", err)
	}
	if got != "value" {
		t.Errorf("action saw ctx value %v, want %q", got, "value")
	}
}

func TestParseSkipsActionsOnResolveError(t *testing.T) {
	root := newYver(&process.Fake{})
	called := false
	root.SetPreAction(func(context.Context, *Result) error {
		called = true
		return nil
	})
	if _, err := root.Parse([]string{"bump"}, ParseOptions{}); !errors.Is(err, ErrMissingArgument) {
		t.Fatalf("Parse() error = %v, want missing-argument", err)
	}
	if called {
		t.Error("pre-action ran after a resolve error")
	}
}

type exitError int

func (e exitError) Error() string { return fmt.Sprintf("exit %d", int(e)) }
func (e exitError) ExitCode() int { return int(e) }

func TestExecute(t *testing.T) {
	tests := []struct {
		name   string
		argv   []string
		action ActionFunc
		code   int
		stdout string
		stderr string
	}{
		{
			name:   "success",
			argv:   []string{"yver", "sort", "1.0"},
			action: func(context.Context, *Result) error { return nil },
			code:   0,
		},
		{
			name:   "version",
			argv:   []string{"yver", "--version"},
			code:   0,
			stdout: "1.2.3\n",
		},
		{
			name:   "unknown command",
			argv:   []string{"yver", "bmp"},
			code:   2,
			stderr: "error: unknown command 'bmp'\n(Did you mean bump?)\n",
		},
		{
			name:   "excess arguments",
			argv:   []string{"yver", "bump", "a", "b", "c"},
			code:   2,
			stderr: "error: too many arguments for 'bump'. Expected 2 arguments but got 3.\n",
		},
		{
			name:   "action error",
			argv:   []string{"yver", "sort", "1.0"},
			action: func(context.Context, *Result) error { return errors.New("boom") },
			code:   1,
			stderr: "error: boom\n",
		},
		{
			name:   "action error with exit code",
			argv:   []string{"yver", "sort", "1.0"},
			action: func(context.Context, *Result) error { return fmt.Errorf("compare: %w", exitError(3)) },
			code:   3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &process.Fake{Argv: tt.argv}
			root := newYver(fake)
			if tt.action != nil {
				root.Lookup("sort").SetAction(tt.action)
			}
			if code := root.Execute(context.Background()); code != tt.code {
				t.Errorf("Execute() = %d, want %d", code, tt.code)
			}
			if got := fake.Out.String(); got != tt.stdout {
				t.Errorf("stdout = %q, want %q", got, tt.stdout)
			}
			if got := fake.Err.String(); got != tt.stderr {
				t.Errorf("stderr = %q, want %q", got, tt.stderr)
			}
		})
	}
}

func TestMainExitsThroughProcess(t *testing.T) {
	tests := []struct {
		argv []string
		code int
	}{
		{argv: []string{"yver", "sort", "1.0"}, code: 0},
		{argv: []string{"yver", "bmp"}, code: 2},
	}
	for _, tt := range tests {
		fake := &process.Fake{Argv: tt.argv}
		root := newYver(fake)
		root.Lookup("sort").SetAction(func(context.Context, *Result) error { return nil })
		root.Main(context.Background())
		if !fake.Exited || fake.Code != tt.code {
			t.Errorf("Main(%q) exited=%v code=%d, want code %d", tt.argv, fake.Exited, fake.Code, tt.code)
		}
	}
}

func TestExecuteHelp(t *testing.T) {
	for _, argv := range [][]string{{"yver", "--help"}, {"yver", "help"}} {
		fake := &process.Fake{Argv: argv}
		if code := newYver(fake).Execute(context.Background()); code != 0 {
			t.Errorf("Execute(%q) = %d, want 0", argv, code)
		}
		if !strings.Contains(fake.Out.String(), "USAGE:\n    yver [OPTIONS] <COMMAND>\n") {
			t.Errorf("Execute(%q) stdout = %q, want root help", argv, fake.Out.String())
		}
		if fake.Err.Len() != 0 {
			t.Errorf("Execute(%q) stderr = %q, want empty", argv, fake.Err.String())
		}
	}

	fake := &process.Fake{Argv: []string{"yver", "help", "bump"}}
	newYver(fake).Execute(context.Background())
	if !strings.Contains(fake.Out.String(), "yver bump [OPTIONS] <part> [version]") {
		t.Errorf("help bump stdout = %q", fake.Out.String())
	}
}

func TestExecuteMissingSubcommandShowsHelp(t *testing.T) {
	fake := &process.Fake{Argv: []string{"yver"}}
	if code := newYver(fake).Execute(context.Background()); code != 2 {
		t.Errorf("Execute() = %d, want 2", code)
	}
	got := fake.Err.String()
	if !strings.HasPrefix(got, "error: missing subcommand\n\n") || !strings.Contains(got, "COMMANDS:") {
		t.Errorf("stderr = %q, want the error followed by help", got)
	}
}

func TestExecuteCustomHelp(t *testing.T) {
	fake := &process.Fake{Argv: []string{"yver", "sort", "--help"}}
	root := newYver(fake).SetHelp(HelpFunc(func(c *Command) string { return "help for " + c.FullName() + "\n" }))
	root.Execute(context.Background())
	if got := fake.Out.String(); got != "help for yver sort\n" {
		t.Errorf("stdout = %q", got)
	}
}
