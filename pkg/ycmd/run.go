// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ycmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/yeetrun/ycmd/pkg/tui"
)

// Parse is ParseContext with a background context.
func (c *Command) Parse(argv []string, opts ParseOptions) (*Result, error) {
	return c.ParseContext(context.Background(), argv, opts)
}

// ParseContext resolves argv and runs the dispatched command: the pre-action
// hooks from the root down, the action, then the post-action hooks from the
// command back up to the root. Post-action hooks run only if the action
// succeeded.
func (c *Command) ParseContext(ctx context.Context, argv []string, opts ParseOptions) (*Result, error) {
	r, err := c.Resolve(argv, opts)
	if err != nil {
		return r, err
	}
	path := r.Path()
	for _, cmd := range path {
		if cmd.preAction == nil {
			continue
		}
		if err := cmd.preAction(ctx, r); err != nil {
			return r, err
		}
	}
	if leaf := r.Command(); leaf.action != nil {
		if err := leaf.action(ctx, r); err != nil {
			return r, err
		}
	}
	for _, cmd := range slices.Backward(path) {
		if cmd.postAction == nil {
			continue
		}
		if err := cmd.postAction(ctx, r); err != nil {
			return r, err
		}
	}
	return r, nil
}

// Execute parses the Process argv and runs the dispatched command. Help and
// version requests are written to stdout, errors to stderr. It returns the
// exit code for the process.
func (c *Command) Execute(ctx context.Context) int {
	proc := c.Process()
	r, err := c.ParseContext(ctx, nil, ParseOptions{From: FromProgram})
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrHelp):
		target := r.HelpTarget()
		if target == nil {
			target = c
		}
		fmt.Fprint(proc.Stdout(), renderHelp(target, proc.Stdout()))
		return 0
	case errors.Is(err, ErrVersion):
		fmt.Fprintln(proc.Stdout(), c.Root().version)
		return 0
	}

	var e *Error
	if errors.As(err, &e) {
		colors := tui.ForWriter(proc.Stderr())
		fmt.Fprintf(proc.Stderr(), "%s %s\n", colors.Red("error:"), e.Reason)
		if e.Suggestion != "" {
			fmt.Fprintf(proc.Stderr(), "(Did you mean %s?)\n", e.Suggestion)
		}
		if e.Help && r.Command() != nil {
			fmt.Fprint(proc.Stderr(), "\n"+renderHelp(r.Command(), proc.Stderr()))
		}
		c.Logger().Debug("parse failed", "kind", string(e.Kind), "command", e.Command)
		return e.ExitCode
	}

	// An error carrying its own exit code has already been reported.
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	fmt.Fprintf(proc.Stderr(), "%s %v\n", tui.ForWriter(proc.Stderr()).Red("error:"), err)
	return 1
}

// Main executes c and exits its Process with the resulting code.
func (c *Command) Main(ctx context.Context) {
	c.Process().Exit(c.Execute(ctx))
}

func renderHelp(c *Command, w io.Writer) string {
	if _, ok := c.helpFormatter().(DefaultHelp); ok {
		return DefaultHelp{Colors: tui.ForWriter(w)}.FormatHelp(c)
	}
	return c.Help()
}
