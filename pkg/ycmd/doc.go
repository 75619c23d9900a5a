// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ycmd parses command lines into a validated tree of commands,
// options and arguments with POSIX/GNU precision.
//
// Supported syntax:
//   - short flags (-v), combined short flags (-dnx) and attached short
//     values (-ofile)
//   - long flags (--verbose) and attached long values (--output=file)
//   - required (<arg>), optional ([arg]), variadic (<arg...>) and mandatory
//     (<arg!>) option arguments
//   - "--" to end options
//   - conflicts, dependencies and implications between options
//   - environment and config file fallback
//   - nested subcommands with aliases and a default subcommand
//
// # Usage
//
//	root := ycmd.New("yver").SetVersion("1.0.0")
//	root.Option("-v, --verbose", "Log more")
//
//	bump := root.Command("bump <part> [version]", "Bump a version").Alias("b")
//	bump.Option("--pre <id>", "Prerelease identifier").SetEnv("YVER_PRE")
//	bump.SetAction(func(ctx context.Context, r *ycmd.Result) error {
//	    part := r.ArgString(0)
//	    pre := r.String("pre")
//	    ...
//	})
//
//	root.Main(context.Background())
//
// # Parse state
//
// A Command holds configuration only. Every parse returns a fresh Result
// with the dispatched path, option values and their Source, and the coerced
// arguments, so a tree can be parsed any number of times. Concurrent parses
// of one tree are safe as long as nobody modifies the tree.
//
// # Errors
//
// Every failure is an *Error with a Kind, a Reason and a suggested exit
// code. Definition errors (bad flag syntax, duplicate options) are returned
// by the New and Add functions; the fluent helpers panic with them.
// Parse errors compare equal to the Err sentinels with errors.Is:
//
//	if errors.Is(err, ycmd.ErrUnknownOption) { ... }
//
// ErrHelp and ErrVersion report help and version requests.
package ycmd
