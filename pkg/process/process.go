// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package process abstracts the host process: argv, environment, stdio and
// exit. Command parsing only touches the host through a Process so it can be
// tested without real process state.
package process

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/term"
)

// Process is the host a command runs in.
type Process interface {
	// Args returns the full argv, including the program name.
	Args() []string
	LookupEnv(key string) (string, bool)
	Stdout() io.Writer
	Stderr() io.Writer
	Exit(code int)
	Logger() *slog.Logger
}

type osProcess struct {
	once   sync.Once
	logger *slog.Logger
}

var host = &osProcess{}

// OS returns the Process of the running program.
func OS() Process {
	return host
}

func (p *osProcess) Args() []string                      { return os.Args }
func (p *osProcess) LookupEnv(key string) (string, bool) { return os.LookupEnv(key) }
func (p *osProcess) Stdout() io.Writer                   { return os.Stdout }
func (p *osProcess) Stderr() io.Writer                   { return os.Stderr }
func (p *osProcess) Exit(code int)                       { os.Exit(code) }

func (p *osProcess) Logger() *slog.Logger {
	p.once.Do(func() {
		p.logger = NewLogger(os.Stderr, slog.LevelWarn)
	})
	return p.logger
}

// NewLogger creates a structured logger writing to w. When w is a terminal
// it uses slog.TextHandler for human-readable output; otherwise it uses
// slog.JSONHandler so piped output stays machine-parseable.
func NewLogger(w io.Writer, level slog.Leveler) *slog.Logger {
	options := &slog.HandlerOptions{Level: level}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return slog.New(slog.NewTextHandler(w, options))
	}
	return slog.New(slog.NewJSONHandler(w, options))
}

// Fake is an in-memory Process for tests.
type Fake struct {
	Argv []string
	Env  map[string]string
	Out  bytes.Buffer
	Err  bytes.Buffer
	// Log is returned by Logger. A nil Log discards.
	Log *slog.Logger

	// Code is the code passed to Exit, and Exited whether it was called.
	Code   int
	Exited bool
}

func (f *Fake) Args() []string { return f.Argv }

func (f *Fake) LookupEnv(key string) (string, bool) {
	v, ok := f.Env[key]
	return v, ok
}

func (f *Fake) Stdout() io.Writer { return &f.Out }
func (f *Fake) Stderr() io.Writer { return &f.Err }

// Exit records code. It does not stop the caller.
func (f *Fake) Exit(code int) {
	f.Code = code
	f.Exited = true
}

func (f *Fake) Logger() *slog.Logger {
	if f.Log == nil {
		return slog.New(slog.DiscardHandler)
	}
	return f.Log
}
