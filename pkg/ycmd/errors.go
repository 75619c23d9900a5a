// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ycmd

import (
	"errors"
	"fmt"
)

// ErrorKind identifies a class of failure.
type ErrorKind string

// Definition-time kinds. They are programming errors in a command tree.
const (
	InvalidArgumentSyntax         ErrorKind = "invalid-argument-syntax"
	InvalidFlags                  ErrorKind = "invalid-flags"
	NoFlags                       ErrorKind = "no-flags"
	ArgumentAfterVariadic         ErrorKind = "argument-after-variadic"
	RequiredArgumentAfterOptional ErrorKind = "required-argument-after-optional"
	DuplicateOption               ErrorKind = "duplicate-option"
	DuplicateSubcommand           ErrorKind = "duplicate-subcommand"
	InvalidSubcommandName         ErrorKind = "invalid-subcommand-name"
)

// Parse-time kinds. They are caused by the command line.
const (
	MissingArgument        ErrorKind = "missing-argument"
	ExcessArguments        ErrorKind = "excess-arguments"
	InvalidArgument        ErrorKind = "invalid-argument"
	MissingMandatoryOption ErrorKind = "missing-mandatory-option"
	UnknownOption          ErrorKind = "unknown-option"
	ConflictingOption      ErrorKind = "conflicting-option"
	DependsOnMissingOption ErrorKind = "depends-on-missing-option"
	UnknownCommand         ErrorKind = "unknown-command"
)

const (
	exitDefinition = 1
	exitUsage      = 2
)

// ExitCode returns the suggested process exit code for errors of kind k.
func (k ErrorKind) ExitCode() int {
	switch k {
	case MissingArgument, ExcessArguments, InvalidArgument, MissingMandatoryOption,
		UnknownOption, ConflictingOption, DependsOnMissingOption, UnknownCommand:
		return exitUsage
	}
	return exitDefinition
}

// Error is the error returned for every definition and parse failure.
type Error struct {
	Kind ErrorKind
	// Reason is the human readable message.
	Reason string
	// Cause is the underlying error, for example from a value parser.
	Cause error
	// ExitCode is the suggested process exit code.
	ExitCode int
	// Command is the name of the command being defined or parsed.
	Command string
	// Suggestion is a close match for a mistyped option or command name.
	Suggestion string
	// Help is set when the command's help should accompany the message.
	Help bool
}

func (e *Error) Error() string {
	if e.Reason == "" {
		return string(e.Kind)
	}
	return e.Reason
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind, so that
// errors.Is(err, ErrUnknownOption) matches any unknown-option error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Reason == "" || t.Reason == e.Reason)
}

// Sentinels for errors.Is.
var (
	ErrInvalidArgumentSyntax         = &Error{Kind: InvalidArgumentSyntax}
	ErrInvalidFlags                  = &Error{Kind: InvalidFlags}
	ErrNoFlags                       = &Error{Kind: NoFlags}
	ErrArgumentAfterVariadic         = &Error{Kind: ArgumentAfterVariadic}
	ErrRequiredArgumentAfterOptional = &Error{Kind: RequiredArgumentAfterOptional}
	ErrDuplicateOption               = &Error{Kind: DuplicateOption}
	ErrDuplicateSubcommand           = &Error{Kind: DuplicateSubcommand}
	ErrInvalidSubcommandName         = &Error{Kind: InvalidSubcommandName}
	ErrMissingArgument               = &Error{Kind: MissingArgument}
	ErrExcessArguments               = &Error{Kind: ExcessArguments}
	ErrInvalidArgument               = &Error{Kind: InvalidArgument}
	ErrMissingMandatoryOption        = &Error{Kind: MissingMandatoryOption}
	ErrUnknownOption                 = &Error{Kind: UnknownOption}
	ErrConflictingOption             = &Error{Kind: ConflictingOption}
	ErrDependsOnMissingOption        = &Error{Kind: DependsOnMissingOption}
	ErrUnknownCommand                = &Error{Kind: UnknownCommand}
)

var (
	// ErrHelp is returned when help was requested with -h, --help or the
	// help command. Result.HelpTarget names the command to describe.
	ErrHelp = errors.New("help requested")

	// ErrVersion is returned when the version option was given.
	ErrVersion = errors.New("version requested")
)

func newError(kind ErrorKind, command string, format string, args ...any) *Error {
	return &Error{
		Kind:     kind,
		Reason:   fmt.Sprintf(format, args...),
		ExitCode: kind.ExitCode(),
		Command:  command,
	}
}

// ExitCode returns the exit code suggested by err: 0 for nil, ErrHelp and
// ErrVersion, the code carried by an *Error or by any error with an
// ExitCode() int method, and 1 otherwise.
func ExitCode(err error) int {
	if err == nil || errors.Is(err, ErrHelp) || errors.Is(err, ErrVersion) {
		return 0
	}
	var e *Error
	if errors.As(err, &e) {
		return e.ExitCode
	}
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 1
}
