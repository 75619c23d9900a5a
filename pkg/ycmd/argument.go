// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ycmd

import (
	"strings"

	"github.com/yeetrun/ycmd/pkg/tokenizer"
)

// Argument is a positional command argument such as "<file>" or
// "[files...]".
type Argument struct {
	syntax      string
	name        string
	description string
	required    bool
	variadic    bool

	def     any
	parser  Parser
	choices []string
}

// NewArgument compiles syntax ("<name>", "[name]", "<name...>", "[]") into
// an Argument.
func NewArgument(syntax, description string) (*Argument, error) {
	syntax = strings.TrimSpace(syntax)
	ctx := &tokenizer.Context{Mode: tokenizer.ModeArgument}
	tokens := tokenizer.Tokens(tokenizer.Args(ctx, []string{syntax}))
	if len(tokens) != 1 || tokens[0].Kind != tokenizer.KindArgumentSyntax {
		return nil, newError(InvalidArgumentSyntax, "", "invalid argument syntax %q", syntax)
	}
	tok := tokens[0]
	return &Argument{
		syntax:      syntax,
		name:        tok.Value,
		description: description,
		required:    tok.Required,
		variadic:    tok.Variadic,
	}, nil
}

// MustArgument is like NewArgument but panics on error.
func MustArgument(syntax, description string) *Argument {
	a, err := NewArgument(syntax, description)
	if err != nil {
		panic(err)
	}
	return a
}

// Syntax returns the syntax the argument was compiled from.
func (a *Argument) Syntax() string { return a.syntax }

// Name returns the id between the brackets, without markup.
func (a *Argument) Name() string { return a.name }

func (a *Argument) Description() string { return a.description }
func (a *Argument) Required() bool      { return a.required }
func (a *Argument) Variadic() bool      { return a.variadic }
func (a *Argument) Default() any        { return a.def }
func (a *Argument) Parser() Parser      { return a.parser }
func (a *Argument) Choices() []string   { return a.choices }

// SetDefault sets the value used when the argument is not given.
func (a *Argument) SetDefault(v any) *Argument {
	a.def = v
	return a
}

// SetParser sets the parser that coerces the raw value. A variadic
// argument's parser is called once per value.
func (a *Argument) SetParser(p Parser) *Argument {
	a.parser = p
	return a
}

// SetChoices restricts the raw value to one of choices.
func (a *Argument) SetChoices(choices ...string) *Argument {
	a.choices = choices
	return a
}

func (a *Argument) displayName() string {
	if a.name == "" {
		return a.syntax
	}
	return a.name
}
