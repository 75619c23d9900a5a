// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ycmd

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/yeetrun/ycmd/pkg/tokenizer"
)

// Help flag constants
const (
	helpFlagLong  = "--help"
	helpFlagShort = "-h"
	helpCommand   = "help"
)

// From says which leading argv entries are not user arguments.
type From uint8

const (
	// FromUser means every entry is a user argument.
	FromUser From = iota
	// FromProgram skips argv[0], the program name.
	FromProgram
	// FromScript skips the interpreter and the script name.
	FromScript
)

// ParseOptions configures Resolve and Parse.
type ParseOptions struct {
	From From
}

type parser struct {
	result  *Result
	log     *slog.Logger
	configs map[*Command]ConfigSource
}

// Resolve parses argv against the tree rooted at c and validates the
// result without running any action. A nil argv means the Process argv,
// read as FromProgram unless opts says otherwise.
//
// The Result is returned even with an error; it records how far
// resolution got, and names the help target after ErrHelp.
func (c *Command) Resolve(argv []string, opts ParseOptions) (*Result, error) {
	if argv == nil {
		argv = c.Process().Args()
		if opts.From == FromUser {
			opts.From = FromProgram
		}
	}
	switch opts.From {
	case FromProgram:
		argv = skip(argv, 1)
	case FromScript:
		argv = skip(argv, 2)
	}
	p := &parser{
		result:  newResult(),
		log:     c.Logger(),
		configs: make(map[*Command]ConfigSource),
	}
	return p.result, p.prepare(c, nil, argv)
}

func skip(argv []string, n int) []string {
	if len(argv) <= n {
		return []string{}
	}
	return argv[n:]
}

// prepare resolves one command. operands were already classified by the
// parent; args are re-tokenized against c.
func (p *parser) prepare(c *Command, operands, args []string) error {
	st := p.result.enter(c)
	log := p.log.With("command", c.FullName())

	ctx := c.tokenizerContext()
	tokens := tokenizer.Tokens(tokenizer.Args(ctx, args))
	log.Debug("tokenized", "args", len(args), "tokens", len(tokens))

	operands = slices.Clone(operands)
	var unknown []string
	dest := &operands
scan:
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch tok.Kind {
		case tokenizer.KindDelimiter:
			if dest == &unknown {
				unknown = append(unknown, "--")
			}
			*dest = append(*dest, ctx.Chunks.After(tok.Start)...)
			break scan
		case tokenizer.KindOperand:
			*dest = append(*dest, tok.Strings()...)
		case tokenizer.KindFlag:
			opt := c.own(tok.Value)
			if opt == nil {
				dest = &unknown
				raw, n := forward(tok, tokens[i+1:])
				unknown = append(unknown, raw...)
				i += n
				continue
			}
			n, err := p.flag(c, st, opt, tok, tokens[i+1:])
			if err != nil {
				return err
			}
			i += n
		}
	}

	if err := p.fallback(c); err != nil {
		return err
	}
	st.argv = append(slices.Clone(operands), unknown...)

	if v := c.versionOption; v != nil && st.sources[v.Name()] == SourceCLI {
		return ErrVersion
	}

	if len(operands) > 0 {
		if sub := c.findCommand(operands[0]); sub != nil {
			log.Debug("dispatch", "subcommand", sub.name)
			return p.prepare(sub, operands[1:], unknown)
		}
		if operands[0] == helpCommand && c.hasHelpCommand() {
			return p.helpCommand(c, operands[1:])
		}
	}
	if c.defaultCommand != "" {
		if hasHelpFlag(unknown) {
			p.result.help = c
			return ErrHelp
		}
		if sub := c.findCommand(c.defaultCommand); sub != nil {
			log.Debug("dispatch default", "subcommand", sub.name)
			return p.prepare(sub, operands, unknown)
		}
	}
	return p.finish(c, st, operands, unknown)
}

// forward returns the raw text of a flag c does not own, rejoined with its
// attached operand, and how many of the following tokens it used.
func forward(tok *tokenizer.Token, rest []*tokenizer.Token) ([]string, int) {
	if len(rest) == 0 || rest[0].Kind != tokenizer.KindOperand || !rest[0].Attached {
		return []string{tok.Value}, 0
	}
	values := rest[0].Strings()
	sep := ""
	if tok.Long {
		sep = "="
	}
	raw := append([]string{tok.Value + sep + values[0]}, values[1:]...)
	return raw, 1
}

func (c *Command) takesOperands() bool {
	return len(c.arguments) > 0 || len(c.commands) > 0
}

// flag resolves the value of an owned flag and returns how many of the
// following tokens it consumed.
func (p *parser) flag(c *Command, st *state, opt *Option, tok *tokenizer.Token, rest []*tokenizer.Token) (int, error) {
	var next *tokenizer.Token
	if len(rest) > 0 && rest[0].Kind == tokenizer.KindOperand {
		next = rest[0]
	}

	switch {
	case opt.IsBoolean():
		switch {
		case next != nil && next.Attached:
			// An attached value that is not a boolean literal is kept as typed.
			if opt.parser == nil && !isBoolLiteral(next.Value) {
				p.set(c, st, opt, next.Value, SourceCLI)
				return 1, nil
			}
			return 1, p.store(c, st, opt, next.Strings(), SourceCLI, "")
		case next != nil && !c.takesOperands() && isBoolLiteral(next.Value):
			return 1, p.store(c, st, opt, next.Strings(), SourceCLI, "")
		}
		p.set(c, st, opt, true, SourceCLI)
		return 0, nil

	case opt.IsOptional():
		if next != nil && (next.Attached || next.Command == "") {
			return 1, p.store(c, st, opt, next.Strings(), SourceCLI, "")
		}
		var v any = true
		if opt.hasPreset {
			v = opt.preset
		}
		p.set(c, st, opt, v, SourceCLI)
		return 0, nil
	}

	if next != nil {
		return 1, p.store(c, st, opt, next.Strings(), SourceCLI, "")
	}
	// A negative number is an argument, not a flag.
	if len(rest) > 0 && rest[0].Kind == tokenizer.KindFlag && rest[0].Option == nil && isNumeric(rest[0].Value) {
		return 1, p.store(c, st, opt, []string{rest[0].Value}, SourceCLI, "")
	}
	return 0, newError(InvalidArgument, c.name, "option '%s' requires an argument", opt.flags)
}

func (p *parser) set(c *Command, st *state, opt *Option, v any, src Source) {
	st.set(opt.Name(), v, src)
	p.log.Debug("option", "command", c.FullName(), "option", opt.Name(), "source", src)
}

// store checks raws against the option's choices, coerces them and records
// the value. Repeated values from the same source accumulate; a value from
// a new source starts again from the default.
func (p *parser) store(c *Command, st *state, opt *Option, raws []string, src Source, origin string) error {
	name := opt.Name()
	accumulate := st.sources[name] == src
	for _, raw := range raws {
		if len(opt.choices) > 0 && !slices.Contains(opt.choices, raw) {
			return newError(InvalidArgument, c.name, "option '%s' argument '%s'%s is invalid. Allowed choices are %s.",
				opt.flags, raw, origin, strings.Join(opt.choices, ", "))
		}
	}

	var value any
	switch {
	case opt.parser != nil:
		value = opt.def
		if accumulate {
			value = st.values[name]
		}
		for _, raw := range raws {
			v, err := opt.parser(raw, value)
			if err != nil {
				e := newError(InvalidArgument, c.name, "option '%s' argument '%s'%s is invalid. %v", opt.flags, raw, origin, err)
				e.Cause = err
				return e
			}
			value = v
		}
	case opt.IsBoolean():
		raw := raws[len(raws)-1]
		b, err := strconv.ParseBool(raw)
		if err != nil {
			e := newError(InvalidArgument, c.name, "option '%s' argument '%s'%s is invalid. Expected a boolean.", opt.flags, raw, origin)
			e.Cause = err
			return e
		}
		value = b
	case opt.variadic:
		var list []string
		if accumulate {
			list, _ = st.values[name].([]string)
		}
		value = append(slices.Clone(list), raws...)
	default:
		value = raws[len(raws)-1]
	}
	p.set(c, st, opt, value, src)
	return nil
}

func (p *parser) helpCommand(c *Command, names []string) error {
	target := c
	for _, name := range names {
		sub := target.findCommand(name)
		if sub == nil {
			return unknownCommand(target, name)
		}
		target = sub
	}
	p.result.help = target
	return ErrHelp
}

func hasHelpFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--":
			return false
		case helpFlagShort, helpFlagLong:
			return true
		}
	}
	return false
}

// finish validates and coerces the terminal command.
func (p *parser) finish(c *Command, st *state, operands, unknown []string) error {
	if hasHelpFlag(unknown) {
		p.result.help = c
		return ErrHelp
	}
	if err := p.checkMandatory(); err != nil {
		return err
	}
	if err := p.checkConflicts(); err != nil {
		return err
	}
	if err := p.checkDepends(); err != nil {
		return err
	}
	if len(unknown) > 0 && c.unknown&AllowUnknownOptions == 0 {
		return p.unknownOption(c, unknown[0])
	}
	if len(c.commands) > 0 && c.action == nil {
		if len(operands) > 0 {
			return unknownCommand(c, operands[0])
		}
		e := newError(MissingArgument, c.name, "missing subcommand")
		e.Help = true
		return e
	}

	args := st.argv
	for i, a := range c.arguments {
		if a.required && i >= len(args) {
			return newError(MissingArgument, c.name, "missing required argument '%s'", a.displayName())
		}
	}
	n := len(c.arguments)
	variadic := n > 0 && c.arguments[n-1].variadic
	if !variadic && len(args) > n && c.unknown&AllowExcessArguments == 0 {
		forName := ""
		if c.parent != nil {
			forName = fmt.Sprintf(" for '%s'", c.name)
		}
		return newError(ExcessArguments, c.name, "too many arguments%s. Expected %d argument%s but got %d.",
			forName, n, plural(n), len(args))
	}

	values := make([]any, 0, n)
	for i, a := range c.arguments {
		var raws []string
		switch {
		case a.variadic && i < len(args):
			raws = args[i:]
		case i < len(args):
			raws = args[i : i+1]
		}
		v, err := coerce(c, a, raws)
		if err != nil {
			return err
		}
		values = append(values, v)
	}
	p.result.args = values
	p.log.Debug("resolved", "command", c.FullName(), "args", len(values))
	return nil
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// coerce turns the raw values of a into its value, seeding the parser with
// the default. A missing argument is its default.
func coerce(c *Command, a *Argument, raws []string) (any, error) {
	if len(raws) == 0 {
		return a.def, nil
	}
	for _, raw := range raws {
		if len(a.choices) > 0 && !slices.Contains(a.choices, raw) {
			return nil, newError(InvalidArgument, c.name, "command-argument value '%s' is invalid for argument '%s'. Allowed choices are %s.",
				raw, a.displayName(), strings.Join(a.choices, ", "))
		}
	}
	if a.parser == nil {
		if a.variadic {
			return slices.Clone(raws), nil
		}
		return raws[0], nil
	}
	value := a.def
	for _, raw := range raws {
		v, err := a.parser(raw, value)
		if err != nil {
			e := newError(InvalidArgument, c.name, "command-argument value '%s' is invalid for argument '%s'. %v", raw, a.displayName(), err)
			e.Cause = err
			return nil, e
		}
		value = v
	}
	return value, nil
}
