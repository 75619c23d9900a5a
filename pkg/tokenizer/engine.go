// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tokenizer

import (
	"fmt"
	"slices"
)

// Mode selects what is being tokenized.
type Mode uint8

const (
	// ModeCommand tokenizes a command line.
	ModeCommand Mode = iota
	// ModeOption tokenizes an option's flags definition ("-d, --debug <level>").
	ModeOption
	// ModeArgument tokenizes an argument syntax ("<file...>").
	ModeArgument
)

// Context is the mutable state of one Tokenize call.
type Context struct {
	Mode   Mode
	Chunks *Chunks

	// Chunk is the index of the chunk being tokenized.
	Chunk int
	// Delimiter is set once a "--" delimiter has been seen.
	Delimiter bool

	// FindCommand returns the canonical name of the subcommand called name,
	// or "" if there is none.
	FindCommand func(name string) string
	// FindOption returns the option of the command being parsed, or of one
	// of its ancestors, that answers to flag.
	FindOption func(flag string) Binding
	// FindSubOption returns an option of a descendant command that answers
	// to flag.
	FindSubOption func(flag string) Binding
}

func (ctx *Context) findCommand(name string) string {
	if ctx.FindCommand == nil {
		return ""
	}
	return ctx.FindCommand(name)
}

func (ctx *Context) bind(flag string) Binding {
	if ctx.Mode != ModeCommand {
		return nil
	}
	if ctx.FindOption != nil {
		if b := ctx.FindOption(flag); b != nil {
			return b
		}
	}
	if ctx.FindSubOption != nil {
		return ctx.FindSubOption(flag)
	}
	return nil
}

// State is a continuation: it is given the current code and returns the
// state that handles the next code. A state that does not consume the code
// must call the next state directly with the same code.
type State func(code Code) State

// Construct is a lexical recognizer driven by the tokenizer.
type Construct interface {
	// Previous reports whether the construct may start after code.
	Previous(ctx *Context, code Code) bool
	// Tokenize returns the start state of the construct.
	Tokenize(ctx *Context, fx *Effects, ok, nok State) State
	// Resolve rewrites the events the construct emitted after it matched.
	Resolve(ctx *Context, events []Event) []Event
}

// AllResolver is implemented by constructs that post-process the whole event
// stream once per Tokenize call.
type AllResolver interface {
	ResolveAll(ctx *Context, events []Event) []Event
}

// Effects is how constructs act on the tokenizer.
type Effects struct {
	t *tokenizer
}

type tokenizer struct {
	ctx       *Context
	fx        *Effects
	codes     []Code
	pos       int
	previous  Code
	consumed  bool
	events    []Event
	stack     []*Token
	used      []Construct
	attachPos int // where an operand was last attempted after an attaching "="
}

type checkpoint struct {
	pos      int
	previous Code
	events   int
	stack    int
}

// Enter opens a token of the given kind at the current position.
func (fx *Effects) Enter(kind Kind) *Token {
	t := fx.t
	tok := &Token{Kind: kind, Start: t.pos, End: t.pos}
	t.stack = append(t.stack, tok)
	t.events = append(t.events, Event{Phase: Enter, Token: tok})
	return tok
}

// Exit closes the most recently opened token, which must be of kind.
func (fx *Effects) Exit(kind Kind) *Token {
	t := fx.t
	if len(t.stack) == 0 {
		panic(fmt.Sprintf("tokenizer: exit %s with no open token", kind))
	}
	tok := t.stack[len(t.stack)-1]
	if tok.Kind != kind {
		panic(fmt.Sprintf("tokenizer: exit %s while %s is open", kind, tok.Kind))
	}
	t.stack = t.stack[:len(t.stack)-1]
	tok.End = t.pos
	t.events = append(t.events, Event{Phase: Exit, Token: tok})
	return tok
}

// Consume moves past code, which must be the current code.
func (fx *Effects) Consume(code Code) {
	t := fx.t
	if code != t.codes[t.pos] {
		panic(fmt.Sprintf("tokenizer: consume %d at %d, have %d", code, t.pos, t.codes[t.pos]))
	}
	if code == CodeEOF {
		panic("tokenizer: consume past end of input")
	}
	t.previous = code
	t.pos++
	t.consumed = true
}

// Previous returns the last consumed code.
func (fx *Effects) Previous() Code {
	return fx.t.previous
}

// Attempt tries construct c. If it matches, its events are resolved and
// kept and ok continues; otherwise the tokenizer is restored to where the
// attempt started and nok continues.
func (fx *Effects) Attempt(c Construct, ok, nok State) State {
	t := fx.t
	return func(code Code) State {
		if !c.Previous(t.ctx, t.previous) {
			return nok(code)
		}
		saved := t.save()
		onOK := func(code Code) State {
			resolved := c.Resolve(t.ctx, slices.Clone(t.events[saved.events:]))
			t.events = append(t.events[:saved.events], resolved...)
			if !slices.Contains(t.used, c) {
				t.used = append(t.used, c)
			}
			return ok(code)
		}
		onNOK := func(Code) State {
			t.restore(saved)
			return nok(t.codes[t.pos])
		}
		return c.Tokenize(t.ctx, fx, onOK, onNOK)(code)
	}
}

func (t *tokenizer) save() checkpoint {
	return checkpoint{pos: t.pos, previous: t.previous, events: len(t.events), stack: len(t.stack)}
}

func (t *tokenizer) restore(c checkpoint) {
	t.pos = c.pos
	t.previous = c.previous
	t.events = t.events[:c.events]
	t.stack = t.stack[:c.stack]
}

// Tokenize runs constructs over ctx.Chunks. At every position the constructs
// are tried in order; tokenizing stops at the end of input or at the first
// position where none matches.
func Tokenize(ctx *Context, constructs ...Construct) []Event {
	if ctx.Chunks == nil {
		ctx.Chunks = NewChunks(nil)
	}
	t := &tokenizer{
		ctx:       ctx,
		codes:     ctx.Chunks.Codes(),
		previous:  CodeNone,
		attachPos: -1,
	}
	t.fx = &Effects{t: t}
	t.run(t.start(constructs))

	events := t.events
	for _, c := range t.used {
		if ra, ok := c.(AllResolver); ok {
			events = ra.ResolveAll(ctx, events)
		}
	}
	return events
}

func (t *tokenizer) run(state State) {
	for state != nil {
		t.consumed = false
		state = state(t.codes[t.pos])
		if state != nil && !t.consumed {
			panic(fmt.Sprintf("tokenizer: state at %d returned without consuming", t.pos))
		}
	}
}

// start returns the driver state that begins the next construct.
func (t *tokenizer) start(constructs []Construct) State {
	var begin, between State
	between = func(code Code) State {
		// An attaching "=" is followed by an operand, even an empty one.
		if t.pendingAttach() {
			t.attachPos = t.pos
			return begin(code)
		}
		switch code {
		case CodeEOF:
			return nil
		case CodeBreak:
			t.fx.Consume(code)
			t.ctx.Chunk = t.ctx.Chunks.Index(t.pos)
			return begin
		}
		return begin(code)
	}
	begin = func(code Code) State {
		if code == CodeEOF && t.attachPos != t.pos {
			return nil
		}
		t.ctx.Chunk = t.ctx.Chunks.Index(t.pos)
		candidates := constructs
		if t.ctx.Delimiter {
			candidates = []Construct{Operand}
		}
		return t.try(candidates, 0, between)(code)
	}
	return begin
}

func (t *tokenizer) pendingAttach() bool {
	return t.previous == codeEquals && t.attachPos != t.pos
}

// try attempts candidates[i:] in order and continues with next after the
// first that matches.
func (t *tokenizer) try(candidates []Construct, i int, next State) State {
	if i >= len(candidates) {
		return func(Code) State { return nil }
	}
	return t.fx.Attempt(candidates[i], next, func(code Code) State {
		return t.try(candidates, i+1, next)(code)
	})
}
