// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tokenizer

import "strings"

type argumentSyntax struct{}

// ArgumentSyntax matches "<id>" (required) and "[id]" (optional). The id
// may end in "..." for a variadic argument and, in option definitions, in
// "!" for a mandatory option. The id may be empty.
var ArgumentSyntax Construct = argumentSyntax{}

func (argumentSyntax) Previous(ctx *Context, code Code) bool {
	return ctx.Mode != ModeCommand && IsBoundaryOrStart(code)
}

func (argumentSyntax) Tokenize(ctx *Context, fx *Effects, ok, nok State) State {
	var closing Code
	var start, inside, id, closed, end State
	start = func(code Code) State {
		switch code {
		case codeLessThan:
			closing = codeGreaterThan
		case codeLeftSquare:
			closing = codeRightSquare
		default:
			return nok(code)
		}
		tok := fx.Enter(KindArgumentSyntax)
		tok.Required = code == codeLessThan
		fx.Consume(code)
		return inside
	}
	inside = func(code Code) State {
		if code == closing {
			return closed(code)
		}
		if !isSyntaxIDCode(code) {
			return nok(code)
		}
		fx.Enter(KindIdentifier)
		fx.Consume(code)
		return id
	}
	id = func(code Code) State {
		if isSyntaxIDCode(code) {
			fx.Consume(code)
			return id
		}
		if code != closing {
			return nok(code)
		}
		if ctx.Mode == ModeArgument && fx.Previous() == codeExclamation {
			return nok(code)
		}
		fx.Exit(KindIdentifier)
		return closed(code)
	}
	closed = func(code Code) State {
		fx.Consume(code)
		return end
	}
	end = func(code Code) State {
		if !IsBoundary(code) {
			return nok(code)
		}
		fx.Exit(KindArgumentSyntax)
		return ok(code)
	}
	return start
}

func (argumentSyntax) Resolve(ctx *Context, events []Event) []Event {
	tok := events[0].Token
	var name string
	for _, ev := range events[1:] {
		if ev.Phase == Enter && ev.Token.Kind == KindIdentifier {
			name = ctx.Chunks.Text(ev.Token.Start, ev.Token.End)
			break
		}
	}
	for {
		switch {
		case !tok.Variadic && strings.HasSuffix(name, "..."):
			name = strings.TrimSuffix(name, "...")
			tok.Variadic = true
			continue
		case !tok.Mandatory && ctx.Mode == ModeOption && strings.HasSuffix(name, "!"):
			name = strings.TrimSuffix(name, "!")
			tok.Mandatory = true
			continue
		}
		break
	}
	tok.Value = name
	return pair(tok)
}
