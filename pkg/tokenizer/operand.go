// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tokenizer

type operand struct{}

// Operand matches any run of codes up to the end of its chunk. It starts a
// chunk or follows an attaching "="; an empty chunk is an empty operand.
var Operand Construct = operand{}

func (operand) Previous(ctx *Context, code Code) bool {
	return ctx.Mode == ModeCommand && (IsBoundaryOrStart(code) || code == codeEquals)
}

func (operand) Tokenize(ctx *Context, fx *Effects, ok, nok State) State {
	var body State
	body = func(code Code) State {
		if IsBoundary(code) {
			fx.Exit(KindOperand)
			return ok(code)
		}
		fx.Consume(code)
		return body
	}
	return func(code Code) State {
		tok := fx.Enter(KindOperand)
		tok.Attached = fx.Previous() == codeEquals
		return body(code)
	}
}

func (operand) Resolve(ctx *Context, events []Event) []Event {
	tok := events[0].Token
	tok.Value = ctx.Chunks.Text(tok.Start, tok.End)
	if !tok.Attached {
		tok.Command = ctx.findCommand(tok.Value)
	}
	return events
}

// ResolveAll gathers the values of variadic options. The operands directly
// after a variadic flag belong to it, up to the next flag or subcommand
// name. Later occurrences of the same option are folded into the first one,
// so the option appears once with every value in argv order.
func (operand) ResolveAll(ctx *Context, events []Event) []Event {
	if ctx.Mode != ModeCommand {
		return events
	}
	tokens := Tokens(events)
	out := make([]*Token, 0, len(tokens))
	first := make(map[Binding]*Token)
	last := make(map[Binding]*Token)
	delimited := false
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.Kind == KindDelimiter {
			delimited = true
		}
		if delimited || tok.Kind != KindFlag || tok.Option == nil || !tok.Option.IsVariadic() {
			out = append(out, tok)
			continue
		}

		j := i + 1
		for j < len(tokens) && tokens[j].Kind == KindOperand {
			if !tokens[j].Attached && tokens[j].Command != "" {
				break
			}
			j++
		}
		values := tokens[i+1 : j]
		if len(values) == 0 {
			out = append(out, tok)
			continue
		}

		link := last[tok.Option]
		for _, v := range values {
			if link != nil {
				link.Next = v
				v.Previous = link
			}
			link = v
		}
		last[tok.Option] = link

		head, seen := first[tok.Option]
		if !seen {
			head = values[0]
			head.Values = make([]string, 0, len(values))
			first[tok.Option] = head
			out = append(out, tok, head)
		}
		for _, v := range values {
			head.Values = append(head.Values, v.Value)
		}
		i = j - 1
	}

	resolved := make([]Event, 0, 2*len(out))
	for _, tok := range out {
		resolved = append(resolved, pair(tok)...)
	}
	return resolved
}
