// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tokenizer

import "fmt"

// Kind is the type of a token.
type Kind uint8

const (
	KindFlag Kind = iota + 1
	KindDelimiter
	KindOperand
	KindArgumentSyntax
	KindIdentifier
)

func (k Kind) String() string {
	switch k {
	case KindFlag:
		return "flag"
	case KindDelimiter:
		return "delimiter"
	case KindOperand:
		return "operand"
	case KindArgumentSyntax:
		return "argument-syntax"
	case KindIdentifier:
		return "identifier"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Binding is the view of a registered option that tokenizing needs to
// decide how a flag consumes the characters and operands after it.
type Binding interface {
	// IsBoolean reports whether the option takes no argument.
	IsBoolean() bool
	// IsVariadic reports whether the option accumulates several values.
	IsVariadic() bool
}

// Token is a span [Start, End) of the code stream.
type Token struct {
	Kind  Kind
	Start int
	End   int

	// Value is the flag text ("--name", "-x"), the operand text or the
	// argument-syntax id.
	Value string
	// Values holds every value of an operand that was coalesced for a
	// variadic option, in argv order.
	Values []string

	Long  bool
	Short bool

	Required  bool
	Variadic  bool
	Mandatory bool

	// Attached is set for an operand joined to its flag with "=" or, for
	// short flags, directly ("-ovalue").
	Attached bool
	// Combined is set for tokens produced by splitting a short flag cluster.
	Combined bool

	// Option is the option bound to a flag. Not owned.
	Option Binding
	// Command is the canonical name of the subcommand an operand names.
	Command string

	// Previous and Next link the operands coalesced into one variadic value.
	// Not owned.
	Previous *Token
	Next     *Token
}

// Strings returns the operand values of t.
func (t *Token) Strings() []string {
	if t.Values != nil {
		return t.Values
	}
	return []string{t.Value}
}

func (t *Token) String() string {
	return fmt.Sprintf("%s[%d:%d]%q", t.Kind, t.Start, t.End, t.Value)
}

// Phase says whether an event opens or closes a token.
type Phase uint8

const (
	Enter Phase = iota + 1
	Exit
)

func (p Phase) String() string {
	if p == Enter {
		return "enter"
	}
	return "exit"
}

// Event is an enter or exit marker for a token. Events are strictly nested.
type Event struct {
	Phase Phase
	Token *Token
}

// Tokens returns the outermost tokens of events, in order.
func Tokens(events []Event) []*Token {
	var out []*Token
	depth := 0
	for _, ev := range events {
		switch ev.Phase {
		case Enter:
			if depth == 0 {
				out = append(out, ev.Token)
			}
			depth++
		case Exit:
			depth--
		}
	}
	return out
}

// pair returns the enter/exit events of a token with no children.
func pair(t *Token) []Event {
	return []Event{{Phase: Enter, Token: t}, {Phase: Exit, Token: t}}
}
