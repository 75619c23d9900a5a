// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tokenizer turns argv, option flag definitions and argument
// syntaxes into a stream of nested enter/exit events.
//
// Input is a list of chunks (argv entries) that is preprocessed into a
// stream of codes. Constructs are small state machines that consume codes
// and open and close tokens; at every position the constructs for the mode
// are tried in order and the first that matches wins.
package tokenizer

var (
	// CommandConstructs tokenize a command line.
	CommandConstructs = []Construct{Delimiter, LongFlag, ShortFlag, Operand}
	// OptionConstructs tokenize an option's flags definition.
	OptionConstructs = []Construct{LongFlag, ShortFlag, ArgumentSyntax}
	// ArgumentConstructs tokenize an argument syntax.
	ArgumentConstructs = []Construct{ArgumentSyntax}
)

// For returns the constructs used for mode.
func For(mode Mode) []Construct {
	switch mode {
	case ModeOption:
		return OptionConstructs
	case ModeArgument:
		return ArgumentConstructs
	}
	return CommandConstructs
}

// Args tokenizes args with the constructs of ctx.Mode.
func Args(ctx *Context, args []string) []Event {
	ctx.Chunks = NewChunks(args)
	ctx.Chunk = 0
	ctx.Delimiter = false
	return Tokenize(ctx, For(ctx.Mode)...)
}

// consumed returns the number of codes covered by events, which is where
// tokenizing stopped.
func consumed(events []Event) int {
	end := 0
	for _, ev := range events {
		if ev.Phase == Exit && ev.Token.End > end {
			end = ev.Token.End
		}
	}
	return end
}
