// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tokenizer

type delimiter struct{}

// Delimiter matches "--" as a whole chunk. Everything after it is an
// operand.
var Delimiter Construct = delimiter{}

func (delimiter) Previous(ctx *Context, code Code) bool {
	return ctx.Mode == ModeCommand && !ctx.Delimiter && IsBoundaryOrStart(code)
}

func (delimiter) Tokenize(ctx *Context, fx *Effects, ok, nok State) State {
	var first, second, end State
	first = func(code Code) State {
		if code != codeDash {
			return nok(code)
		}
		fx.Enter(KindDelimiter)
		fx.Consume(code)
		return second
	}
	second = func(code Code) State {
		if code != codeDash {
			return nok(code)
		}
		fx.Consume(code)
		return end
	}
	end = func(code Code) State {
		if !IsBoundary(code) {
			return nok(code)
		}
		fx.Exit(KindDelimiter)
		return ok(code)
	}
	return first
}

func (delimiter) Resolve(ctx *Context, events []Event) []Event {
	ctx.Delimiter = true
	events[0].Token.Value = "--"
	return events
}
