// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tokenizer

type longFlag struct{}

// LongFlag matches "--name". On a command line "--name=value" is also
// matched; the "=" ends the flag and the value is an attached operand.
var LongFlag Construct = longFlag{}

func (longFlag) Previous(ctx *Context, code Code) bool {
	return ctx.Mode != ModeArgument && IsBoundaryOrStart(code)
}

func (longFlag) Tokenize(ctx *Context, fx *Effects, ok, nok State) State {
	var start, second, first, rest, end State
	start = func(code Code) State {
		if code != codeDash {
			return nok(code)
		}
		fx.Enter(KindFlag)
		fx.Consume(code)
		return second
	}
	second = func(code Code) State {
		if code != codeDash {
			return nok(code)
		}
		fx.Consume(code)
		return first
	}
	first = func(code Code) State {
		if !isAlphanumeric(code) {
			return nok(code)
		}
		fx.Enter(KindIdentifier)
		fx.Consume(code)
		return rest
	}
	rest = func(code Code) State {
		if isLongFlagCode(code) {
			fx.Consume(code)
			return rest
		}
		fx.Exit(KindIdentifier)
		return end(code)
	}
	end = func(code Code) State {
		if IsBoundary(code) {
			fx.Exit(KindFlag)
			return ok(code)
		}
		if code == codeEquals && ctx.Mode == ModeCommand {
			fx.Consume(code)
			return func(code Code) State {
				fx.Exit(KindFlag)
				return ok(code)
			}
		}
		return nok(code)
	}
	return start
}

func (longFlag) Resolve(ctx *Context, events []Event) []Event {
	flag, id := mergeIdentifier(events)
	flag.Long = true
	flag.Value = "--" + ctx.Chunks.Text(id.Start, id.End)
	flag.Option = ctx.bind(flag.Value)
	return pair(flag)
}

type shortFlag struct{}

// ShortFlag matches "-x". On a command line the rest of the chunk is kept
// with the flag and split during resolution into combined flags or an
// attached operand.
var ShortFlag Construct = shortFlag{}

func (shortFlag) Previous(ctx *Context, code Code) bool {
	return ctx.Mode != ModeArgument && IsBoundaryOrStart(code)
}

func (shortFlag) Tokenize(ctx *Context, fx *Effects, ok, nok State) State {
	var start, first, rest State
	start = func(code Code) State {
		if code != codeDash {
			return nok(code)
		}
		fx.Enter(KindFlag)
		fx.Consume(code)
		return first
	}
	first = func(code Code) State {
		if !isAlphanumeric(code) {
			return nok(code)
		}
		fx.Enter(KindIdentifier)
		fx.Consume(code)
		return rest
	}
	rest = func(code Code) State {
		if IsBoundary(code) {
			fx.Exit(KindIdentifier)
			fx.Exit(KindFlag)
			return ok(code)
		}
		if ctx.Mode != ModeCommand {
			return nok(code)
		}
		fx.Consume(code)
		return rest
	}
	return start
}

func (shortFlag) Resolve(ctx *Context, events []Event) []Event {
	flag, id := mergeIdentifier(events)
	flag.Short = true
	if id.End-id.Start == 1 {
		flag.Value = "-" + ctx.Chunks.Text(id.Start, id.End)
		flag.Option = ctx.bind(flag.Value)
		return pair(flag)
	}
	return splitCluster(ctx, flag, id)
}

// mergeIdentifier returns the flag token of events and the identifier
// nested in it.
func mergeIdentifier(events []Event) (flag, id *Token) {
	flag = events[0].Token
	for _, ev := range events[1:] {
		if ev.Phase == Enter && ev.Token.Kind == KindIdentifier {
			id = ev.Token
			break
		}
	}
	return flag, id
}

// splitCluster splits "-abc" into its constituents. The first character is
// always a flag. While the previous flag is boolean, or unknown, the next
// character is another flag; once a flag takes an argument, the rest of the
// cluster is its attached operand. A cluster whose first flag is unknown is
// kept whole.
func splitCluster(ctx *Context, flag, id *Token) []Event {
	whole := ctx.Chunks.Text(id.Start, id.End)
	flag.Value = "-" + ctx.Chunks.Text(id.Start, id.Start+1)
	flag.Option = ctx.bind(flag.Value)
	if flag.Option == nil {
		flag.Value = "-" + whole
		return pair(flag)
	}
	flag.End = id.Start + 1
	flag.Combined = true

	codes := ctx.Chunks.Codes()
	out := pair(flag)
	prev := flag
	for pos := id.Start + 1; pos < id.End; pos++ {
		if prev.Option != nil && !prev.Option.IsBoolean() {
			operand := &Token{
				Kind:     KindOperand,
				Start:    pos,
				End:      id.End,
				Value:    ctx.Chunks.Text(pos, id.End),
				Attached: true,
				Combined: true,
			}
			return append(out, pair(operand)...)
		}
		if codes[pos] == CodeVirtualSpace {
			continue
		}
		next := &Token{
			Kind:     KindFlag,
			Start:    pos,
			End:      pos + 1,
			Value:    "-" + ctx.Chunks.Text(pos, pos+1),
			Short:    true,
			Combined: true,
		}
		next.Option = ctx.bind(next.Value)
		out = append(out, pair(next)...)
		prev = next
	}
	return out
}
