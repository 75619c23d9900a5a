// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ycmd

import (
	"strings"
	"unicode"

	"github.com/yeetrun/ycmd/pkg/tokenizer"
)

// Option is a flag such as "-d, --debug" or "--pre <id>".
//
// An option with no argument syntax is boolean, one with "[arg]" takes an
// optional argument and one with "<arg>" a required argument.
type Option struct {
	flags       string
	description string
	long        string
	short       string

	hasArg    bool
	required  bool
	variadic  bool
	mandatory bool
	argName   string

	env       string
	def       any
	preset    any
	hasPreset bool
	choices   []string
	conflicts []string
	depends   []string
	implies   map[string]any
	parser    Parser
	hidden    bool
	configKey string
}

func isFlagSeparator(r rune) bool {
	return r == ',' || r == '|' || unicode.IsSpace(r)
}

// NewOption compiles flags into an Option. flags holds at most one short
// and one long flag, separated by ",", "|" or spaces, optionally followed
// by an argument syntax: "-p, --pre <id>", "--conditions <c...>",
// "-m|--meta [m]", "--profile <name!>". The argument syntax is split on
// spaces only, so its id may hold "|": "--color <auto|never>".
func NewOption(flags, description string) (*Option, error) {
	head, syntax := flags, ""
	if i := strings.IndexAny(flags, "<["); i >= 0 {
		head, syntax = flags[:i], flags[i:]
	}
	parts := append(strings.FieldsFunc(head, isFlagSeparator), strings.Fields(syntax)...)
	if len(parts) == 0 {
		return nil, newError(NoFlags, "", "option %q declares no flags", flags)
	}

	ctx := &tokenizer.Context{Mode: tokenizer.ModeOption}
	tokens := tokenizer.Tokens(tokenizer.Args(ctx, parts))
	if len(tokens) < len(parts) {
		bad := parts[len(tokens)]
		if strings.HasPrefix(bad, "<") || strings.HasPrefix(bad, "[") {
			return nil, newError(InvalidArgumentSyntax, "", "invalid argument syntax %q in option %q", bad, flags)
		}
		return nil, newError(InvalidFlags, "", "invalid flag %q in option %q", bad, flags)
	}

	o := &Option{flags: strings.TrimSpace(flags), description: description}
	for i, tok := range tokens {
		switch tok.Kind {
		case tokenizer.KindArgumentSyntax:
			if i != len(tokens)-1 {
				return nil, newError(InvalidFlags, "", "argument syntax must come last in option %q", flags)
			}
			o.hasArg = true
			o.required = tok.Required
			o.variadic = tok.Variadic
			o.mandatory = tok.Mandatory
			o.argName = tok.Value
		case tokenizer.KindFlag:
			switch {
			case tok.Long && o.long == "":
				o.long = tok.Value
			case tok.Short && o.short == "":
				o.short = tok.Value
			default:
				return nil, newError(InvalidFlags, "", "option %q declares more than one %s flag", flags, flagShape(tok))
			}
		}
	}
	if o.long == "" && o.short == "" {
		return nil, newError(NoFlags, "", "option %q declares no flags", flags)
	}
	return o, nil
}

func flagShape(tok *tokenizer.Token) string {
	if tok.Long {
		return "long"
	}
	return "short"
}

// MustOption is like NewOption but panics on error.
func MustOption(flags, description string) *Option {
	o, err := NewOption(flags, description)
	if err != nil {
		panic(err)
	}
	return o
}

// Name is the key the option's value is stored under: the long flag
// without dashes, or the short flag without its dash.
func (o *Option) Name() string {
	if o.long != "" {
		return strings.TrimPrefix(o.long, "--")
	}
	return strings.TrimPrefix(o.short, "-")
}

// Flags returns the definition the option was compiled from.
func (o *Option) Flags() string       { return o.flags }
func (o *Option) Description() string { return o.description }

// Long returns the long flag ("--name") or "".
func (o *Option) Long() string { return o.long }

// Short returns the short flag ("-n") or "".
func (o *Option) Short() string { return o.short }

// ArgumentName returns the id of the argument syntax.
func (o *Option) ArgumentName() string { return o.argName }

// IsBoolean reports whether the option takes no argument.
func (o *Option) IsBoolean() bool { return !o.hasArg }

// IsOptional reports whether the option takes an optional argument.
func (o *Option) IsOptional() bool { return o.hasArg && !o.required }

// IsRequired reports whether the option requires an argument.
func (o *Option) IsRequired() bool { return o.hasArg && o.required }

// IsVariadic reports whether the option accumulates several values.
func (o *Option) IsVariadic() bool { return o.variadic }

func (o *Option) Env() string         { return o.env }
func (o *Option) Default() any        { return o.def }
func (o *Option) Preset() any         { return o.preset }
func (o *Option) Choices() []string   { return o.choices }
func (o *Option) Conflicts() []string { return o.conflicts }
func (o *Option) Depends() []string   { return o.depends }
func (o *Option) Parser() Parser      { return o.parser }
func (o *Option) Mandatory() bool     { return o.mandatory }
func (o *Option) Hidden() bool        { return o.hidden }

// Implies returns the values set on other options when this one is given.
func (o *Option) Implies() map[string]any { return o.implies }

// ConfigKey returns the key looked up in config sources. It defaults to
// the command path below the root and the option name joined by dots.
func (o *Option) ConfigKey() string { return o.configKey }

// SetEnv names the environment variable used when the option is not on the
// command line.
func (o *Option) SetEnv(name string) *Option {
	o.env = name
	return o
}

func (o *Option) SetDefault(v any) *Option {
	o.def = v
	return o
}

// SetPreset sets the value of an optional-argument option given without
// its argument.
func (o *Option) SetPreset(v any) *Option {
	o.preset = v
	o.hasPreset = true
	return o
}

func (o *Option) SetChoices(choices ...string) *Option {
	o.choices = choices
	return o
}

// SetConflicts names options that may not be used together with o.
func (o *Option) SetConflicts(names ...string) *Option {
	o.conflicts = append(o.conflicts, names...)
	return o
}

// SetDepends names options that must be given whenever o is.
func (o *Option) SetDepends(names ...string) *Option {
	o.depends = append(o.depends, names...)
	return o
}

// SetImplies sets other options to the given values when o is given and
// they are not.
func (o *Option) SetImplies(values map[string]any) *Option {
	if o.implies == nil {
		o.implies = make(map[string]any, len(values))
	}
	for k, v := range values {
		o.implies[k] = v
	}
	return o
}

func (o *Option) SetParser(p Parser) *Option {
	o.parser = p
	return o
}

// SetMandatory requires the option to have a value after parsing, from any
// source.
func (o *Option) SetMandatory(mandatory bool) *Option {
	o.mandatory = mandatory
	return o
}

func (o *Option) SetHidden(hidden bool) *Option {
	o.hidden = hidden
	return o
}

func (o *Option) SetConfigKey(key string) *Option {
	o.configKey = key
	return o
}

func (o *Option) keys() []string {
	var keys []string
	if o.short != "" {
		keys = append(keys, o.short)
	}
	if o.long != "" {
		keys = append(keys, o.long)
	}
	return keys
}
