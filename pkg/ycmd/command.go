// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ycmd

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/yeetrun/ycmd/pkg/process"
	"github.com/yeetrun/ycmd/pkg/tokenizer"
)

// ActionFunc runs a command or one of its hooks.
type ActionFunc func(ctx context.Context, r *Result) error

// UnknownStrategy relaxes validation of the terminal command.
type UnknownStrategy uint8

const (
	// AllowUnknownOptions keeps unknown flags in the argv instead of failing.
	AllowUnknownOptions UnknownStrategy = 1 << iota
	// AllowExcessArguments accepts more operands than declared arguments.
	AllowExcessArguments

	AllowUnknown = AllowUnknownOptions | AllowExcessArguments
)

// ConfigSource supplies option values from configuration. Values are
// strings, scalars or lists of those.
type ConfigSource interface {
	Lookup(key string) (any, bool)
}

// ConfigLoader loads the config file named on the command line.
type ConfigLoader func(path string) (ConfigSource, error)

// Command is a node of a command tree. It holds configuration only; the
// values of a parse are kept in the Result.
type Command struct {
	name        string
	aliases     []string
	description string
	examples    []string
	hidden      bool

	parent    *Command
	commands  []*Command
	options   []*Option
	flags     map[string]*Option
	arguments []*Argument

	defaultCommand string
	unknown        UnknownStrategy

	action     ActionFunc
	preAction  ActionFunc
	postAction ActionFunc

	version       string
	versionOption *Option

	help   HelpFormatter
	proc   process.Process
	logger *slog.Logger

	config       ConfigSource
	configOption string
	configLoader ConfigLoader
}

// New returns a root command.
func New(name string) *Command {
	return &Command{name: name, flags: make(map[string]*Option)}
}

// Name returns the command name.
func (c *Command) Name() string        { return c.name }
func (c *Command) Aliases() []string   { return c.aliases }
func (c *Command) Description() string { return c.description }
func (c *Command) Examples() []string  { return c.examples }
func (c *Command) Hidden() bool        { return c.hidden }
func (c *Command) Parent() *Command    { return c.parent }
func (c *Command) Version() string     { return c.version }

// Commands returns the subcommands in the order they were added.
func (c *Command) Commands() []*Command { return c.commands }

// Options returns the options in the order they were added.
func (c *Command) Options() []*Option { return c.options }

// Arguments returns the declared positional arguments.
func (c *Command) Arguments() []*Argument { return c.arguments }

// DefaultCommand returns the name of the subcommand run when no operand
// names one.
func (c *Command) DefaultCommand() string { return c.defaultCommand }

// Root returns the top of c's tree.
func (c *Command) Root() *Command {
	for c.parent != nil {
		c = c.parent
	}
	return c
}

// Path returns the names from the root to c.
func (c *Command) Path() []string {
	var path []string
	for cmd := c; cmd != nil; cmd = cmd.parent {
		path = append(path, cmd.name)
	}
	slices.Reverse(path)
	return path
}

// FullName returns the path joined by spaces ("yver bump").
func (c *Command) FullName() string {
	return strings.Join(c.Path(), " ")
}

// Process returns the process set on c or its nearest ancestor, or the
// host process.
func (c *Command) Process() process.Process {
	for cmd := c; cmd != nil; cmd = cmd.parent {
		if cmd.proc != nil {
			return cmd.proc
		}
	}
	return process.OS()
}

// Logger returns the logger set on c or its nearest ancestor, or the
// Process logger.
func (c *Command) Logger() *slog.Logger {
	for cmd := c; cmd != nil; cmd = cmd.parent {
		if cmd.logger != nil {
			return cmd.logger
		}
	}
	return c.Process().Logger()
}

func (c *Command) SetDescription(description string) *Command {
	c.description = description
	return c
}

func (c *Command) AddExample(examples ...string) *Command {
	c.examples = append(c.examples, examples...)
	return c
}

// SetHidden leaves the command out of its parent's help.
func (c *Command) SetHidden(hidden bool) *Command {
	c.hidden = hidden
	return c
}

// SetDefaultCommand names the subcommand dispatched to when the first
// operand names no subcommand.
func (c *Command) SetDefaultCommand(name string) *Command {
	c.defaultCommand = name
	return c
}

func (c *Command) SetUnknown(s UnknownStrategy) *Command {
	c.unknown = s
	return c
}

func (c *Command) SetAction(fn ActionFunc) *Command {
	c.action = fn
	return c
}

// SetPreAction sets a hook run before the action of c or any descendant.
func (c *Command) SetPreAction(fn ActionFunc) *Command {
	c.preAction = fn
	return c
}

// SetPostAction sets a hook run after the action of c or any descendant
// succeeded.
func (c *Command) SetPostAction(fn ActionFunc) *Command {
	c.postAction = fn
	return c
}

func (c *Command) SetHelp(h HelpFormatter) *Command {
	c.help = h
	return c
}

func (c *Command) SetProcess(p process.Process) *Command {
	c.proc = p
	return c
}

func (c *Command) SetLogger(l *slog.Logger) *Command {
	c.logger = l
	return c
}

// SetConfig sets a source of option values for c and its descendants.
func (c *Command) SetConfig(src ConfigSource) *Command {
	c.config = src
	return c
}

// SetConfigFile loads a config source with load from the path given to
// the option called optionName, once that option has a value.
func (c *Command) SetConfigFile(optionName string, load ConfigLoader) *Command {
	c.configOption = optionName
	c.configLoader = load
	return c
}

// SetVersion registers "-V, --version", which makes parsing stop with
// ErrVersion.
func (c *Command) SetVersion(version string) *Command {
	c.version = version
	if c.versionOption == nil {
		opt := MustOption("-V, --version", "Print the version and exit")
		if err := c.AddOption(opt); err != nil {
			panic(err)
		}
		c.versionOption = opt
	}
	return c
}

// Command creates a subcommand from def, a name followed by argument
// syntaxes ("bump <part> [version]"), adds it to c and returns it. It
// panics on an invalid definition.
func (c *Command) Command(def, description string) *Command {
	fields := strings.Fields(def)
	name := ""
	if len(fields) > 0 {
		name = fields[0]
	}
	sub := New(name).SetDescription(description)
	if len(fields) > 1 {
		for _, syntax := range fields[1:] {
			sub.Argument(syntax, "")
		}
	}
	if err := c.AddCommand(sub); err != nil {
		panic(err)
	}
	return sub
}

// Option creates an option, adds it to c and returns it. It panics on an
// invalid definition.
func (c *Command) Option(flags, description string) *Option {
	o := MustOption(flags, description)
	if err := c.AddOption(o); err != nil {
		panic(err)
	}
	return o
}

// Argument creates an argument, adds it to c and returns it. It panics on
// an invalid definition.
func (c *Command) Argument(syntax, description string) *Argument {
	a := MustArgument(syntax, description)
	if err := c.AddArgument(a); err != nil {
		panic(err)
	}
	return a
}

func validCommandName(name string) bool {
	if name == "" || strings.HasPrefix(name, "-") {
		return false
	}
	return !strings.ContainsFunc(name, func(r rune) bool {
		return isFlagSeparator(r) || strings.ContainsRune("<>[]", r)
	})
}

// AddCommand adds sub as a subcommand of c.
func (c *Command) AddCommand(sub *Command) error {
	for _, name := range append([]string{sub.name}, sub.aliases...) {
		if !validCommandName(name) {
			return newError(InvalidSubcommandName, c.name, "invalid command name %q", name)
		}
		if c.findCommand(name) != nil {
			return newError(DuplicateSubcommand, c.name, "cannot add command '%s' as already have command '%s'", sub.name, name)
		}
	}
	if sub.parent != nil {
		return newError(DuplicateSubcommand, c.name, "command '%s' already belongs to '%s'", sub.name, sub.parent.name)
	}
	sub.parent = c
	c.commands = append(c.commands, sub)
	return nil
}

// Alias adds alternative names for c. It panics if a name is invalid or
// already taken by a sibling.
func (c *Command) Alias(names ...string) *Command {
	for _, name := range names {
		if !validCommandName(name) {
			panic(newError(InvalidSubcommandName, c.name, "invalid command alias %q", name))
		}
		if c.parent != nil {
			if other := c.parent.findCommand(name); other != nil {
				panic(newError(DuplicateSubcommand, c.parent.name, "cannot add alias '%s' to command '%s' as already have command '%s'", name, c.name, other.name))
			}
		}
		c.aliases = append(c.aliases, name)
	}
	return c
}

// AddOption adds o to c.
func (c *Command) AddOption(o *Option) error {
	for _, key := range o.keys() {
		if other, ok := c.flags[key]; ok {
			return newError(DuplicateOption, c.name, "cannot add option '%s' due to conflicting flag '%s' - already used by option '%s'", o.flags, key, other.flags)
		}
	}
	for _, key := range o.keys() {
		c.flags[key] = o
	}
	c.options = append(c.options, o)
	return nil
}

// AddArgument appends a to c's positional arguments.
func (c *Command) AddArgument(a *Argument) error {
	if n := len(c.arguments); n > 0 {
		last := c.arguments[n-1]
		if last.variadic {
			return newError(ArgumentAfterVariadic, c.name, "only the last argument can be variadic '%s'", last.displayName())
		}
		if a.required && !last.required {
			return newError(RequiredArgumentAfterOptional, c.name, "cannot add a required argument '%s' after an optional argument '%s'", a.displayName(), last.displayName())
		}
	}
	c.arguments = append(c.arguments, a)
	return nil
}

// findCommand returns the subcommand called name or aliased name.
func (c *Command) findCommand(name string) *Command {
	if name == "" {
		return nil
	}
	for _, sub := range c.commands {
		if sub.name == name || slices.Contains(sub.aliases, name) {
			return sub
		}
	}
	return nil
}

// Lookup returns the subcommand called or aliased name.
func (c *Command) Lookup(name string) *Command {
	return c.findCommand(name)
}

// hasHelpCommand reports whether "help" is the implicit help command of c.
func (c *Command) hasHelpCommand() bool {
	return len(c.commands) > 0 && c.findCommand(helpCommand) == nil
}

// own returns the option of c that answers to flag.
func (c *Command) own(flag string) *Option {
	return c.flags[flag]
}

// lookupOption returns the option of c or its nearest ancestor that answers
// to flag.
func (c *Command) lookupOption(flag string) *Option {
	for cmd := c; cmd != nil; cmd = cmd.parent {
		if o := cmd.own(flag); o != nil {
			return o
		}
	}
	return nil
}

// lookupSubOption returns an option of a descendant of c that answers to
// flag, searching breadth first.
func (c *Command) lookupSubOption(flag string) *Option {
	queue := slices.Clone(c.commands)
	for len(queue) > 0 {
		cmd := queue[0]
		queue = queue[1:]
		if o := cmd.own(flag); o != nil {
			return o
		}
		queue = append(queue, cmd.commands...)
	}
	return nil
}

// optionNamed returns the option called name on c or its nearest ancestor,
// and the command that owns it.
func (c *Command) optionNamed(name string) (*Option, *Command) {
	for cmd := c; cmd != nil; cmd = cmd.parent {
		for _, o := range cmd.options {
			if o.Name() == name {
				return o, cmd
			}
		}
	}
	return nil, nil
}

// tokenizerContext binds the lookups of a command-line tokenize to c.
func (c *Command) tokenizerContext() *tokenizer.Context {
	return &tokenizer.Context{
		Mode: tokenizer.ModeCommand,
		FindCommand: func(name string) string {
			if sub := c.findCommand(name); sub != nil {
				return sub.name
			}
			if name == helpCommand && c.hasHelpCommand() {
				return helpCommand
			}
			return ""
		},
		FindOption: func(flag string) tokenizer.Binding {
			if o := c.lookupOption(flag); o != nil {
				return o
			}
			return nil
		},
		FindSubOption: func(flag string) tokenizer.Binding {
			if o := c.lookupSubOption(flag); o != nil {
				return o
			}
			return nil
		},
	}
}
