// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ycmd

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// fallback fills options of c and its ancestors that the command line left
// unset: config values, then environment variables, then implications.
// Precedence is cli > env > config > default. Applying it again to an
// ancestor changes nothing.
func (p *parser) fallback(c *Command) error {
	for cmd := c; cmd != nil; cmd = cmd.parent {
		if err := p.loadConfig(cmd); err != nil {
			return err
		}
	}
	for cmd := c; cmd != nil; cmd = cmd.parent {
		st := p.result.states[cmd]
		for _, opt := range cmd.options {
			if err := p.fromConfig(cmd, st, opt); err != nil {
				return err
			}
			if err := p.fromEnv(cmd, st, opt); err != nil {
				return err
			}
		}
	}
	for cmd := c; cmd != nil; cmd = cmd.parent {
		p.implied(cmd, p.result.states[cmd])
	}
	return nil
}

// loadConfig loads the config file named by cmd's config option, once.
func (p *parser) loadConfig(cmd *Command) error {
	if cmd.configLoader == nil || cmd.configOption == "" {
		return nil
	}
	if _, ok := p.configs[cmd]; ok {
		return nil
	}
	opt, owner := cmd.optionNamed(cmd.configOption)
	if opt == nil {
		return fmt.Errorf("config option %q is not defined on %q", cmd.configOption, cmd.FullName())
	}
	st := p.result.states[owner]
	if err := p.fromEnv(owner, st, opt); err != nil {
		return err
	}
	path := stringOf(st.values[opt.Name()])
	if path == "" || path == "true" {
		return nil
	}
	src, err := cmd.configLoader(path)
	if err != nil {
		e := newError(InvalidArgument, cmd.name, "option '%s' argument '%s' is invalid. %v", opt.flags, path, err)
		e.Cause = err
		return e
	}
	p.configs[cmd] = src
	p.log.Debug("config loaded", "command", cmd.FullName(), "path", path)
	return nil
}

func (p *parser) configFor(cmd *Command) ConfigSource {
	if src, ok := p.configs[cmd]; ok && src != nil {
		return src
	}
	return cmd.config
}

// configKey is the option's key below the root: "bump.pre".
func configKey(cmd *Command, opt *Option) string {
	if opt.configKey != "" {
		return opt.configKey
	}
	path := cmd.Path()[1:]
	return strings.Join(append(path, opt.Name()), ".")
}

func (p *parser) fromConfig(cmd *Command, st *state, opt *Option) error {
	name := opt.Name()
	if src := st.sources[name]; src != "" && src != SourceDefault {
		return nil
	}
	key := configKey(cmd, opt)
	for a := cmd; a != nil; a = a.parent {
		src := p.configFor(a)
		if src == nil {
			continue
		}
		v, ok := src.Lookup(key)
		if !ok {
			continue
		}
		raws := configStrings(v)
		if len(raws) == 0 {
			return nil
		}
		return p.store(cmd, st, opt, raws, SourceConfig, fmt.Sprintf(" from config key '%s'", key))
	}
	return nil
}

func configStrings(v any) []string {
	switch v := v.(type) {
	case nil:
		return nil
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			out = append(out, fmt.Sprint(e))
		}
		return out
	}
	return []string{fmt.Sprint(v)}
}

func (p *parser) fromEnv(cmd *Command, st *state, opt *Option) error {
	if opt.env == "" {
		return nil
	}
	switch st.sources[opt.Name()] {
	case SourceCLI, SourceEnv, SourceImplied:
		return nil
	}
	v, ok := cmd.Process().LookupEnv(opt.env)
	if !ok {
		return nil
	}
	if opt.IsBoolean() && opt.parser == nil && v == "" {
		p.set(cmd, st, opt, true, SourceEnv)
		return nil
	}
	return p.store(cmd, st, opt, []string{v}, SourceEnv, fmt.Sprintf(" from env '%s'", opt.env))
}

// implied applies the implications of options given by the user to options
// that were not.
func (p *parser) implied(cmd *Command, st *state) {
	for _, opt := range cmd.options {
		if len(opt.implies) == 0 || !st.sources[opt.Name()].custom() {
			continue
		}
		targets := make([]string, 0, len(opt.implies))
		for name := range opt.implies {
			targets = append(targets, name)
		}
		sort.Strings(targets)
		for _, name := range targets {
			tst := st
			if _, owner := cmd.optionNamed(name); owner != nil {
				tst = p.result.states[owner]
			}
			if tst.sources[name].custom() {
				continue
			}
			tst.set(name, opt.implies[name], SourceImplied)
			p.log.Debug("option implied", "command", cmd.FullName(), "option", name, "by", opt.Name())
		}
	}
}

// checkMandatory reports the first mandatory option on the path without a
// value.
func (p *parser) checkMandatory() error {
	for _, cmd := range p.result.path {
		st := p.result.states[cmd]
		for _, opt := range cmd.options {
			if opt.mandatory && st.values[opt.Name()] == nil {
				return newError(MissingMandatoryOption, cmd.name, "required option '%s' not specified", opt.flags)
			}
		}
	}
	return nil
}

// given reports whether the option called name has a value that did not
// come from its default.
func (p *parser) given(name string) bool {
	src := p.result.Source(name)
	return src != "" && src != SourceDefault
}

func (p *parser) describe(name string) string {
	if opt, _ := p.result.Command().optionNamed(name); opt != nil {
		return opt.flags
	}
	return name
}

func (p *parser) checkConflicts() error {
	for _, cmd := range p.result.path {
		for _, opt := range cmd.options {
			if len(opt.conflicts) == 0 || !p.given(opt.Name()) {
				continue
			}
			for _, name := range opt.conflicts {
				if name != opt.Name() && p.given(name) {
					return newError(ConflictingOption, cmd.name, "option '%s' cannot be used with option '%s'", opt.flags, p.describe(name))
				}
			}
		}
	}
	return nil
}

func (p *parser) checkDepends() error {
	for _, cmd := range p.result.path {
		for _, opt := range cmd.options {
			if len(opt.depends) == 0 || !p.given(opt.Name()) {
				continue
			}
			for _, name := range opt.depends {
				if !p.given(name) {
					return newError(DependsOnMissingOption, cmd.name, "option '%s' depends on option '%s'", opt.flags, p.describe(name))
				}
			}
		}
	}
	return nil
}

func (p *parser) unknownOption(c *Command, flag string) error {
	e := newError(UnknownOption, c.name, "unknown option '%s'", flag)
	if !strings.HasPrefix(flag, "--") {
		return e
	}
	name, _, _ := strings.Cut(strings.TrimPrefix(flag, "--"), "=")
	var candidates []string
	for _, cmd := range p.result.path {
		for _, opt := range cmd.options {
			if opt.long != "" && !opt.hidden {
				candidates = append(candidates, strings.TrimPrefix(opt.long, "--"))
			}
		}
	}
	candidates = append(candidates, strings.TrimPrefix(helpFlagLong, "--"))
	if best := suggest(name, candidates); best != "" {
		e.Suggestion = "--" + best
	}
	return e
}

func unknownCommand(c *Command, name string) error {
	e := newError(UnknownCommand, c.name, "unknown command '%s'", name)
	var candidates []string
	for _, sub := range c.commands {
		if sub.hidden {
			continue
		}
		candidates = append(candidates, sub.name)
		candidates = append(candidates, sub.aliases...)
	}
	if c.hasHelpCommand() && !slices.Contains(candidates, helpCommand) {
		candidates = append(candidates, helpCommand)
	}
	e.Suggestion = suggest(name, candidates)
	return e
}
