// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ycmd

import (
	"fmt"
	"strings"

	"github.com/yeetrun/ycmd/pkg/tui"
)

// HelpFormatter renders the help text of a command from its metadata.
type HelpFormatter interface {
	FormatHelp(c *Command) string
}

// HelpFunc adapts a function to a HelpFormatter.
type HelpFunc func(c *Command) string

func (f HelpFunc) FormatHelp(c *Command) string { return f(c) }

// DefaultHelp renders USAGE, ARGUMENTS, OPTIONS, GLOBAL OPTIONS, COMMANDS
// and EXAMPLES sections.
type DefaultHelp struct {
	Colors tui.Colorizer
}

// Help returns the help text of c, rendered by the formatter set on c or
// its nearest ancestor.
func (c *Command) Help() string {
	return c.helpFormatter().FormatHelp(c)
}

func (c *Command) helpFormatter() HelpFormatter {
	for cmd := c; cmd != nil; cmd = cmd.parent {
		if cmd.help != nil {
			return cmd.help
		}
	}
	return DefaultHelp{}
}

// Usage returns the one line synopsis of c: "yver bump [OPTIONS] <part> [version]".
func Usage(c *Command) string {
	parts := []string{c.FullName(), "[OPTIONS]"}
	if len(c.commands) > 0 {
		if c.action != nil || c.defaultCommand != "" {
			parts = append(parts, "[COMMAND]")
		} else {
			parts = append(parts, "<COMMAND>")
		}
	}
	for _, a := range c.arguments {
		parts = append(parts, a.syntax)
	}
	return strings.Join(parts, " ")
}

func aliasSuffix(aliases []string) string {
	if len(aliases) == 0 {
		return ""
	}
	if len(aliases) == 1 {
		return fmt.Sprintf(" (alias: %s)", aliases[0])
	}
	return fmt.Sprintf(" (aliases: %s)", strings.Join(aliases, ", "))
}

func describeWithAliases(desc string, aliases []string) string {
	suffix := aliasSuffix(aliases)
	if desc == "" {
		return strings.TrimSpace(suffix)
	}
	return desc + suffix
}

func optionDetails(o *Option) string {
	var b strings.Builder
	if o.def != nil {
		fmt.Fprintf(&b, " (default: %v)", o.def)
	}
	if len(o.choices) > 0 {
		fmt.Fprintf(&b, " (choices: %s)", strings.Join(o.choices, ", "))
	}
	if o.env != "" {
		fmt.Fprintf(&b, " (env: %s)", o.env)
	}
	if o.mandatory {
		b.WriteString(" (required)")
	}
	return b.String()
}

func writeOption(b *strings.Builder, o *Option) {
	flagStr := "    " + o.flags
	if o.short == "" {
		flagStr = "        " + o.flags
	}
	if o.description != "" {
		fmt.Fprintf(b, "%-28s %s", flagStr, o.description)
	} else {
		b.WriteString(flagStr)
	}
	b.WriteString(optionDetails(o))
	b.WriteString("\n")
}

func (h DefaultHelp) FormatHelp(c *Command) string {
	var b strings.Builder

	if c.description != "" {
		b.WriteString(c.description)
		b.WriteString("\n\n")
	}
	if len(c.aliases) > 0 {
		b.WriteString(h.Colors.Heading("ALIASES:") + "\n")
		fmt.Fprintf(&b, "    %s\n\n", strings.Join(c.aliases, ", "))
	}

	b.WriteString(h.Colors.Heading("USAGE:") + "\n")
	fmt.Fprintf(&b, "    %s\n\n", Usage(c))

	if len(c.arguments) > 0 {
		b.WriteString(h.Colors.Heading("ARGUMENTS:") + "\n")
		for _, a := range c.arguments {
			desc := a.description
			if a.def != nil {
				desc += fmt.Sprintf(" (default: %v)", a.def)
			}
			if len(a.choices) > 0 {
				desc += fmt.Sprintf(" (choices: %s)", strings.Join(a.choices, ", "))
			}
			desc = strings.TrimSpace(desc)
			if desc != "" {
				fmt.Fprintf(&b, "    %-20s %s\n", a.syntax, desc)
			} else {
				fmt.Fprintf(&b, "    %s\n", a.syntax)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(h.Colors.Heading("OPTIONS:") + "\n")
	for _, o := range c.options {
		if !o.hidden {
			writeOption(&b, o)
		}
	}
	if c.own(helpFlagShort) == nil && c.own(helpFlagLong) == nil {
		fmt.Fprintf(&b, "%-28s %s\n", fmt.Sprintf("    %s, %s", helpFlagShort, helpFlagLong), "Show this help message")
	}
	b.WriteString("\n")

	var globals []*Option
	for cmd := c.parent; cmd != nil; cmd = cmd.parent {
		for _, o := range cmd.options {
			if !o.hidden {
				globals = append(globals, o)
			}
		}
	}
	if len(globals) > 0 {
		b.WriteString(h.Colors.Heading("GLOBAL OPTIONS:") + "\n")
		for _, o := range globals {
			writeOption(&b, o)
		}
		b.WriteString("\n")
	}

	var visible []*Command
	for _, sub := range c.commands {
		if !sub.hidden {
			visible = append(visible, sub)
		}
	}
	if len(visible) > 0 {
		b.WriteString(h.Colors.Heading("COMMANDS:") + "\n")
		for _, sub := range visible {
			desc := describeWithAliases(sub.description, sub.aliases)
			if sub.name == c.defaultCommand {
				desc = strings.TrimSpace(desc + " (default)")
			}
			fmt.Fprintf(&b, "    %-12s %s\n", sub.name, desc)
		}
		if c.hasHelpCommand() {
			fmt.Fprintf(&b, "    %-12s %s\n", helpCommand, "Show help for a command")
		}
		b.WriteString("\n")
	}

	if len(c.examples) > 0 {
		b.WriteString(h.Colors.Heading("EXAMPLES:") + "\n")
		for _, example := range c.examples {
			fmt.Fprintf(&b, "    %s\n", example)
		}
		b.WriteString("\n")
	}

	if len(visible) > 0 {
		fmt.Fprintf(&b, "Run '%s COMMAND --help' for more information on a specific command.\n", c.FullName())
	}
	return b.String()
}
