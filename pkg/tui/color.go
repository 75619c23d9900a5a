// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

type Colorizer struct {
	Enabled bool
}

// NewColorizer returns a Colorizer that colors only when enabled and the
// environment allows it (NO_COLOR unset, TERM set and not "dumb").
func NewColorizer(enabled bool) Colorizer {
	if !enabled {
		return Colorizer{}
	}
	if os.Getenv("NO_COLOR") != "" {
		return Colorizer{}
	}
	termName := os.Getenv("TERM")
	if termName == "" || termName == "dumb" {
		return Colorizer{}
	}
	return Colorizer{Enabled: true}
}

// ForWriter returns a Colorizer enabled when w is a terminal.
func ForWriter(w io.Writer) Colorizer {
	f, ok := w.(*os.File)
	return NewColorizer(ok && term.IsTerminal(int(f.Fd())))
}

func (c Colorizer) style(attrs ...color.Attribute) *color.Color {
	s := color.New(attrs...)
	if c.Enabled {
		s.EnableColor()
	} else {
		s.DisableColor()
	}
	return s
}

func (c Colorizer) Heading(text string) string { return c.style(color.Bold).Sprint(text) }
func (c Colorizer) Red(text string) string     { return c.style(color.FgRed).Sprint(text) }
func (c Colorizer) Green(text string) string   { return c.style(color.FgGreen).Sprint(text) }
func (c Colorizer) Yellow(text string) string  { return c.style(color.FgYellow).Sprint(text) }
func (c Colorizer) Dim(text string) string     { return c.style(color.FgHiBlack).Sprint(text) }
