// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// yver is a semantic version toolbox.
//
//	yver bump minor 1.2.3          # 1.3.0
//	yver bump prerelease 1.2.3     # 1.2.4-rc.0
//	yver sort -r 1.0 2.0 1.10
//	yver satisfies 1.4.0 -c '>=1.2' '<2'
//	yver 1.0 2.0 1.10              # max
//
// Option defaults can be read from a TOML, YAML or JSON file given with
// --config or YVER_CONFIG, keyed by command: "bump.pre".
package main

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/yeetrun/ycmd/pkg/config"
	"github.com/yeetrun/ycmd/pkg/flagset"
	"github.com/yeetrun/ycmd/pkg/process"
	"github.com/yeetrun/ycmd/pkg/tui"
	"github.com/yeetrun/ycmd/pkg/ycmd"
)

var version = "dev"

func main() {
	newRoot(process.OS()).Main(context.Background())
}

type app struct {
	proc  process.Process
	level *slog.LevelVar
	log   *slog.Logger

	// parts flags, bound through pflag.
	parts  *pflag.FlagSet
	format *string
	out    *string
}

func newApp(proc process.Process) *app {
	a := &app{proc: proc, level: new(slog.LevelVar)}
	a.level.Set(slog.LevelWarn)
	if v, ok := proc.LookupEnv("YVER_VERBOSE"); ok {
		if b, err := strconv.ParseBool(v); v == "" || (err == nil && b) {
			a.level.Set(slog.LevelDebug)
		}
	}
	a.log = process.NewLogger(proc.Stderr(), a.level)

	a.parts = pflag.NewFlagSet("parts", pflag.ContinueOnError)
	a.format = a.parts.StringP("format", "f", "text", "Output format")
	a.out = a.parts.StringP("out", "o", "", "Write to `file` instead of stdout")
	return a
}

func newRoot(proc process.Process) *ycmd.Command {
	a := newApp(proc)

	root := ycmd.New("yver").
		SetDescription("Semantic version toolbox").
		SetVersion(version).
		SetProcess(proc).
		SetLogger(a.log).
		SetDefaultCommand("max").
		SetConfigFile("config", config.Loader).
		SetPreAction(a.setup)
	root.AddExample(
		"yver bump minor 1.2.3",
		"yver sort -r 1.0 2.0 1.10",
		"yver satisfies 1.4.0 -c '>=1.2' '<2'",
	)
	root.Option("-v, --verbose", "Log debug output to stderr").SetEnv("YVER_VERBOSE")
	root.Option("--config <file>", "Read option defaults from a TOML, YAML or JSON file").SetEnv("YVER_CONFIG")
	root.Option("--color <when>", "When to color output").
		SetChoices("auto", "always", "never").
		SetDefault("auto").
		SetEnv("YVER_COLOR")

	bump := root.Command("bump <part> [version]", "Print the next version").Alias("b").SetAction(a.bump)
	bump.Arguments()[0].SetChoices("major", "minor", "patch", "prerelease")
	bump.Arguments()[1].SetDefault("0.0.0")
	bump.Option("-p, --pre <id>", "Prerelease identifier").SetEnv("YVER_PRE")
	bump.Option("-m, --meta <m>", "Build metadata")
	bump.AddExample("yver bump patch 1.2.3 --meta build.7")

	root.Command("compare <a> <b>", "Print -1, 0 or 1 as a is lower, equal or higher than b").SetAction(a.compare)

	sort := root.Command("sort <versions...>", "Print versions in ascending order").SetAction(a.sort)
	sort.Option("-r, --reverse", "Sort in descending order")

	satisfies := root.Command("satisfies <version>", "Check a version against constraints").SetAction(a.satisfies)
	satisfies.Option("-c, --conditions <condition...!>", "Constraints that must all hold")

	root.Command("max <versions...>", "Print the highest version").SetAction(a.max)

	parts := root.Command("parts <version>", "Print the parts of a version").SetAction(a.printParts)
	if err := flagset.Import(parts, a.parts); err != nil {
		panic(err)
	}
	for _, o := range parts.Options() {
		if o.Name() == "format" {
			o.SetChoices("text", "json", "env")
		}
	}
	return root
}

// setup runs before every command.
func (a *app) setup(_ context.Context, r *ycmd.Result) error {
	if r.Bool("verbose") {
		a.level.Set(slog.LevelDebug)
	}
	a.log.Debug("running", "command", r.Command().FullName(), "args", r.Argv())
	return nil
}

func (a *app) colorsFor(r *ycmd.Result) tui.Colorizer {
	switch r.String("color") {
	case "always":
		return tui.Colorizer{Enabled: true}
	case "never":
		return tui.Colorizer{}
	}
	return tui.ForWriter(a.proc.Stdout())
}
