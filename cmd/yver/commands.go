// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/Masterminds/semver/v3"

	"github.com/yeetrun/ycmd/pkg/env"
	"github.com/yeetrun/ycmd/pkg/flagset"
	"github.com/yeetrun/ycmd/pkg/ycmd"
)

// exitCode ends the process with a status after the command printed its
// own output.
type exitCode int

func (e exitCode) Error() string { return fmt.Sprintf("exit status %d", int(e)) }
func (e exitCode) ExitCode() int { return int(e) }

func parseVersion(s string) (*semver.Version, error) {
	v, err := semver.NewVersion(s)
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", s, err)
	}
	return v, nil
}

func parseVersions(raws []string) ([]*semver.Version, error) {
	vs := make([]*semver.Version, 0, len(raws))
	for _, raw := range raws {
		v, err := parseVersion(raw)
		if err != nil {
			return nil, err
		}
		vs = append(vs, v)
	}
	return vs, nil
}

func (a *app) bump(_ context.Context, r *ycmd.Result) error {
	part := r.ArgString(0)
	v, err := parseVersion(r.ArgString(1))
	if err != nil {
		return err
	}
	pre := r.String("pre")

	var next semver.Version
	switch part {
	case "major":
		next = v.IncMajor()
	case "minor":
		next = v.IncMinor()
	case "patch":
		next = v.IncPatch()
	case "prerelease":
		next, err = nextPrerelease(v, pre)
		if err != nil {
			return err
		}
		pre = ""
	}
	if pre != "" {
		if next, err = next.SetPrerelease(pre); err != nil {
			return fmt.Errorf("invalid prerelease %q: %w", pre, err)
		}
	}
	if meta := r.String("meta"); meta != "" {
		if next, err = next.SetMetadata(meta); err != nil {
			return fmt.Errorf("invalid metadata %q: %w", meta, err)
		}
	}
	a.log.Debug("bumped", "from", v.String(), "part", part, "to", next.String())
	fmt.Fprintln(a.proc.Stdout(), next.String())
	return nil
}

// nextPrerelease increments the trailing number of v's prerelease when id
// is empty or names the same series ("rc.1" becomes "rc.2"). A release
// starts the series on the next patch ("1.2.3" becomes "1.2.4-rc.0"), and a
// new id restarts it on the same version.
func nextPrerelease(v *semver.Version, id string) (semver.Version, error) {
	cur := v.Prerelease()
	if cur == "" {
		if id == "" {
			id = "rc"
		}
		return v.IncPatch().SetPrerelease(id + ".0")
	}
	series, n, numbered := splitPrerelease(cur)
	switch {
	case id != "" && id != series && id != cur:
		return v.SetPrerelease(id + ".0")
	case numbered:
		return v.SetPrerelease(fmt.Sprintf("%s.%d", series, n+1))
	}
	return v.SetPrerelease(cur + ".1")
}

// splitPrerelease splits "rc.1" into "rc" and 1.
func splitPrerelease(pre string) (string, uint64, bool) {
	i := strings.LastIndexByte(pre, '.')
	if i < 0 {
		return pre, 0, false
	}
	n, err := strconv.ParseUint(pre[i+1:], 10, 64)
	if err != nil {
		return pre, 0, false
	}
	return pre[:i], n, true
}

func (a *app) compare(_ context.Context, r *ycmd.Result) error {
	x, err := parseVersion(r.ArgString(0))
	if err != nil {
		return err
	}
	y, err := parseVersion(r.ArgString(1))
	if err != nil {
		return err
	}
	fmt.Fprintln(a.proc.Stdout(), x.Compare(y))
	return nil
}

func (a *app) sort(_ context.Context, r *ycmd.Result) error {
	vs, err := parseVersions(r.ArgStrings(0))
	if err != nil {
		return err
	}
	sort.Sort(semver.Collection(vs))
	if r.Bool("reverse") {
		slices.Reverse(vs)
	}
	for _, v := range vs {
		fmt.Fprintln(a.proc.Stdout(), v.Original())
	}
	return nil
}

func (a *app) max(_ context.Context, r *ycmd.Result) error {
	vs, err := parseVersions(r.ArgStrings(0))
	if err != nil {
		return err
	}
	best := slices.MaxFunc(vs, func(x, y *semver.Version) int { return x.Compare(y) })
	fmt.Fprintln(a.proc.Stdout(), best.Original())
	return nil
}

// satisfies prints the version when every condition holds. Otherwise it
// prints why not and exits 1.
func (a *app) satisfies(_ context.Context, r *ycmd.Result) error {
	v, err := parseVersion(r.ArgString(0))
	if err != nil {
		return err
	}
	conditions := strings.Join(r.Strings("conditions"), ", ")
	c, err := semver.NewConstraint(conditions)
	if err != nil {
		return fmt.Errorf("invalid conditions %q: %w", conditions, err)
	}
	colors := a.colorsFor(r)
	ok, reasons := c.Validate(v)
	if ok {
		fmt.Fprintln(a.proc.Stdout(), colors.Green(v.Original()))
		return nil
	}
	for _, reason := range reasons {
		fmt.Fprintln(a.proc.Stdout(), colors.Red(reason.Error()))
	}
	return exitCode(1)
}

type versionParts struct {
	Version    string `json:"version" env:"VERSION"`
	Major      uint64 `json:"major" env:"MAJOR,keep"`
	Minor      uint64 `json:"minor" env:"MINOR,keep"`
	Patch      uint64 `json:"patch" env:"PATCH,keep"`
	Prerelease string `json:"prerelease,omitempty" env:"PRERELEASE"`
	Metadata   string `json:"metadata,omitempty" env:"METADATA"`
}

func (a *app) printParts(_ context.Context, r *ycmd.Result) error {
	if err := flagset.Apply(r, r.Command(), a.parts); err != nil {
		return err
	}
	v, err := parseVersion(r.ArgString(0))
	if err != nil {
		return err
	}
	p := versionParts{
		Version:    v.String(),
		Major:      v.Major(),
		Minor:      v.Minor(),
		Patch:      v.Patch(),
		Prerelease: v.Prerelease(),
		Metadata:   v.Metadata(),
	}

	if *a.out != "" && *a.format == "env" {
		return env.Write(*a.out, p)
	}
	var buf bytes.Buffer
	if err := writeParts(&buf, *a.format, p); err != nil {
		return err
	}
	if *a.out != "" {
		return os.WriteFile(*a.out, buf.Bytes(), 0644)
	}
	_, err = a.proc.Stdout().Write(buf.Bytes())
	return err
}

func writeParts(w io.Writer, format string, p versionParts) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	case "env":
		return env.Encode(w, p)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "major\t%d\n", p.Major)
	fmt.Fprintf(tw, "minor\t%d\n", p.Minor)
	fmt.Fprintf(tw, "patch\t%d\n", p.Patch)
	if p.Prerelease != "" {
		fmt.Fprintf(tw, "prerelease\t%s\n", p.Prerelease)
	}
	if p.Metadata != "" {
		fmt.Fprintf(tw, "metadata\t%s\n", p.Metadata)
	}
	return tw.Flush()
}
