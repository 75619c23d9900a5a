// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads option values from TOML, YAML or JSON files.
//
// Nested tables are flattened into dotted keys, so
//
//	[bump]
//	pre = "rc"
//
// is the value "rc" under "bump.pre".
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/yeetrun/ycmd/pkg/ycmd"
)

// ErrUnsupportedFormat is returned for files whose extension is not
// .toml, .yaml, .yml or .json.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Values are flattened config values keyed by dotted path.
type Values map[string]any

// Lookup implements ycmd.ConfigSource.
func (v Values) Lookup(key string) (any, bool) {
	val, ok := v[key]
	return val, ok
}

// Keys returns the keys in sorted order.
func (v Values) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Load reads the file at path, choosing the decoder by extension.
func Load(path string) (Values, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	v, err := Decode(format, data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return v, nil
}

// Decode decodes data in format ("toml", "yaml", "yml" or "json").
func Decode(format string, data []byte) (Values, error) {
	raw := make(map[string]any)
	switch format {
	case "toml":
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, fmt.Errorf("failed to decode toml: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to decode yaml: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
	}
	out := make(Values)
	flatten(out, "", raw)
	return out, nil
}

func flatten(out Values, prefix string, v any) {
	switch v := v.(type) {
	case map[string]any:
		for k, e := range v {
			flatten(out, join(prefix, k), e)
		}
	case map[any]any:
		for k, e := range v {
			flatten(out, join(prefix, fmt.Sprint(k)), e)
		}
	default:
		out[prefix] = v
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// Loader loads path as a ycmd.ConfigSource, for Command.SetConfigFile.
func Loader(path string) (ycmd.ConfigSource, error) {
	v, err := Load(path)
	if err != nil {
		return nil, err
	}
	return v, nil
}
