// Copyright (c) 2024 the wl-codegen authors
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// defaultConfigPath is loaded by generate when it exists and no --config
// flag is given.
const defaultConfigPath = "wl-codegen.toml"

type fileConfig struct {
	Package      string   `toml:"package"`
	Role         string   `toml:"role"`
	Output       string   `toml:"output"`
	Schemas      []string `toml:"schemas"`
	Dependencies []string `toml:"dependencies"`
}

// generateSettings are the effective options of one generate run.
type generateSettings struct {
	pkg     string
	role    string
	output  string
	schemas []string
	deps    []string
}

// applyConfig loads the project file at path into s. Settings whose flag
// was given explicitly keep the flag's value. Relative paths in the file
// are resolved against the file's directory.
func applyConfig(s *generateSettings, path string, flagChanged func(string) bool) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for ii, key := range undecoded {
			keys[ii] = key.String()
		}
		return fmt.Errorf("load config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}

	dir := filepath.Dir(path)
	resolve := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}

	if meta.IsDefined("package") && !flagChanged("package") {
		s.pkg = strings.TrimSpace(raw.Package)
	}
	if meta.IsDefined("role") && !flagChanged("role") {
		s.role = strings.TrimSpace(raw.Role)
	}
	if meta.IsDefined("output") && !flagChanged("output") {
		s.output = resolve(strings.TrimSpace(raw.Output))
	}
	if meta.IsDefined("dependencies") && !flagChanged("dep") {
		s.deps = nil
		for _, dep := range raw.Dependencies {
			s.deps = append(s.deps, resolve(dep))
		}
	}
	if meta.IsDefined("schemas") && len(s.schemas) == 0 {
		for _, pattern := range raw.Schemas {
			matches, err := filepath.Glob(resolve(pattern))
			if err != nil {
				return fmt.Errorf("load config %s: schema pattern %q: %w", path, pattern, err)
			}
			if len(matches) == 0 {
				return fmt.Errorf("load config %s: no schema matches %q", path, pattern)
			}
			s.schemas = append(s.schemas, matches...)
		}
	}
	return nil
}

// findConfig returns the project file to load: the explicit path, or the
// default file if it exists.
func findConfig(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if _, err := os.Stat(defaultConfigPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return defaultConfigPath, nil
}
