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

package wlcodegen

import (
	"fmt"
	"os"
	"strings"
)

// Source is the text of one schema file.
type Source struct {
	// Name identifies the source in diagnostics, usually its path.
	Name string
	Text []byte
}

// ReadSource reads the schema file at path.
func ReadSource(path string) (Source, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return Source{}, err
	}
	return Source{Name: path, Text: text}, nil
}

func TextSource(name string, text string) Source {
	return Source{Name: name, Text: []byte(text)}
}

// SourceError is a failure to parse one source. Err is usually a
// [*syntax.Error].
type SourceError struct {
	Name string
	Err  error
}

func (err *SourceError) Error() string {
	return fmt.Sprintf("%s: %v", err.Name, err.Err)
}

func (err *SourceError) Unwrap() error {
	return err.Err
}

// SourceErrorList is every parse failure of one compilation.
type SourceErrorList []*SourceError

func (list SourceErrorList) Error() string {
	lines := make([]string, len(list))
	for ii, err := range list {
		lines[ii] = err.Error()
	}
	return strings.Join(lines, "\n")
}

func (list SourceErrorList) Unwrap() []error {
	out := make([]error, len(list))
	for ii, err := range list {
		out[ii] = err
	}
	return out
}
