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

package testutil

import (
	"bytes"
	"cmp"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"iter"
	"regexp"
	"slices"
	"testing"
)

//go:embed testdata
var testdataFS embed.FS

// TestdataFS returns the shared test corpus rooted at the testdata
// directory.
func TestdataFS() (fs.FS, error) {
	return fs.Sub(testdataFS, "testdata")
}

// Diagnostic is one entry of a diagnostics table such as
// diagnostics/schema_errors.json.
type Diagnostic struct {
	Key     string
	Code    uint32
	Message string
	Pattern *regexp.Regexp
}

// LoadDiagnostics reads a diagnostics table. Keys starting with '_' reserve
// a code without being usable from test expectations.
func LoadDiagnostics(testdata fs.FS, path string) (map[string]*Diagnostic, error) {
	type raw struct {
		Code    uint32 `json:"code"`
		Message string `json:"message"`
		Pattern string `json:"message_pattern"`
	}

	jsonData, err := fs.ReadFile(testdata, path)
	if err != nil {
		return nil, err
	}

	var rawDiags map[string]raw
	decoder := json.NewDecoder(bytes.NewReader(jsonData))
	decoder.UseNumber()
	if err := decoder.Decode(&rawDiags); err != nil {
		return nil, err
	}

	out := make(map[string]*Diagnostic, len(rawDiags))
	codes := make(map[uint32]struct{}, len(rawDiags))
	for key, raw := range rawDiags {
		if key[0] == '_' {
			if raw.Code != 0 {
				if _, conflict := codes[raw.Code]; conflict {
					return nil, fmt.Errorf("%s: duplicate code %d", path, raw.Code)
				}
				codes[raw.Code] = struct{}{}
			}
			continue
		}

		if raw.Code == 0 {
			return nil, fmt.Errorf("%s: %q has no code", path, key)
		}
		if _, conflict := codes[raw.Code]; conflict {
			return nil, fmt.Errorf("%s: duplicate code %d", path, raw.Code)
		}
		codes[raw.Code] = struct{}{}

		var pattern *regexp.Regexp
		if raw.Pattern != "" {
			pattern, err = regexp.Compile("(?i)" + raw.Pattern)
			if err != nil {
				return nil, err
			}
		}
		out[key] = &Diagnostic{
			Key:     key,
			Code:    raw.Code,
			Message: raw.Message,
			Pattern: pattern,
		}
	}

	return out, nil
}

// ExpectedDiagnostic is a diagnostic expected at a schema path. Line is
// zero when the expectation does not name a source line.
type ExpectedDiagnostic struct {
	Diagnostic
	Path string
	Line int
}

// LoadExpected reads the errors or warnings expected by one test case. The
// field argument selects the JSON list ("errors" or "warnings").
func LoadExpected(
	t *testing.T,
	table map[string]*Diagnostic,
	testdata fs.FS,
	jsonPath string,
	field string,
) []*ExpectedDiagnostic {
	t.Helper()

	jsonData, err := fs.ReadFile(testdata, jsonPath)
	if err != nil {
		t.Fatal(err)
	}

	type rawExpected struct {
		Name string `json:"name"`
		Path string `json:"path"`
		Line int    `json:"line"`
	}
	var raw map[string][]rawExpected
	if err := json.Unmarshal(jsonData, &raw); err != nil {
		t.Fatal(err)
	}

	var out []*ExpectedDiagnostic
	for _, raw := range raw[field] {
		diag, ok := table[raw.Name]
		if !ok {
			t.Fatalf("%s: unknown diagnostic name %q", jsonPath, raw.Name)
		}
		out = append(out, &ExpectedDiagnostic{
			Diagnostic: *diag,
			Path:       raw.Path,
			Line:       raw.Line,
		})
	}
	SortExpected(out)
	return out
}

// SortExpected orders diagnostics by path, then by code.
func SortExpected(diags []*ExpectedDiagnostic) {
	slices.SortStableFunc(diags, func(a, b *ExpectedDiagnostic) int {
		if x := cmp.Compare(a.Path, b.Path); x != 0 {
			return x
		}
		return cmp.Compare(a.Code, b.Code)
	})
}

// ExpectMessage checks a diagnostic message against the pattern or the
// literal message of want, whichever the table provides.
func ExpectMessage(t *testing.T, want *Diagnostic, got string) {
	t.Helper()
	if want.Pattern != nil {
		ExpectMatch(t, want.Pattern, got)
	} else if want.Message != "" {
		ExpectEq(t, want.Message, got)
	}
}

// Zip pairs up two slices, padding the shorter one with zero values.
func Zip[T1, T2 any](a []T1, b []T2) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		for ii := range max(len(a), len(b)) {
			var x T1
			var y T2
			if ii < len(a) {
				x = a[ii]
			}
			if ii < len(b) {
				y = b[ii]
			}
			if !yield(x, y) {
				return
			}
		}
	}
}
