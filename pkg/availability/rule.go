// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package availability

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	cnserrors "github.com/NVIDIA/recipe-optimizer/pkg/errors"
)

const (
	textAll       = "ALL"
	prefixExclude = "ALL except"
	prefixInclude = "Only"
)

// Rule is a parsed availability statement. Exactly two implementations
// exist: ExcludeList and IncludeList.
type Rule interface {
	fmt.Stringer
	// Countries returns the listed countries in source order.
	Countries() []string
	isRule()
}

// ExcludeList makes an ingredient available everywhere except the listed
// countries. An empty list means available everywhere.
type ExcludeList struct {
	countries []string
}

// IncludeList makes an ingredient available only in the listed countries.
type IncludeList struct {
	countries []string
}

// NewExcludeList returns an ExcludeList over the given countries.
func NewExcludeList(countries ...string) ExcludeList {
	return ExcludeList{countries: dedupe(countries)}
}

// NewIncludeList returns an IncludeList over the given countries.
func NewIncludeList(countries ...string) IncludeList {
	return IncludeList{countries: dedupe(countries)}
}

func (ExcludeList) isRule() {}
func (IncludeList) isRule() {}

// Countries returns a copy of the excluded countries.
func (r ExcludeList) Countries() []string { return slices.Clone(r.countries) }

// Countries returns a copy of the included countries.
func (r IncludeList) Countries() []string { return slices.Clone(r.countries) }

// String renders the rule in catalog grammar.
func (r ExcludeList) String() string {
	if len(r.countries) == 0 {
		return textAll
	}
	return prefixExclude + " " + strings.Join(r.countries, ", ")
}

// String renders the rule in catalog grammar.
func (r IncludeList) String() string {
	return strings.TrimSpace(prefixInclude + " " + strings.Join(r.countries, ", "))
}

// MarshalText renders the rule in catalog grammar for JSON and YAML output.
func (r ExcludeList) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// MarshalText renders the rule in catalog grammar for JSON and YAML output.
func (r IncludeList) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// Parse converts availability text into a Rule. The "ALL except" and
// "Only" keywords must be followed by whitespace or end the text, so
// "OnlyMalaysia" is a parse error rather than a list.
func Parse(text string) (Rule, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == textAll {
		return ExcludeList{}, nil
	}
	if rest, ok := cutKeyword(trimmed, prefixExclude); ok {
		return NewExcludeList(splitCountries(rest)...), nil
	}
	if rest, ok := cutKeyword(trimmed, prefixInclude); ok {
		return NewIncludeList(splitCountries(rest)...), nil
	}
	return nil, cnserrors.NewWithContext(cnserrors.ErrCodeParse,
		fmt.Sprintf("unexpected availability format: %q", text),
		map[string]any{"text": text})
}

func cutKeyword(text, keyword string) (string, bool) {
	rest, ok := strings.CutPrefix(text, keyword)
	if !ok {
		return "", false
	}
	if rest != "" && !unicode.IsSpace([]rune(rest)[0]) {
		return "", false
	}
	return rest, true
}

// IsAvailable reports whether an ingredient governed by rule can be
// supplied to country. A nil rule is never available.
func IsAvailable(rule Rule, country string) bool {
	switch r := rule.(type) {
	case ExcludeList:
		return !slices.Contains(r.countries, country)
	case IncludeList:
		return slices.Contains(r.countries, country)
	default:
		return false
	}
}

func splitCountries(list string) []string {
	parts := strings.Split(list, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if c := strings.TrimSpace(p); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func dedupe(countries []string) []string {
	out := make([]string, 0, len(countries))
	for _, c := range countries {
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}
