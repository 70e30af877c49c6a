// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package rules

import (
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gobwas/glob"
	"github.com/pathsfilter/pathsfilter/pkg/failure"
)

// Dialect selects the glob engine patterns are compiled with.
//
// Both dialects share the same surface: `*` matches within a path segment,
// `**` matches across segments, `?` matches one character, `[...]` is a
// character class and `{a,b}` is an alternation. Matching is case-sensitive
// and anchored to the whole path. A pattern without `/` is matched against
// the base name of the path, and a leading `!` negates the pattern.
//
// The dialects differ on `**/` at the start of a pattern: doublestar lets it
// match zero directories (`**/*.md` matches `a.md`), gobwas requires at least
// one (`**/*.md` matches `docs/a.md` only).
type Dialect string

const (
	DialectDoublestar Dialect = "doublestar"
	DialectGobwas     Dialect = "gobwas"
)

func ParseDialect(name string) (Dialect, error) {
	switch Dialect(name) {
	case "":
		return DialectDoublestar, nil
	case DialectDoublestar, DialectGobwas:
		return Dialect(name), nil
	}
	return "", failure.Configf("unknown glob dialect %q, want %v or %v",
		name, DialectDoublestar, DialectGobwas)
}

// CompilePattern compiles a single glob pattern.
func CompilePattern(pattern string, dialect Dialect) (Matcher, error) {
	expr := strings.TrimPrefix(pattern, "./")
	negate := false
	if len(expr) > 1 && expr[0] == '!' {
		negate = true
		expr = strings.TrimPrefix(expr[1:], "./")
	}
	if expr == "" {
		return nil, fmt.Errorf("empty pattern %q", pattern)
	}
	var match func(string) bool
	switch dialect {
	case DialectDoublestar, "":
		if !doublestar.ValidatePattern(expr) {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}
		match = func(name string) bool {
			ok, _ := doublestar.Match(expr, name)
			return ok
		}
	case DialectGobwas:
		g, err := glob.Compile(expr, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		match = g.Match
	default:
		return nil, fmt.Errorf("unknown glob dialect %q", dialect)
	}
	baseName := !strings.Contains(expr, "/")
	return func(file string) bool {
		if baseName {
			file = path.Base(file)
		}
		return match(file) != negate
	}, nil
}

func compilePatterns(patterns []string, dialect Dialect) (Matcher, error) {
	var matchers []Matcher
	for _, pattern := range patterns {
		m, err := CompilePattern(pattern, dialect)
		if err != nil {
			return nil, err
		}
		matchers = append(matchers, m)
	}
	if len(matchers) == 1 {
		return matchers[0], nil
	}
	return func(file string) bool {
		for _, m := range matchers {
			if m(file) {
				return true
			}
		}
		return false
	}, nil
}
