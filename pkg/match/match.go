// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package match evaluates compiled rules against a set of changed files.
package match

import (
	"github.com/pathsfilter/pathsfilter/pkg/rules"
)

type Entry struct {
	ID      string
	Matched bool
}

// Result holds one entry per rule, in rule order.
type Result struct {
	entries []Entry
	index   map[string]int
}

// Entries returns a copy of the entries in rule order.
func (res *Result) Entries() []Entry {
	return append([]Entry(nil), res.entries...)
}

func (res *Result) Get(id string) (matched, ok bool) {
	idx, ok := res.index[id]
	if !ok {
		return false, false
	}
	return res.entries[idx].Matched, true
}

// Map returns the result keyed by rule id.
func (res *Result) Map() map[string]bool {
	ret := make(map[string]bool, len(res.entries))
	for _, entry := range res.entries {
		ret[entry.ID] = entry.Matched
	}
	return ret
}

// Evaluate reports, for every rule, whether at least one of files matches it.
func Evaluate(files []string, rs *rules.RuleSet) *Result {
	res := &Result{
		index: make(map[string]int),
	}
	if rs == nil {
		return res
	}
	for _, rule := range rs.Rules {
		res.index[rule.ID] = len(res.entries)
		res.entries = append(res.entries, Entry{
			ID:      rule.ID,
			Matched: anyMatch(files, rule.Match),
		})
	}
	return res
}

func anyMatch(files []string, match rules.Matcher) bool {
	for _, file := range files {
		if match(file) {
			return true
		}
	}
	return false
}
