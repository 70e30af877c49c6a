// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package rules compiles a YAML rule set into path matchers.
//
// The document maps rule identifiers to a glob pattern or a list of glob patterns:
//
//	backend: src/server/**
//	docs:
//	  - '*.md'
//	  - docs/**
//
// A list matches a path if any of its patterns matches. Rules keep document order.
package rules

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/pathsfilter/pathsfilter/pkg/failure"
	"gopkg.in/yaml.v3"
)

// Matcher reports whether a repository-relative, slash-separated path matches.
type Matcher func(path string) bool

type Rule struct {
	ID       string
	Patterns []string
	Match    Matcher
}

// RuleSet is an ordered set of rules with unique identifiers.
type RuleSet struct {
	Rules []*Rule
}

func (rs *RuleSet) Len() int {
	return len(rs.Rules)
}

func (rs *RuleSet) Get(id string) *Rule {
	for _, rule := range rs.Rules {
		if rule.ID == id {
			return rule
		}
	}
	return nil
}

type Options struct {
	Dialect Dialect
}

// Compile parses doc and compiles every rule.
// Malformed YAML is a *failure.ParseError, a document of the wrong shape
// or an invalid pattern is a *failure.ConfigError.
func Compile(doc []byte, opts Options) (*RuleSet, error) {
	root, err := parseRoot(doc)
	if err != nil {
		return nil, err
	}
	rs := new(RuleSet)
	seen := make(map[string]bool)
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valNode := root.Content[i], root.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode || keyNode.ShortTag() == nullTag {
			return nil, failure.Configf("invalid path YAML format: line %v: rule id must be a string",
				keyNode.Line)
		}
		id := keyNode.Value
		if seen[id] {
			return nil, failure.Configf("invalid path YAML format: line %v: duplicate rule %q",
				keyNode.Line, id)
		}
		seen[id] = true
		patterns, err := decodePatterns(valNode)
		if err != nil {
			return nil, failure.Configf("invalid path YAML format: rule %q: %v", id, err)
		}
		match, err := compilePatterns(patterns, opts.Dialect)
		if err != nil {
			return nil, failure.Config(fmt.Sprintf("rule %q", id), err)
		}
		rs.Rules = append(rs.Rules, &Rule{
			ID:       id,
			Patterns: patterns,
			Match:    match,
		})
	}
	return rs, nil
}

func parseRoot(doc []byte) (*yaml.Node, error) {
	dec := yaml.NewDecoder(bytes.NewReader(doc))
	node := new(yaml.Node)
	err := dec.Decode(node)
	if errors.Is(err, io.EOF) {
		return nil, errNotObject
	}
	if err != nil {
		return nil, failure.Parse("invalid path YAML", err)
	}
	if err := dec.Decode(new(yaml.Node)); !errors.Is(err, io.EOF) {
		return nil, failure.Parsef("invalid path YAML: expected a single document")
	}
	root := node
	if root.Kind == yaml.DocumentNode && len(root.Content) != 0 {
		root = root.Content[0]
	}
	for root.Kind == yaml.AliasNode && root.Alias != nil {
		root = root.Alias
	}
	if root.Kind != yaml.MappingNode {
		return nil, errNotObject
	}
	return root, nil
}

const nullTag = "!!null"

var errNotObject = failure.Configf("invalid path YAML format: root element is not an object")

func decodePatterns(node *yaml.Node) ([]string, error) {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == nullTag {
			return nil, fmt.Errorf("line %v: pattern is empty", node.Line)
		}
		return []string{node.Value}, nil
	case yaml.SequenceNode:
		if len(node.Content) == 0 {
			return nil, fmt.Errorf("line %v: pattern list is empty", node.Line)
		}
		var patterns []string
		for _, item := range node.Content {
			for item.Kind == yaml.AliasNode && item.Alias != nil {
				item = item.Alias
			}
			if item.Kind != yaml.ScalarNode || item.ShortTag() == nullTag {
				return nil, fmt.Errorf("line %v: pattern must be a string", item.Line)
			}
			patterns = append(patterns, item.Value)
		}
		return patterns, nil
	}
	return nil, fmt.Errorf("line %v: pattern must be a string or a list of strings", node.Line)
}
