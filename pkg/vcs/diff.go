// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package vcs

import (
	"bytes"

	"github.com/pathsfilter/pathsfilter/pkg/failure"
)

// ParseDiffOutput extracts paths from `git diff --name-status -z` output.
// Tokens are paired positionally as (status, path) and only paths are kept.
// Input with a different shape (e.g. rename records) silently misaligns;
// ParseDiffOutputStrict rejects such input instead.
func ParseDiffOutput(output []byte) []string {
	tokens := splitTokens(output)
	var files []string
	for i := 1; i < len(tokens); i += 2 {
		files = append(files, string(tokens[i]))
	}
	return files
}

// ParseDiffOutputStrict is ParseDiffOutput that validates every status token.
// Rename (R) and copy (C) records carry two paths: a rename reports both the
// source and the destination, a copy reports only the destination.
func ParseDiffOutputStrict(output []byte) ([]string, error) {
	tokens := splitTokens(output)
	var files []string
	for i := 0; i < len(tokens); {
		status := tokens[i]
		paths, ok := statusPaths(status)
		if !ok {
			return nil, failure.Parsef("unexpected git diff status %q at token %v", status, i)
		}
		if i+paths >= len(tokens) {
			return nil, failure.Parsef("git diff status %q at token %v is missing its path", status, i)
		}
		switch status[0] {
		case 'R':
			files = append(files, string(tokens[i+1]), string(tokens[i+2]))
		case 'C':
			files = append(files, string(tokens[i+2]))
		default:
			files = append(files, string(tokens[i+1]))
		}
		i += paths + 1
	}
	return files, nil
}

// statusPaths returns the number of paths that follow the status token.
func statusPaths(status []byte) (int, bool) {
	if len(status) == 0 {
		return 0, false
	}
	switch status[0] {
	case 'A', 'D', 'M', 'T', 'U', 'X':
		return 1, len(status) == 1
	case 'R', 'C':
		// Similarity score, e.g. R100.
		for _, c := range status[1:] {
			if c < '0' || c > '9' {
				return 0, false
			}
		}
		return 2, true
	}
	return 0, false
}

func splitTokens(output []byte) [][]byte {
	var tokens [][]byte
	for _, tok := range bytes.Split(output, []byte{0}) {
		if len(tok) != 0 {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}
