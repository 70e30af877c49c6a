// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package vcs

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pathsfilter/pathsfilter/pkg/failure"
	"github.com/stretchr/testify/assert"
)

func nulJoin(tokens ...string) []byte {
	return []byte(strings.Join(tokens, "\x00") + "\x00")
}

func TestParseDiffOutput(t *testing.T) {
	output := nulJoin("M", "a.txt", "A", "b/c.txt")
	want := []string{"a.txt", "b/c.txt"}
	if diff := cmp.Diff(want, ParseDiffOutput(output)); diff != "" {
		t.Fatal(diff)
	}
	strict, err := ParseDiffOutputStrict(output)
	assert.NoError(t, err)
	if diff := cmp.Diff(want, strict); diff != "" {
		t.Fatal(diff)
	}
	// Parsing is a pure function of its input.
	assert.Equal(t, ParseDiffOutput(output), ParseDiffOutput(output))
}

func TestParseDiffOutputEmpty(t *testing.T) {
	assert.Empty(t, ParseDiffOutput(nil))
	assert.Empty(t, ParseDiffOutput([]byte{0}))
	files, err := ParseDiffOutputStrict(nil)
	assert.NoError(t, err)
	assert.Empty(t, files)
}

func TestParseDiffOutputPositional(t *testing.T) {
	// A rename record carries an extra path and misaligns positional pairing.
	output := nulJoin("R100", "old.txt", "new.txt", "M", "x.txt")
	assert.Equal(t, []string{"old.txt", "M"}, ParseDiffOutput(output))
}

func TestParseDiffOutputStrict(t *testing.T) {
	tests := []struct {
		name   string
		output []byte
		want   []string
		err    bool
	}{
		{
			name:   "all-single-path-statuses",
			output: nulJoin("A", "a", "D", "d", "M", "m", "T", "t", "U", "u", "X", "x"),
			want:   []string{"a", "d", "m", "t", "u", "x"},
		},
		{
			name:   "rename",
			output: nulJoin("R100", "old.txt", "new.txt", "M", "x.txt"),
			want:   []string{"old.txt", "new.txt", "x.txt"},
		},
		{
			name:   "copy",
			output: nulJoin("C075", "src.c", "dst.c"),
			want:   []string{"dst.c"},
		},
		{
			name:   "unknown-status",
			output: nulJoin("Q", "a.txt"),
			err:    true,
		},
		{
			name:   "path-where-status-expected",
			output: nulJoin("M", "a.txt", "b.txt"),
			err:    true,
		},
		{
			name:   "long-status",
			output: nulJoin("MM", "a.txt"),
			err:    true,
		},
		{
			name:   "rename-bad-score",
			output: nulJoin("Rxx", "a", "b"),
			err:    true,
		},
		{
			name:   "truncated-rename",
			output: nulJoin("R090", "a"),
			err:    true,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			files, err := ParseDiffOutputStrict(test.output)
			if test.err {
				assert.True(t, failure.IsParse(err), "got %v", err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, test.want, files)
		})
	}
}

func TestCheckCommitHash(t *testing.T) {
	assert.True(t, CheckCommitHash("0123456789abcdef0123456789abcdef01234567"))
	assert.True(t, CheckCommitHash("deadbeef"))
	assert.False(t, CheckCommitHash("HEAD"))
	assert.False(t, CheckCommitHash("abc"))
}
