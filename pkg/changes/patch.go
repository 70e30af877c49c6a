// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package changes

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/pathsfilter/pathsfilter/pkg/failure"
	gitdiff "github.com/speakeasy-api/git-diff-parser"
)

// Patch extracts changed files from a unified diff in `git diff` format.
type Patch struct {
	read func() ([]byte, error)
}

func NewPatch(r io.Reader) *Patch {
	return &Patch{read: func() ([]byte, error) { return io.ReadAll(r) }}
}

func NewPatchFile(file string) *Patch {
	return &Patch{read: func() ([]byte, error) { return os.ReadFile(file) }}
}

func (p *Patch) ChangedFiles(ctx context.Context, base, head string) ([]string, error) {
	data, err := p.read()
	if err != nil {
		return nil, failure.Transport("failed to read diff", err)
	}
	files, err := ParsePatch(data)
	if err != nil {
		return nil, err
	}
	return normalize(files), nil
}

// ParsePatch returns paths mentioned in `diff --git` headers.
// Renamed files contribute both the old and the new path.
func ParsePatch(data []byte) ([]string, error) {
	diff, errs := gitdiff.Parse(string(data))
	if len(errs) != 0 {
		return nil, failure.Parse("failed to parse diff", errors.Join(errs...))
	}
	var files []string
	for _, file := range diff.FileDiff {
		if file.FromFile != "" && file.FromFile != file.ToFile {
			files = append(files, file.FromFile)
		}
		if file.ToFile != "" {
			files = append(files, file.ToFile)
		}
	}
	return files, nil
}
