// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package changes provides the list of files touched between two revisions.
// The source of the list is chosen at configuration time, see Strategy.
package changes

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/pathsfilter/pathsfilter/pkg/failure"
	"github.com/pathsfilter/pathsfilter/pkg/github"
	"github.com/pathsfilter/pathsfilter/pkg/osutil"
	"github.com/pathsfilter/pathsfilter/pkg/vcs"
)

type Provider interface {
	// ChangedFiles returns repository-relative, slash-separated paths changed between base and head.
	ChangedFiles(ctx context.Context, base, head string) ([]string, error)
}

type Strategy string

const (
	// StrategyHosted asks the hosting API to compare the revisions.
	StrategyHosted Strategy = "hosted"
	// StrategyLocal checks out both revisions in a local clone and runs git diff.
	StrategyLocal Strategy = "local"
	// StrategyPatch reads a unified diff prepared by someone else.
	StrategyPatch Strategy = "patch"
)

var strategies = []Strategy{StrategyHosted, StrategyLocal, StrategyPatch}

func ParseStrategy(name string) (Strategy, error) {
	if name == "" {
		return StrategyHosted, nil
	}
	for _, s := range strategies {
		if string(s) == name {
			return s, nil
		}
	}
	return "", failure.Configf("unknown strategy %q, want one of %v", name, strategies)
}

type Options struct {
	Strategy Strategy

	// Hosted.
	APIURL string
	Token  string
	Owner  string
	Repo   string

	// Local.
	Dir         string
	Timeout     time.Duration
	Fetch       bool
	LenientDiff bool

	// Patch. Stdin is read if DiffFile is empty or "-".
	DiffFile string
	Stdin    io.Reader
}

// New builds the provider selected by opts.Strategy.
func New(ctx context.Context, opts Options) (Provider, error) {
	switch opts.Strategy {
	case StrategyHosted, "":
		if opts.Owner == "" || opts.Repo == "" {
			return nil, failure.Configf("hosted strategy needs the repository owner and name")
		}
		client := github.NewClient(ctx, opts.APIURL, opts.Token)
		return NewHosted(client, opts.Owner, opts.Repo), nil
	case StrategyLocal:
		var repoOpts []vcs.RepoOpt
		if opts.Fetch {
			repoOpts = append(repoOpts, vcs.OptFetch)
		}
		if opts.LenientDiff {
			repoOpts = append(repoOpts, vcs.OptLenientDiff)
		}
		dir := opts.Dir
		if dir == "" {
			dir = "."
		}
		if !osutil.IsExist(dir) {
			return nil, failure.Configf("working directory %q does not exist", dir)
		}
		return NewLocal(vcs.NewRepo(dir, opts.Timeout, repoOpts...)), nil
	case StrategyPatch:
		if opts.DiffFile == "" || opts.DiffFile == "-" {
			if opts.Stdin == nil {
				return nil, failure.Configf("patch strategy needs a diff file")
			}
			return NewPatch(opts.Stdin), nil
		}
		return NewPatchFile(opts.DiffFile), nil
	}
	return nil, failure.Configf("unknown strategy %q", opts.Strategy)
}

type Hosted struct {
	client *github.Client
	owner  string
	repo   string
}

func NewHosted(client *github.Client, owner, repo string) *Hosted {
	return &Hosted{
		client: client,
		owner:  owner,
		repo:   repo,
	}
}

func (h *Hosted) ChangedFiles(ctx context.Context, base, head string) ([]string, error) {
	files, err := h.client.CompareCommits(ctx, h.owner, h.repo, base, head)
	if err != nil {
		return nil, err
	}
	return normalize(files), nil
}

type Local struct {
	repo vcs.Repo
}

func NewLocal(repo vcs.Repo) *Local {
	return &Local{repo: repo}
}

func (l *Local) ChangedFiles(ctx context.Context, base, head string) ([]string, error) {
	files, err := l.repo.ChangedFiles(ctx, base, head)
	if err != nil {
		return nil, err
	}
	return normalize(files), nil
}

// List is a fixed set of changed files, refs are ignored.
type List []string

func (l List) ChangedFiles(ctx context.Context, base, head string) ([]string, error) {
	return normalize(l), nil
}

// ReadList reads newline separated paths, blank lines are skipped.
func ReadList(r io.Reader) (List, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, failure.Transport("failed to read file list", err)
	}
	var list List
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			list = append(list, line)
		}
	}
	return list, nil
}

func normalize(files []string) []string {
	ret := make([]string, 0, len(files))
	for _, file := range files {
		file = strings.TrimPrefix(filepath.ToSlash(file), "./")
		ret = append(ret, file)
	}
	return ret
}
