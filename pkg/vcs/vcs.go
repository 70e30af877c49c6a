// Copyright 2018 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package vcs provides helper functions for working with a local git checkout:
// switching revisions and listing the files changed between two of them.
package vcs

import (
	"context"
	"regexp"
	"time"
)

type Repo interface {
	// Checkout switches the working copy to the specified revision.
	// With OptFetch a revision missing locally is fetched from origin first.
	Checkout(ctx context.Context, rev string) error

	// HeadCommit returns hash of the currently checked out commit.
	HeadCommit(ctx context.Context) (string, error)

	// ChangedFiles checks out base and head (in this order) and returns the paths
	// that differ between them, as reported by git diff --name-status.
	ChangedFiles(ctx context.Context, base, head string) ([]string, error)
}

type RepoOpt int

const (
	// OptFetch makes Checkout fetch revisions that are not present in the local clone
	// (CI checkouts are usually shallow).
	OptFetch RepoOpt = iota
	// OptLenientDiff parses diff output with plain positional status/path pairing
	// instead of validating status tokens.
	OptLenientDiff
)

// DefaultTimeout bounds every single git invocation.
const DefaultTimeout = 10 * time.Minute

func NewRepo(dir string, timeout time.Duration, opts ...RepoOpt) Repo {
	return newGit(dir, timeout, opts)
}

func CheckCommitHash(hash string) bool {
	if !gitHashRe.MatchString(hash) {
		return false
	}
	ln := len(hash)
	return ln == 8 || ln == 10 || ln == 12 || ln == 16 || ln == 20 || ln == 40 || ln == 64
}

var gitHashRe = regexp.MustCompile("^[a-f0-9]+$")
