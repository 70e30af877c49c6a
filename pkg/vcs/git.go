// Copyright 2017 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package vcs

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pathsfilter/pathsfilter/pkg/failure"
	"github.com/pathsfilter/pathsfilter/pkg/log"
	"github.com/pathsfilter/pathsfilter/pkg/osutil"
)

type git struct {
	dir     string
	timeout time.Duration
	fetch   bool
	lenient bool
	// Checkouts mutate the working copy, so only one operation may run at a time.
	mu sync.Mutex
}

func newGit(dir string, timeout time.Duration, opts []RepoOpt) *git {
	git := &git{
		dir:     dir,
		timeout: timeout,
	}
	if git.timeout == 0 {
		git.timeout = DefaultTimeout
	}
	for _, opt := range opts {
		switch opt {
		case OptFetch:
			git.fetch = true
		case OptLenientDiff:
			git.lenient = true
		}
	}
	return git
}

func (git *git) Checkout(ctx context.Context, rev string) error {
	git.mu.Lock()
	defer git.mu.Unlock()
	return git.checkout(ctx, rev)
}

func (git *git) checkout(ctx context.Context, rev string) error {
	_, err := git.run(ctx, "checkout", "--quiet", rev)
	if err == nil || !git.fetch {
		return err
	}
	log.Logf(1, "checkout of %v failed, fetching it from origin", rev)
	if _, err := git.run(ctx, "fetch", "--no-tags", "--quiet", "origin", rev); err != nil {
		return err
	}
	_, err = git.run(ctx, "checkout", "--quiet", rev)
	return err
}

func (git *git) HeadCommit(ctx context.Context) (string, error) {
	output, err := git.run(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	hash := string(bytes.TrimSpace(output))
	if !CheckCommitHash(hash) {
		return "", failure.Parsef("unexpected git rev-parse output: %q", output)
	}
	return hash, nil
}

func (git *git) ChangedFiles(ctx context.Context, base, head string) ([]string, error) {
	git.mu.Lock()
	defer git.mu.Unlock()
	for _, rev := range []string{base, head} {
		if err := git.checkout(ctx, rev); err != nil {
			return nil, err
		}
	}
	output, err := git.run(ctx, "diff", "--name-status", "-z", "--no-renames", base+".."+head)
	if err != nil {
		return nil, err
	}
	if git.lenient {
		return ParseDiffOutput(output), nil
	}
	return ParseDiffOutputStrict(output)
}

func (git *git) run(ctx context.Context, args ...string) ([]byte, error) {
	log.Logf(2, "running git %q in %v", args, git.dir)
	output, err := osutil.RunCmd(ctx, git.timeout, git.dir, "git", args...)
	if err != nil {
		return nil, failure.Transport("", osutil.PrependContext(fmt.Sprintf("git %v", args[0]), err))
	}
	return output, nil
}
