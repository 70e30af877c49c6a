// Copyright 2019 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package vcs

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pathsfilter/pathsfilter/pkg/osutil"
)

const (
	userEmail = `test@paths-filter.dev`
	userName  = `Test Paths Filter`
)

// TestRepo is a throwaway git repository for tests.
type TestRepo struct {
	t   *testing.T
	Dir string
}

func (repo *TestRepo) Git(args ...string) string {
	repo.t.Helper()
	cmd := osutil.Command("git", args...)
	cmd.Dir = repo.Dir
	cmd.Env = filterEnv()
	output, err := osutil.Run(context.Background(), time.Minute, cmd)
	if err != nil {
		repo.t.Fatal(err)
	}
	return strings.TrimSpace(string(output))
}

// MakeTestRepo creates a repo in dir, skipping the test if git is not installed.
func MakeTestRepo(t *testing.T, dir string) *TestRepo {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skipf("git is not available: %v", err)
	}
	if err := osutil.MkdirAll(dir); err != nil {
		t.Fatal(err)
	}
	repo := &TestRepo{
		t:   t,
		Dir: dir,
	}
	repo.Git("init", "--quiet")
	repo.Git("config", "--add", "user.email", userEmail)
	repo.Git("config", "--add", "user.name", userName)
	return repo
}

type FileContent struct {
	File    string
	Content string
}

func (fc *FileContent) Apply(repo *TestRepo) error {
	path := filepath.Join(repo.Dir, filepath.FromSlash(fc.File))
	if err := osutil.MkdirAll(filepath.Dir(path)); err != nil {
		return err
	}
	if err := osutil.WriteFile(path, []byte(fc.Content)); err != nil {
		return err
	}
	repo.Git("add", fc.File)
	return nil
}

// CommitChangeset writes the files, commits them and returns the commit hash.
func (repo *TestRepo) CommitChangeset(description string, actions ...FileContent) string {
	repo.t.Helper()
	for i, action := range actions {
		if err := action.Apply(repo); err != nil {
			repo.t.Fatalf("failed to apply action %d: %v", i, err)
		}
	}
	repo.Git("commit", "--quiet", "--allow-empty", "-m", description)
	hash := repo.Git("rev-parse", "HEAD")
	repo.t.Logf("%q's hash is %s", description, hash)
	return hash
}

// RemoveFile stages deletion of a file, it becomes part of the next commit.
func (repo *TestRepo) RemoveFile(file string) {
	repo.t.Helper()
	repo.Git("rm", "--quiet", file)
}

func filterEnv() []string {
	// We have to filter various git environment variables - if
	// these variables are set (e.g. if a test is being run as
	// part of a rebase) we're going to be acting on some other
	// repository (e.g the repository being rebased) rather than
	// the intended repo.
	var env []string
	for _, val := range os.Environ() {
		if strings.HasPrefix(val, "GIT_") {
			continue
		}
		env = append(env, val)
	}
	return env
}
