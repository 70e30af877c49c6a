// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package event

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pathsfilter/pathsfilter/pkg/failure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pullRequestPayload = `{
  "action": "synchronize",
  "pull_request": {
    "number": 7,
    "base": {"ref": "main", "sha": "1111111111111111111111111111111111111111"},
    "head": {"ref": "feature", "sha": "2222222222222222222222222222222222222222"}
  },
  "repository": {"full_name": "octo/widgets", "name": "widgets", "owner": {"login": "octo"}}
}`

func TestLoadPullRequest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(path, []byte(pullRequestPayload), 0644))
	ev, err := Load(PullRequest, path)
	require.NoError(t, err)
	assert.Equal(t, PullRequest, ev.Name)
	require.NotNil(t, ev.Payload.PullRequest)
	assert.Equal(t, "1111111111111111111111111111111111111111", ev.Payload.PullRequest.Base.SHA)
	assert.Equal(t, "2222222222222222222222222222222222222222", ev.Payload.PullRequest.Head.SHA)
	owner, name, ok := ev.Repo("")
	assert.True(t, ok)
	assert.Equal(t, "octo", owner)
	assert.Equal(t, "widgets", name)
}

func TestLoadNoPath(t *testing.T) {
	ev, err := Load("workflow_dispatch", "")
	require.NoError(t, err)
	assert.Equal(t, "workflow_dispatch", ev.Name)
	assert.Nil(t, ev.Payload.PullRequest)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(Push, filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, failure.IsConfig(err), err)

	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	_, err = Load(Push, path)
	assert.True(t, failure.IsConfig(err), err)
}

func TestRepoFallback(t *testing.T) {
	tests := []struct {
		payload  Payload
		fallback string
		owner    string
		name     string
		ok       bool
	}{
		{
			payload: Payload{Repository: &Repository{FullName: "a/b"}},
			owner:   "a",
			name:    "b",
			ok:      true,
		},
		{
			fallback: "c/d",
			owner:    "c",
			name:     "d",
			ok:       true,
		},
		{
			fallback: "no-slash",
		},
		{
			fallback: "too/many/parts",
		},
	}
	for _, test := range tests {
		ev := &Context{Name: Push, Payload: test.payload}
		owner, name, ok := ev.Repo(test.fallback)
		assert.Equal(t, test.ok, ok)
		assert.Equal(t, test.owner, owner)
		assert.Equal(t, test.name, name)
	}
}
