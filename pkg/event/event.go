// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package event loads the context of the workflow run that triggered paths-filter:
// the event name and the subset of the webhook payload that refs are resolved from.
package event

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/pathsfilter/pathsfilter/pkg/failure"
)

const (
	PullRequest       = "pull_request"
	PullRequestTarget = "pull_request_target"
	Push              = "push"
)

type Context struct {
	Name    string
	Payload Payload
}

type Payload struct {
	PullRequest *PullRequestInfo `json:"pull_request,omitempty"`
	// Before and After are set for push events.
	Before     string      `json:"before,omitempty"`
	After      string      `json:"after,omitempty"`
	Repository *Repository `json:"repository,omitempty"`
}

type PullRequestInfo struct {
	Number int    `json:"number"`
	Base   GitRef `json:"base"`
	Head   GitRef `json:"head"`
}

type GitRef struct {
	Ref string `json:"ref"`
	SHA string `json:"sha"`
}

type Repository struct {
	FullName string `json:"full_name"`
	Name     string `json:"name"`
	Owner    struct {
		Login string `json:"login"`
	} `json:"owner"`
}

// FromEnv loads the context from GITHUB_EVENT_NAME and GITHUB_EVENT_PATH.
func FromEnv() (*Context, error) {
	return Load(os.Getenv("GITHUB_EVENT_NAME"), os.Getenv("GITHUB_EVENT_PATH"))
}

// Load reads the payload stored at path. An empty path yields an empty payload.
func Load(name, path string) (*Context, error) {
	ev := &Context{Name: name}
	if path == "" {
		return ev, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, failure.Config("failed to read event payload", err)
	}
	payload, err := Parse(data)
	if err != nil {
		return nil, err
	}
	ev.Payload = *payload
	return ev, nil
}

func Parse(data []byte) (*Payload, error) {
	payload := new(Payload)
	if err := json.Unmarshal(data, payload); err != nil {
		return nil, failure.Config("failed to parse event payload", err)
	}
	return payload, nil
}

// Repo returns the owner and name of the repository the event belongs to.
// fallback is an "owner/name" string consulted if the payload does not carry one.
func (ev *Context) Repo(fallback string) (owner, name string, ok bool) {
	if repo := ev.Payload.Repository; repo != nil {
		if repo.Owner.Login != "" && repo.Name != "" {
			return repo.Owner.Login, repo.Name, true
		}
		if owner, name, ok := splitRepo(repo.FullName); ok {
			return owner, name, true
		}
	}
	return splitRepo(fallback)
}

func splitRepo(full string) (string, string, bool) {
	owner, name, ok := strings.Cut(full, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", false
	}
	return owner, name, true
}
