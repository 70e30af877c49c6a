// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package github is a minimal client for the GitHub REST API.
// For documentation on the compare endpoint see:
// https://docs.github.com/en/rest/commits/commits#compare-two-commits
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pathsfilter/pathsfilter/pkg/failure"
	"github.com/pathsfilter/pathsfilter/pkg/log"
	"golang.org/x/oauth2"
)

const (
	DefaultAPIURL = "https://api.github.com"
	apiVersion    = "2022-11-28"
	// The compare endpoint never lists more than this many files.
	maxCompareFiles = 300
)

type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for the API at baseURL (DefaultAPIURL if empty).
// A non-empty token is sent as a bearer token with every request.
func NewClient(ctx context.Context, baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	httpClient := http.DefaultClient
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(ctx, ts)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

type CommitFile struct {
	Filename         string `json:"filename"`
	Status           string `json:"status"`
	PreviousFilename string `json:"previous_filename,omitempty"`
}

type Comparison struct {
	Status       string        `json:"status"`
	TotalCommits int           `json:"total_commits"`
	Files        *[]CommitFile `json:"files"`
}

// CompareCommits returns names of the files changed between base and head,
// in the order the API reports them.
func (client *Client) CompareCommits(ctx context.Context, owner, repo, base, head string) ([]string, error) {
	endpoint := fmt.Sprintf("%v/repos/%v/%v/compare/%v...%v", client.baseURL,
		url.PathEscape(owner), url.PathEscape(repo), url.PathEscape(base), url.PathEscape(head))
	resp := new(Comparison)
	if err := client.get(ctx, endpoint, resp); err != nil {
		return nil, err
	}
	if resp.Files == nil {
		return nil, failure.Transportf("github: malformed compare response: no files")
	}
	files := make([]string, 0, len(*resp.Files))
	for i, file := range *resp.Files {
		if file.Filename == "" {
			return nil, failure.Transportf("github: malformed compare response: file %v has no name", i)
		}
		files = append(files, file.Filename)
	}
	if len(files) >= maxCompareFiles {
		log.Warningf("compare %v...%v lists %v files, the list may be truncated", base, head, len(files))
	}
	log.Logf(1, "compare %v...%v: %v commits, %v files", base, head, resp.TotalCommits, len(files))
	return files, nil
}

func (client *Client) get(ctx context.Context, endpoint string, resp any) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return failure.Transport("github: failed to create request", err)
	}
	httpReq.Header.Set("Accept", "application/vnd.github+json")
	httpReq.Header.Set("X-GitHub-Api-Version", apiVersion)
	httpResp, err := client.http.Do(httpReq)
	if err != nil {
		return failure.Transport("github: request failed", err)
	}
	defer httpResp.Body.Close()
	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return failure.Transport("github: failed to read response", err)
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return failure.Transportf("github: %v %v: %v", httpResp.StatusCode,
			http.StatusText(httpResp.StatusCode), apiMessage(body))
	}
	if err := json.Unmarshal(body, resp); err != nil {
		return failure.Transport("github: malformed response", err)
	}
	return nil
}

// apiMessage extracts the "message" field of an API error, or returns the raw body.
func apiMessage(body []byte) string {
	var apiErr struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		return apiErr.Message
	}
	return strings.TrimSpace(string(body))
}
