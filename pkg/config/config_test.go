// Copyright 2016 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pathsfilter/pathsfilter/pkg/failure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(name string) string { return vars[name] }
}

func TestFromEnv(t *testing.T) {
	cfg := Default()
	err := FromEnv(cfg, env(map[string]string{
		"INPUT_BASEREF":           "b1",
		"INPUT_HEADREF":           " h1 ",
		"INPUT_PATHS":             "code: src/**",
		"INPUT_STRATEGY":          "local",
		"INPUT_WORKING-DIRECTORY": "/src",
		"INPUT_FETCH":             "true",
		"INPUT_TIMEOUT":           "90s",
		"GITHUB_TOKEN":            "tok",
		"GITHUB_REPOSITORY":       "octo/widgets",
		"GITHUB_WORKSPACE":        "/workspace",
		"GITHUB_EVENT_NAME":       "push",
		"GITHUB_EVENT_PATH":       "/event.json",
		"GITHUB_OUTPUT":           "/out",
	}))
	require.NoError(t, err)
	want := &Config{
		BaseRef:          "b1",
		HeadRef:          "h1",
		Paths:            "code: src/**",
		Strategy:         "local",
		Precedence:       "event-first",
		Dialect:          "doublestar",
		WorkingDirectory: "/src",
		Fetch:            true,
		Timeout:          90 * time.Second,
		Repository:       "octo/widgets",
		Token:            "tok",
		EventName:        "push",
		EventPath:        "/event.json",
		OutputFile:       "/out",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatal(diff)
	}
	require.NoError(t, cfg.Validate())
}

func TestFromEnvBadValues(t *testing.T) {
	for _, vars := range []map[string]string{
		{"INPUT_FETCH": "maybe"},
		{"INPUT_TIMEOUT": "soon"},
	} {
		err := FromEnv(Default(), env(vars))
		assert.True(t, failure.IsConfig(err), err)
	}
}

func TestLoadData(t *testing.T) {
	cfg := Default()
	err := LoadData([]byte(`
strategy: patch
diffFile: change.patch
dialect: gobwas
timeout: 2m
paths: |
  code: src/**
`), cfg)
	require.NoError(t, err)
	assert.Equal(t, "patch", cfg.Strategy)
	assert.Equal(t, "change.patch", cfg.DiffFile)
	assert.Equal(t, "gobwas", cfg.Dialect)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
	assert.Equal(t, "code: src/**\n", cfg.Paths)
	assert.Equal(t, "event-first", cfg.Precedence)

	assert.NoError(t, LoadData(nil, Default()))
	err = LoadData([]byte("foobar: 42\n"), Default())
	assert.True(t, failure.IsConfig(err), err)
	assert.Contains(t, err.Error(), "foobar")
	err = LoadData([]byte("token: leaked\n"), Default())
	assert.True(t, failure.IsConfig(err), err)
}

func TestLoadFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "paths-filter.yaml")
	require.NoError(t, os.WriteFile(file, []byte("precedence: overrides-first\n"), 0644))
	cfg := Default()
	require.NoError(t, LoadFile(file, cfg))
	assert.Equal(t, "overrides-first", cfg.Precedence)
	assert.True(t, failure.IsConfig(LoadFile("", cfg)))
	assert.True(t, failure.IsConfig(LoadFile(file+".missing", cfg)))
}

func TestFlagsOverride(t *testing.T) {
	cfg := Default()
	require.NoError(t, FromEnv(cfg, env(map[string]string{
		"INPUT_PATHS":   "code: src/**",
		"INPUT_BASEREF": "from-env",
	})))
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	apply := RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"-baseRef", "from-flag", "-lenient-diff=true"}))
	require.NoError(t, apply(cfg))
	assert.Equal(t, "from-flag", cfg.BaseRef)
	assert.Equal(t, "code: src/**", cfg.Paths)
	assert.True(t, cfg.LenientDiff)

	fs = flag.NewFlagSet("test", flag.ContinueOnError)
	apply = RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"-timeout", "never"}))
	assert.True(t, failure.IsConfig(apply(cfg)))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		err  string
	}{
		{
			name: "no-paths",
			cfg:  Config{Token: "t"},
			err:  "input required and not supplied: paths",
		},
		{
			name: "both-paths",
			cfg:  Config{Paths: "a: b", PathsFile: "f", Token: "t"},
			err:  "paths and paths-file are mutually exclusive",
		},
		{
			name: "bad-strategy",
			cfg:  Config{Paths: "a: b", Strategy: "svn"},
			err:  `unknown strategy "svn"`,
		},
		{
			name: "bad-precedence",
			cfg:  Config{Paths: "a: b", Strategy: "local", Precedence: "random"},
			err:  `unknown precedence "random"`,
		},
		{
			name: "bad-dialect",
			cfg:  Config{Paths: "a: b", Strategy: "local", Dialect: "regexp"},
			err:  `unknown glob dialect "regexp"`,
		},
		{
			name: "hosted-without-token",
			cfg:  Config{Paths: "a: b"},
			err:  "GITHUB_TOKEN is required for the hosted strategy",
		},
		{
			name: "negative-timeout",
			cfg:  Config{Paths: "a: b", Strategy: "local", Timeout: -time.Second},
			err:  "timeout must be non-negative",
		},
		{
			name: "local-without-token",
			cfg:  Config{Paths: "a: b", Strategy: "local"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.cfg.Validate()
			if test.err == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, failure.IsConfig(err), err)
			assert.Contains(t, err.Error(), test.err)
		})
	}
}

func TestRulesDocument(t *testing.T) {
	cfg := &Config{Paths: "code: src/**"}
	doc, err := cfg.RulesDocument()
	require.NoError(t, err)
	assert.Equal(t, "code: src/**", string(doc))

	file := filepath.Join(t.TempDir(), "filters.yaml")
	require.NoError(t, os.WriteFile(file, []byte("docs: docs/**\n"), 0644))
	cfg = &Config{PathsFile: file}
	doc, err = cfg.RulesDocument()
	require.NoError(t, err)
	assert.Equal(t, "docs: docs/**\n", string(doc))

	cfg = &Config{PathsFile: file + ".missing"}
	_, err = cfg.RulesDocument()
	assert.True(t, failure.IsConfig(err), err)
}
