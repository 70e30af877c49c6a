// Copyright 2017 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package config assembles paths-filter settings from an optional YAML file,
// action inputs (INPUT_* environment variables), the GitHub environment
// and command line flags, in this order of increasing priority.
package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pathsfilter/pathsfilter/pkg/changes"
	"github.com/pathsfilter/pathsfilter/pkg/failure"
	"github.com/pathsfilter/pathsfilter/pkg/refs"
	"github.com/pathsfilter/pathsfilter/pkg/rules"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Explicit base/head revisions.
	BaseRef string `yaml:"baseRef"`
	HeadRef string `yaml:"headRef"`
	// Rule set document, inline or in a file.
	Paths     string `yaml:"paths"`
	PathsFile string `yaml:"pathsFile"`
	// Where the changed files come from: hosted, local or patch.
	Strategy string `yaml:"strategy"`
	// How overrides interact with the event: event-first or overrides-first.
	Precedence string `yaml:"precedence"`
	// Glob engine: doublestar or gobwas.
	Dialect string `yaml:"dialect"`
	// Local strategy settings.
	WorkingDirectory string        `yaml:"workingDirectory"`
	Fetch            bool          `yaml:"fetch"`
	LenientDiff      bool          `yaml:"lenientDiff"`
	Timeout          time.Duration `yaml:"timeout"`
	// Patch strategy input, "-" means stdin.
	DiffFile string `yaml:"diffFile"`
	// Hosted strategy settings.
	Repository string `yaml:"repository"`
	APIURL     string `yaml:"apiURL"`
	Token      string `yaml:"-"`
	// Invocation context.
	EventName  string `yaml:"-"`
	EventPath  string `yaml:"-"`
	OutputFile string `yaml:"-"`
}

func Default() *Config {
	return &Config{
		Strategy:   string(changes.StrategyHosted),
		Precedence: refs.PolicyEventFirst.String(),
		Dialect:    string(rules.DialectDoublestar),
		Timeout:    10 * time.Minute,
	}
}

type option struct {
	name  string
	usage string
	set   func(cfg *Config, val string) error
}

func str(field func(cfg *Config) *string) func(*Config, string) error {
	return func(cfg *Config, val string) error {
		*field(cfg) = val
		return nil
	}
}

func boolean(field func(cfg *Config) *bool) func(*Config, string) error {
	return func(cfg *Config, val string) error {
		v, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("not a boolean: %q", val)
		}
		*field(cfg) = v
		return nil
	}
}

// options are named like the action inputs.
var options = []option{
	{"baseRef", "base revision override", str(func(c *Config) *string { return &c.BaseRef })},
	{"headRef", "head revision override", str(func(c *Config) *string { return &c.HeadRef })},
	{"paths", "YAML rule set: rule id -> glob or list of globs", str(func(c *Config) *string { return &c.Paths })},
	{"paths-file", "file with the YAML rule set", str(func(c *Config) *string { return &c.PathsFile })},
	{"strategy", "changed files source: hosted, local or patch", str(func(c *Config) *string { return &c.Strategy })},
	{"precedence", "event-first or overrides-first", str(func(c *Config) *string { return &c.Precedence })},
	{"dialect", "glob dialect: doublestar or gobwas", str(func(c *Config) *string { return &c.Dialect })},
	{"working-directory", "git checkout for the local strategy",
		str(func(c *Config) *string { return &c.WorkingDirectory })},
	{"fetch", "fetch revisions missing from the local clone", boolean(func(c *Config) *bool { return &c.Fetch })},
	{"lenient-diff", "do not validate git diff status tokens",
		boolean(func(c *Config) *bool { return &c.LenientDiff })},
	{"timeout", "timeout for each git invocation", func(cfg *Config, val string) error {
		d, err := time.ParseDuration(val)
		if err != nil {
			return err
		}
		cfg.Timeout = d
		return nil
	}},
	{"diff-file", "unified diff for the patch strategy, - for stdin",
		str(func(c *Config) *string { return &c.DiffFile })},
	{"repository", "owner/name of the repository", str(func(c *Config) *string { return &c.Repository })},
	{"api-url", "GitHub API URL", str(func(c *Config) *string { return &c.APIURL })},
	{"token", "GitHub token", str(func(c *Config) *string { return &c.Token })},
}

func LoadFile(filename string, cfg *Config) error {
	if filename == "" {
		return failure.Configf("no config file specified")
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return failure.Config("failed to read config file", err)
	}
	return LoadData(data, cfg)
}

// LoadData decodes YAML into cfg, unknown fields are rejected.
func LoadData(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return failure.Config("failed to parse config file", err)
	}
	return nil
}

// FromEnv applies action inputs and GitHub environment variables that are set.
func FromEnv(cfg *Config, getenv func(string) string) error {
	for _, opt := range options {
		val := strings.TrimSpace(getenv(inputName(opt.name)))
		if val == "" {
			continue
		}
		if err := opt.set(cfg, val); err != nil {
			return failure.Configf("input %v: %v", opt.name, err)
		}
	}
	setIfEmpty(&cfg.Token, getenv("GITHUB_TOKEN"))
	setIfEmpty(&cfg.Repository, getenv("GITHUB_REPOSITORY"))
	setIfEmpty(&cfg.APIURL, getenv("GITHUB_API_URL"))
	setIfEmpty(&cfg.WorkingDirectory, getenv("GITHUB_WORKSPACE"))
	setIfEmpty(&cfg.EventName, getenv("GITHUB_EVENT_NAME"))
	setIfEmpty(&cfg.EventPath, getenv("GITHUB_EVENT_PATH"))
	setIfEmpty(&cfg.OutputFile, getenv("GITHUB_OUTPUT"))
	return nil
}

// inputName mirrors how the runner exposes action inputs.
func inputName(name string) string {
	return "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}

func setIfEmpty(field *string, val string) {
	if *field == "" {
		*field = val
	}
}

// RegisterFlags defines a flag per option on fs.
// The returned function applies the flags that were set on the command line.
func RegisterFlags(fs *flag.FlagSet) func(cfg *Config) error {
	values := make(map[string]*string)
	for _, opt := range options {
		values[opt.name] = fs.String(opt.name, "", opt.usage)
	}
	return func(cfg *Config) error {
		var err error
		fs.Visit(func(f *flag.Flag) {
			if err != nil || values[f.Name] == nil {
				return
			}
			for _, opt := range options {
				if opt.name == f.Name {
					if err1 := opt.set(cfg, *values[f.Name]); err1 != nil {
						err = failure.Configf("flag -%v: %v", f.Name, err1)
					}
				}
			}
		})
		return err
	}
}

// Validate checks that the configuration is usable.
func (cfg *Config) Validate() error {
	if cfg.Paths == "" && cfg.PathsFile == "" {
		return failure.Configf("input required and not supplied: paths")
	}
	if cfg.Paths != "" && cfg.PathsFile != "" {
		return failure.Configf("paths and paths-file are mutually exclusive")
	}
	strategy, err := changes.ParseStrategy(cfg.Strategy)
	if err != nil {
		return err
	}
	if _, err := refs.ParsePolicy(cfg.Precedence); err != nil {
		return err
	}
	if _, err := rules.ParseDialect(cfg.Dialect); err != nil {
		return err
	}
	if cfg.Timeout < 0 {
		return failure.Configf("timeout must be non-negative")
	}
	if strategy == changes.StrategyHosted && cfg.Token == "" {
		return failure.Configf("GITHUB_TOKEN is required for the hosted strategy")
	}
	return nil
}

// RulesDocument returns the rule set document.
func (cfg *Config) RulesDocument() ([]byte, error) {
	if cfg.PathsFile == "" {
		return []byte(cfg.Paths), nil
	}
	data, err := os.ReadFile(cfg.PathsFile)
	if err != nil {
		return nil, failure.Config("failed to read paths file", err)
	}
	return data, nil
}
