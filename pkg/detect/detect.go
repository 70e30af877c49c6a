// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package detect runs one change detection: it resolves the revisions,
// collects the changed files, evaluates the rules and reports the result.
package detect

import (
	"context"
	"io"

	"github.com/pathsfilter/pathsfilter/pkg/changes"
	"github.com/pathsfilter/pathsfilter/pkg/config"
	"github.com/pathsfilter/pathsfilter/pkg/event"
	"github.com/pathsfilter/pathsfilter/pkg/failure"
	"github.com/pathsfilter/pathsfilter/pkg/log"
	"github.com/pathsfilter/pathsfilter/pkg/match"
	"github.com/pathsfilter/pathsfilter/pkg/refs"
	"github.com/pathsfilter/pathsfilter/pkg/report"
	"github.com/pathsfilter/pathsfilter/pkg/rules"
	"golang.org/x/sync/errgroup"
)

// Run executes the pipeline. Nothing is reported if any stage fails.
func Run(ctx context.Context, cfg *config.Config, ev *event.Context, provider changes.Provider,
	sink report.Sink) (*match.Result, error) {
	policy, err := refs.ParsePolicy(cfg.Precedence)
	if err != nil {
		return nil, err
	}
	dialect, err := rules.ParseDialect(cfg.Dialect)
	if err != nil {
		return nil, err
	}
	pair, err := refs.Resolve(ev, refs.Pair{Base: cfg.BaseRef, Head: cfg.HeadRef}, policy)
	if err != nil {
		return nil, err
	}
	var files []string
	var rs *rules.RuleSet
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		files, err = provider.ChangedFiles(gctx, pair.Base, pair.Head)
		return err
	})
	g.Go(func() error {
		doc, err := cfg.RulesDocument()
		if err != nil {
			return err
		}
		rs, err = rules.Compile(doc, rules.Options{Dialect: dialect})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Logf(1, "changed files (%v):", len(files))
	for _, file := range files {
		log.Logf(1, "  %v", file)
	}
	log.Logf(1, "compiled %v rules", rs.Len())
	res := match.Evaluate(files, rs)
	if err := report.CheckNames(res); err != nil {
		return nil, failure.Config("", err)
	}
	if err := sink.Report(res); err != nil {
		return nil, err
	}
	return res, nil
}

// NewProvider builds the changed files provider selected by cfg.
// stdin is used by the patch strategy when no diff file is given.
func NewProvider(ctx context.Context, cfg *config.Config, ev *event.Context,
	stdin io.Reader) (changes.Provider, error) {
	strategy, err := changes.ParseStrategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}
	opts := changes.Options{
		Strategy:    strategy,
		APIURL:      cfg.APIURL,
		Token:       cfg.Token,
		Dir:         cfg.WorkingDirectory,
		Timeout:     cfg.Timeout,
		Fetch:       cfg.Fetch,
		LenientDiff: cfg.LenientDiff,
		DiffFile:    cfg.DiffFile,
		Stdin:       stdin,
	}
	if strategy == changes.StrategyHosted {
		owner, repo, ok := ev.Repo(cfg.Repository)
		if !ok {
			return nil, failure.Configf("unable to determine the repository, set GITHUB_REPOSITORY")
		}
		opts.Owner, opts.Repo = owner, repo
	}
	return changes.New(ctx, opts)
}
