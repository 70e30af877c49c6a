// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// paths-filter sets one boolean step output per rule telling whether
// any file changed between the base and head revisions matches the rule.
//
// Inputs come from the action environment (INPUT_baseRef, INPUT_headRef, INPUT_paths, ...),
// an optional -config YAML file and command line flags, flags having the last word.
package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pathsfilter/pathsfilter/pkg/config"
	"github.com/pathsfilter/pathsfilter/pkg/detect"
	"github.com/pathsfilter/pathsfilter/pkg/event"
	"github.com/pathsfilter/pathsfilter/pkg/log"
	"github.com/pathsfilter/pathsfilter/pkg/report"
	"github.com/pathsfilter/pathsfilter/pkg/tool"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	log.SetActions(os.Getenv("GITHUB_ACTIONS") == "true")
	if err := run(ctx, flag.CommandLine, os.Args[1:], os.Getenv, os.Stdin, os.Stdout); err != nil {
		tool.Fail(err)
	}
}

func run(ctx context.Context, fs *flag.FlagSet, args []string, getenv func(string) string,
	stdin io.Reader, stdout io.Writer) error {
	flagConfig := fs.String("config", "", "optional YAML config file")
	applyFlags := config.RegisterFlags(fs)
	if err := tool.ParseFlags(fs, args, 0); err != nil {
		return err
	}
	cfg := config.Default()
	if *flagConfig != "" {
		if err := config.LoadFile(*flagConfig, cfg); err != nil {
			return err
		}
	}
	if err := config.FromEnv(cfg, getenv); err != nil {
		return err
	}
	if err := applyFlags(cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	ev, err := event.Load(cfg.EventName, cfg.EventPath)
	if err != nil {
		return err
	}
	provider, err := detect.NewProvider(ctx, cfg, ev, stdin)
	if err != nil {
		return err
	}
	sink := report.Multi{
		&report.Console{W: stdout},
		&report.Outputs{File: cfg.OutputFile, W: stdout},
	}
	_, err = detect.Run(ctx, cfg, ev, provider, sink)
	return err
}
