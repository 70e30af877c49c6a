// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// pf-match evaluates a paths-filter rule set against a list of changed files
// without talking to git or GitHub.
//
//	pf-match -rules filters.yaml < files.txt
//	git diff main... | pf-match -rules filters.yaml -diff -
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pathsfilter/pathsfilter/pkg/changes"
	"github.com/pathsfilter/pathsfilter/pkg/match"
	"github.com/pathsfilter/pathsfilter/pkg/report"
	"github.com/pathsfilter/pathsfilter/pkg/rules"
	"github.com/pathsfilter/pathsfilter/pkg/tool"
)

func main() {
	if err := run(flag.CommandLine, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		tool.Fail(err)
	}
}

func run(fs *flag.FlagSet, args []string, stdin io.Reader, stdout io.Writer) error {
	var (
		flagRules   = fs.String("rules", "", "YAML rule set file (required)")
		flagDiff    = fs.String("diff", "", "unified diff file, - for stdin (default: file list on stdin)")
		flagDialect = fs.String("dialect", string(rules.DialectDoublestar), "glob dialect: doublestar or gobwas")
		flagOnly    tool.ListFlag
		flagMatched = fs.Bool("matched", false, "print only ids of matched rules")
	)
	fs.Var(&flagOnly, "only", "comma-separated rule ids to print (default: all)")
	if err := tool.ParseFlags(fs, args, 0); err != nil {
		return err
	}
	if *flagRules == "" {
		return fmt.Errorf("-rules is required")
	}
	dialect, err := rules.ParseDialect(*flagDialect)
	if err != nil {
		return err
	}
	doc, err := os.ReadFile(*flagRules)
	if err != nil {
		return fmt.Errorf("failed to read rules: %w", err)
	}
	rs, err := rules.Compile(doc, rules.Options{Dialect: dialect})
	if err != nil {
		return err
	}
	var provider changes.Provider
	if *flagDiff != "" {
		provider, err = changes.New(context.Background(), changes.Options{
			Strategy: changes.StrategyPatch,
			DiffFile: *flagDiff,
			Stdin:    stdin,
		})
	} else {
		provider, err = changes.ReadList(stdin)
	}
	if err != nil {
		return err
	}
	files, err := provider.ChangedFiles(context.Background(), "", "")
	if err != nil {
		return err
	}
	res := match.Evaluate(files, filter(rs, flagOnly))
	if *flagMatched {
		for _, entry := range res.Entries() {
			if entry.Matched {
				fmt.Fprintln(stdout, entry.ID)
			}
		}
		return nil
	}
	return (&report.Console{W: stdout}).Report(res)
}

func filter(rs *rules.RuleSet, only tool.ListFlag) *rules.RuleSet {
	ret := new(rules.RuleSet)
	for _, rule := range rs.Rules {
		if only.Contains(rule.ID) {
			ret.Rules = append(ret.Rules, rule)
		}
	}
	return ret
}
