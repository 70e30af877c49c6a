// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package report publishes match results to people and to the workflow.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/pathsfilter/pathsfilter/pkg/match"
	"github.com/pathsfilter/pathsfilter/pkg/osutil"
)

type Sink interface {
	Report(res *match.Result) error
}

// Console prints a human-readable summary.
type Console struct {
	W io.Writer
}

func (c *Console) Report(res *match.Result) error {
	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "Matches:\n")
	for _, entry := range res.Entries() {
		fmt.Fprintf(buf, "%v: %v\n", entry.ID, entry.Matched)
	}
	_, err := c.W.Write(buf.Bytes())
	return err
}

// Outputs sets one step output per rule with the value "true" or "false".
// Outputs are appended to File (GITHUB_OUTPUT); if File is empty,
// the legacy set-output workflow command is written to W.
type Outputs struct {
	File string
	W    io.Writer
}

func (o *Outputs) Report(res *match.Result) error {
	if err := CheckNames(res); err != nil {
		return err
	}
	buf := new(bytes.Buffer)
	for _, entry := range res.Entries() {
		if o.File != "" {
			fmt.Fprintf(buf, "%v=%v\n", entry.ID, entry.Matched)
		} else {
			fmt.Fprintf(buf, "::set-output name=%v::%v\n", entry.ID, entry.Matched)
		}
	}
	if o.File != "" {
		if err := osutil.AppendFile(o.File, buf.Bytes()); err != nil {
			return fmt.Errorf("failed to write outputs: %w", err)
		}
		return nil
	}
	_, err := o.W.Write(buf.Bytes())
	return err
}

// CheckNames verifies that every rule id can be used as a step output name.
// Callers run it before any sink so that a bad id does not leave a partial report.
func CheckNames(res *match.Result) error {
	for _, entry := range res.Entries() {
		if err := checkName(entry.ID); err != nil {
			return err
		}
	}
	return nil
}

// checkName rejects ids that would corrupt the key=value outputs file.
func checkName(id string) error {
	if id == "" || strings.ContainsAny(id, "=\r\n") {
		return fmt.Errorf("rule id %q can't be used as an output name", id)
	}
	return nil
}

// Multi reports to every sink in order and stops at the first failure.
type Multi []Sink

func (m Multi) Report(res *match.Result) error {
	for _, sink := range m {
		if err := sink.Report(res); err != nil {
			return err
		}
	}
	return nil
}
