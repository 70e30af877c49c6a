// Copyright 2020 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package tool

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseFlags(t *testing.T) {
	type Test struct {
		args    string
		maxArgs int
		ok      bool
	}
	tests := []Test{
		{"", 0, true},
		{"-foo", 0, true},
		{"-foo arg0", 0, false},
		{"-foo arg0", 1, true},
		{"arg0 arg1 arg2", -1, true},
		{"-qux", -1, false},
	}
	for i, test := range tests {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			flags := flag.NewFlagSet("", flag.ContinueOnError)
			flags.SetOutput(io.Discard)
			foo := flags.Bool("foo", false, "")
			var args []string
			if test.args != "" {
				args = strings.Split(test.args, " ")
			}
			err := ParseFlags(flags, args, test.maxArgs)
			if test.ok != (err == nil) {
				t.Fatalf("args %q: got err %v", test.args, err)
			}
			if err == nil && strings.HasPrefix(test.args, "-foo") && !*foo {
				t.Fatalf("foo is not set")
			}
		})
	}
}

func TestListFlag(t *testing.T) {
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	var list ListFlag
	flags.Var(&list, "rule", "")
	if err := flags.Parse([]string{"-rule", "a, b", "-rule=c,"}); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(ListFlag{"a", "b", "c"}, list); diff != "" {
		t.Fatal(diff)
	}
	if got, want := list.String(), "a,b,c"; got != want {
		t.Errorf("String got: %s, want: %s", got, want)
	}
	if !list.Contains("b") || list.Contains("d") {
		t.Errorf("bad Contains")
	}
	if !(ListFlag{}).Contains("d") {
		t.Errorf("empty list must contain everything")
	}
}
