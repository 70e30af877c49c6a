// Copyright 2020 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package tool

import (
	"flag"
	"fmt"
	"strings"
)

// ParseFlags parses args and checks the number of positional arguments.
// maxArgs < 0 means any number.
func ParseFlags(set *flag.FlagSet, args []string, maxArgs int) error {
	if err := set.Parse(args); err != nil {
		return err
	}
	if maxArgs >= 0 && set.NArg() > maxArgs {
		return fmt.Errorf("unexpected arguments: %q", set.Args()[maxArgs:])
	}
	return nil
}

// ListFlag collects comma-separated values, the flag may be repeated.
type ListFlag []string

func (list *ListFlag) String() string {
	return strings.Join(*list, ",")
}

func (list *ListFlag) Set(value string) error {
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			*list = append(*list, v)
		}
	}
	return nil
}

// Contains returns true if the list is empty or has the value.
func (list ListFlag) Contains(value string) bool {
	if len(list) == 0 {
		return true
	}
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
