// Copyright 2020 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package tool contains various helper utilitites useful for implementation of command line tools.
package tool

import (
	"github.com/pathsfilter/pathsfilter/pkg/log"
)

// Failf reports the error as a workflow failure and exits with status 1.
func Failf(msg string, args ...interface{}) {
	log.Fatalf(msg, args...)
}

func Fail(err error) {
	Failf("%v", err)
}
