// Copyright 2016 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package log provides functionality similar to standard log package with some extensions:
//   - verbosity levels
//   - global verbosity setting that can be used by multiple packages
//   - GitHub Actions workflow commands for warnings and errors
package log

import (
	"flag"
	"fmt"
	"io"
	golog "log"
	"os"
	"strings"
	"sync"
)

var (
	flagV   = flag.Int("vv", 0, "verbosity")
	mu      sync.Mutex
	actions = os.Getenv("GITHUB_ACTIONS") == "true"
	out     io.Writer = os.Stdout
)

// SetActions switches warning and error output to the workflow command syntax.
func SetActions(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	actions = enabled
}

// SetOutput redirects all log output, returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	golog.SetOutput(w)
	return prev
}

func V(v int) bool {
	return v <= *flagV
}

// Logf prints informational output if v is within the configured verbosity.
// Level 0 is always printed and is meant for operator-facing lines.
func Logf(v int, msg string, args ...interface{}) {
	if !V(v) {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, msg+"\n", args...)
}

// Warningf reports a non-fatal problem.
func Warningf(msg string, args ...interface{}) {
	emit("warning", msg, args...)
}

// Errorf reports a fatal problem without exiting.
func Errorf(msg string, args ...interface{}) {
	emit("error", msg, args...)
}

func emit(kind, msg string, args ...interface{}) {
	text := fmt.Sprintf(msg, args...)
	mu.Lock()
	defer mu.Unlock()
	if actions {
		fmt.Fprintf(out, "::%v::%v\n", kind, escapeData(text))
		return
	}
	fmt.Fprintf(out, "%v: %v\n", strings.ToUpper(kind), text)
}

// escapeData follows the workflow command encoding for message payloads.
func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}

// Fatalf reports a fatal problem and exits with status 1.
func Fatalf(msg string, args ...interface{}) {
	Errorf(msg, args...)
	os.Exit(1)
}
