// Copyright 2016 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, actionsMode bool) *bytes.Buffer {
	buf := new(bytes.Buffer)
	prev := SetOutput(buf)
	SetActions(actionsMode)
	t.Cleanup(func() {
		SetOutput(prev)
		SetActions(false)
	})
	return buf
}

func TestLogf(t *testing.T) {
	buf := capture(t, false)
	Logf(0, "Base ref: %v", "abc")
	Logf(5, "too verbose")
	assert.Equal(t, "Base ref: abc\n", buf.String())
}

func TestWarningPlain(t *testing.T) {
	buf := capture(t, false)
	Warningf("unsupported event %q", "schedule")
	assert.Equal(t, "WARNING: unsupported event \"schedule\"\n", buf.String())
}

func TestWorkflowCommands(t *testing.T) {
	buf := capture(t, true)
	Warningf("50%% done")
	Errorf("line1\nline2")
	assert.Equal(t, "::warning::50%25 done\n::error::line1%0Aline2\n", buf.String())
}

