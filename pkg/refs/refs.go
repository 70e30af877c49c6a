// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package refs resolves the base and head revisions of the change being evaluated.
package refs

import (
	"fmt"

	"github.com/pathsfilter/pathsfilter/pkg/event"
	"github.com/pathsfilter/pathsfilter/pkg/failure"
	"github.com/pathsfilter/pathsfilter/pkg/log"
)

type Pair struct {
	Base string
	Head string
}

func (p Pair) complete() bool {
	return p.Base != "" && p.Head != ""
}

// Policy decides how explicit baseRef/headRef overrides interact with the event payload.
type Policy int

const (
	// PolicyEventFirst takes refs from pull_request and push payloads and uses
	// overrides only for other events or to fill a side the payload leaves empty.
	PolicyEventFirst Policy = iota
	// PolicyOverridesFirst uses the overrides whenever both are given,
	// and falls back to the payload otherwise.
	PolicyOverridesFirst
)

var policyNames = map[Policy]string{
	PolicyEventFirst:     "event-first",
	PolicyOverridesFirst: "overrides-first",
}

func (p Policy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

func ParsePolicy(name string) (Policy, error) {
	if name == "" {
		return PolicyEventFirst, nil
	}
	for p, pname := range policyNames {
		if pname == name {
			return p, nil
		}
	}
	return 0, failure.Configf("unknown precedence %q, want event-first or overrides-first", name)
}

// Resolve derives the base/head pair for the event.
// Both sides must be non-empty, otherwise a *failure.ConfigError is returned.
func Resolve(ev *event.Context, override Pair, policy Policy) (Pair, error) {
	log.Logf(0, "Event name: %v", ev.Name)
	var pair Pair
	if policy == PolicyOverridesFirst && override.complete() {
		pair = override
	} else {
		var known bool
		pair, known = fromEvent(ev)
		if !known && !override.complete() {
			log.Warningf("missing 'base' or 'head' refs for event type '%v'", ev.Name)
		}
		if pair.Base == "" {
			pair.Base = override.Base
		}
		if pair.Head == "" {
			pair.Head = override.Head
		}
	}
	if !pair.complete() {
		return Pair{}, failure.Configf("base or head refs are missing")
	}
	log.Logf(0, "Base ref: %v", pair.Base)
	log.Logf(0, "Head ref: %v", pair.Head)
	return pair, nil
}

func fromEvent(ev *event.Context) (Pair, bool) {
	switch ev.Name {
	case event.PullRequest, event.PullRequestTarget:
		pr := ev.Payload.PullRequest
		if pr == nil {
			return Pair{}, true
		}
		return Pair{Base: pr.Base.SHA, Head: pr.Head.SHA}, true
	case event.Push:
		return Pair{Base: ev.Payload.Before, Head: ev.Payload.After}, true
	}
	return Pair{}, false
}
