// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package failure defines the fatal error kinds that abort a paths-filter run.
// Every kind prints its message verbatim, so the top level can surface it as is.
package failure

import (
	"errors"
	"fmt"
)

// ConfigError is returned for invalid inputs: unresolved refs, malformed rule sets, bad settings.
type ConfigError struct {
	Msg string
	Err error
}

func (err *ConfigError) Error() string { return format(err.Msg, err.Err) }
func (err *ConfigError) Unwrap() error { return err.Err }

// TransportError is returned when the hosting API or a local subprocess fails.
type TransportError struct {
	Msg string
	Err error
}

func (err *TransportError) Error() string { return format(err.Msg, err.Err) }
func (err *TransportError) Unwrap() error { return err.Err }

// ParseError is returned for documents or tool output that could not be parsed.
type ParseError struct {
	Msg string
	Err error
}

func (err *ParseError) Error() string { return format(err.Msg, err.Err) }
func (err *ParseError) Unwrap() error { return err.Err }

func Configf(msg string, args ...any) error {
	return &ConfigError{Msg: fmt.Sprintf(msg, args...)}
}

func Config(msg string, err error) error {
	return &ConfigError{Msg: msg, Err: err}
}

func Transportf(msg string, args ...any) error {
	return &TransportError{Msg: fmt.Sprintf(msg, args...)}
}

func Transport(msg string, err error) error {
	return &TransportError{Msg: msg, Err: err}
}

func Parsef(msg string, args ...any) error {
	return &ParseError{Msg: fmt.Sprintf(msg, args...)}
}

func Parse(msg string, err error) error {
	return &ParseError{Msg: msg, Err: err}
}

func IsConfig(err error) bool {
	var target *ConfigError
	return errors.As(err, &target)
}

func IsTransport(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

func IsParse(err error) bool {
	var target *ParseError
	return errors.As(err, &target)
}

func format(msg string, err error) string {
	switch {
	case err == nil:
		return msg
	case msg == "":
		return err.Error()
	default:
		return fmt.Sprintf("%v: %v", msg, err)
	}
}
