package synth

import (
	"fmt"
	"strings"
)

// Error codes. They share their spelling with the public issue codes so the
// caller can forward them unchanged.
const (
	CodeSyntax                 = "synthesis_error"
	CodeMalformedDefault       = "malformed_default"
	CodeTooManyArguments       = "too_many_arguments"
	CodeUnexpectedArgument     = "unexpected_argument"
	CodeDuplicateArgument      = "duplicate_argument"
	CodeMissingArgument        = "missing_argument"
	CodePositionalAfterKeyword = "positional_after_keyword"
)

// Error is a single synthesis or call-binding failure.
type Error struct {
	Code   string
	Param  string // empty when the failure is not tied to one parameter
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	if e.Param == "" {
		return e.Code + ": " + e.Detail
	}
	return fmt.Sprintf("%s at %s: %s", e.Code, e.Param, e.Detail)
}

func (e *Error) Unwrap() error { return e.Cause }

// Errors collects every failure found in one pass.
type Errors []*Error

func (es Errors) Error() string {
	parts := make([]string, 0, len(es))
	for _, e := range es {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

// HookError wraps a failure returned by the post-construction hook.
type HookError struct{ Err error }

func (e *HookError) Error() string { return "post-construction hook: " + e.Err.Error() }
func (e *HookError) Unwrap() error { return e.Err }
