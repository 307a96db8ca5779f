package datacls

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType  = "invalid_type"
	CodeParseError   = "parse_error"
	CodeDuplicateKey = "duplicate_key"
	// Declaration time
	CodeDuplicateField   = "duplicate_field"
	CodeInvalidName      = "invalid_name"
	CodeMalformedDefault = "malformed_default"
	CodeSynthesis        = "synthesis_error"
	// Construction time (mirrors the call errors of a generated initializer)
	CodeTooManyArguments       = "too_many_arguments"
	CodeUnexpectedArgument     = "unexpected_argument"
	CodeDuplicateArgument      = "duplicate_argument"
	CodeMissingArgument        = "missing_argument"
	CodePositionalAfterKeyword = "positional_after_keyword"
	// Instance access
	CodeUnknownField = "unknown_field"
	CodeUnsetField   = "unset_field"
	CodeFrozen       = "frozen"
)

// Issue represents a single declaration, construction or access failure.
type Issue struct {
	Path    string // "/" for the type itself, "/<field>" for a field or parameter.
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: the detailed, non-translated explanation.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"type":"User"}) for i18n.
	Params map[string]any
}

// Issues is a collection of failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. missing_argument at /b
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes the causes so errors.Is/As can see through an Issues value.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
}

// HasCode reports whether any issue carries code.
func (iss Issues) HasCode(code string) bool {
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

var (
	// ErrSynthesis matches every *SynthesisError.
	ErrSynthesis = errors.New("datacls: synthesis failed")
	// ErrFrozen matches every *FrozenError.
	ErrFrozen = errors.New("datacls: instance is frozen")
)

// SynthesisError reports that a generated behavior could not be built for a
// type. It is always fatal to the augmentation.
type SynthesisError struct {
	Type   string
	Issues Issues
	// Source is the synthesized text when the failure happened while compiling it.
	Source string
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("datacls: cannot synthesize %s: %s", e.Type, e.Issues.Error())
}

func (e *SynthesisError) Is(target error) bool { return target == ErrSynthesis }

func (e *SynthesisError) Unwrap() error { return e.Issues }

// FrozenError is returned when a field of a frozen instance is assigned.
type FrozenError struct {
	Type  string
	Field string
}

func (e *FrozenError) Error() string {
	return fmt.Sprintf("datacls: cannot assign to field %q: %s instances are frozen", e.Field, e.Type)
}

func (e *FrozenError) Is(target error) bool { return target == ErrFrozen }
