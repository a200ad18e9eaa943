package diag

import (
	"fmt"
	"strings"

	"github.com/rill-lang/rill/internal/lexer"
)

// Location pins an Error to a point (or span) in source text.
type Location struct {
	Source string // full source text, for caret rendering
	File    string
	Pos     lexer.Position
	EndPos  *lexer.Position // nil when the error has no meaningful end
}

// Error is the one structured error type surfaced anywhere in Rill: by the
// lexer, the parser, the evaluator, and the public pkg/rill API. Code is a
// stable string from the catalog in catalog.go; Context carries structured
// detail (e.g. functionName/timeoutMs for RUNTIME_TIMEOUT).
type Error struct {
	Code    string
	Message string
	Loc     *Location
	Context map[string]any
	Stack   StackTrace
}

func (e *Error) Error() string {
	if e.Loc != nil {
		return fmt.Sprintf("%s: %s (at %s)", e.Code, e.Message, e.Loc.Pos)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Data returns a plain map suitable for serialization to an embedder,
// mirroring spec.md §7's toData() contract.
func (e *Error) Data() map[string]any {
	data := map[string]any{
		"code":    e.Code,
		"message": e.Message,
	}
	if e.Loc != nil {
		data["line"] = e.Loc.Pos.Line
		data["column"] = e.Loc.Pos.Column
	}
	for k, v := range e.Context {
		data[k] = v
	}
	return data
}

// New constructs an Error with an already-formatted message.
func New(code, message string, loc *Location) *Error {
	return &Error{Code: code, Message: message, Loc: loc, Context: map[string]any{}}
}

// WithContext returns e with key set in its Context map (chainable).
func (e *Error) WithContext(key string, value any) *Error {
	e.Context[key] = value
	return e
}

// WithStack attaches a call-stack snapshot to e (chainable).
func (e *Error) WithStack(st StackTrace) *Error {
	e.Stack = st
	return e
}

// Constructors for each catalog code. Each takes the values needed to
// interpolate its message template and a Location (nil when not yet known,
// e.g. during pure lexing before a Position is assigned).

func NewUnexpectedToken(loc *Location, expected, got string) *Error {
	return New(CodeUnexpectedToken, fmt.Sprintf(msgUnexpectedToken, expected, got), loc)
}

func NewInvalidSyntax(loc *Location, detail string) *Error {
	return New(CodeInvalidSyntax, fmt.Sprintf(msgInvalidSyntax, detail), loc)
}

func NewInvalidTypeAnnotation(loc *Location, detail string) *Error {
	return New(CodeInvalidType, fmt.Sprintf(msgInvalidType, detail), loc)
}

func NewUndefinedVariable(loc *Location, name string) *Error {
	return New(CodeUndefinedVariable, fmt.Sprintf(msgUndefinedVariable, name), loc).WithContext("name", name)
}

func NewUndefinedFunction(loc *Location, name string) *Error {
	return New(CodeUndefinedFunction, fmt.Sprintf(msgUndefinedFunction, name), loc).WithContext("name", name)
}

func NewUndefinedMethod(loc *Location, name string) *Error {
	return New(CodeUndefinedMethod, fmt.Sprintf(msgUndefinedMethod, name), loc).WithContext("name", name)
}

func NewTypeError(loc *Location, detail string) *Error {
	return New(CodeTypeError, fmt.Sprintf(msgTypeError, detail), loc)
}

func NewPropertyNotFound(loc *Location, key string) *Error {
	return New(CodePropertyNotFound, fmt.Sprintf(msgPropertyNotFound, key), loc).WithContext("key", key)
}

func NewLimitExceeded(loc *Location, what string, limit int) *Error {
	return New(CodeLimitExceeded, fmt.Sprintf(msgLimitExceeded, what, limit), loc).WithContext("limit", limit)
}

func NewAssertionFailed(loc *Location, message string) *Error {
	if message == "" {
		return New(CodeAssertionFailed, msgAssertionFailed, loc)
	}
	return New(CodeAssertionFailed, fmt.Sprintf(msgAssertionFailedM, message), loc)
}

func NewErrorRaised(loc *Location, message string) *Error {
	return New(CodeErrorRaised, fmt.Sprintf(msgErrorRaised, message), loc)
}

func NewReassignOuter(loc *Location, name string) *Error {
	return New(CodeReassignOuter, fmt.Sprintf(msgReassignOuter, name), loc).WithContext("name", name)
}

func NewInvalidPattern(loc *Location, detail string) *Error {
	return New(CodeInvalidPattern, fmt.Sprintf(msgInvalidPattern, detail), loc)
}

func NewTimeout(loc *Location, functionName string, timeoutMs int) *Error {
	return New(CodeTimeout, fmt.Sprintf(msgTimeout, functionName, timeoutMs), loc).
		WithContext("functionName", functionName).
		WithContext("timeoutMs", timeoutMs)
}

func NewAutoException(loc *Location, pattern, matchedValue string) *Error {
	return New(CodeAutoException, fmt.Sprintf(msgAutoException, pattern), loc).
		WithContext("pattern", pattern).
		WithContext("matchedValue", matchedValue)
}

func NewAborted(loc *Location) *Error {
	return New(CodeAborted, msgAborted, loc)
}

// Format renders e as a human-readable diagnostic with a source-line-and-
// caret indicator, mirroring the teacher's CompilerError.Format.
func (e *Error) Format() string {
	return e.FormatWithContext(0)
}

// FormatWithContext renders e with contextLines of source before and after
// the offending line.
func (e *Error) FormatWithContext(contextLines int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))
	if e.Loc == nil {
		return sb.String()
	}
	sb.WriteString(fmt.Sprintf("\n  --> %s:%s", displayFile(e.Loc.File), e.Loc.Pos))

	lines := sourceLines(e.Loc.Source, e.Loc.Pos.Line, contextLines)
	for _, l := range lines {
		sb.WriteString(fmt.Sprintf("\n%5d | %s", l.num, l.text))
		if l.num == e.Loc.Pos.Line {
			sb.WriteString("\n      | ")
			sb.WriteString(strings.Repeat(" ", maxInt(e.Loc.Pos.Column-1, 0)))
			sb.WriteString("^")
		}
	}
	return sb.String()
}

func displayFile(f string) string {
	if f == "" {
		return "<script>"
	}
	return f
}

type sourceLine struct {
	num  int
	text string
}

// sourceLines returns up to contextLines before/after line (1-based) from
// source, for caret rendering.
func sourceLines(source string, line, contextLines int) []sourceLine {
	if source == "" {
		return nil
	}
	all := strings.Split(source, "\n")
	start := line - contextLines
	if start < 1 {
		start = 1
	}
	end := line + contextLines
	if end > len(all) {
		end = len(all)
	}
	var out []sourceLine
	for n := start; n <= end; n++ {
		if n-1 < 0 || n-1 >= len(all) {
			continue
		}
		out = append(out, sourceLine{num: n, text: all[n-1]})
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// FormatErrors renders a numbered "[Error N of M]" block per error, in the
// teacher's multi-error listing style used by ParseWithRecovery.
func FormatErrors(errs []*Error) string {
	if len(errs) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, e := range errs {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(fmt.Sprintf("[Error %d of %d]\n", i+1, len(errs)))
		sb.WriteString(e.Format())
	}
	return sb.String()
}

// FormatErrorsWithContext is FormatErrors with source context lines.
func FormatErrorsWithContext(errs []*Error, contextLines int) string {
	if len(errs) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, e := range errs {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(fmt.Sprintf("[Error %d of %d]\n", i+1, len(errs)))
		sb.WriteString(e.FormatWithContext(contextLines))
	}
	return sb.String()
}
