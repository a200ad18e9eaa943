package diag

import (
	"fmt"
	"strings"

	"github.com/rill-lang/rill/internal/lexer"
)

// StackFrame is a single frame in a call stack, identifying the closure or
// host function being executed and its call-site location.
type StackFrame struct {
	Position     *lexer.Position
	FunctionName string
	FileName     string
}

// String formats a frame as "name [line: N, column: M]", or just the name
// when no position is available (host-function frames have none).
func (sf StackFrame) String() string {
	if sf.Position == nil {
		return sf.FunctionName
	}
	return fmt.Sprintf("%s [line: %d, column: %d]",
		sf.FunctionName, sf.Position.Line, sf.Position.Column)
}

// StackTrace is a complete call stack, ordered oldest (bottom) to newest (top).
type StackTrace []StackFrame

// String renders the trace newest-frame-first, one per line.
func (st StackTrace) String() string {
	if len(st) == 0 {
		return ""
	}
	var sb strings.Builder
	for i := len(st) - 1; i >= 0; i-- {
		sb.WriteString(st[i].String())
		if i > 0 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Reverse returns a copy of st with frame order reversed.
func (st StackTrace) Reverse() StackTrace {
	reversed := make(StackTrace, len(st))
	for i, frame := range st {
		reversed[len(st)-1-i] = frame
	}
	return reversed
}

// Top returns the most recent frame, or nil if the trace is empty.
func (st StackTrace) Top() *StackFrame {
	if len(st) == 0 {
		return nil
	}
	return &st[len(st)-1]
}

// Bottom returns the oldest frame, or nil if the trace is empty.
func (st StackTrace) Bottom() *StackFrame {
	if len(st) == 0 {
		return nil
	}
	return &st[0]
}

// Depth returns the number of frames in the trace.
func (st StackTrace) Depth() int { return len(st) }

// NewStackFrame constructs a StackFrame.
func NewStackFrame(functionName, fileName string, position *lexer.Position) StackFrame {
	return StackFrame{FunctionName: functionName, FileName: fileName, Position: position}
}

// NewStackTrace constructs an empty StackTrace.
func NewStackTrace() StackTrace { return make(StackTrace, 0) }
