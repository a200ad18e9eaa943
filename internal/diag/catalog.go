package diag

// Stable error codes surfaced to embedders. Codes never change meaning once
// published; add new ones rather than repurposing an existing code.
const (
	// Parse-time codes.
	CodeUnexpectedToken = "PARSE_UNEXPECTED_TOKEN"
	CodeInvalidSyntax   = "PARSE_INVALID_SYNTAX"
	CodeInvalidType     = "PARSE_INVALID_TYPE"

	// Runtime codes.
	CodeUndefinedVariable  = "RUNTIME_UNDEFINED_VARIABLE"
	CodeUndefinedFunction  = "RUNTIME_UNDEFINED_FUNCTION"
	CodeUndefinedMethod    = "RUNTIME_UNDEFINED_METHOD"
	CodeTypeError          = "RUNTIME_TYPE_ERROR"
	CodePropertyNotFound   = "RUNTIME_PROPERTY_NOT_FOUND"
	CodeLimitExceeded      = "RUNTIME_LIMIT_EXCEEDED"
	CodeAssertionFailed    = "RUNTIME_ASSERTION_FAILED"
	CodeErrorRaised        = "RUNTIME_ERROR_RAISED"
	CodeReassignOuter      = "RUNTIME_REASSIGN_OUTER"
	CodeInvalidPattern     = "RUNTIME_INVALID_PATTERN"

	// Cross-cutting codes.
	CodeTimeout       = "RUNTIME_TIMEOUT"
	CodeAutoException = "RUNTIME_AUTO_EXCEPTION"
	CodeAborted       = "RUNTIME_ABORTED"
)

// Message templates, mirroring the teacher's ErrMsg* catalog: one named
// constant per error shape, interpolated with fmt.Sprintf by the
// constructors in errors.go rather than inlined at each call site.
const (
	msgUnexpectedToken = "unexpected token: expected %s, got %s"
	msgInvalidSyntax   = "invalid syntax: %s"
	msgInvalidType     = "invalid type annotation: %s"

	msgUndefinedVariable = "undefined variable: %s"
	msgUndefinedFunction = "undefined function: %s"
	msgUndefinedMethod   = "undefined method: %s"
	msgTypeError         = "type error: %s"
	msgPropertyNotFound  = "property not found: %s"
	msgLimitExceeded     = "limit exceeded: %s (limit %d)"
	msgAssertionFailed   = "assertion failed"
	msgAssertionFailedM  = "assertion failed: %s"
	msgErrorRaised       = "%s"
	msgReassignOuter     = "cannot reassign %q: already defined in an ancestor scope"
	msgInvalidPattern    = "invalid destructure pattern: %s"

	msgTimeout       = "host function %q exceeded timeout of %dms"
	msgAutoException = "auto-exception: value matched pattern %q"
	msgAborted       = "execution aborted"
)
