package toolfile

import (
	"errors"
	"fmt"
)

// Sentinel errors for toolfile. Use errors.Is to check.
var (
	ErrInvalidFileName    = errors.New("invalid tool file name")
	ErrModuleLoad         = errors.New("tool file load failed")
	ErrMissingSymbol      = errors.New("missing required symbol")
	ErrInvalidDefinition  = errors.New("tool definition is not valid JSON")
	ErrMalformedPayload   = errors.New("malformed tool call payload")
	ErrMissingToolName    = errors.New("tool call has no tool name")
	ErrMalformedArguments = errors.New("malformed tool call arguments")
	ErrUnknownTool        = errors.New("unknown tool")
	ErrInvocation         = errors.New("tool invocation failed")
	ErrArgsRejected       = errors.New("arguments rejected by parameters schema")
	ErrTOONNotImplemented = errors.New("TOON definitions are not implemented yet")
)

// LoadError reports that executing a tool file failed (unreadable file, syntax
// error, fault in top-level code). It wraps ErrModuleLoad and the cause.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() []error { return []error{ErrModuleLoad, e.Err} }

// MissingSymbolError reports that a tool file executed cleanly but did not bind
// a required symbol, or bound it to a value of the wrong type. Symbol names
// which one. It wraps ErrMissingSymbol.
type MissingSymbolError struct {
	Path   string
	Symbol string
	Detail string // optional: why the bound value was rejected
}

func (e *MissingSymbolError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: symbol `%s` %s", e.Path, e.Symbol, e.Detail)
	}
	return fmt.Sprintf("%s: missing required symbol `%s`", e.Path, e.Symbol)
}

func (e *MissingSymbolError) Unwrap() error { return ErrMissingSymbol }

// UnknownToolError reports a dispatch against a name absent from the registry.
// It wraps ErrUnknownTool.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("`%s` is not a registered tool", e.Name)
}

func (e *UnknownToolError) Unwrap() error { return ErrUnknownTool }

// InvocationError reports that a runner returned an error or panicked.
// It wraps ErrInvocation and the cause.
type InvocationError struct {
	Tool string
	Err  error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("tool `%s` execution failed: %v", e.Tool, e.Err)
}

func (e *InvocationError) Unwrap() []error { return []error{ErrInvocation, e.Err} }

// ArgsRejectedError reports that the resolved arguments failed the tool's
// declared parameters schema (only produced when argument validation is
// enabled). It wraps ErrArgsRejected and the validation cause.
type ArgsRejectedError struct {
	Tool string
	Err  error
}

func (e *ArgsRejectedError) Error() string {
	return fmt.Sprintf("arguments for tool `%s` rejected: %v", e.Tool, e.Err)
}

func (e *ArgsRejectedError) Unwrap() []error { return []error{ErrArgsRejected, e.Err} }

// panicError wraps a recovered panic value so it can travel inside an
// InvocationError chain.
type panicError struct{ p any }

func (e *panicError) Error() string {
	return "panic: " + fmt.Sprint(e.p)
}
