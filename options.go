package toolfile

import (
	"github.com/go-toolfile/toolfile/verbose"
)

// options hold the scan and dispatch configuration of a Toolset.
type options struct {
	prefix       string
	suffix       string
	maxDepth     int
	mode         DefinitionMode
	toon         bool
	engine       Engine
	settings     *verbose.Settings
	validateArgs bool
	middlewares  []Middleware
}

func defaultOptions() options {
	return options{
		suffix: "_tool",
		engine: NewGoEngine(),
	}
}

// Option configures a Toolset (e.g. WithSuffix, WithMaxDepth).
type Option func(*options)

// WithPrefix sets the filename prefix stripped when deriving tool names.
// Default is "" (no prefix).
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithSuffix sets the filename suffix stripped when deriving tool names.
// Default is "_tool". Pass "" to match files with no suffix.
func WithSuffix(suffix string) Option {
	return func(o *options) {
		o.suffix = suffix
	}
}

// WithMaxDepth sets how many directory levels below the base directory are
// scanned. Default is 0: only the base directory itself.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		o.maxDepth = n
	}
}

// WithEngine selects the engine that loads tool files. Default is the Go
// engine; use NewJSEngine for .js tool files.
func WithEngine(e Engine) Option {
	return func(o *options) {
		o.engine = e
	}
}

// WithRawDefinitions stores definition strings exactly as found in tool files,
// without parsing them.
func WithRawDefinitions() Option {
	return func(o *options) {
		o.mode = DefinitionRaw
	}
}

// WithValidatedDefinitions checks that definitions parse as JSON but stores
// them unchanged. The default mode additionally compacts them.
func WithValidatedDefinitions() Option {
	return func(o *options) {
		o.mode = DefinitionValidated
	}
}

// WithTOONDefinitions is reserved for TOON-formatted definitions. Scanning
// with it fails with ErrTOONNotImplemented.
func WithTOONDefinitions() Option {
	return func(o *options) {
		o.toon = true
	}
}

// WithVerbose sets the diagnostic settings shared by scanning and dispatch.
func WithVerbose(s *verbose.Settings) Option {
	return func(o *options) {
		o.settings = s
	}
}

// WithArgsValidation enables JSON Schema checking of call arguments against
// each tool's function.parameters, for definitions that carry one.
func WithArgsValidation() Option {
	return func(o *options) {
		o.validateArgs = true
	}
}

// WithMiddleware wraps every runner at registration time. The first
// middleware given is outermost.
func WithMiddleware(mw ...Middleware) Option {
	return func(o *options) {
		o.middlewares = append(o.middlewares, mw...)
	}
}

// runOptions hold per-dispatch settings.
type runOptions struct {
	fallbackName string
	fallbackArgs map[string]any
	hasFallback  bool
}

// RunOption configures a single Run call.
type RunOption func(*runOptions)

// WithFallback names the tool to invoke when Run is given a nil call. The
// payload decode steps are skipped and the tool runs with args.
func WithFallback(name string, args map[string]any) RunOption {
	return func(o *runOptions) {
		o.fallbackName = name
		o.fallbackArgs = args
		o.hasFallback = true
	}
}
