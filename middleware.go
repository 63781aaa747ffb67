package toolfile

import (
	"time"

	"github.com/go-toolfile/toolfile/verbose"
)

// Middleware wraps a runner with cross-cutting behavior (logging, counting,
// caching). name is the registry key of the tool being wrapped.
type Middleware func(name string, next Runner) Runner

// wrap applies middlewares to a runner in onion order: the first middleware
// is outermost.
func wrap(name string, runner Runner, middlewares []Middleware) Runner {
	for i := len(middlewares) - 1; i >= 0; i-- {
		runner = middlewares[i](name, runner)
	}
	return runner
}

// LogCalls returns a middleware that logs each invocation with its duration
// and outcome at the Mid level.
func LogCalls(settings *verbose.Settings) Middleware {
	return func(name string, next Runner) Runner {
		return func(args map[string]any) (any, error) {
			start := time.Now()
			res, err := next(args)
			if err != nil {
				settings.Printf(verbose.Mid, "Tool call failed: %s (%s): %v", name, time.Since(start), err)
				return nil, err
			}
			settings.Printf(verbose.Mid, "Tool call finished: %s (%s)", name, time.Since(start))
			return res, nil
		}
	}
}
