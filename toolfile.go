package toolfile

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-toolfile/toolfile/verbose"
)

// Toolset discovers tools in a directory tree and dispatches calls to them.
//
// A Toolset is built by New, which scans immediately. Rescan rebuilds the
// registry from the filesystem, so entries from deleted or renamed files never
// survive a rescan. The core is single-threaded: callers that rescan and
// dispatch from different goroutines must serialize them.
type Toolset struct {
	baseDir  string
	opts     options
	registry *Registry
	stats    ScanStats
}

// New applies opts, scans baseDir immediately and returns the resulting
// Toolset. Scanning runs the top-level code of every tool file it accepts.
func New(baseDir string, opts ...Option) (*Toolset, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	t := &Toolset{
		baseDir:  baseDir,
		opts:     o,
		registry: NewRegistry(),
	}
	if err := t.Rescan(); err != nil {
		return nil, err
	}
	return t, nil
}

// Rescan walks the base directory again and swaps in a freshly built
// registry. On a failed scan the previous registry stays in place; in
// no-throw mode a failed scan is logged and leaves the Toolset empty
// instead of returning the error.
func (t *Toolset) Rescan() error {
	if t.opts.toon {
		return ErrTOONNotImplemented
	}
	reg, stats, err := t.load()
	if err != nil {
		if t.opts.settings.Suppress() {
			t.opts.settings.Printf(verbose.Low, "Tool scan failed: %v", err)
			t.registry = NewRegistry()
			t.stats = stats
			return nil
		}
		return err
	}
	t.registry = reg
	t.stats = stats
	return nil
}

// load scans the tree and loads every candidate into a fresh registry. A
// candidate that fails to load is logged and skipped; one bad file never
// aborts the scan.
func (t *Toolset) load() (*Registry, ScanStats, error) {
	if t.opts.maxDepth < 0 {
		return nil, ScanStats{}, fmt.Errorf("max depth must be >= 0, got %d", t.opts.maxDepth)
	}
	if t.opts.engine == nil {
		return nil, ScanStats{}, errors.New("engine must not be nil")
	}
	settings := t.opts.settings

	candidates, stats, err := scanDir(t.baseDir, t.opts.maxDepth, t.opts.prefix, t.opts.suffix, t.opts.engine.Ext(), settings)
	if err != nil {
		return nil, stats, err
	}

	reg := NewRegistry()
	for _, cand := range candidates {
		fileName := filepath.Base(cand.Path)

		definition, runner, err := t.opts.engine.Load(cand.Path)
		if err != nil {
			var missing *MissingSymbolError
			if errors.As(err, &missing) {
				stats.SkippedMissingSymbols++
				settings.Printf(verbose.Low, "Skipping '%s'. %v", fileName, err)
			} else {
				stats.SkippedLoadError++
				settings.Printf(verbose.Low, "Load failed for '%s': %v", fileName, err)
			}
			continue
		}

		processed, err := processDefinition(definition, t.opts.mode)
		if err != nil {
			stats.SkippedBadDefinition++
			settings.Printf(verbose.Low, "Skipping '%s'. %v", fileName, err)
			continue
		}

		rec := Record{
			Name:       cand.Name,
			Definition: processed,
			Runner:     wrap(cand.Name, runner, t.opts.middlewares),
		}
		if t.opts.validateArgs {
			rec.params = compileParams(cand.Name, processed)
		}
		if reg.Has(cand.Name) {
			settings.Printf(verbose.Low, "Overwriting '%s' tool", cand.Name)
		}
		reg.Put(rec)
		stats.Accepted++
		settings.Printf(verbose.Mid, "Loaded tool: %s, from file: %s", cand.Name, fileName)
	}

	joined := "No tools found"
	if reg.Len() > 0 {
		joined = strings.Join(reg.Names(), ", ")
	}
	settings.Printf(verbose.Mid, "Loaded tools (%d): %s", stats.Accepted, joined)

	settings.Printf(verbose.Low,
		"Tool scan finished. base='%s'. dirs=%d, files=%d, name_matched=%d, accepted=%d, "+
			"skipped_too_big=%d, skipped_load_error=%d, skipped_missing_symbols=%d, skipped_bad_definition=%d",
		t.baseDir, stats.DirsVisited, stats.FilesSeen, stats.NameMatched, stats.Accepted,
		stats.SkippedTooBig, stats.SkippedLoadError, stats.SkippedMissingSymbols, stats.SkippedBadDefinition)

	return reg, stats, nil
}

// Definitions returns the definition strings keyed by tool name, for prompt
// assembly. Runners are not part of the view.
func (t *Toolset) Definitions() map[string]string { return t.registry.Definitions() }

// Names returns the registered tool names, sorted.
func (t *Toolset) Names() []string { return t.registry.Names() }

// Len returns the number of registered tools.
func (t *Toolset) Len() int { return t.registry.Len() }

// Stats returns the counters of the most recent scan.
func (t *Toolset) Stats() ScanStats { return t.stats }

// Lookup returns the record registered under name.
func (t *Toolset) Lookup(name string) (Record, bool) { return t.registry.Get(name) }

// BaseDir returns the directory this Toolset scans.
func (t *Toolset) BaseDir() string { return t.baseDir }

// Register adds an in-process tool alongside the file-discovered ones. The
// definition goes through the configured definition mode and middlewares
// apply as usual. A later Rescan rebuilds the registry from the filesystem
// and drops tools added this way.
func (t *Toolset) Register(name, definition string, runner Runner) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("tool name must not be empty")
	}
	if runner == nil {
		return errors.New("runner must not be nil")
	}
	processed, err := processDefinition(definition, t.opts.mode)
	if err != nil {
		return err
	}
	rec := Record{
		Name:       name,
		Definition: processed,
		Runner:     wrap(name, runner, t.opts.middlewares),
	}
	if t.opts.validateArgs {
		rec.params = compileParams(name, processed)
	}
	if t.registry.Has(name) {
		t.opts.settings.Printf(verbose.Low, "Overwriting '%s' tool", name)
	}
	t.registry.Put(rec)
	return nil
}

// Run dispatches one tool call and returns whatever the runner returned.
//
// call may be a mapping, a single-element sequence holding one mapping, or a
// JSON string (or raw bytes) encoding either. The tool name comes from "name"
// or "function_name", the arguments from "arguments" or "parameters", where a
// string value is decoded once more (LLMs double-encode arguments routinely).
// A nil call runs the WithFallback tool instead.
//
// In no-throw mode every dispatch failure is logged at Low and Run returns
// (nil, nil) instead of an error; a nil result then no longer distinguishes
// "failed" from "tool returned nothing".
func (t *Toolset) Run(call any, opts ...RunOption) (any, error) {
	var ro runOptions
	for _, opt := range opts {
		opt(&ro)
	}
	result, err := t.dispatch(call, ro)
	if err != nil && t.opts.settings.Suppress() {
		t.opts.settings.Printf(verbose.Low, "Tool call suppressed: %v", err)
		return nil, nil
	}
	return result, err
}

func (t *Toolset) dispatch(call any, ro runOptions) (any, error) {
	var tc toolCall
	if call == nil {
		if !ro.hasFallback || strings.TrimSpace(ro.fallbackName) == "" {
			return nil, fmt.Errorf("%w: nil call and no fallback", ErrMissingToolName)
		}
		tc = toolCall{name: ro.fallbackName, args: ro.fallbackArgs}
		if tc.args == nil {
			tc.args = map[string]any{}
		}
	} else {
		var err error
		tc, err = decodeCall(call)
		if err != nil {
			return nil, err
		}
	}

	rec, ok := t.registry.Get(tc.name)
	if !ok {
		return nil, &UnknownToolError{Name: tc.name}
	}
	if err := checkArgs(rec, tc.args); err != nil {
		return nil, err
	}
	return invoke(rec, tc.args)
}
