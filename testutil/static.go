// Package testutil provides test helpers for toolfile (e.g. StaticEngine).
package testutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-toolfile/toolfile"
)

// Entry is what a StaticEngine answers for one file basename.
type Entry struct {
	Definition string          // "" means "{}"
	Runner     toolfile.Runner // nil means a runner returning (nil, nil)
	Err        error           // returned instead of the pair when set
}

// StaticEngine is a configurable Engine for tests. Load never executes file
// content: answers come from the Entries table, keyed by file basename, so
// scans stay fast and deterministic without a real interpreter.
type StaticEngine struct {
	NameVal string
	ExtVal  string
	Entries map[string]Entry
	Loaded  []string // basenames in Load order
}

// Name returns NameVal or "static".
func (e *StaticEngine) Name() string {
	if e.NameVal != "" {
		return e.NameVal
	}
	return "static"
}

// Ext returns ExtVal or ".go".
func (e *StaticEngine) Ext() string {
	if e.ExtVal != "" {
		return e.ExtVal
	}
	return ".go"
}

// Load records the basename and answers from Entries. A basename without an
// entry fails like an unloadable file.
func (e *StaticEngine) Load(path string) (string, toolfile.Runner, error) {
	base := filepath.Base(path)
	e.Loaded = append(e.Loaded, base)

	entry, ok := e.Entries[base]
	if !ok {
		return "", nil, &toolfile.LoadError{Path: path, Err: errors.New("no static entry")}
	}
	if entry.Err != nil {
		return "", nil, entry.Err
	}
	definition := entry.Definition
	if definition == "" {
		definition = "{}"
	}
	runner := entry.Runner
	if runner == nil {
		runner = func(map[string]any) (any, error) { return nil, nil }
	}
	return definition, runner, nil
}

// Ensure StaticEngine implements Engine.
var _ toolfile.Engine = (*StaticEngine)(nil)

// NewToolset builds a toolset in a fresh temp directory holding one empty
// file per Entries key, scanned with a StaticEngine. Keys must follow the
// naming convention the options imply (by default "*_tool.go").
func NewToolset(tb testing.TB, entries map[string]Entry, opts ...toolfile.Option) *toolfile.Toolset {
	tb.Helper()

	dir := tb.TempDir()
	for name := range entries {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			tb.Fatal(err)
		}
	}

	engine := &StaticEngine{Entries: entries}
	ts, err := toolfile.New(dir, append([]toolfile.Option{toolfile.WithEngine(engine)}, opts...)...)
	if err != nil {
		tb.Fatal(err)
	}
	return ts
}
