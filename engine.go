package toolfile

// Runner is the entry-point callable extracted from a tool file. It receives
// the resolved argument mapping and returns whatever the tool produces.
type Runner func(args map[string]any) (any, error)

// Engine loads tool files written in one scripting language. Implementations
// must execute each file in a fresh, isolated interpreter state: bindings
// made by one file are never observable from another.
//
// Executing the file is the sole mechanism for obtaining its tool, so any
// top-level code in a scanned file runs unconditionally and unsandboxed on
// every scan. Only point an engine at directories you trust.
type Engine interface {
	// Name identifies the engine in diagnostics and the CLI ("go", "js").
	Name() string
	// Ext is the file extension the engine claims, including the dot.
	Ext() string
	// Load executes the file and extracts the definition string and the
	// entry-point runner. Failures are reported as *LoadError (execution
	// failed) or *MissingSymbolError (a required symbol is absent or has the
	// wrong type).
	Load(path string) (definition string, runner Runner, err error)
}
