// Package toolfile turns a directory of script files into a registry of
// callable LLM tools.
//
// # Overview
//
// Each tool lives in its own file whose name carries the tool name between a
// configurable prefix and suffix: calc_tool.go defines the tool "calc". A
// scan walks the directory (depth-bounded, deterministic order), executes
// every matching file in a fresh interpreter, and extracts two symbols: the
// definition string handed to the model and the runner invoked on dispatch.
// Run then takes the JSON tool call a model produced, in any of the common
// shapes, and routes it to the right runner.
//
// Pipeline: directory → scan (name, size, depth rules) → Engine (Go via
// yaegi, JavaScript via goja) → Registry → Run (decode payload, resolve
// name, invoke) → result.
//
// # Key concepts
//
//   - The file name is the tool name. What a definition claims inside the
//     file never overrides it.
//   - Tool files are executed, not parsed: point a toolset only at
//     directories you trust.
//   - Scans rebuild the registry from scratch; on name collisions the file
//     scanned last wins.
//   - One bad file never aborts a scan. Its failure is logged and counted,
//     and the scan moves on.
//   - No-throw mode converts scan and dispatch errors into logged nil
//     results for agent loops that must not crash.
//
// See Toolset, Engine and Record for the core types, New for setup, and the
// verbose subpackage for trace output.
//
// # Example
//
//	ts, err := toolfile.New("./tools")
//	if err != nil { ... }
//	out, err := ts.Run(`{"name": "calc", "arguments": {"a": 1, "b": 2}}`)
package toolfile
