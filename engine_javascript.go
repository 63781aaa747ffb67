package toolfile

import (
	"os"

	"github.com/dop251/goja"
)

// Required symbols in .js tool files.
const (
	jsDefinitionSymbol = "TOOL_DEFINITION"
	jsRunnerSymbol     = "tool_run"
)

// JSEngine loads .js tool files by running them on a goja runtime. Each file
// gets its own runtime, so globals never leak between files.
//
// A tool file binds two globals:
//
//	const TOOL_DEFINITION = JSON.stringify({name: "calc", ...});
//
//	function tool_run(args) { ... }
//
// The returned Runner stays bound to the file's runtime, which is not safe
// for concurrent use. Callers serialize invocations.
type JSEngine struct{}

// NewJSEngine returns the engine for .js tool files.
func NewJSEngine() *JSEngine { return &JSEngine{} }

// Name implements Engine.
func (e *JSEngine) Name() string { return "js" }

// Ext implements Engine.
func (e *JSEngine) Ext() string { return ".js" }

// Load implements Engine.
func (e *JSEngine) Load(path string) (string, Runner, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", nil, &LoadError{Path: path, Err: err}
	}

	vm := goja.New()
	if _, err := vm.RunScript(path, string(src)); err != nil {
		return "", nil, &LoadError{Path: path, Err: err}
	}

	defVal := vm.Get(jsDefinitionSymbol)
	if defVal == nil || goja.IsUndefined(defVal) || goja.IsNull(defVal) {
		return "", nil, &MissingSymbolError{Path: path, Symbol: jsDefinitionSymbol}
	}
	definition, ok := defVal.Export().(string)
	if !ok {
		return "", nil, &MissingSymbolError{Path: path, Symbol: jsDefinitionSymbol, Detail: "must be bound to a string"}
	}

	runVal := vm.Get(jsRunnerSymbol)
	if runVal == nil || goja.IsUndefined(runVal) || goja.IsNull(runVal) {
		return "", nil, &MissingSymbolError{Path: path, Symbol: jsRunnerSymbol}
	}
	fn, ok := goja.AssertFunction(runVal)
	if !ok {
		return "", nil, &MissingSymbolError{Path: path, Symbol: jsRunnerSymbol, Detail: "must be a function"}
	}

	runner := func(args map[string]any) (any, error) {
		res, err := fn(goja.Undefined(), vm.ToValue(args))
		if err != nil {
			return nil, err
		}
		return res.Export(), nil
	}
	return definition, runner, nil
}

var _ Engine = (*JSEngine)(nil)
