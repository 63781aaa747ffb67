package toolfile

import (
	"fmt"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// Required symbols in .go tool files.
const (
	goDefinitionSymbol = "ToolDefinition"
	goRunnerSymbol     = "ToolRun"
)

// goRunnerFunc is the signature tool files must bind to ToolRun.
type goRunnerFunc = func(args map[string]any) (any, error)

// GoEngine loads .go tool files by interpreting them with yaegi. Each file is
// evaluated in its own interpreter with the standard library available, so
// package-level state never leaks between files. Tool files may import
// standard library packages only.
//
// A tool file declares an ordinary package and binds two symbols:
//
//	package tools
//
//	const ToolDefinition = `{"type":"function","function":{"name":"calc", ... }}`
//
//	func ToolRun(args map[string]any) (any, error) { ... }
type GoEngine struct{}

// NewGoEngine returns the engine for .go tool files. It is the default
// engine of a Toolset.
func NewGoEngine() *GoEngine { return &GoEngine{} }

// Name implements Engine.
func (e *GoEngine) Name() string { return "go" }

// Ext implements Engine.
func (e *GoEngine) Ext() string { return ".go" }

// Load implements Engine.
func (e *GoEngine) Load(path string) (string, Runner, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", nil, &LoadError{Path: path, Err: err}
	}
	pkg, err := packageName(path, src)
	if err != nil {
		return "", nil, &LoadError{Path: path, Err: err}
	}

	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return "", nil, &LoadError{Path: path, Err: err}
	}
	if err := evalSource(i, string(src)); err != nil {
		return "", nil, &LoadError{Path: path, Err: err}
	}

	defVal, err := i.Eval(pkg + "." + goDefinitionSymbol)
	if err != nil {
		return "", nil, &MissingSymbolError{Path: path, Symbol: goDefinitionSymbol}
	}
	definition, ok := defVal.Interface().(string)
	if !ok {
		return "", nil, &MissingSymbolError{Path: path, Symbol: goDefinitionSymbol, Detail: "must be bound to a string"}
	}

	runVal, err := i.Eval(pkg + "." + goRunnerSymbol)
	if err != nil {
		return "", nil, &MissingSymbolError{Path: path, Symbol: goRunnerSymbol}
	}
	fn, ok := runVal.Interface().(goRunnerFunc)
	if !ok {
		return "", nil, &MissingSymbolError{Path: path, Symbol: goRunnerSymbol, Detail: "must be a func(map[string]any) (any, error)"}
	}
	return definition, Runner(fn), nil
}

// evalSource evaluates a full tool file. yaegi reports most problems as
// errors but panics on some malformed inputs; both surface as an error here.
func evalSource(i *interp.Interpreter, src string) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("interpreter panic: %v", p)
		}
	}()
	_, err = i.Eval(src)
	return err
}

// packageName resolves the package clause so exported symbols can be
// addressed as "<pkg>.<symbol>" after evaluation.
func packageName(path string, src []byte) (string, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filepath.Base(path), src, parser.PackageClauseOnly)
	if err != nil {
		return "", err
	}
	return f.Name.Name, nil
}

var _ Engine = (*GoEngine)(nil)
