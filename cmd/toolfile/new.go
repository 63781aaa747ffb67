package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const goScaffold = `package tools

import "errors"

const ToolDefinition = ` + "`" + `{
	"type": "function",
	"function": {
		"name": "{{.Name}}",
		"description": "{{.Description}}",
		"parameters": {
			"type": "object",
			"properties": {},
			"required": []
		}
	}
}` + "`" + `

func ToolRun(args map[string]any) (any, error) {
	return nil, errors.New("{{.Name}} is not implemented")
}
`

const jsScaffold = `const TOOL_DEFINITION = JSON.stringify({
	type: "function",
	function: {
		name: "{{.Name}}",
		description: "{{.Description}}",
		parameters: {type: "object", properties: {}, required: []}
	}
});

function tool_run(args) {
	throw new Error("{{.Name}} is not implemented");
}
`

type scaffoldData struct {
	Name        string
	Description string
}

// newNewCmd creates the new command.
func (a *App) newNewCmd() *cobra.Command {
	var (
		description string
		force       bool
	)

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Scaffold a tool file",
		Long: `Write a skeleton tool file for the configured engine into the tool
directory, named so the next scan picks it up. The directory is not scanned:
existing files are never executed by this command.

Examples:
  # ./tools/calc_tool.go
  toolfile new calc -d ./tools --description "Add two numbers"

  # ./tools/fetch_tool.js
  toolfile new fetch -d ./tools --engine js`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, argv []string) error {
			return a.scaffold(argv[0], description, force)
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Description embedded in the definition")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func (a *App) scaffold(name, description string, force bool) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("tool name must not be empty")
	}
	if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return fmt.Errorf("tool name %q must not contain path separators", name)
	}

	var text string
	switch a.cfg.Engine {
	case "go":
		text = goScaffold
	case "js":
		text = jsScaffold
	default:
		return fmt.Errorf(`unknown engine %q (use "go" or "js")`, a.cfg.Engine)
	}

	engine, err := engineFor(a.cfg.Engine)
	if err != nil {
		return err
	}
	filename := a.cfg.Prefix + name + a.cfg.Suffix + engine.Ext()
	path := filepath.Join(a.cfg.Dir, filename)

	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	tmpl, err := template.New("scaffold").Parse(text)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, scaffoldData{Name: name, Description: description}); err != nil {
		return err
	}

	if err := os.MkdirAll(a.cfg.Dir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return err
	}

	a.logger.Debug("scaffold written",
		zap.String("path", path),
		zap.String("engine", a.cfg.Engine))
	fmt.Fprintf(a.stdout, "Created %s\n", path)
	return nil
}
