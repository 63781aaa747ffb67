// Package def builds tool definition strings from Go types, for programmatic
// registration and for generating tool file scaffolds. The scan pipeline never
// needs it: file-based tools carry their definitions as literals.
package def

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/go-toolfile/toolfile"
)

// Build produces a function-calling definition for a tool whose arguments are
// described by the args struct. Field names come from json tags; jsonschema
// tags contribute descriptions, enums and bounds. A nil args yields a
// definition without a parameters schema.
//
// The result is compacted the same way the registry compacts definitions, so
// it can be pasted into a tool file or passed to Register as is.
func Build(name, description string, args any) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", errors.New("tool name must not be empty")
	}

	fn := map[string]any{"name": name}
	if description != "" {
		fn["description"] = description
	}
	if args != nil {
		fn["parameters"] = reflectSchema(args)
	}

	raw, err := json.Marshal(map[string]any{"type": "function", "function": fn})
	if err != nil {
		return "", err
	}
	return toolfile.CompactDefinition(string(raw))
}

// reflectSchema turns a struct value into a self-contained parameters schema:
// no $schema or $id noise, no $defs indirection, fields promoted to the top
// level the way function-calling APIs expect.
func reflectSchema(args any) *jsonschema.Schema {
	r := &jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
		ExpandedStruct: true,
	}
	schema := r.Reflect(args)
	schema.Version = ""
	return schema
}
