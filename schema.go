package toolfile

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compileParams compiles the function.parameters object of a definition into
// a JSON Schema for argument checking. A definition that does not parse,
// carries no parameters, or carries ones that do not compile yields nil: such
// records dispatch unchecked.
func compileParams(name, definition string) *jsonschema.Schema {
	var doc struct {
		Function struct {
			Parameters json.RawMessage `json:"parameters"`
		} `json:"function"`
	}
	if err := json.Unmarshal([]byte(definition), &doc); err != nil {
		return nil
	}
	if len(doc.Function.Parameters) == 0 {
		return nil
	}

	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(doc.Function.Parameters))
	if err != nil {
		return nil
	}
	url := "toolfile:///" + name + "/parameters.json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, parsed); err != nil {
		return nil
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil
	}
	return sch
}

// checkArgs validates args against the record's compiled parameters schema.
// Records without one accept anything.
func checkArgs(rec Record, args map[string]any) error {
	if rec.params == nil {
		return nil
	}
	if args == nil {
		args = map[string]any{}
	}
	// Round-trip through JSON so interpreter-native values (Go ints, goja
	// exports) become the plain decoded shapes the validator understands.
	encoded, err := json.Marshal(args)
	if err != nil {
		return &ArgsRejectedError{Tool: rec.Name, Err: err}
	}
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(encoded)))
	if err != nil {
		return &ArgsRejectedError{Tool: rec.Name, Err: err}
	}
	if err := rec.params.Validate(doc); err != nil {
		return &ArgsRejectedError{Tool: rec.Name, Err: err}
	}
	return nil
}
