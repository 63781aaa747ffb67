package toolfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DefinitionMode selects how loaded definition strings are treated before
// they are stored in the registry.
type DefinitionMode int

const (
	// DefinitionCompact re-serializes the definition into a token-lean form:
	// objects indented by a single space, arrays (with everything inside
	// them) collapsed onto one line. Implies validation.
	DefinitionCompact DefinitionMode = iota
	// DefinitionValidated parses the definition to confirm it decodes but
	// stores the original string unchanged.
	DefinitionValidated
	// DefinitionRaw stores the definition unparsed, byte for byte.
	DefinitionRaw
)

func (m DefinitionMode) String() string {
	switch m {
	case DefinitionCompact:
		return "compact"
	case DefinitionValidated:
		return "validated"
	case DefinitionRaw:
		return "raw"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseDefinitionMode converts a mode name ("compact", "validated", "raw").
func ParseDefinitionMode(s string) (DefinitionMode, error) {
	switch s {
	case "compact", "":
		return DefinitionCompact, nil
	case "validated":
		return DefinitionValidated, nil
	case "raw":
		return DefinitionRaw, nil
	default:
		return DefinitionCompact, fmt.Errorf("unknown definition mode %q", s)
	}
}

// processDefinition applies the configured mode to a freshly loaded
// definition string. The semantic schema of the data is never inspected;
// only syntactic validity is enforced, and only when the mode asks for it.
func processDefinition(raw string, mode DefinitionMode) (string, error) {
	switch mode {
	case DefinitionRaw:
		return raw, nil
	case DefinitionValidated:
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
		}
		return raw, nil
	default:
		return CompactDefinition(raw)
	}
}

// CompactDefinition re-serializes a JSON definition for a low token footprint
// when embedded in a model prompt: objects keep a readable one-space indent
// while arrays, including any objects nested inside them, collapse onto a
// single compact line. The result parses back to data deep-equal to the
// input. Returns an error wrapping ErrInvalidDefinition when the input does
// not parse.
func CompactDefinition(definition string) (string, error) {
	dec := json.NewDecoder(strings.NewReader(definition))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	if dec.More() {
		return "", fmt.Errorf("%w: trailing data after JSON value", ErrInvalidDefinition)
	}

	// Arrays are swapped for unique placeholder tokens so the indented
	// rendering below leaves them as plain string literals, which are then
	// spliced back as single-line JSON.
	placeholders := make(map[string]string)
	transformed, err := collapseArrays(v, definition, placeholders)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}

	pretty, err := encodeJSON(transformed, " ")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	for token, arr := range placeholders {
		pretty = strings.ReplaceAll(pretty, `"`+token+`"`, arr)
	}
	return pretty, nil
}

func collapseArrays(v any, source string, placeholders map[string]string) (any, error) {
	switch val := v.(type) {
	case []any:
		line, err := encodeJSON(val, "")
		if err != nil {
			return nil, err
		}
		token := uniqueToken(source, placeholders)
		placeholders[token] = line
		return token, nil
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			replaced, err := collapseArrays(item, source, placeholders)
			if err != nil {
				return nil, err
			}
			out[k] = replaced
		}
		return out, nil
	default:
		return v, nil
	}
}

// uniqueToken returns a placeholder guaranteed absent from the source text
// and from already issued tokens.
func uniqueToken(source string, placeholders map[string]string) string {
	for {
		token := "__JSON_LIST_PLACEHOLDER_" + strings.ReplaceAll(uuid.NewString(), "-", "") + "__"
		if _, taken := placeholders[token]; !taken && !strings.Contains(source, token) {
			return token
		}
	}
}

// encodeJSON marshals without HTML escaping; indent "" yields the compact
// single-line form.
func encodeJSON(v any, indent string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
