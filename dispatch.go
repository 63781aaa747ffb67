package toolfile

import (
	"encoding/json"
	"fmt"
	"strings"
)

// toolCall is the canonical decoded form every accepted payload shape reduces
// to before lookup and invocation.
type toolCall struct {
	name string
	args map[string]any
}

// decodeCall reduces a caller-supplied payload to a toolCall. Accepted shapes:
// a mapping, a single-element sequence holding one mapping, or a JSON string
// (or raw bytes) encoding either.
func decodeCall(call any) (toolCall, error) {
	m, err := callMapping(call)
	if err != nil {
		return toolCall{}, err
	}
	name, err := callName(m)
	if err != nil {
		return toolCall{}, err
	}
	args, err := callArgs(m, name)
	if err != nil {
		return toolCall{}, err
	}
	return toolCall{name: name, args: args}, nil
}

func callMapping(call any) (map[string]any, error) {
	switch v := call.(type) {
	case map[string]any:
		return v, nil
	case []any:
		return unwrapSequence(v)
	case string:
		return parseMapping([]byte(v))
	case []byte:
		return parseMapping(v)
	case json.RawMessage:
		return parseMapping(v)
	default:
		return nil, fmt.Errorf("%w: unsupported payload type %T", ErrMalformedPayload, call)
	}
}

func parseMapping(raw []byte) (map[string]any, error) {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	switch v := payload.(type) {
	case map[string]any:
		return v, nil
	case []any:
		return unwrapSequence(v)
	default:
		return nil, fmt.Errorf("%w: expected an object, got %T", ErrMalformedPayload, payload)
	}
}

func unwrapSequence(seq []any) (map[string]any, error) {
	if len(seq) != 1 {
		return nil, fmt.Errorf("%w: sequence payloads must hold exactly one object", ErrMalformedPayload)
	}
	m, ok := seq[0].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: sequence payloads must hold exactly one object", ErrMalformedPayload)
	}
	return m, nil
}

// callName pulls the tool name from "name", falling back to "function_name".
// A missing, non-string or blank name counts as missing.
func callName(m map[string]any) (string, error) {
	v := m["name"]
	if v == nil {
		v = m["function_name"]
	}
	name, ok := v.(string)
	if !ok || strings.TrimSpace(name) == "" {
		return "", ErrMissingToolName
	}
	return name, nil
}

// callArgs pulls the argument mapping from "arguments", falling back to
// "parameters". Absent means empty. A string value is itself JSON holding the
// mapping: LLMs double-encode arguments routinely.
func callArgs(m map[string]any, name string) (map[string]any, error) {
	v := m["arguments"]
	if v == nil {
		v = m["parameters"]
	}
	switch args := v.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return args, nil
	case string:
		var decoded map[string]any
		if err := json.Unmarshal([]byte(args), &decoded); err != nil {
			return nil, fmt.Errorf("%w: arguments for `%s` are not a JSON object: %v", ErrMalformedArguments, name, err)
		}
		if decoded == nil {
			decoded = map[string]any{}
		}
		return decoded, nil
	default:
		return nil, fmt.Errorf("%w: arguments for `%s` must be an object or a JSON-encoded object", ErrMalformedArguments, name)
	}
}

// invoke runs the record's runner, converting runner errors and panics into
// *InvocationError. Interpreted tool code can panic; the dispatcher is the
// recovery boundary.
func invoke(rec Record, args map[string]any) (result any, err error) {
	defer func() {
		if p := recover(); p != nil {
			result = nil
			err = &InvocationError{Tool: rec.Name, Err: &panicError{p: p}}
		}
	}()
	result, err = rec.Runner(args)
	if err != nil {
		return nil, &InvocationError{Tool: rec.Name, Err: err}
	}
	return result, nil
}
