package toolfile

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCallShapes(t *testing.T) {
	t.Parallel()

	want := toolCall{name: "calc", args: map[string]any{"a": float64(1), "b": float64(2)}}

	tests := []struct {
		give string
		call any
	}{
		{"mapping", map[string]any{"name": "calc", "arguments": map[string]any{"a": float64(1), "b": float64(2)}}},
		{"sequence", []any{map[string]any{"name": "calc", "arguments": map[string]any{"a": float64(1), "b": float64(2)}}}},
		{"json string", `{"name": "calc", "arguments": {"a": 1, "b": 2}}`},
		{"json sequence", `[{"name": "calc", "arguments": {"a": 1, "b": 2}}]`},
		{"raw bytes", []byte(`{"name": "calc", "arguments": {"a": 1, "b": 2}}`)},
		{"raw message", json.RawMessage(`{"name": "calc", "arguments": {"a": 1, "b": 2}}`)},
		{"function_name and parameters", `{"function_name": "calc", "parameters": {"a": 1, "b": 2}}`},
		{"doubly encoded arguments", `{"name": "calc", "arguments": "{\"a\": 1, \"b\": 2}"}`},
		{"doubly encoded parameters", `{"function_name": "calc", "parameters": "{\"a\": 1, \"b\": 2}"}`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.give, func(t *testing.T) {
			t.Parallel()
			got, err := decodeCall(tt.call)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestDecodeCallKeyPrecedence(t *testing.T) {
	t.Parallel()

	got, err := decodeCall(map[string]any{
		"name":          "first",
		"function_name": "second",
		"arguments":     map[string]any{"from": "arguments"},
		"parameters":    map[string]any{"from": "parameters"},
	})
	require.NoError(t, err)
	assert.Equal(t, "first", got.name)
	assert.Equal(t, map[string]any{"from": "arguments"}, got.args)
}

func TestDecodeCallDefaultArgs(t *testing.T) {
	t.Parallel()

	for _, call := range []any{
		map[string]any{"name": "calc"},
		map[string]any{"name": "calc", "arguments": nil},
		`{"name": "calc", "arguments": null}`,
		`{"name": "calc", "arguments": "null"}`,
	} {
		got, err := decodeCall(call)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{}, got.args)
	}
}

func TestDecodeCallMalformedPayload(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give string
		call any
	}{
		{"broken json", `{"name": `},
		{"scalar json", `42`},
		{"json string scalar", `"calc"`},
		{"multi element sequence", `[{"name": "a"}, {"name": "b"}]`},
		{"sequence of scalars", `[1]`},
		{"empty sequence", []any{}},
		{"unsupported type", 42},
		{"struct type", struct{ Name string }{"calc"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.give, func(t *testing.T) {
			t.Parallel()
			_, err := decodeCall(tt.call)
			assert.ErrorIs(t, err, ErrMalformedPayload)
		})
	}
}

func TestDecodeCallMissingName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give string
		call any
	}{
		{"no name keys", map[string]any{"arguments": map[string]any{}}},
		{"blank name", map[string]any{"name": "   "}},
		{"empty name", map[string]any{"name": ""}},
		{"non-string name", map[string]any{"name": 42}},
		{"null name no fallback key", `{"name": null}`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.give, func(t *testing.T) {
			t.Parallel()
			_, err := decodeCall(tt.call)
			assert.ErrorIs(t, err, ErrMissingToolName)
		})
	}
}

func TestDecodeCallNullNameFallsThrough(t *testing.T) {
	t.Parallel()

	got, err := decodeCall(`{"name": null, "function_name": "calc"}`)
	require.NoError(t, err)
	assert.Equal(t, "calc", got.name)
}

func TestDecodeCallMalformedArguments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give string
		call any
	}{
		{"arguments not decodable", `{"name": "calc", "arguments": "not json"}`},
		{"arguments decode to array", `{"name": "calc", "arguments": "[1, 2]"}`},
		{"arguments are a number", `{"name": "calc", "arguments": 7}`},
		{"arguments are an array", `{"name": "calc", "arguments": [1, 2]}`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.give, func(t *testing.T) {
			t.Parallel()
			_, err := decodeCall(tt.call)
			assert.ErrorIs(t, err, ErrMalformedArguments)
		})
	}
}

func TestInvoke(t *testing.T) {
	t.Parallel()

	rec := Record{
		Name: "double",
		Runner: func(args map[string]any) (any, error) {
			return args["x"].(float64) * 2, nil
		},
	}

	got, err := invoke(rec, map[string]any{"x": float64(3)})
	require.NoError(t, err)
	assert.Equal(t, float64(6), got)
}

func TestInvokeRunnerError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	rec := Record{
		Name:   "faulty",
		Runner: func(args map[string]any) (any, error) { return nil, boom },
	}

	got, err := invoke(rec, nil)
	assert.Nil(t, got)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvocation)
	assert.ErrorIs(t, err, boom)
	assert.EqualError(t, err, "tool `faulty` execution failed: boom")
}

func TestInvokeRunnerPanic(t *testing.T) {
	t.Parallel()

	rec := Record{
		Name:   "wild",
		Runner: func(args map[string]any) (any, error) { panic("runaway") },
	}

	got, err := invoke(rec, nil)
	assert.Nil(t, got)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvocation)

	var invErr *InvocationError
	require.ErrorAs(t, err, &invErr)
	assert.Equal(t, "wild", invErr.Tool)
	assert.Contains(t, err.Error(), "panic: runaway")
}
