package toolfile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompactDefinition(t *testing.T) {
	in := `{"type":"function","function":{"name":"calc","parameters":{"type":"object","required":["a","b"],"properties":{"a":{"type":"number"}}}}}`

	got, err := CompactDefinition(in)
	require.NoError(t, err)

	want := strings.Join([]string{
		`{`,
		` "function": {`,
		`  "name": "calc",`,
		`  "parameters": {`,
		`   "properties": {`,
		`    "a": {`,
		`     "type": "number"`,
		`    }`,
		`   },`,
		`   "required": ["a","b"],`,
		`   "type": "object"`,
		`  }`,
		` },`,
		` "type": "function"`,
		`}`,
	}, "\n")
	assert.Equal(t, want, got)
	// Still the same data after the rewrite.
	assert.JSONEq(t, in, got)
}

func TestCompactDefinition_ArraysStayOnOneLine(t *testing.T) {
	in := `{"enum": [ {"x": 1}, [2, 3], "s" ], "k": "v"}`
	got, err := CompactDefinition(in)
	require.NoError(t, err)
	assert.Contains(t, got, `"enum": [{"x":1},[2,3],"s"]`)
	assert.JSONEq(t, in, got)
}

func TestCompactDefinition_TopLevelArray(t *testing.T) {
	got, err := CompactDefinition(`[1, 2, {"a": true}]`)
	require.NoError(t, err)
	assert.Equal(t, `[1,2,{"a":true}]`, got)
}

func TestCompactDefinition_PreservesNumberLexemes(t *testing.T) {
	got, err := CompactDefinition(`{"ratio": 1.50, "big": 9007199254740993}`)
	require.NoError(t, err)
	assert.Contains(t, got, `"ratio": 1.50`)
	assert.Contains(t, got, `"big": 9007199254740993`)
}

func TestCompactDefinition_NoHTMLEscaping(t *testing.T) {
	got, err := CompactDefinition(`{"desc":"a < b && c > d"}`)
	require.NoError(t, err)
	assert.Contains(t, got, `"a < b && c > d"`)
}

func TestCompactDefinition_Scalars(t *testing.T) {
	for _, in := range []string{`"hello"`, `42`, `true`, `null`} {
		got, err := CompactDefinition(in)
		require.NoError(t, err, "input %s", in)
		assert.Equal(t, in, got)
	}
}

func TestCompactDefinition_Invalid(t *testing.T) {
	for _, in := range []string{``, `not json`, `{"a":}`, `{} trailing`} {
		_, err := CompactDefinition(in)
		assert.ErrorIs(t, err, ErrInvalidDefinition, "input %q", in)
	}
}

func TestCompactDefinition_PlaceholderLikeContent(t *testing.T) {
	// Strings that look like the internal placeholders must survive untouched.
	in := `{"note":"__JSON_LIST_PLACEHOLDER_deadbeef__","list":[1]}`
	got, err := CompactDefinition(in)
	require.NoError(t, err)
	assert.JSONEq(t, in, got)
	assert.Contains(t, got, `"__JSON_LIST_PLACEHOLDER_deadbeef__"`)
}

func TestProcessDefinition_Modes(t *testing.T) {
	ugly := "{\n\t\"a\":   [1,\n2]}"

	compacted, err := processDefinition(ugly, DefinitionCompact)
	require.NoError(t, err)
	assert.JSONEq(t, ugly, compacted)
	assert.NotEqual(t, ugly, compacted)

	validated, err := processDefinition(ugly, DefinitionValidated)
	require.NoError(t, err)
	assert.Equal(t, ugly, validated)

	raw, err := processDefinition("not even json", DefinitionRaw)
	require.NoError(t, err)
	assert.Equal(t, "not even json", raw)

	_, err = processDefinition("not even json", DefinitionValidated)
	assert.ErrorIs(t, err, ErrInvalidDefinition)

	_, err = processDefinition("not even json", DefinitionCompact)
	assert.ErrorIs(t, err, ErrInvalidDefinition)
}

func TestParseDefinitionMode(t *testing.T) {
	m, err := ParseDefinitionMode("")
	require.NoError(t, err)
	assert.Equal(t, DefinitionCompact, m)

	m, err = ParseDefinitionMode("raw")
	require.NoError(t, err)
	assert.Equal(t, DefinitionRaw, m)

	m, err = ParseDefinitionMode("validated")
	require.NoError(t, err)
	assert.Equal(t, DefinitionValidated, m)

	_, err = ParseDefinitionMode("toon")
	assert.Error(t, err)

	assert.Equal(t, "compact", DefinitionCompact.String())
	assert.Equal(t, "raw", DefinitionRaw.String())
}
