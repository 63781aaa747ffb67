package toolfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveName(t *testing.T) {
	tests := []struct {
		name   string
		stem   string
		prefix string
		suffix string
		want   string
	}{
		{"suffix only", "calc_tool", "", "_tool", "calc"},
		{"prefix and suffix", "my_calc_tool", "my_", "_tool", "calc"},
		{"no affixes", "calc", "", "", "calc"},
		{"prefix only", "tool_calc", "tool_", "", "calc"},
		{"case preserved", "My_CALC_tool", "My_", "_tool", "CALC"},
		{"middle keeps separators", "a_b_c_tool", "", "_tool", "a_b_c"},
		{"suffix repeated in middle", "calc_tool_tool", "", "_tool", "calc_tool"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DeriveName(tt.stem, tt.prefix, tt.suffix)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveName_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		stem   string
		prefix string
		suffix string
	}{
		{"missing suffix", "calc", "", "_tool"},
		{"missing prefix", "calc_tool", "my_", "_tool"},
		{"empty middle", "_tool", "", "_tool"},
		{"exactly prefix plus suffix", "my__tool", "my_", "_tool"},
		{"overlapping affixes", "ab", "ab", "b"},
		{"empty stem", "", "", "_tool"},
		{"wrong case in suffix", "calc_TOOL", "", "_tool"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DeriveName(tt.stem, tt.prefix, tt.suffix)
			assert.ErrorIs(t, err, ErrInvalidFileName)
		})
	}
}

// Any stem assembled as prefix+main+suffix with non-empty main derives back to main.
func TestDeriveName_RoundTrip(t *testing.T) {
	mains := []string{"calc", "a", "x_y", "UPPER", "tool"}
	affixes := []struct{ prefix, suffix string }{
		{"", "_tool"},
		{"my_", "_tool"},
		{"", ""},
		{"p", "s"},
	}
	for _, main := range mains {
		for _, af := range affixes {
			got, err := DeriveName(af.prefix+main+af.suffix, af.prefix, af.suffix)
			require.NoError(t, err, "prefix=%q main=%q suffix=%q", af.prefix, main, af.suffix)
			assert.Equal(t, main, got)
		}
	}
}
