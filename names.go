package toolfile

import (
	"fmt"
	"strings"
)

// DeriveName derives the registry name for a tool from its filename stem by
// stripping a literal prefix and suffix from the two ends. The residual middle
// is returned verbatim (case-sensitive, no normalization) and must be
// non-empty. Returns an error wrapping ErrInvalidFileName when the stem does
// not match the convention. Pure; the scanner accepts exactly the stems this
// function accepts.
func DeriveName(stem, prefix, suffix string) (string, error) {
	if !strings.HasPrefix(stem, prefix) || !strings.HasSuffix(stem, suffix) {
		return "", fmt.Errorf("%w: %q does not match %s*%s", ErrInvalidFileName, stem, prefix, suffix)
	}
	// Length check before slicing: prefix and suffix may overlap in short stems.
	if len(stem) <= len(prefix)+len(suffix) {
		return "", fmt.Errorf("%w: %q has nothing between prefix and suffix", ErrInvalidFileName, stem)
	}
	return stem[len(prefix) : len(stem)-len(suffix)], nil
}
