package cli

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/x3launch/pkg/domain"
)

// MaxFieldSize bounds a single profile field in bytes.
const MaxFieldSize = 256

var (
	ErrFieldTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// SanitizeField cleans one profile value before it reaches the XML file and the logs.
// Oversized and non-UTF-8 input is rejected; control characters (ANSI escapes, NUL,
// tabs and line breaks included) are stripped since every field is a single line.
func SanitizeField(input string) (string, error) {
	if len(input) > MaxFieldSize {
		return "", fmt.Errorf("%w: %w: size=%d limit=%d", domain.ErrInvalidProfile, ErrFieldTooLarge, len(input), MaxFieldSize)
	}
	if !utf8.ValidString(input) {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidProfile, ErrInvalidUTF8)
	}

	// Fast path: if no control chars, return as is.
	if strings.IndexFunc(input, unicode.IsControl) < 0 {
		return input, nil
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if !unicode.IsControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}
