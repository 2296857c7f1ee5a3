package rtbridge

import (
	"strconv"
	"strings"

	"github.com/agilira/go-errors"
)

// Parses a single base-10 floating point literal. Surrounding blanks are
// ignored. Hexadecimal literals, trailing characters and values outside the
// float32 range (too large, or non-zero but rounding to zero) are refused. NaN and infinities parse successfully here;
// Set decides whether to accept them.
func ParseScalar(line []byte) (value float32, err error) {
	text := strings.TrimSpace(string(line))
	if text == "" {
		err = errors.New(ErrCodeBadFloat, "could not parse as a float: empty line")
		return
	}

	digits := strings.TrimLeft(text, "+-")
	if len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		err = errors.New(ErrCodeBadFloat, "could not parse as a float: hexadecimal literal "+strconv.Quote(text))
		return
	}

	parsed, parseErr := strconv.ParseFloat(text, 32)
	if parseErr != nil {
		err = errors.Wrap(parseErr, ErrCodeBadFloat, "could not parse as a float: "+strconv.Quote(text))
		return
	}

	if parsed == 0 && nonZeroMantissa(digits) {
		err = errors.New(ErrCodeBadFloat, "could not parse as a float: value out of range "+strconv.Quote(text))
		return
	}

	value = float32(parsed)
	return
}

// Reports whether any significant digit before the exponent is non-zero
func nonZeroMantissa(literal string) (nonZero bool) {
	for _, c := range literal {
		if c == 'e' || c == 'E' {
			return
		}
		if c >= '1' && c <= '9' {
			nonZero = true
			return
		}
	}
	return
}
