package framing

import (
	"encoding/hex"
	"fmt"

	"github.com/agilira/go-errors"
)

// Writes two lowercase hex digits per byte of src into dst, high nibble first.
// dst must hold twice len(src) bytes.
func Encode(dst, src []byte) (n int) {
	n = hex.Encode(dst, src)
	return
}

func DecodedLen(n int) (size int) {
	size = n / 2
	return
}

// Decodes one hex line into dst, which must hold DecodedLen(len(line)) bytes.
// Odd length is reported before any digit is examined. Both letter cases are
// accepted.
func Decode(dst, line []byte) (n int, err error) {
	if len(line)%2 != 0 {
		err = errors.New(ErrCodeBadLength, fmt.Sprintf("bad message length: %d hex digits", len(line)))
		return
	}

	n, decodeErr := hex.Decode(dst, line)
	if decodeErr != nil {
		bad := firstInvalidDigit(line)
		err = errors.Wrap(decodeErr, ErrCodeBadHexDigit, fmt.Sprintf("invalid hex digit: %c (0x%x)", bad, bad))
		n = 0
		return
	}
	return
}

func firstInvalidDigit(line []byte) (bad byte) {
	for _, c := range line {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
			continue
		}
		bad = c
		return
	}
	return
}
