package framing

import (
	"bytes"
	"encoding/hex"
	"jacl/internal/global"
	"strings"
	"testing"

	"github.com/agilira/go-errors"
)

func errorCode(err error) (code string) {
	if coder, ok := err.(errors.ErrorCoder); ok {
		code = string(coder.ErrorCode())
	}
	return
}

func TestHex_RoundTrip(t *testing.T) {
	for size := 0; size <= 512; size++ {
		src := make([]byte, size)
		for i := range src {
			src[i] = byte(i*7 + size)
		}

		encoded := make([]byte, 2*size)
		if n := Encode(encoded, src); n != len(encoded) {
			t.Fatalf("size %d: encoded %d bytes, want %d", size, n, len(encoded))
		}
		if strings.ToLower(string(encoded)) != string(encoded) {
			t.Fatalf("size %d: encoding is not lowercase", size)
		}

		decoded := make([]byte, DecodedLen(len(encoded)))
		n, err := Decode(decoded, encoded)
		if err != nil {
			t.Fatalf("size %d: unexpected error %v", size, err)
		}
		if !bytes.Equal(decoded[:n], src) {
			t.Fatalf("size %d: round trip mismatch", size)
		}
	}
}

// Same property through the path the MIDI reader uses: LineWriter out,
// Framer and Decode back in
func TestHex_RoundTripThroughLineWriter(t *testing.T) {
	var stream bytes.Buffer
	writer := NewLineWriter([]string{global.NSTest}, &stream)

	var sent [][]byte
	for size := 1; size <= 512; size++ {
		src := make([]byte, size)
		for i := range src {
			src[i] = byte(i*13 + size)
		}
		if !writer.WriteHexLine(src) {
			t.Fatalf("size %d: write failed", size)
		}
		sent = append(sent, src)
	}

	framer := NewFramer([]string{global.NSTest}, global.HexLineMax+1, true)
	var received int
	framer.Feed(stream.Bytes(), func(line []byte) {
		if received >= len(sent) {
			t.Fatalf("more lines than sent")
		}
		want := sent[received]
		if string(line) != hex.EncodeToString(want) {
			t.Fatalf("size %d: line %q does not match reference encoding", len(want), line)
		}

		decoded := make([]byte, DecodedLen(len(line)))
		n, err := Decode(decoded, line)
		if err != nil {
			t.Fatalf("size %d: unexpected error %v", len(want), err)
		}
		if !bytes.Equal(decoded[:n], want) {
			t.Fatalf("size %d: round trip mismatch", len(want))
		}
		received++
	})
	if received != len(sent) {
		t.Fatalf("expected %d lines, got %d", len(sent), received)
	}
}

func TestHex_Decode(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		expect     []byte
		expectCode string
		expectMsg  string
	}{
		{"note on", "90407f", []byte{0x90, 0x40, 0x7f}, "", ""},
		{"uppercase", "90407F", []byte{0x90, 0x40, 0x7f}, "", ""},
		{"mixed case", "aBcD", []byte{0xab, 0xcd}, "", ""},
		{"empty line", "", []byte{}, "", ""},
		{"odd length", "abc", nil, ErrCodeBadLength, "bad message length"},
		{"odd length checked before digits", "zzz", nil, ErrCodeBadLength, "bad message length"},
		{"invalid digit", "9g", nil, ErrCodeBadHexDigit, "invalid hex digit: g (0x67)"},
		{"invalid first digit", "zz00", nil, ErrCodeBadHexDigit, "invalid hex digit: z (0x7a)"},
		{"carriage return", "90\r\n", nil, ErrCodeBadHexDigit, "(0xd)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]byte, DecodedLen(len(tt.line)))
			n, err := Decode(dst, []byte(tt.line))

			if tt.expectCode != "" {
				if err == nil {
					t.Fatalf("expected error %s, got nil", tt.expectCode)
				}
				if got := errorCode(err); got != tt.expectCode {
					t.Fatalf("expected code %s, got %q", tt.expectCode, got)
				}
				if !strings.Contains(err.Error(), tt.expectMsg) {
					t.Fatalf("expected message containing %q, got %q", tt.expectMsg, err.Error())
				}
				if n != 0 {
					t.Fatalf("expected zero decoded bytes on error, got %d", n)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(dst[:n], tt.expect) {
				t.Fatalf("expected %x, got %x", tt.expect, dst[:n])
			}
		})
	}
}
