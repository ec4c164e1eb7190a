// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package font

import "unicode/utf8"

// DecodeRune decodes the first UTF-8 sequence in b and returns the code
// point and the number of bytes consumed.
//
// An invalid leading byte, a truncated sequence or a bad continuation byte
// yields (utf8.RuneError, 1), so that decoding resynchronises on the next
// byte and every malformed byte renders as one replacement glyph. Empty
// input yields (0, 0).
func DecodeRune(b []byte) (rune, int) {
	if len(b) == 0 {
		return 0, 0
	}
	return utf8.DecodeRune(b)
}

// DecodeRuneInString is DecodeRune for a string.
func DecodeRuneInString(s string) (rune, int) {
	if len(s) == 0 {
		return 0, 0
	}
	return utf8.DecodeRuneInString(s)
}
