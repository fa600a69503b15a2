package ics

import (
	"strings"
	"unicode/utf8"
)

// FoldWidth is the content-line limit, in octets, before a continuation is
// started.
const FoldWidth = 75

// Fold splits line into chunks of at most width octets joined by CRLF and one
// space. A multi-byte UTF-8 sequence is never split across chunks. The
// property name counts toward the first chunk.
func Fold(line string, width int) string {
	if width <= 0 || len(line) <= width {
		return line
	}
	var b strings.Builder
	n := 0
	for i := 0; i < len(line); {
		_, size := utf8.DecodeRuneInString(line[i:])
		if n > 0 && n+size > width {
			b.WriteString(crlf + " ")
			n = 0
		}
		b.WriteString(line[i : i+size])
		n += size
		i += size
	}
	return b.String()
}

// Unfold removes every CRLF + space continuation.
func Unfold(s string) string {
	return strings.ReplaceAll(s, crlf+" ", "")
}
