package extract

import (
	"bytes"
	"context"
	"strings"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// PlainTextDecoder reads UTF-8 text. Input that is not valid UTF-8 is
// treated as Latin-1, which covers legacy Spanish text files.
type PlainTextDecoder struct{}

// Decode implements Decoder.
func (PlainTextDecoder) Decode(_ context.Context, content []byte) (string, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	if utf8.Valid(content) {
		return string(content), nil
	}
	var b strings.Builder
	b.Grow(len(content))
	for _, c := range content {
		b.WriteRune(rune(c))
	}
	return b.String(), nil
}
