package extract

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/edudigital/portal/internal/domain/assistant"
)

// Decoder turns one file format into plain text.
type Decoder interface {
	Decode(ctx context.Context, content []byte) (string, error)
}

// Extractor dispatches on the file extension. Unknown extensions are read as plain text.
type Extractor struct {
	decoders map[string]Decoder
	fallback Decoder
}

// NewExtractor wires the PDF, DOCX and plain text decoders.
func NewExtractor() *Extractor {
	return &Extractor{
		decoders: map[string]Decoder{
			".pdf":  PDFDecoder{},
			".docx": DocxDecoder{},
		},
		fallback: PlainTextDecoder{},
	}
}

// Extract implements assistant.Extractor.
func (e *Extractor) Extract(ctx context.Context, fileName string, content []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	decoder, ok := e.decoders[ext]
	if !ok {
		decoder = e.fallback
	}
	return decoder.Decode(ctx, content)
}

var _ assistant.Extractor = (*Extractor)(nil)
