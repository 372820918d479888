package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const docxBody = "word/document.xml"

// ErrNotDocx is returned when the archive has no main document part.
var ErrNotDocx = errors.New("docx: word/document.xml not found")

// DocxDecoder extracts the raw text of a Word document: one line per paragraph.
type DocxDecoder struct{}

// Decode implements Decoder.
func (DocxDecoder) Decode(ctx context.Context, content []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("docx: open archive: %w", err)
	}
	for _, file := range archive.File {
		if file.Name != docxBody {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("docx: open body: %w", err)
		}
		defer rc.Close()
		return readDocumentXML(ctx, rc)
	}
	return "", ErrNotDocx
}

func readDocumentXML(ctx context.Context, r io.Reader) (string, error) {
	var (
		out    strings.Builder
		inText bool
	)
	dec := xml.NewDecoder(r)
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("docx: parse body: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				out.WriteByte('\t')
			case "br", "cr":
				out.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				out.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				out.Write(t)
			}
		}
	}
	return strings.TrimRight(out.String(), "\n"), nil
}
