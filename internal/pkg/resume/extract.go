// Package resume turns an uploaded resume file into plain profile text.
package resume

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/futig/career-agent/internal/entity"
	"github.com/ledongthuc/pdf"
	"github.com/unidoc/unioffice/document"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeText = "text/plain"
)

var (
	pdfMagic = []byte("%PDF-")
	zipMagic = []byte("PK\x03\x04")
)

type kind int

const (
	kindUnknown kind = iota
	kindPDF
	kindDOCX
	kindText
)

// ExtractText returns the text of a PDF, DOCX or plain-text resume with
// whitespace collapsed. The file type is sniffed from the content first and
// from the name and MIME type second. A file with no text yields "".
func ExtractText(fileName, mimeType string, data []byte) (string, error) {
	var (
		text string
		err  error
	)

	switch detect(fileName, mimeType, data) {
	case kindPDF:
		text, err = extractPDF(data)
	case kindDOCX:
		text, err = extractDOCX(data)
	case kindText:
		text = string(data)
	default:
		return "", fmt.Errorf("%w: %s (%s)", entity.ErrUnsupportedDocument, fileName, mimeType)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", entity.ErrUnsupportedDocument, fileName, err)
	}

	return collapseWhitespace(text), nil
}

func detect(fileName, mimeType string, data []byte) kind {
	ext := strings.ToLower(filepath.Ext(fileName))
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))

	switch {
	case bytes.HasPrefix(data, pdfMagic):
		return kindPDF
	case bytes.HasPrefix(data, zipMagic) && (ext == ".docx" || mimeType == mimeDOCX):
		return kindDOCX
	case (ext == ".txt" || ext == ".md" || strings.HasPrefix(mimeType, mimeText)) && utf8.Valid(data):
		return kindText
	default:
		return kindUnknown
	}
}

func extractPDF(data []byte) (text string, err error) {
	// The pdf reader panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("pdf parse: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf plaintext: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("pdf read: %w", err)
	}
	return string(b), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := document.Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("docx reader: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	writeParagraphs(&sb, doc.Paragraphs())

	// Resume templates often lay sections out in tables.
	for _, table := range doc.Tables() {
		for _, row := range table.Rows() {
			for _, cell := range row.Cells() {
				writeParagraphs(&sb, cell.Paragraphs())
			}
		}
	}

	return sb.String(), nil
}

func writeParagraphs(sb *strings.Builder, paragraphs []document.Paragraph) {
	for _, p := range paragraphs {
		for _, run := range p.Runs() {
			sb.WriteString(run.Text())
		}
		sb.WriteByte('\n')
	}
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
