// Package extract pulls plain text out of uploaded documents, dispatched
// by MIME type. Supported: PDF, DOCX and plain text.
package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"docquiz/models"
)

const (
	MimePDF  = "application/pdf"
	MimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeText = "text/plain"
)

// Text extracts readable text from a file's bytes. The returned MIME type
// is the normalized type the content was handled as.
func Text(mimeType string, data []byte) (string, string, error) {
	// Browsers append charset parameters to text uploads.
	base := mimeType
	if i := strings.Index(base, ";"); i >= 0 {
		base = strings.TrimSpace(base[:i])
	}

	switch base {
	case MimePDF:
		text, err := pdfText(data)
		if err != nil {
			return "", "", fmt.Errorf("failed to read PDF: %w", err)
		}
		return text, MimePDF, nil
	case MimeDocx:
		text, err := docxText(data)
		if err != nil {
			return "", "", fmt.Errorf("failed to read DOCX: %w", err)
		}
		return text, MimeDocx, nil
	case MimeText:
		return string(data), MimeText, nil
	default:
		return "", "", fmt.Errorf("%w: %s", models.ErrUnsupportedFormat, mimeType)
	}
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// docxText reads word/document.xml from the docx archive and joins the
// text runs, inserting a newline at each paragraph end.
func docxText(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var doc io.ReadCloser
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			doc, err = f.Open()
			if err != nil {
				return "", err
			}
			break
		}
	}
	if doc == nil {
		return "", fmt.Errorf("word/document.xml missing from archive")
	}
	defer doc.Close()

	var sb strings.Builder
	decoder := xml.NewDecoder(doc)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				var run string
				if err := decoder.DecodeElement(&run, &t); err != nil {
					return "", err
				}
				sb.WriteString(run)
			}
		case xml.EndElement:
			if t.Name.Local == "p" {
				sb.WriteString("\n")
			}
		}
	}
	return sb.String(), nil
}
