package ingestion

import (
	"bytes"
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/jonathan/ats-analyzer/internal/fetch"
)

// unsupportedExtensions are binary formats with no text decoder.
var unsupportedExtensions = map[string]bool{
	".doc": true, ".rtf": true, ".odt": true, ".pages": true,
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".zip": true,
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>|<w:br/>|<w:cr/>`)
	docxTab          = regexp.MustCompile(`<w:tab/>`)
	xmlTag           = regexp.MustCompile(`<[^>]*>`)
)

// FormatFor returns the document format implied by a file name's extension.
// Unknown extensions are treated as plain text.
func FormatFor(name string) (Kind, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".pdf":
		return KindPDF, nil
	case ".docx":
		return KindDOCX, nil
	case ".html", ".htm":
		return KindHTML, nil
	}
	if unsupportedExtensions[ext] {
		return "", &UnsupportedFormatError{Source: name, Format: strings.TrimPrefix(ext, ".")}
	}
	return KindText, nil
}

// ExtractText decodes raw document bytes of the given format into text.
// The result is not cleaned.
func ExtractText(name string, format Kind, data []byte) (string, error) {
	switch format {
	case KindPDF:
		return extractPDFText(data)
	case KindDOCX:
		return extractDocxText(data)
	case KindHTML:
		return fetch.ExtractMainText(string(data), fetch.JobPostingSelectors(), fetch.NoiseSelectors(fetch.PlatformUnknown)...)
	case KindText:
		if !utf8.Valid(data) {
			return "", &UnsupportedFormatError{Source: name, Format: string(format), Reason: "not valid UTF-8 text"}
		}
		return string(data), nil
	default:
		return "", &UnsupportedFormatError{Source: name, Format: string(format)}
	}
}

func extractPDFText(data []byte) (string, error) {
	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var textBuilder strings.Builder
	for i := 1; i <= pdfReader.NumPage(); i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}
	return textBuilder.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return docxXMLToText(doc.Editable().GetContent()), nil
}

// docxXMLToText converts WordprocessingML body XML to plain text with one line
// per paragraph.
func docxXMLToText(content string) string {
	content = docxParagraphEnd.ReplaceAllString(content, "\n")
	content = docxTab.ReplaceAllString(content, "\t")
	content = xmlTag.ReplaceAllString(content, "")
	return html.UnescapeString(content)
}
