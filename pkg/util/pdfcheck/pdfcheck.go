// Package pdfcheck decides whether an uploaded resume is really a PDF.
package pdfcheck

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

// Reasons returned by Validate.
var (
	ErrExtension   = errors.New("pdfcheck: extension is not .pdf")
	ErrContentType = errors.New("pdfcheck: content is not application/pdf")
	ErrUnreadable  = errors.New("pdfcheck: document has no readable pages")
)

// Texts shown to the applicant next to the resume field.
const (
	MsgExtension   = "Only PDF files are allowed"
	MsgContentType = "The uploaded file is not a valid PDF"
	MsgUnreadable  = "The uploaded PDF could not be read"
)

// Message maps an error from Validate to the text shown on the form.
// Anything else falls back to MsgContentType.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrExtension):
		return MsgExtension
	case errors.Is(err, ErrUnreadable):
		return MsgUnreadable
	default:
		return MsgContentType
	}
}

// HasPDFExtension reports whether filename ends in .pdf, case-insensitively.
func HasPDFExtension(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".pdf")
}

// Validate checks the extension, sniffs the first 512 bytes, and finally parses the document.
func Validate(filename string, data []byte) error {
	if !HasPDFExtension(filename) {
		return ErrExtension
	}
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	if http.DetectContentType(head) != "application/pdf" {
		return ErrContentType
	}
	pages, err := countPages(data)
	if err != nil || pages < 1 {
		return ErrUnreadable
	}
	return nil
}

// countPages parses data with ledongthuc/pdf. The parser panics on some malformed input.
func countPages(data []byte) (n int, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pdf parse panic: %v", rec)
		}
	}()
	doc, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("new pdf reader: %w", err)
	}
	return doc.NumPage(), nil
}
