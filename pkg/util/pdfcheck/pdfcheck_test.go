package pdfcheck

import (
	"errors"
	"fmt"
	"testing"

	"ecotech_server/internal/testutil"
)

func TestValidate(t *testing.T) {
	valid := testutil.MinimalPDF(2)
	cases := []struct {
		name     string
		filename string
		data     []byte
		want     error
		msg      string
	}{
		{"valid", "resume.pdf", valid, nil, ""},
		{"upper-case extension", "RESUME.PDF", valid, nil, ""},
		{"wrong extension", "resume.docx", valid, ErrExtension, MsgExtension},
		{"no extension", "resume", valid, ErrExtension, MsgExtension},
		{"text pretending to be pdf", "resume.pdf", []byte("hello, I am a resume"), ErrContentType, MsgContentType},
		{"pdf header only", "resume.pdf", []byte("%PDF-1.4\ngarbage"), ErrUnreadable, MsgUnreadable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Validate(tc.filename, tc.data)
			if !errors.Is(got, tc.want) || (got == nil) != (tc.want == nil) {
				t.Fatalf("Validate = %v, want %v", got, tc.want)
			}
			if got != nil && Message(got) != tc.msg {
				t.Fatalf("Message = %q, want %q", Message(got), tc.msg)
			}
		})
	}
}

func TestMessageWrapped(t *testing.T) {
	err := fmt.Errorf("resume upload: %w", ErrExtension)
	if got := Message(err); got != MsgExtension {
		t.Fatalf("Message = %q", got)
	}
}
