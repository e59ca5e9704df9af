package respond

import "io"

// ResumeFile is an opened resume ready to stream. The caller closes Content.
type ResumeFile struct {
	Name    string
	Size    int64
	Content io.ReadCloser
}
