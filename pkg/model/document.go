package model

import "strings"

type DocumentType string

const (
	DocumentText DocumentType = "text"
	DocumentFile DocumentType = "file"
)

// DocumentContent is the normalized shape for candidate-supplied documents
// (resume, cover letter). Uploaded files are resolved to extracted text once
// at the upload boundary, so everything downstream consumes the same shape.
type DocumentContent struct {
	Type     DocumentType      `json:"type"`
	Content  string            `json:"content"`
	Metadata *DocumentMetadata `json:"metadata,omitempty"`
}

type DocumentMetadata struct {
	FileName string `json:"file_name,omitempty"`
	FileSize int64  `json:"file_size,omitempty"`
	FileType string `json:"file_type,omitempty"`
}

// Text returns the trimmed text content, or "" for a nil or empty document.
func (d *DocumentContent) Text() string {
	if d == nil {
		return ""
	}
	return strings.TrimSpace(d.Content)
}

// PlainText wraps raw text in a DocumentContent.
func PlainText(s string) *DocumentContent {
	return &DocumentContent{Type: DocumentText, Content: s}
}
