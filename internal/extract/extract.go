// Package extract turns uploaded candidate documents into plain text so the
// rest of the system only ever sees normalized content.
package extract

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"code.sajari.com/docconv"
	"github.com/PuerkitoBio/goquery"
	"github.com/gen2brain/go-fitz"
)

// MaxFileSize caps uploads at 5 MB.
const MaxFileSize = 5 << 20

// AllowedTypes are the upload content types accepted for candidate documents.
var AllowedTypes = map[string]bool{
	"application/pdf": true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"text/plain": true,
	"text/html":  true,
}

var whitespaceRun = regexp.MustCompile(`[ \t]+`)

// FromUpload extracts text from an uploaded document based on its content
// type. The returned string is trimmed; an empty result with a nil error
// means the document genuinely carried no extractable text.
func FromUpload(data []byte, contentType string) (string, error) {
	switch {
	case contentType == "text/plain":
		return strings.TrimSpace(string(data)), nil
	case contentType == "application/pdf":
		return fromPDF(data)
	case contentType == "text/html":
		return fromHTML(data)
	case strings.Contains(contentType, "word"):
		return fromWord(data, contentType)
	default:
		return "", fmt.Errorf("unsupported content type %q", contentType)
	}
}

func fromPDF(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	var buf bytes.Buffer
	for n := 0; n < doc.NumPage(); n++ {
		text, err := doc.Text(n)
		if err != nil {
			return "", fmt.Errorf("extract pdf page %d: %w", n+1, err)
		}
		if t := strings.TrimSpace(text); t != "" {
			buf.WriteString(t)
			buf.WriteString("\n\n")
		}
	}
	return strings.TrimSpace(buf.String()), nil
}

func fromWord(data []byte, contentType string) (string, error) {
	res, err := docconv.Convert(bytes.NewReader(data), contentType, true)
	if err != nil {
		return "", fmt.Errorf("convert word document: %w", err)
	}
	return strings.TrimSpace(res.Body), nil
}

func fromHTML(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	doc.Find("script, style, noscript").Remove()

	text := doc.Find("body").Text()
	if text == "" {
		text = doc.Text()
	}

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(whitespaceRun.ReplaceAllString(line, " "))
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n"), nil
}
