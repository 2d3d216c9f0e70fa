// Package extract pulls plain text out of uploaded job-description documents
// (PDF, DOCX, images, HTML, plain text) so it can prefill the job-description
// input.
package extract

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"

	"github.com/jonathan/interview-prep/internal/fetch"
)

// Error represents a failed extraction.
type Error struct {
	Filename string
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extract error for %s: %s: %v", e.Filename, e.Message, e.Cause)
	}
	return fmt.Sprintf("extract error for %s: %s", e.Filename, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// FromFile extracts text from an uploaded document, picking the converter
// from the filename's extension.
func FromFile(filename string, file io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".md":
		content, err := io.ReadAll(file)
		if err != nil {
			return "", &Error{Filename: filename, Message: "failed to read file", Cause: err}
		}
		return normalize(string(content)), nil
	case ".html", ".htm":
		content, err := io.ReadAll(file)
		if err != nil {
			return "", &Error{Filename: filename, Message: "failed to read file", Cause: err}
		}
		text, err := fetch.ExtractMainText(string(content), fetch.JobPostingSelectors())
		if err != nil {
			return "", &Error{Filename: filename, Message: "failed to parse HTML", Cause: err}
		}
		return text, nil
	case ".pdf", ".docx", ".doc", ".rtf", ".odt", ".png", ".jpg", ".jpeg", ".tif", ".tiff":
		mimeType := mime.TypeByExtension(ext)
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}
		res, err := docconv.Convert(file, mimeType, true)
		if err != nil {
			return "", &Error{Filename: filename, Message: "failed to convert document", Cause: err}
		}
		return normalize(res.Body), nil
	default:
		return "", &Error{Filename: filename, Message: fmt.Sprintf("unsupported file type %q", ext)}
	}
}

// FromBase64Image decodes a base64-encoded image and runs text extraction
// (OCR via docconv) over it. Data URI prefixes ("data:image/png;base64,")
// are tolerated.
func FromBase64Image(imageBase64 string) (string, error) {
	mimeType := "image/png"
	if idx := strings.Index(imageBase64, ";base64,"); idx >= 0 {
		header := imageBase64[:idx]
		if cut := strings.TrimPrefix(header, "data:"); cut != header {
			mimeType = cut
		}
		imageBase64 = imageBase64[idx+len(";base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return "", &Error{Filename: "image", Message: "invalid base64 payload", Cause: err}
	}

	res, err := docconv.Convert(strings.NewReader(string(data)), mimeType, true)
	if err != nil {
		return "", &Error{Filename: "image", Message: "failed to extract text from image", Cause: err}
	}
	return normalize(res.Body), nil
}

// normalize trims blank lines and surrounding whitespace.
func normalize(text string) string {
	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
