package ingestion

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/interview-prep/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when the HTTP request fails
	ErrHTTPRequestFailed = fmt.Errorf("HTTP request failed")
	// ErrContentExtractionFailed is returned when content extraction fails
	ErrContentExtractionFailed = fmt.Errorf("content extraction failed")
	// ErrEmptyContent is returned when the page yields no usable text
	ErrEmptyContent = fmt.Errorf("no text content found at URL")
)

// FromURL fetches a job posting, extracts the description text, cleans it,
// and returns cleaned text with metadata. Platform detection picks selectors
// tuned to the hosting job board. If verbose is true, extraction details are
// logged along the way.
func FromURL(ctx context.Context, urlStr string, verbose bool) (string, *Metadata, error) {
	platform := fetch.DetectPlatform(urlStr)
	if verbose {
		log.Printf("[VERBOSE] URL: %s", urlStr)
		log.Printf("[VERBOSE] Detected platform: %s", platform)
	}

	result, err := fetch.JobPosting(ctx, urlStr, nil)
	if err != nil {
		if result == nil || result.HTML == "" {
			return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
		}
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}
	if verbose {
		log.Printf("[VERBOSE] Fetched HTML: %d bytes", len(result.HTML))
		log.Printf("[VERBOSE] Extracted text: %d chars", len(result.Text))
	}

	cleanedText := CleanText(result.Text)
	if cleanedText == "" {
		return "", nil, ErrEmptyContent
	}
	if verbose {
		log.Printf("[VERBOSE] Cleaned text: %d chars", len(cleanedText))
	}

	metadata := NewMetadata(cleanedText, urlStr)
	metadata.Platform = string(platform)

	return cleanedText, metadata, nil
}
