package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFile_PlainText(t *testing.T) {
	text, err := FromFile("posting.txt", strings.NewReader("  Senior Go Engineer\n\n\nRemote  \n"))
	require.NoError(t, err)
	assert.Equal(t, "Senior Go Engineer\nRemote", text)
}

func TestFromFile_HTML(t *testing.T) {
	html := `<html><body><nav>Menu</nav><main class="job-description"><h1>Go Engineer</h1><p>Build services.</p></main></body></html>`

	text, err := FromFile("posting.html", strings.NewReader(html))
	require.NoError(t, err)
	assert.Contains(t, text, "Go Engineer")
	assert.Contains(t, text, "Build services.")
	assert.NotContains(t, text, "Menu")
}

func TestFromFile_UnsupportedType(t *testing.T) {
	_, err := FromFile("posting.xlsx", strings.NewReader("binary"))
	require.Error(t, err)

	var extractErr *Error
	require.ErrorAs(t, err, &extractErr)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestFromBase64Image_InvalidPayload(t *testing.T) {
	_, err := FromBase64Image("!!!not-base64!!!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid base64")
}

func TestFromBase64Image_DataURIPrefixTolerated(t *testing.T) {
	// Not a decodable image, but the data URI header must be stripped before
	// base64 decoding is attempted.
	_, err := FromBase64Image("data:image/png;base64,!!!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid base64")
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "a\nb", normalize(" a \n\n  \n b \n"))
	assert.Equal(t, "", normalize("\n\n"))
}
