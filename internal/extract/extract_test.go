package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromUploadPlainText(t *testing.T) {
	got, err := FromUpload([]byte("  Jane Doe\nSenior Engineer\n\n"), "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSenior Engineer", got)
}

func TestFromUploadHTML(t *testing.T) {
	html := `<html><head>
		<style>body { color: red; }</style>
		<script>alert("hi")</script>
	</head><body>
		<h1>Jane   Doe</h1>
		<p>Senior	Engineer</p>
		<noscript>enable js</noscript>
	</body></html>`

	got, err := FromUpload([]byte(html), "text/html")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSenior Engineer", got)
	assert.NotContains(t, got, "alert")
	assert.NotContains(t, got, "color: red")
	assert.NotContains(t, got, "enable js")
}

func TestFromUploadUnsupportedType(t *testing.T) {
	_, err := FromUpload([]byte("data"), "image/png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported content type")
}

func TestAllowedTypes(t *testing.T) {
	assert.True(t, AllowedTypes["application/pdf"])
	assert.True(t, AllowedTypes["text/plain"])
	assert.True(t, AllowedTypes["application/vnd.openxmlformats-officedocument.wordprocessingml.document"])
	assert.False(t, AllowedTypes["image/png"])
}
