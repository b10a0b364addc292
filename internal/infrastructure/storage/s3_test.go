package storage

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey_FormatoYExtension(t *testing.T) {
	key := objectKey("foto de la finca.JPG")
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f-]{36}-\d+\.jpg$`), key,
		"la clave es uuid-epochms con la extensión original en minúsculas")

	sinExt := objectKey("archivo")
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f-]{36}-\d+$`), sinExt)

	assert.NotEqual(t, objectKey("a.png"), objectKey("a.png"), "cada subida genera una clave distinta")
}

func TestKeyFromURL(t *testing.T) {
	s := &Store{bucket: "agroportal", publicBaseURL: "https://cdn.example.com"}

	key, ok := s.keyFromURL("https://cdn.example.com/agroportal/abc-123.png")
	require.True(t, ok)
	assert.Equal(t, "abc-123.png", key)

	// URL ajena al bucket: se ignora.
	_, ok = s.keyFromURL("https://otro.example.com/otra-cosa/abc.png")
	assert.False(t, ok)

	// Sin clave tras el bucket tampoco vale.
	_, ok = s.keyFromURL("https://cdn.example.com/agroportal/")
	assert.False(t, ok)
}

func TestPublicURL_RedondeaConKeyFromURL(t *testing.T) {
	s := &Store{bucket: "agroportal", publicBaseURL: "https://cdn.example.com"}
	url := s.PublicURL("abc-123.png")
	assert.Equal(t, "https://cdn.example.com/agroportal/abc-123.png", url)

	key, ok := s.keyFromURL(url)
	require.True(t, ok)
	assert.Equal(t, "abc-123.png", key)
}
