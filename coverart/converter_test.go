package coverart

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertFromURLEmptyReturnsPlaceholder(t *testing.T) {
	c := NewConverter(20, 8)

	ascii, err := c.ConvertFromURL(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, c.Placeholder(), ascii)
}

func TestPlaceholderSize(t *testing.T) {
	c := NewConverter(20, 8)

	lines := strings.Split(c.Placeholder(), "\n")
	assert.Len(t, lines, 8)
	assert.Contains(t, c.Placeholder(), "no cover")
}

func TestConvertFromURLDecodesPNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 16), B: 128, A: 255})
		}
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_ = png.Encode(w, img)
	}))
	defer srv.Close()

	c := NewConverter(10, 5)
	ascii, err := c.ConvertFromURL(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.NotEmpty(t, ascii)
	assert.NotEqual(t, c.Placeholder(), ascii)
}

func TestConvertFromURLErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewConverter(10, 5)
	ascii, err := c.ConvertFromURL(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, c.Placeholder(), ascii)
}

func TestConvertFromURLBadImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not an image"))
	}))
	defer srv.Close()

	c := NewConverter(10, 5)
	ascii, err := c.ConvertFromURL(context.Background(), srv.URL)
	require.ErrorContains(t, err, "decode")
	assert.Equal(t, c.Placeholder(), ascii)
}
