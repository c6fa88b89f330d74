package coverart

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strings"
	"time"

	"github.com/qeesung/image2ascii/convert"
)

const (
	DefaultWidth  = 25
	DefaultHeight = 12
)

// Converter turns cover images into ASCII art sized for the player view
type Converter struct {
	httpClient *http.Client
	converter  *convert.ImageConverter
	width      int
	height     int
}

// NewConverter creates a cover art converter producing width x height characters
func NewConverter(width, height int) *Converter {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Converter{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		converter: convert.NewImageConverter(),
		width:     width,
		height:    height,
	}
}

// ConvertFromURL downloads and converts an image URL to ASCII art. On failure
// it returns the placeholder together with the error.
func (c *Converter) ConvertFromURL(ctx context.Context, url string) (string, error) {
	if url == "" {
		return c.Placeholder(), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return c.Placeholder(), fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.Placeholder(), fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.Placeholder(), fmt.Errorf("status %d", resp.StatusCode)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return c.Placeholder(), fmt.Errorf("failed to decode: %w", err)
	}

	return c.ConvertImage(img), nil
}

// ConvertImage converts an already decoded image
func (c *Converter) ConvertImage(img image.Image) string {
	opts := convert.DefaultOptions
	opts.FixedWidth = c.width
	opts.FixedHeight = c.height
	opts.FitScreen = false
	opts.Colored = false // tview renders its own color tags

	return c.converter.Image2ASCIIString(img, &opts)
}

// Placeholder returns a framed box of the configured size shown when cover art
// is not available
func (c *Converter) Placeholder() string {
	inner := c.width - 2
	if inner < 1 {
		inner = 1
	}
	label := "♫ no cover ♫"
	rows := c.height - 2
	if rows < 1 {
		rows = 1
	}

	var b strings.Builder
	b.WriteString("[darkgray]┌" + strings.Repeat("─", inner) + "┐\n")
	for i := 0; i < rows; i++ {
		line := strings.Repeat(" ", inner)
		if i == rows/2 {
			line = center(label, inner)
		}
		b.WriteString("[darkgray]│" + line + "│\n")
	}
	b.WriteString("[darkgray]└" + strings.Repeat("─", inner) + "┘")
	return b.String()
}

func center(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return string([]rune(s)[:width])
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}
