package render

import (
	"fmt"
	"strings"
)

// Format is an image encoding supported by the renderer.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// Default chart dimensions in pixels.
const (
	DefaultWidth  = 800
	DefaultHeight = 500
)

// ParseFormat converts "png" or "svg" (case-insensitive) to a Format.
// An empty string selects PNG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return PNG, nil
	case "svg":
		return SVG, nil
	default:
		return "", fmt.Errorf("render: unknown format %q: want png|svg", s)
	}
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// Ext returns the file extension for f, without the dot.
func (f Format) Ext() string {
	if f == SVG {
		return "svg"
	}
	return "png"
}

// Options controls the output image.
type Options struct {
	Width  int
	Height int
	Format Format
}

// withDefaults fills zero fields with the package defaults.
func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Format == "" {
		o.Format = PNG
	}
	return o
}
