// Package designsystem holds the shared design-tokens document. The page, the
// background and the API server all read the same file.
package designsystem

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

//go:embed design-system.json
var raw []byte

type Document struct {
	Colors Colors `json:"colors"`
	Sizes  Sizes  `json:"sizes"`
}

type Colors struct {
	Primary PrimaryColors `json:"primary"`
}

type PrimaryColors struct {
	BlueSky string `json:"blueSky"`
}

type Sizes struct {
	Canvas Size `json:"canvas"`
}

// Size is in CSS pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Load parses the embedded document.
func Load() (Document, error) {
	return Parse(raw)
}

// Raw returns the embedded document bytes.
func Raw() []byte {
	out := make([]byte, len(raw))
	copy(out, raw)
	return out
}

// Parse decodes and validates a design-system document.
func Parse(b []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return Document{}, fmt.Errorf("designsystem: unmarshal: %w", err)
	}
	if _, err := doc.SkyColor(); err != nil {
		return Document{}, err
	}
	if doc.Sizes.Canvas.Width <= 0 || doc.Sizes.Canvas.Height <= 0 {
		return Document{}, fmt.Errorf("designsystem: canvas size must be positive, got %dx%d",
			doc.Sizes.Canvas.Width, doc.Sizes.Canvas.Height)
	}
	return doc, nil
}

// SkyColor parses colors.primary.blueSky.
func (d Document) SkyColor() (color.Color, error) {
	c, err := colorful.Hex(d.Colors.Primary.BlueSky)
	if err != nil {
		return nil, fmt.Errorf("designsystem: parse blueSky %q: %w", d.Colors.Primary.BlueSky, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}
