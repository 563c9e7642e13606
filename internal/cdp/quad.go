package cdp

import "github.com/go-rod/rod/lib/proto"

// Rect is an axis-aligned rectangle in CSS pixels.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FormatQuad collapses a box-model quad (four corner points, possibly
// transformed) into its axis-aligned bounding rectangle. The result does not
// depend on corner order. Quads with fewer than four points yield a zero Rect.
func FormatQuad(quad proto.DOMQuad) Rect {
	if len(quad) < 8 {
		return Rect{}
	}

	minX, maxX := quad[0], quad[0]
	minY, maxY := quad[1], quad[1]
	for i := 2; i+1 < len(quad); i += 2 {
		x, y := quad[i], quad[i+1]
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}

	return Rect{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}
