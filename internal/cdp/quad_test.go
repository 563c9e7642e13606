package cdp

import (
	"testing"

	"github.com/go-rod/rod/lib/proto"
	"github.com/stretchr/testify/assert"
)

func TestFormatQuad_AxisAligned(t *testing.T) {
	quad := proto.DOMQuad{10, 20, 110, 20, 110, 70, 10, 70}

	rect := FormatQuad(quad)

	assert.Equal(t, Rect{X: 10, Y: 20, Width: 100, Height: 50}, rect)
}

func TestFormatQuad_OrderIndependent(t *testing.T) {
	corners := [][2]float64{{10, 20}, {110, 20}, {110, 70}, {10, 70}}
	permutations := [][]int{
		{0, 1, 2, 3}, {3, 2, 1, 0}, {1, 3, 0, 2}, {2, 0, 3, 1},
	}

	want := FormatQuad(proto.DOMQuad{10, 20, 110, 20, 110, 70, 10, 70})
	for _, perm := range permutations {
		var quad proto.DOMQuad
		for _, i := range perm {
			quad = append(quad, corners[i][0], corners[i][1])
		}
		assert.Equal(t, want, FormatQuad(quad), "permutation %v", perm)
	}
}

func TestFormatQuad_Idempotent(t *testing.T) {
	quad := proto.DOMQuad{5, 5, 15, 8, 12, 25, 3, 22}

	first := FormatQuad(quad)
	second := FormatQuad(quad)

	assert.Equal(t, first, second)
}

func TestFormatQuad_TransformedQuad(t *testing.T) {
	// A rotated rectangle still yields its axis-aligned bounds.
	quad := proto.DOMQuad{50, 0, 100, 50, 50, 100, 0, 50}

	rect := FormatQuad(quad)

	assert.Equal(t, Rect{X: 0, Y: 0, Width: 100, Height: 100}, rect)
}

func TestFormatQuad_TooShort(t *testing.T) {
	assert.Equal(t, Rect{}, FormatQuad(proto.DOMQuad{1, 2, 3}))
	assert.Equal(t, Rect{}, FormatQuad(nil))
}
