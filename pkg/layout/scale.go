package layout

import "math"

// Scale holds multiplicative factors that convert backend-space coordinates
// to original-page-space coordinates. Computed once per page and applied
// uniformly to every detection on that page.
type Scale struct {
	X float64
	Y float64
}

// Identity is the scale used when the backend processed the page at its
// original dimensions.
var Identity = Scale{X: 1.0, Y: 1.0}

// ResolveScale computes the scale factors mapping backend-space coordinates
// back to the original page. Unknown, zero, or unchanged backend dimensions
// resolve to the identity scale.
func ResolveScale(origWidth, origHeight, backendWidth, backendHeight int) Scale {
	if backendWidth <= 0 || backendHeight <= 0 {
		return Identity
	}
	if backendWidth == origWidth && backendHeight == origHeight {
		return Identity
	}
	return Scale{
		X: float64(origWidth) / float64(backendWidth),
		Y: float64(origHeight) / float64(backendHeight),
	}
}

// Box applies the scale to a backend-space rectangle and rounds to the
// nearest integer pixel. Rounding happens after multiplication so repeated
// scaling does not accumulate truncation bias.
func (s Scale) Box(x1, y1, x2, y2 float64) Box {
	return Box{
		X1: int(math.Round(x1 * s.X)),
		Y1: int(math.Round(y1 * s.Y)),
		X2: int(math.Round(x2 * s.X)),
		Y2: int(math.Round(y2 * s.Y)),
	}
}

// Clamp confines the box to the page rectangle [0,width] x [0,height].
func (b Box) Clamp(width, height int) Box {
	return Box{
		X1: clamp(b.X1, 0, width),
		Y1: clamp(b.Y1, 0, height),
		X2: clamp(b.X2, 0, width),
		Y2: clamp(b.Y2, 0, height),
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
