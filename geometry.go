package syphon

// Rect is a region in a frame's coordinate space, origin at the bottom left
// as in the framework's own geometry.
type Rect struct {
	X, Y, W, H float64
}

// Size is a width and height in pixels.
type Size struct {
	W, H float64
}

// FullRect is the region covering a whole texture of the given size.
func FullRect(size Size) Rect {
	return Rect{W: size.W, H: size.H}
}
