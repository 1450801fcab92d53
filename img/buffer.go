package img

import "github.com/DanielQ-51/cpu-pathtracer/types"

// Buffer stores linear RGB radiance values for a frame. Pixels live in a
// flat slice indexed row-major; row 0 is the bottom of the image, matching
// the bitmap writer's bottom-up row order.
type Buffer struct {
	width  int
	height int
	pixels []types.Vec3
}

func NewBuffer(width, height int) *Buffer {
	return &Buffer{
		width:  width,
		height: height,
		pixels: make([]types.Vec3, width*height),
	}
}

func (b *Buffer) Width() int {
	return b.width
}

func (b *Buffer) Height() int {
	return b.height
}

// Set pixel (x, y). Each render worker writes a disjoint pixel set, so
// concurrent Set calls need no locking.
func (b *Buffer) Set(x, y int, c types.Vec3) {
	b.pixels[y*b.width+x] = c
}

// Get pixel (x, y).
func (b *Buffer) At(x, y int) types.Vec3 {
	return b.pixels[y*b.width+x]
}
