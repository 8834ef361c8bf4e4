package preview

import (
	"image"
	"image/color"
	"math"
)

// screenVertex is a projected corner: pixel position and camera depth
type screenVertex struct {
	x, y, z float64
}

// fillTriangle scanline-fills a triangle with depth testing against zbuffer
func fillTriangle(img *image.RGBA, zbuffer []float64, a, b, c screenVertex, col color.RGBA) {
	// Sort vertices by Y coordinate (top to bottom)
	if a.y > b.y {
		a, b = b, a
	}
	if b.y > c.y {
		b, c = c, b
	}
	if a.y > b.y {
		a, b = b, a
	}

	bounds := img.Bounds()
	width := bounds.Max.X

	if c.y == a.y {
		return
	}

	for y := int(math.Max(0, math.Ceil(a.y))); y <= int(math.Floor(math.Min(float64(bounds.Max.Y-1), c.y))); y++ {
		fy := float64(y)

		// One end always lies on the long edge a-c, the other on a-b or b-c
		var xs, zs [2]float64
		t := (fy - a.y) / (c.y - a.y)
		xs[0] = a.x + t*(c.x-a.x)
		zs[0] = a.z + t*(c.z-a.z)

		p, q := b, c
		if fy < b.y {
			p, q = a, b
		}
		if q.y == p.y {
			xs[1], zs[1] = p.x, p.z
		} else {
			t = (fy - p.y) / (q.y - p.y)
			xs[1] = p.x + t*(q.x-p.x)
			zs[1] = p.z + t*(q.z-p.z)
		}

		xStart, xEnd, zStart, zEnd := xs[0], xs[1], zs[0], zs[1]
		if xStart > xEnd {
			xStart, xEnd = xEnd, xStart
			zStart, zEnd = zEnd, zStart
		}

		xFrom := int(math.Max(0, math.Ceil(xStart)))
		xTo := int(math.Floor(math.Min(float64(bounds.Max.X-1), xEnd)))

		for x := xFrom; x <= xTo; x++ {
			t := 0.0
			if xEnd != xStart {
				t = (float64(x) - xStart) / (xEnd - xStart)
			}
			z := zStart + t*(zEnd-zStart)

			// Closer fragments have smaller depth
			idx := y*width + x
			if z < zbuffer[idx] {
				zbuffer[idx] = z
				img.SetRGBA(x, y, col)
			}
		}
	}
}

// drawLine draws a line using Bresenham's algorithm
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	bounds := img.Bounds()

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx, sy := -1, -1
	if x1 < x2 {
		sx = 1
	}
	if y1 < y2 {
		sy = 1
	}

	err := dx - dy
	for {
		if x1 >= 0 && x1 < bounds.Max.X && y1 >= 0 && y1 < bounds.Max.Y {
			img.SetRGBA(x1, y1, col)
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
