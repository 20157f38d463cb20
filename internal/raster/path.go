package raster

import "math"

// circleSegments picks a polygon resolution for a circle of radius r so
// that the chord error stays well below a pixel.
func circleSegments(r float64) int {
	n := int(math.Ceil(2 * math.Pi * r / 2))
	switch {
	case n < 12:
		return 12
	case n > 128:
		return 128
	}
	return n
}

// strokeOutline converts a path into polygons covering its stroke: one quad
// per segment plus a disc at every vertex, which yields round joins and
// round caps. All polygons wind the same way so overlaps do not cancel.
// A subpath with a single point produces nothing.
func strokeOutline(path []subpath, hw float64) [][]vec {
	if hw <= 0 {
		return nil
	}
	var polys [][]vec
	for _, sp := range path {
		pts := sp.pts
		if len(pts) < 2 {
			continue
		}
		if sp.closed {
			pts = append(pts[:len(pts):len(pts)], pts[0])
		}
		for i := 1; i < len(pts); i++ {
			if q := segmentQuad(pts[i-1], pts[i], hw); q != nil {
				polys = append(polys, q)
			}
		}
		for _, p := range sp.pts {
			polys = append(polys, disc(p, hw))
		}
	}
	return polys
}

func segmentQuad(a, b vec, hw float64) []vec {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return nil
	}
	nx, ny := -dy/l*hw, dx/l*hw
	return []vec{
		{a.X - nx, a.Y - ny},
		{b.X - nx, b.Y - ny},
		{b.X + nx, b.Y + ny},
		{a.X + nx, a.Y + ny},
	}
}

func disc(c vec, r float64) []vec {
	n := circleSegments(r)
	pts := make([]vec, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = vec{c.X + r*math.Cos(a), c.Y + r*math.Sin(a)}
	}
	return pts
}
