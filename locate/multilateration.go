package locate

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// circle is one beacon's range in grid units.
type circle struct {
	x, y, r float64
}

// multilaterate keeps the strongest reading per beacon. With fewer than
// three beacons the nearest one wins; otherwise the estimate is the mean
// of all pairwise circle intersections.
func multilaterate(samples []sample, cfg Options, scale float64, fix *Fix) bool {
	circles := make([]circle, 0, len(samples))
	var last string
	for _, s := range samples {
		r, ok := rangeOf(s.rssi, cfg, scale)
		if !ok {
			fix.Discarded++
			continue
		}
		c := circle{x: float64(s.at.X), y: float64(s.at.Y), r: r}
		// Samples are sorted by RSSI within a beacon, so a later one is stronger.
		if len(circles) > 0 && s.id == last {
			circles[len(circles)-1] = c
			fix.Discarded++
			continue
		}
		circles = append(circles, c)
		last = s.id
	}
	fix.Used = len(circles)
	if fix.Used == 0 {
		return false
	}

	var xs, ys []float64
	if len(circles) >= 3 {
		for i := range circles {
			for j := i + 1; j < len(circles); j++ {
				for _, p := range intersections(circles[i], circles[j]) {
					xs = append(xs, p[0])
					ys = append(ys, p[1])
				}
			}
		}
	}
	if len(xs) == 0 {
		n := nearest(circles)
		fix.X, fix.Y = n.x, n.y
		return true
	}
	fix.X = stat.Mean(xs, nil)
	fix.Y = stat.Mean(ys, nil)
	return true
}

// nearest returns the circle with the smallest range; the first one wins ties.
func nearest(circles []circle) circle {
	best := circles[0]
	for _, c := range circles[1:] {
		if c.r < best.r {
			best = c
		}
	}
	return best
}

// intersections returns the crossing points of a and b. Circles that do not
// meet yield the midpoint between their closest points. Concentric circles
// yield nothing.
func intersections(a, b circle) [][2]float64 {
	dx, dy := b.x-a.x, b.y-a.y
	d := math.Hypot(dx, dy)
	if d == 0 {
		return nil
	}
	if d > a.r+b.r || d < math.Abs(a.r-b.r) {
		x1, y1 := a.x+a.r*dx/d, a.y+a.r*dy/d
		x2, y2 := b.x-b.r*dx/d, b.y-b.r*dy/d
		return [][2]float64{{(x1 + x2) / 2, (y1 + y2) / 2}}
	}

	l := (a.r*a.r - b.r*b.r + d*d) / (2 * d)
	h := math.Sqrt(math.Max(a.r*a.r-l*l, 0))
	xm, ym := a.x+l*dx/d, a.y+l*dy/d
	return [][2]float64{
		{xm + h*dy/d, ym - h*dx/d},
		{xm - h*dy/d, ym + h*dx/d},
	}
}
