package chart

import (
	"math"
	"strconv"
	"strings"
)

// fullCircle is the sweep at which an arc's endpoints coincide.
const fullCircle = 360.0

type point struct{ x, y float64 }

// polar converts an angle in degrees and a radius around (cx, cy) to
// cartesian coordinates.
func polar(cx, cy, r, deg float64) point {
	rad := deg * math.Pi / 180
	return point{cx + r*math.Cos(rad), cy + r*math.Sin(rad)}
}

// ArcPath returns the SVG path data of a slice starting at startDeg and
// sweeping sweepDeg clockwise.
//
// With innerR <= 0 the slice is a pie wedge:
//
//	M cx cy L outerStart A R R 0 large 1 outerEnd Z
//
// Otherwise it is a ring segment whose inner arc runs back counter-clockwise:
//
//	M outerStart A R R 0 large 1 outerEnd L innerEnd A r r 0 large 0 innerStart Z
//
// large is 1 when sweepDeg exceeds 180. Points carry three fractional digits.
// An arc whose rounded endpoints coincide draws nothing, so such an arc (a
// full circle, or a sweep just short of one) is split into two halves
// through its midpoint.
func ArcPath(startDeg, sweepDeg, outerR, innerR, cx, cy float64) string {
	large := 0
	if sweepDeg > 180 {
		large = 1
	}
	endDeg := startDeg + sweepDeg
	midDeg := startDeg + sweepDeg/2

	var b strings.Builder
	p := pathWriter{&b}

	outerStart := polar(cx, cy, outerR, startDeg)
	outerEnd := polar(cx, cy, outerR, endDeg)
	splitOuter := closes(sweepDeg, outerStart, outerEnd)

	if innerR <= 0 {
		p.cmd("M", num(cx), num(cy))
		p.cmd("L", coords(outerStart)...)
		if splitOuter {
			p.arc(outerR, large, 1, polar(cx, cy, outerR, midDeg))
		}
		p.arc(outerR, large, 1, outerEnd)
		b.WriteString(" Z")
		return b.String()
	}

	innerStart := polar(cx, cy, innerR, startDeg)
	innerEnd := polar(cx, cy, innerR, endDeg)

	p.cmd("M", coords(outerStart)...)
	if splitOuter {
		p.arc(outerR, large, 1, polar(cx, cy, outerR, midDeg))
	}
	p.arc(outerR, large, 1, outerEnd)
	p.cmd("L", coords(innerEnd)...)
	if closes(sweepDeg, innerStart, innerEnd) {
		p.arc(innerR, large, 0, polar(cx, cy, innerR, midDeg))
	}
	p.arc(innerR, large, 0, innerStart)
	b.WriteString(" Z")
	return b.String()
}

// closes reports whether an arc of sweepDeg between a and b comes back to
// where it started once its endpoints are rounded.
func closes(sweepDeg float64, a, b point) bool {
	if sweepDeg >= fullCircle {
		return true
	}
	return sweepDeg > 180 && coord(a.x) == coord(b.x) && coord(a.y) == coord(b.y)
}

type pathWriter struct{ b *strings.Builder }

func (w pathWriter) cmd(name string, args ...string) {
	if w.b.Len() > 0 {
		w.b.WriteByte(' ')
	}
	w.b.WriteString(name)
	for _, a := range args {
		w.b.WriteByte(' ')
		w.b.WriteString(a)
	}
}

func (w pathWriter) arc(r float64, large, sweep int, to point) {
	rs := num(r)
	w.cmd("A", rs, rs, "0", strconv.Itoa(large), strconv.Itoa(sweep), coord(to.x), coord(to.y))
}

func coords(p point) []string { return []string{coord(p.x), coord(p.y)} }

// coord formats a path coordinate with three fractional digits.
func coord(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// num formats radii and the center in their shortest form.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
