package tabletop

// SegmentDistance returns the distance from p to the segment a-b. The
// projection of p onto the line is clamped to the segment's ends; a
// degenerate segment measures the distance to a.
func SegmentDistance(p, a, b Vec2) float64 {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	if lenSq == 0 {
		return p.Dist(a)
	}
	t := ((p.X-a.X)*ab.X + (p.Y-a.Y)*ab.Y) / lenSq
	t = max(0, min(1, t))
	return p.Dist(a.Add(ab.Scale(t)))
}

// NearSegment reports whether p lies within threshold of the segment a-b.
func NearSegment(p, a, b Vec2, threshold float64) bool {
	return SegmentDistance(p, a, b) <= threshold
}
