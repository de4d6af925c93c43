package compact

import "math"

// coordinateReader turns a stream of scaled deltas into absolute coordinates.
// Readers for different axes share one cursor and advance it in turn.
type coordinateReader struct {
	s          string
	multiplier float64
	last       int64
}

func newCoordinateReader(s string, multiplier float64) *coordinateReader {
	return &coordinateReader{s: s, multiplier: multiplier}
}

// next decodes the token at *pos, advances *pos and returns the coordinate.
// It fails when the token is invalid or the running sum would overflow.
func (r *coordinateReader) next(pos *int) (float64, bool) {
	delta, n, ok := ReadInt(r.s, *pos)
	if !ok {
		return 0, false
	}
	// A running sum that leaves int64 is malformed, not wrapped.
	if (delta > 0 && r.last > math.MaxInt64-delta) || (delta < 0 && r.last < math.MinInt64-delta) {
		return 0, false
	}
	*pos = n
	r.last += delta
	return float64(r.last) / r.multiplier, true
}
