package geom

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func randomParts(r *rand.Rand) [][]Point {
	parts := make([][]Point, 1+r.Intn(5))
	for i := range parts {
		parts[i] = make([]Point, r.Intn(8))
		for j := range parts[i] {
			parts[i][j] = Point{X: r.NormFloat64() * 100, Y: r.NormFloat64() * 100, M: r.Float64()}
		}
	}
	return parts
}

func TestPolyCurveGroups(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for n := 0; n < 50; n++ {
		parts := randomParts(r)
		pl := NewPolylineFromParts(parts)
		require.NotNil(t, pl)

		sum := 0
		for _, g := range pl.Groups() {
			sum += g
		}
		require.Equal(t, pl.NumPoints(), sum)
		require.Equal(t, len(parts), pl.NumGroups())

		start := 0
		all := pl.Points()
		for i, g := range pl.Groups() {
			got := pl.GroupPoints(i)
			require.Len(t, got, g)
			if g > 0 {
				require.Equal(t, all[start:start+g], got)
			}
			start += g
		}
	}
}

func TestPolyCurveRejectsMismatch(t *testing.T) {
	_, err := NewPolyline([]int{2}, []Point{{X: 1}})
	require.True(t, errors.Is(err, ErrGroupMismatch))

	_, err = NewPolygon([]int{3, -1}, []Point{{}, {}})
	require.True(t, errors.Is(err, ErrGroupMismatch))
}

func TestPolyCurveExtent(t *testing.T) {
	pg := NewPolygonFromPoints([]Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 3}, {X: 0, Y: 0}})
	require.Equal(t, Envelope{Left: 0, Top: 3, Right: 4, Bottom: 0}, pg.Extent())
	require.Equal(t, 1, pg.NumGroups())

	empty := NewPolylineFromPoints(nil)
	require.Equal(t, 0, empty.NumGroups())
	require.True(t, empty.Extent().IsEmpty())
}

func TestPolyCurveIsImmutable(t *testing.T) {
	pts := []Point{{X: 1}, {X: 2}}
	groups := []int{2}
	pl, err := NewPolyline(groups, pts)
	require.NoError(t, err)

	pts[0].X = 99
	groups[0] = 7
	require.Equal(t, 1.0, pl.Points()[0].X)
	require.Equal(t, []int{2}, pl.Groups())

	out := pl.GroupPoints(0)
	out[1].X = 42
	require.Equal(t, 2.0, pl.GroupPoints(0)[1].X)
}
