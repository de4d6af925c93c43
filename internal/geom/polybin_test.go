package geom

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestBinaryLayout(t *testing.T) {
	pl, err := NewPolyline([]int{1}, []Point{{X: 1.5, Y: -2, M: 3}})
	require.NoError(t, err)
	b, err := pl.MarshalBinary()
	require.NoError(t, err)

	var want bytes.Buffer
	le := binary.LittleEndian
	require.NoError(t, binary.Write(&want, le, []int32{1, 1, 1}))
	require.NoError(t, binary.Write(&want, le, []float64{1.5, -2, 3}))
	require.Equal(t, want.Bytes(), b)

	pg, err := NewPolygon([]int{2, 1}, []Point{{X: 1}, {Y: 2, M: -1}, {X: 3, Y: 4}})
	require.NoError(t, err)
	b, err = pg.MarshalBinary()
	require.NoError(t, err)
	want.Reset()
	require.NoError(t, binary.Write(&want, le, []int32{2, 3, 2, 1}))
	require.NoError(t, binary.Write(&want, le, []float64{1, 0, 0, 0, 2, -1, 3, 4, 0}))
	require.Equal(t, want.Bytes(), b)
	require.Len(t, b, cap(b))
}

func TestBinaryRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for n := 0; n < 30; n++ {
		pl := NewPolylineFromParts(randomParts(r))
		b, err := pl.MarshalBinary()
		require.NoError(t, err)

		got, err := PolylineFromBytes(b)
		require.NoError(t, err)
		require.Equal(t, pl.Groups(), got.Groups())
		require.Equal(t, pl.Points(), got.Points())
		require.Equal(t, pl.Extent(), got.Extent())
	}
}

func TestBinaryPolygonRoundTrip(t *testing.T) {
	pg := NewPolygonFromParts([][]Point{
		{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 0}},
		{{X: 2, Y: 2, M: 1}, {X: 3, Y: 2, M: 2}, {X: 2, Y: 2, M: 3}},
	})
	b, err := pg.MarshalBinary()
	require.NoError(t, err)
	got, err := PolygonFromBytes(b)
	require.NoError(t, err)
	require.Equal(t, pg.Groups(), got.Groups())
	require.Equal(t, pg.Points(), got.Points())
}

func TestBinaryWithoutMeasures(t *testing.T) {
	var buf bytes.Buffer
	le := binary.LittleEndian
	require.NoError(t, binary.Write(&buf, le, []int32{1, 2, 2}))
	require.NoError(t, binary.Write(&buf, le, []float64{1, 2, 3, 4}))

	pl, err := PolylineFromBytes(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, []Point{{X: 1, Y: 2}, {X: 3, Y: 4}}, pl.Points())
}

func TestBinaryEmpty(t *testing.T) {
	b, err := NewPolylineFromPoints(nil).MarshalBinary()
	require.NoError(t, err)
	require.Len(t, b, 8)
	pl, err := PolylineFromBytes(b)
	require.NoError(t, err)
	require.Equal(t, 0, pl.NumPoints())
}

func TestBinaryCorrupt(t *testing.T) {
	le := binary.LittleEndian
	build := func(ints []int32, floats []float64, extra ...byte) []byte {
		var buf bytes.Buffer
		_ = binary.Write(&buf, le, ints)
		_ = binary.Write(&buf, le, floats)
		buf.Write(extra)
		return buf.Bytes()
	}
	cases := map[string][]byte{
		"short header":     {1, 0, 0},
		"negative groups":  build([]int32{-1, 0}, nil),
		"negative points":  build([]int32{0, -2}, nil),
		"groups overflow":  build([]int32{1000, 0}, nil),
		"one coordinate":   build([]int32{1, 1, 1}, []float64{1}),
		"four coordinates": build([]int32{1, 1, 1}, []float64{1, 2, 3, 4}),
		"ragged":           build([]int32{1, 1, 1}, []float64{1, 2}, 0xff),
		"group mismatch":   build([]int32{1, 2, 3}, []float64{1, 2, 3, 4}),
		"trailing bytes":   build([]int32{0, 0}, nil, 1, 2),
	}
	for name, b := range cases {
		_, err := PolylineFromBytes(b)
		require.True(t, errors.Is(err, ErrCorrupt), "%s: %v", name, err)
	}
}
