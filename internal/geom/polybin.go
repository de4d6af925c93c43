package geom

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// ErrCorrupt is returned for a binary poly curve that cannot be decoded.
var ErrCorrupt = errors.New("poly: corrupt binary data")

const (
	int32Size   = 4
	float64Size = 8
)

// MarshalBinary writes the little-endian layout
//
//	int32 groupCount, int32 pointCount, int32[groupCount] group sizes,
//	pointCount x (float64 x, float64 y, float64 m)
//
// M is always written.
func (pc PolyCurve) MarshalBinary() ([]byte, error) {
	if len(pc.groups) > math.MaxInt32 || len(pc.points) > math.MaxInt32 {
		return nil, errors.New("poly: too large for binary layout")
	}
	size := 2*int32Size + len(pc.groups)*int32Size + len(pc.points)*3*float64Size
	le := binary.LittleEndian
	buf := make([]byte, 0, size)
	buf = le.AppendUint32(buf, uint32(len(pc.groups)))
	buf = le.AppendUint32(buf, uint32(len(pc.points)))
	for _, g := range pc.groups {
		buf = le.AppendUint32(buf, uint32(g))
	}
	for _, p := range pc.points {
		buf = le.AppendUint64(buf, math.Float64bits(p.X))
		buf = le.AppendUint64(buf, math.Float64bits(p.Y))
		buf = le.AppendUint64(buf, math.Float64bits(p.M))
	}
	return buf, nil
}

func decodePolyCurve(data []byte) (PolyCurve, error) {
	le := binary.LittleEndian
	if len(data) < 2*int32Size {
		return PolyCurve{}, errors.Wrapf(ErrCorrupt, "header needs %d bytes, have %d", 2*int32Size, len(data))
	}
	groupCount := int(int32(le.Uint32(data[0:])))
	pointCount := int(int32(le.Uint32(data[4:])))
	if groupCount < 0 || pointCount < 0 {
		return PolyCurve{}, errors.Wrapf(ErrCorrupt, "negative counts groups=%d points=%d", groupCount, pointCount)
	}
	rest := data[2*int32Size:]
	if groupCount > len(rest)/int32Size {
		return PolyCurve{}, errors.Wrapf(ErrCorrupt, "%d groups do not fit in %d bytes", groupCount, len(rest))
	}
	groups := make([]int, groupCount)
	for i := range groups {
		groups[i] = int(int32(le.Uint32(rest[i*int32Size:])))
	}
	rest = rest[groupCount*int32Size:]

	// The layout has no dimension flag; it is inferred from the byte count.
	dims := 0
	if pointCount > 0 {
		stride := float64Size * pointCount
		if len(rest)%stride != 0 {
			return PolyCurve{}, errors.Wrapf(ErrCorrupt, "%d coordinate bytes for %d points", len(rest), pointCount)
		}
		dims = len(rest) / stride
		if dims != 2 && dims != 3 {
			return PolyCurve{}, errors.Wrapf(ErrCorrupt, "%d coordinates per point", dims)
		}
	} else if len(rest) != 0 {
		return PolyCurve{}, errors.Wrapf(ErrCorrupt, "%d trailing bytes", len(rest))
	}

	points := make([]Point, pointCount)
	for i := range points {
		off := i * dims * float64Size
		points[i].X = math.Float64frombits(le.Uint64(rest[off:]))
		points[i].Y = math.Float64frombits(le.Uint64(rest[off+float64Size:]))
		if dims == 3 {
			points[i].M = math.Float64frombits(le.Uint64(rest[off+2*float64Size:]))
		}
	}
	pc, err := newPolyCurve(groups, points)
	if err != nil {
		return PolyCurve{}, errors.Wrap(ErrCorrupt, err.Error())
	}
	return pc, nil
}

func (pl *Polyline) UnmarshalBinary(data []byte) error {
	pc, err := decodePolyCurve(data)
	if err != nil {
		return err
	}
	pl.PolyCurve = pc
	return nil
}

func (pg *Polygon) UnmarshalBinary(data []byte) error {
	pc, err := decodePolyCurve(data)
	if err != nil {
		return err
	}
	pg.PolyCurve = pc
	return nil
}

// PolylineFromBytes decodes a polyline written by MarshalBinary.
func PolylineFromBytes(data []byte) (*Polyline, error) {
	pl := &Polyline{}
	if err := pl.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return pl, nil
}

// PolygonFromBytes decodes a polygon written by MarshalBinary.
func PolygonFromBytes(data []byte) (*Polygon, error) {
	pg := &Polygon{}
	if err := pg.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return pg, nil
}
