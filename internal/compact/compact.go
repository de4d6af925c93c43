// Package compact implements the compact geometry string format: an ordered
// point sequence written as delta-encoded, sign-prefixed base-32 integer
// tokens.
//
// A current-format string looks like
//
//	+0 +1 +2 <xy multiplier> <dx dy>... | <m multiplier> <dm>...
//
// without the spaces. The leading +0 marks the versioned layout and is
// followed by the version and a flags bitmask (1 = has Z, 2 = has M). Any other
// first token is a legacy string: that token is the XY multiplier and there is
// no measure section. Coordinates are recovered as running sum / multiplier.
package compact

import (
	"math"
	"strings"

	"github.com/pkg/errors"

	"compactgeo/internal/geom"
)

const (
	// FormatMarker is the first token of every versioned string.
	FormatMarker = 0
	// CurrentVersion is the only supported version.
	CurrentVersion = 1

	FlagHasZ Flags = 1
	FlagHasM Flags = 2

	// MPrecision is the quantum of encoded measures.
	MPrecision = 0.00001

	Separator = '|'
	Radix     = 32
)

var (
	ErrMalformed          = errors.New("compact: malformed geometry string")
	ErrUnsupportedVersion = errors.New("compact: unsupported format version")
	ErrNotEncodable       = errors.New("compact: coordinates cannot be encoded")
)

// maxMultiplier keeps the multiplier token exactly representable as a float64.
const maxMultiplier = 1 << 53

// maxScaled bounds |scaled value| so that deltas between two of them fit int64.
const maxScaled = 1 << 62

// Flags is the header bitmask of optional ordinates.
type Flags int64

func (f Flags) HasZ() bool { return f&FlagHasZ != 0 }
func (f Flags) HasM() bool { return f&FlagHasM != 0 }

// Header describes how a string was written.
type Header struct {
	Legacy       bool
	Version      int64
	Flags        Flags
	XYMultiplier float64
	ZMultiplier  float64
	MMultiplier  float64
}

// layout is a parsed header plus the cursor positions the body reads from.
type layout struct {
	Header
	xyPos int
	xyEnd int
	mPos  int
}

func parseLayout(s string) (layout, error) {
	var l layout
	first, pos, ok := ReadInt(s, 0)
	if !ok {
		return l, errors.Wrap(ErrMalformed, "missing header")
	}
	if first == FormatMarker {
		var flags int64
		if l.Version, pos, ok = ReadInt(s, pos); !ok {
			return l, errors.Wrap(ErrMalformed, "missing version")
		}
		if l.Version != CurrentVersion {
			return l, errors.Wrapf(ErrUnsupportedVersion, "version %d", l.Version)
		}
		if flags, pos, ok = ReadInt(s, pos); !ok {
			return l, errors.Wrap(ErrMalformed, "missing flags")
		}
		l.Flags = Flags(flags)
		if l.Flags&^(FlagHasZ|FlagHasM) != 0 {
			return l, errors.Wrapf(ErrMalformed, "unknown flags %d", flags)
		}
		if l.XYMultiplier, pos, ok = ReadDouble(s, pos); !ok {
			return l, errors.Wrap(ErrMalformed, "missing xy multiplier")
		}
	} else {
		l.Legacy = true
		l.XYMultiplier = float64(first)
	}
	if l.XYMultiplier <= 0 {
		return l, errors.Wrapf(ErrMalformed, "xy multiplier %v", l.XYMultiplier)
	}
	l.xyPos = pos
	l.xyEnd = len(s)
	if l.Flags == 0 {
		return l, nil
	}

	l.xyEnd = strings.IndexByte(s, Separator)
	if l.xyEnd < 0 {
		return l, errors.Wrap(ErrMalformed, "missing separator")
	}
	sec := l.xyEnd + 1
	if l.Flags.HasZ() {
		// Z values have no home in Point; only the multiplier is checked.
		var n int
		if l.ZMultiplier, n, ok = ReadDouble(s, sec); !ok {
			return l, errors.Wrap(ErrMalformed, "missing z multiplier")
		}
		if l.Flags.HasM() {
			k := strings.IndexByte(s[n:], Separator)
			if k < 0 {
				return l, errors.Wrap(ErrMalformed, "missing m separator")
			}
			sec = n + k + 1
		}
	}
	if l.Flags.HasM() {
		if l.MMultiplier, l.mPos, ok = ReadDouble(s, sec); !ok {
			return l, errors.Wrap(ErrMalformed, "missing m multiplier")
		}
		if l.MMultiplier <= 0 {
			return l, errors.Wrapf(ErrMalformed, "m multiplier %v", l.MMultiplier)
		}
	}
	return l, nil
}

// DecodeHeader parses only the header of s.
func DecodeHeader(s string) (Header, error) {
	l, err := parseLayout(s)
	if err != nil {
		return Header{}, err
	}
	return l.Header, nil
}

// Decode parses a compact geometry string. On error no points are returned.
func Decode(s string) ([]geom.Point, error) {
	l, err := parseLayout(s)
	if err != nil {
		return nil, err
	}
	hasM := l.Flags.HasM()
	xr := newCoordinateReader(s, l.XYMultiplier)
	yr := newCoordinateReader(s, l.XYMultiplier)
	var mr *coordinateReader
	if hasM {
		mr = newCoordinateReader(s, l.MMultiplier)
	}

	pts := []geom.Point{}
	pos, mPos := l.xyPos, l.mPos
	for pos < l.xyEnd {
		var p geom.Point
		var ok bool
		if p.X, ok = xr.next(&pos); !ok {
			return nil, errors.Wrapf(ErrMalformed, "x of point %d at %d", len(pts), pos)
		}
		if p.Y, ok = yr.next(&pos); !ok {
			return nil, errors.Wrapf(ErrMalformed, "y of point %d at %d", len(pts), pos)
		}
		if hasM {
			if p.M, ok = mr.next(&mPos); !ok {
				return nil, errors.Wrapf(ErrMalformed, "m of point %d at %d", len(pts), mPos)
			}
		}
		pts = append(pts, p)
	}
	if hasM && mPos != len(s) {
		return nil, errors.Wrapf(ErrMalformed, "%d measure bytes left over", len(s)-mPos)
	}
	return pts, nil
}

// xyMultiplier picks the largest scale that keeps every scaled X and Y within
// the signed 32-bit range.
func xyMultiplier(maxAbs float64) float64 {
	if maxAbs == 0 {
		return 1
	}
	m := math.Floor(math.MaxInt32 / maxAbs)
	return min(max(m, 1), maxMultiplier)
}

func mMultiplier() float64 {
	return math.Round(1 / MPrecision)
}

// Encode writes points as a current-version string with a measure section.
// Z is never written.
func Encode(points []geom.Point) (string, error) {
	maxAbs := 0.0
	for i, p := range points {
		for _, v := range [...]float64{p.X, p.Y, p.M} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return "", errors.Wrapf(ErrNotEncodable, "point %d is not finite", i)
			}
		}
		maxAbs = max(maxAbs, math.Abs(p.X), math.Abs(p.Y))
	}
	xyMult := xyMultiplier(maxAbs)
	mMult := mMultiplier()
	for i, p := range points {
		if math.Abs(p.X*xyMult) >= maxScaled || math.Abs(p.Y*xyMult) >= maxScaled || math.Abs(p.M*mMult) >= maxScaled {
			return "", errors.Wrapf(ErrNotEncodable, "point %d out of range", i)
		}
	}

	buf := make([]byte, 0, 16+len(points)*12)
	buf = AppendInt(buf, FormatMarker)
	buf = AppendInt(buf, CurrentVersion)
	buf = AppendInt(buf, int64(FlagHasM))
	buf = AppendInt(buf, int64(xyMult))

	var px, py int64
	for _, p := range points {
		buf, px = AppendValue(buf, p.X, px, xyMult)
		buf, py = AppendValue(buf, p.Y, py, xyMult)
	}

	buf = append(buf, Separator)
	buf = AppendInt(buf, int64(mMult))
	var pm int64
	for _, p := range points {
		buf, pm = AppendValue(buf, p.M, pm, mMult)
	}
	return string(buf), nil
}
