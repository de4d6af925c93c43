// Package export writes decoded shapes in interchange formats.
package export

import (
	"encoding/binary"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	gogeom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkbhex"
	"github.com/twpayne/go-geom/encoding/wkt"

	"compactgeo/internal/compact"
	"compactgeo/internal/geom"
)

var ErrUnknownFormat = errors.New("export: unknown format")

type Format int

const (
	WKT Format = iota
	GeoJSON
	WKB
	CSV
	Compact
	Binary
)

var formatNames = [...]string{
	WKT:     "wkt",
	GeoJSON: "geojson",
	WKB:     "wkb",
	CSV:     "csv",
	Compact: "compact",
	Binary:  "binary",
}

func (f Format) String() string {
	if f >= 0 && int(f) < len(formatNames) {
		return formatNames[f]
	}
	return "format(" + strconv.Itoa(int(f)) + ")"
}

// ParseFormat is case-insensitive.
func ParseFormat(name string) (Format, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range formatNames {
		if s == n {
			return Format(i), nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownFormat, "%q", name)
}

// Names lists the accepted format names.
func Names() []string {
	return append([]string(nil), formatNames[:]...)
}

func measured(pts []geom.Point) bool {
	for _, p := range pts {
		if p.M != 0 {
			return true
		}
	}
	return false
}

func flat(pts []geom.Point, layout gogeom.Layout) []float64 {
	out := make([]float64, 0, len(pts)*layout.Stride())
	for _, p := range pts {
		out = append(out, p.X, p.Y)
		if layout == gogeom.XYM {
			out = append(out, p.M)
		}
	}
	return out
}

func ends(groups []int, stride int) []int {
	out := make([]int, len(groups))
	n := 0
	for i, g := range groups {
		n += g * stride
		out[i] = n
	}
	return out
}

// ToGeom converts a shape to a go-geom geometry. Measures are kept (XYM
// layout) whenever any vertex carries one.
func ToGeom(s geom.Shape) (gogeom.T, error) {
	switch v := s.(type) {
	case geom.Point:
		if v.M != 0 {
			return gogeom.NewPointFlat(gogeom.XYM, []float64{v.X, v.Y, v.M}), nil
		}
		return gogeom.NewPointFlat(gogeom.XY, []float64{v.X, v.Y}), nil
	case *geom.Polyline:
		pts := v.Points()
		layout := gogeom.XY
		if measured(pts) {
			layout = gogeom.XYM
		}
		if v.NumGroups() == 1 {
			return gogeom.NewLineStringFlat(layout, flat(pts, layout)), nil
		}
		return gogeom.NewMultiLineStringFlat(layout, flat(pts, layout), ends(v.Groups(), layout.Stride())), nil
	case *geom.Polygon:
		pts := v.Points()
		layout := gogeom.XY
		if measured(pts) {
			layout = gogeom.XYM
		}
		return gogeom.NewPolygonFlat(layout, flat(pts, layout), ends(v.Groups(), layout.Stride())), nil
	case geom.Envelope:
		if v.IsEmpty() {
			return nil, errors.New("export: empty envelope")
		}
		ring := v.Ring()
		return gogeom.NewPolygonFlat(gogeom.XY, flat(ring, gogeom.XY), []int{2 * len(ring)}), nil
	}
	return nil, errors.Errorf("export: unsupported shape %T", s)
}

// Write writes shapes to w. Text formats write one record per line, compact
// writes one string per part and binary writes every part as one poly curve.
func Write(w io.Writer, f Format, shapes []geom.Shape) error {
	switch f {
	case WKT, GeoJSON, WKB:
		return writeGeom(w, f, shapes)
	case CSV:
		return writeCSV(w, shapes)
	case Compact:
		return writeCompact(w, shapes)
	case Binary:
		return writeBinary(w, shapes)
	}
	return errors.Wrapf(ErrUnknownFormat, "%v", f)
}

func writeGeom(w io.Writer, f Format, shapes []geom.Shape) error {
	for i, s := range shapes {
		g, err := ToGeom(s)
		if err != nil {
			return errors.Wrapf(err, "shape %d", i)
		}
		var line string
		switch f {
		case WKT:
			line, err = wkt.Marshal(g)
		case GeoJSON:
			var b []byte
			b, err = geojson.Marshal(g)
			line = string(b)
		case WKB:
			line, err = wkbhex.Encode(g, binary.LittleEndian)
		}
		if err != nil {
			return errors.Wrapf(err, "shape %d", i)
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func writeCSV(w io.Writer, shapes []geom.Shape) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"shape", "part", "x", "y", "m"}); err != nil {
		return err
	}
	for i, s := range shapes {
		for j, part := range geom.Parts(s) {
			for _, p := range part {
				rec := []string{strconv.Itoa(i), strconv.Itoa(j), ftoa(p.X), ftoa(p.Y), ftoa(p.M)}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeCompact(w io.Writer, shapes []geom.Shape) error {
	for i, s := range shapes {
		for j, part := range geom.Parts(s) {
			str, err := compact.Encode(part)
			if err != nil {
				return errors.Wrapf(err, "shape %d part %d", i, j)
			}
			if _, err := io.WriteString(w, str+"\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeBinary(w io.Writer, shapes []geom.Shape) error {
	var parts [][]geom.Point
	for _, s := range shapes {
		parts = append(parts, geom.Parts(s)...)
	}
	b, err := geom.NewPolylineFromParts(parts).MarshalBinary()
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
