package geom

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseWKTData parses a subset of WKT into Data.
// Supported: POINT, MULTIPOINT, LINESTRING, MULTILINESTRING, POLYGON, with an
// optional M or ZM tag. A third ordinate is read as M unless the tag is Z or ZM,
// where the fourth is.
func ParseWKTData(wkt string) (Data, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return Data{}, errors.New("empty wkt")
	}
	i := strings.Index(s, "(")
	j := strings.LastIndex(s, ")")
	if i < 0 || j <= i {
		return Data{}, errors.New("wkt: missing coordinate block")
	}
	head := strings.Fields(strings.ToUpper(s[:i]))
	if len(head) == 0 {
		return Data{}, errors.New("wkt: missing type")
	}
	kind := head[0]
	mIndex := 2
	if len(head) > 1 {
		switch head[1] {
		case "M":
		case "Z":
			mIndex = -1
		case "ZM":
			mIndex = 3
		default:
			return Data{}, errors.Errorf("wkt: unknown dimension %s", head[1])
		}
	}
	parseTuples := func(block string) []Point {
		var out []Point
		for _, tup := range strings.Split(block, ",") {
			tup = strings.Trim(strings.TrimSpace(tup), "()")
			parts := strings.Fields(tup)
			if len(parts) < 2 {
				continue
			}
			x, e1 := strconv.ParseFloat(parts[0], 64)
			y, e2 := strconv.ParseFloat(parts[1], 64)
			if e1 != nil || e2 != nil {
				continue
			}
			p := Point{X: x, Y: y}
			if mIndex > 0 && len(parts) > mIndex {
				if m, err := strconv.ParseFloat(parts[mIndex], 64); err == nil {
					p.M = m
				}
			}
			out = append(out, p)
		}
		return out
	}
	// innerGroups returns the contents of each innermost "( ... )" in block.
	innerGroups := func(block string) []string {
		var out []string
		start := -1
		for k, ch := range block {
			switch ch {
			case '(':
				start = k + 1
			case ')':
				if start >= 0 {
					out = append(out, block[start:k])
					start = -1
				}
			}
		}
		return out
	}
	body := s[i+1 : j]
	var d Data
	switch kind {
	case "POINT", "MULTIPOINT":
		d.AddPoints(parseTuples(body))
	case "LINESTRING":
		d.AddLine(parseTuples(body))
	case "MULTILINESTRING":
		for _, part := range innerGroups(body) {
			d.AddLine(parseTuples(part))
		}
	case "POLYGON":
		var rings [][]Point
		for _, part := range innerGroups(body) {
			rings = append(rings, parseTuples(part))
		}
		d.AddPolygon(rings)
	default:
		return Data{}, errors.Errorf("wkt: unsupported type %s", kind)
	}
	if d.Empty() {
		return Data{}, errors.New("wkt: no coordinates parsed")
	}
	return d, nil
}
