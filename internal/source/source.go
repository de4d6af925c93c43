// Package source loads geometry files and pasted text into render data.
package source

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"compactgeo/internal/compact"
	"compactgeo/internal/geom"
	"compactgeo/internal/gp"
)

var ErrUnsupported = errors.New("unsupported file type")

var extensions = []string{".geojson", ".json", ".csv", ".kml", ".wkt", ".cgeo", ".pcb"}

// Extensions lists the file extensions Load understands.
func Extensions() []string {
	return append([]string(nil), extensions...)
}

// Supported reports whether Load understands path's extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Load reads path, choosing a parser by extension.
func Load(path string) (geom.Data, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv":
		return geom.LoadCSV(path)
	case ".kml":
		return geom.LoadKML(path)
	case ".geojson", ".json", ".wkt", ".cgeo", ".pcb":
	default:
		return geom.Data{}, errors.Wrapf(ErrUnsupported, "%q", ext)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return geom.Data{}, err
	}
	switch ext {
	case ".geojson":
		return geom.ParseGeoJSON(b)
	case ".json":
		if isRecordSet(b) {
			return ParseRecordSet(b)
		}
		return geom.ParseGeoJSON(b)
	case ".wkt":
		return geom.ParseWKTData(string(b))
	case ".cgeo":
		return ParseCompact(string(b))
	}
	return ParseBinary(b)
}

func isRecordSet(b []byte) bool {
	var head struct {
		GeometryType *json.RawMessage `json:"geometryType"`
	}
	return json.Unmarshal(b, &head) == nil && head.GeometryType != nil
}

// ParseRecordSet reads a GP record set.
func ParseRecordSet(b []byte) (geom.Data, error) {
	var rs gp.RecordSet
	if err := json.Unmarshal(b, &rs); err != nil {
		return geom.Data{}, errors.Wrap(err, "record set")
	}
	shapes, err := rs.Shapes()
	if err != nil {
		return geom.Data{}, err
	}
	var d geom.Data
	for _, s := range shapes {
		d.AddShape(s)
	}
	if d.Empty() {
		return geom.Data{}, errors.New("record set has no vertices")
	}
	return d, nil
}

// ParseCompact reads compact geometry strings, one per line. Blank lines and
// lines starting with # are skipped. A single-vertex string is a point.
func ParseCompact(text string) (geom.Data, error) {
	var d geom.Data
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || s[0] == '#' {
			continue
		}
		pts, err := compact.Decode(s)
		if err != nil {
			return geom.Data{}, errors.Wrapf(err, "line %d", line)
		}
		if len(pts) == 1 {
			d.AddPoints(pts)
		} else {
			d.AddLine(pts)
		}
	}
	if err := sc.Err(); err != nil {
		return geom.Data{}, err
	}
	if d.Empty() {
		return geom.Data{}, errors.New("no compact geometries found")
	}
	return d, nil
}

// ParseBinary reads a binary poly curve; each group is drawn as a line.
func ParseBinary(b []byte) (geom.Data, error) {
	pl, err := geom.PolylineFromBytes(b)
	if err != nil {
		return geom.Data{}, err
	}
	var d geom.Data
	d.AddShape(pl)
	if d.Empty() {
		return geom.Data{}, errors.New("poly curve has no vertices")
	}
	return d, nil
}

// ParseText reads pasted text: WKT when it opens with a geometry keyword,
// GeoJSON or a record set when it starts with '{', compact strings otherwise.
// Legacy compact strings may begin with an unsigned digit in a-v.
func ParseText(text string) (geom.Data, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return geom.Data{}, errors.New("empty input")
	}
	switch {
	case isWKT(t):
		return geom.ParseWKTData(t)
	case t[0] == '{':
		b := []byte(t)
		if isRecordSet(b) {
			return ParseRecordSet(b)
		}
		return geom.ParseGeoJSON(b)
	}
	return ParseCompact(t)
}

var wktKinds = []string{"POINT", "MULTIPOINT", "LINESTRING", "MULTILINESTRING", "POLYGON", "MULTIPOLYGON", "GEOMETRYCOLLECTION"}

// isWKT reports whether t opens with a WKT keyword. Compact strings never
// contain parentheses, so any leading word followed by one is also WKT.
func isWKT(t string) bool {
	n := strings.IndexFunc(t, func(r rune) bool { return !unicode.IsLetter(r) })
	if n == 0 {
		return false
	}
	if n < 0 {
		n = len(t)
	}
	return slices.Contains(wktKinds, strings.ToUpper(t[:n])) || strings.ContainsRune(t, '(')
}

// Sniff guesses whether b is a binary poly curve rather than text.
func Sniff(b []byte) bool {
	return bytes.IndexByte(b, 0) >= 0
}
