package geom

import (
	"encoding/xml"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// LoadKML extracts Placemark Point and LineString coordinates from a KML file.
// KML coordinates are "lon,lat[,alt]"; altitude is ignored.
func LoadKML(path string) (Data, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Data{}, err
	}

	type kmlCoords struct {
		Coordinates string `xml:"coordinates"`
	}
	type kmlPlacemark struct {
		Point      *kmlCoords `xml:"Point"`
		LineString *kmlCoords `xml:"LineString"`
	}
	type kmlDoc struct {
		Placemarks []kmlPlacemark `xml:"Placemark"`
		Document   struct {
			Placemarks []kmlPlacemark `xml:"Placemark"`
		} `xml:"Document"`
	}

	var doc kmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return Data{}, errors.Wrap(err, "kml")
	}
	// coordinates may contain multiple tuples separated by whitespace
	tuples := func(s string) []Point {
		var out []Point
		for _, tuple := range strings.Fields(s) {
			vals := strings.Split(tuple, ",")
			if len(vals) < 2 {
				continue
			}
			lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
			lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
			if err1 != nil || err2 != nil {
				continue
			}
			out = append(out, Point{X: lon, Y: lat})
		}
		return out
	}
	var d Data
	var loose []Point
	for _, pm := range append(doc.Placemarks, doc.Document.Placemarks...) {
		if pm.Point != nil {
			loose = append(loose, tuples(pm.Point.Coordinates)...)
		}
		if pm.LineString != nil {
			d.AddLine(tuples(pm.LineString.Coordinates))
		}
	}
	d.AddPoints(loose)
	if d.Empty() {
		return Data{}, errors.New("kml: no coordinates found")
	}
	return d, nil
}
