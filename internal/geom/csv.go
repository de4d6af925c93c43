package geom

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// LoadCSV reads a CSV with latitude/longitude columns and returns its rows as
// one batch of points.
// Column detection: lat|latitude|y and lon|lng|long|longitude|x, plus an
// optional m|measure column (case-insensitive).
func LoadCSV(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	if err != nil {
		return Data{}, err
	}
	if len(recs) == 0 {
		return Data{}, errors.New("empty csv")
	}
	idxLat, idxLon, idxM := -1, -1, -1
	for i, h := range recs[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "lat", "latitude", "y":
			if idxLat == -1 {
				idxLat = i
			}
		case "lon", "lng", "long", "longitude", "x":
			if idxLon == -1 {
				idxLon = i
			}
		case "m", "measure":
			if idxM == -1 {
				idxM = i
			}
		}
	}
	if idxLat == -1 || idxLon == -1 {
		return Data{}, errors.New("csv: latitude/longitude columns not found")
	}
	var pts []Point
	for _, row := range recs[1:] {
		if idxLon >= len(row) || idxLat >= len(row) {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxLon]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxLat]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		p := Point{X: lon, Y: lat}
		if idxM >= 0 && idxM < len(row) {
			if m, err := strconv.ParseFloat(strings.TrimSpace(row[idxM]), 64); err == nil {
				p.M = m
			}
		}
		pts = append(pts, p)
	}
	if len(pts) == 0 {
		return Data{}, errors.New("csv: no valid points parsed")
	}
	var d Data
	d.AddPoints(pts)
	return d, nil
}
