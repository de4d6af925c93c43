// Package gp maps shapes to and from the JSON objects exchanged with a
// geoprocessing routing service.
package gp

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// ErrUnsupportedGeometryType means the service sent a geometry kind that this
// package does not model. It is a contract violation, not bad input.
var ErrUnsupportedGeometryType = errors.New("gp: unsupported geometry type")

// GeometryType is the closed set of geometry kinds understood by the bridge.
type GeometryType uint8

const (
	GeometryUnknown GeometryType = iota
	GeometryPoint
	GeometryPolyline
	GeometryPolygon
	GeometryEnvelope
)

var jsonNames = [...]string{
	GeometryPoint:    "esriGeometryPoint",
	GeometryPolyline: "esriGeometryPolyline",
	GeometryPolygon:  "esriGeometryPolygon",
	GeometryEnvelope: "esriGeometryEnvelope",
}

var byJSONName = func() map[string]GeometryType {
	m := make(map[string]GeometryType, len(jsonNames))
	for t, name := range jsonNames {
		if name != "" {
			m[name] = GeometryType(t)
		}
	}
	return m
}()

// ParseGeometryType looks up a type by its JSON name.
func ParseGeometryType(name string) (GeometryType, error) {
	t, ok := byJSONName[name]
	if !ok {
		return GeometryUnknown, errors.Wrapf(ErrUnsupportedGeometryType, "%q", name)
	}
	return t, nil
}

// JSONName returns the wire name, or "" for GeometryUnknown.
func (t GeometryType) JSONName() string {
	if int(t) < len(jsonNames) {
		return jsonNames[t]
	}
	return ""
}

func (t GeometryType) String() string {
	if n := t.JSONName(); n != "" {
		return n
	}
	return "unknown"
}

func (t GeometryType) MarshalJSON() ([]byte, error) {
	name := t.JSONName()
	if name == "" {
		return nil, errors.Wrapf(ErrUnsupportedGeometryType, "type %d", t)
	}
	return json.Marshal(name)
}

func (t *GeometryType) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	v, err := ParseGeometryType(name)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

type SpatialReference struct {
	WKID int `json:"wkid,omitempty"`
}

// Geometry is the JSON geometry object. Which fields are set depends on the
// geometry type of the enclosing record set.
type Geometry struct {
	X *float64 `json:"x,omitempty"`
	Y *float64 `json:"y,omitempty"`
	M *float64 `json:"m,omitempty"`

	Paths [][][]float64 `json:"paths,omitempty"`
	Rings [][][]float64 `json:"rings,omitempty"`

	XMin *float64 `json:"xmin,omitempty"`
	YMin *float64 `json:"ymin,omitempty"`
	XMax *float64 `json:"xmax,omitempty"`
	YMax *float64 `json:"ymax,omitempty"`

	HasM             bool              `json:"hasM,omitempty"`
	SpatialReference *SpatialReference `json:"spatialReference,omitempty"`
}

// Feature is one record. CompressedGeometry, when present, holds the shape as
// a compact geometry string and takes precedence over Geometry.
type Feature struct {
	Geometry           *Geometry      `json:"geometry,omitempty"`
	CompressedGeometry string         `json:"compressedGeometry,omitempty"`
	Attributes         map[string]any `json:"attributes,omitempty"`
}

type RecordSet struct {
	GeometryType     GeometryType      `json:"geometryType"`
	SpatialReference *SpatialReference `json:"spatialReference,omitempty"`
	HasM             bool              `json:"hasM,omitempty"`
	Features         []Feature         `json:"features"`
}
