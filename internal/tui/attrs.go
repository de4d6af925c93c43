package tui

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	table "github.com/charmbracelet/bubbles/table"
)

const maxColW = 24

// refreshAttrsFromCurrent rebuilds the table for the current dataset. With
// nothing to show the attribute view is closed instead.
func (m *Model) refreshAttrsFromCurrent() {
	cols, rows := m.buildAttributes()
	if len(cols) == 0 || len(rows) == 0 {
		m.showAttrs = false
		m.status = "no attributes for current dataset"
		return
	}
	tcols := make([]table.Column, 0, len(cols)+1)
	tcols = append(tcols, table.Column{Title: "#", Width: 5})
	for _, c := range cols {
		tcols = append(tcols, table.Column{Title: c, Width: min(len(c)+2, maxColW)})
	}
	trows := make([]table.Row, len(rows))
	for i, r := range rows {
		cells := make([]string, len(tcols))
		cells[0] = strconv.Itoa(i + 1)
		copy(cells[1:], r)
		trows[i] = cells
	}
	// rows must never outnumber columns, even transiently
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

// buildAttributes returns (columns, rows) for the current dataset. Files that
// carry attributes show them; everything else lists its measured vertices.
func (m *Model) buildAttributes() ([]string, [][]string) {
	switch strings.ToLower(filepath.Ext(m.selPath)) {
	case ".geojson", ".json":
		if cols, rows := buildAttrsJSON(m.selPath); len(rows) > 0 {
			return cols, rows
		}
	case ".csv":
		return buildAttrsCSV(m.selPath)
	}
	return m.vertexRows()
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func (m *Model) vertexRows() ([]string, [][]string) {
	rows := make([][]string, 0, len(m.data.Vertices))
	i := 0
	for part, n := range m.data.Groups {
		for _, p := range m.data.Vertices[i : i+n] {
			rows = append(rows, []string{strconv.Itoa(part), ftoa(p.X), ftoa(p.Y), ftoa(p.M)})
		}
		i += n
	}
	return []string{"part", "x", "y", "m"}, rows
}

// buildAttrsJSON unions the attribute keys of every feature. GeoJSON keeps
// them under "properties", GP record sets under "attributes".
func buildAttrsJSON(path string) ([]string, [][]string) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil
	}
	var raw struct {
		Type     string            `json:"type"`
		Features []json.RawMessage `json:"features"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, nil
	}
	features := raw.Features
	if raw.Type == "Feature" {
		features = []json.RawMessage{b}
	}

	var order []string
	seen := map[string]bool{}
	var props []map[string]any
	for _, f := range features {
		var fm struct {
			Properties map[string]any `json:"properties"`
			Attributes map[string]any `json:"attributes"`
		}
		if json.Unmarshal(f, &fm) != nil {
			continue
		}
		pm := fm.Properties
		if pm == nil {
			pm = fm.Attributes
		}
		props = append(props, pm)
		for k := range pm {
			if !seen[k] {
				seen[k] = true
				order = append(order, k)
			}
		}
	}
	rows := make([][]string, 0, len(props))
	for _, pm := range props {
		vals := make([]string, len(order))
		for i, k := range order {
			vals[i] = cell(pm[k])
		}
		rows = append(rows, vals)
	}
	return order, rows
}

func cell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	bs, _ := json.Marshal(v)
	return string(bs)
}

// buildAttrsCSV returns the header as columns and each record as a row.
func buildAttrsCSV(path string) ([]string, [][]string) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	if err != nil || len(recs) == 0 {
		return nil, nil
	}
	header := recs[0]
	rows := make([][]string, 0, len(recs)-1)
	for _, rec := range recs[1:] {
		vals := make([]string, len(header))
		copy(vals, rec)
		rows = append(rows, vals)
	}
	return header, rows
}
