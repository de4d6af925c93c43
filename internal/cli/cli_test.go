package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"compactgeo/internal/compact"
	"compactgeo/internal/geom"
)

type harness struct {
	app    *app
	out    bytes.Buffer
	viewed []tea.Model
}

func newHarness() *harness {
	h := &harness{}
	h.app = &app{conf: newConfig(), log: zap.NewNop()}
	h.app.run = func(m tea.Model) error {
		h.viewed = append(h.viewed, m)
		return nil
	}
	return h
}

func (h *harness) exec(args ...string) error {
	root := h.app.rootCmd()
	root.SetOut(&h.out)
	root.SetErr(&h.out)
	root.SetArgs(append([]string{"--log.level", "error"}, args...))
	return root.Execute()
}

func tempFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestEncode(t *testing.T) {
	p := tempFile(t, "route.wkt", "MULTILINESTRING ((0 0, 1 1), (5 5, 6 6, 7 7))")
	h := newHarness()
	require.NoError(t, h.exec("encode", p))

	lines := strings.Split(strings.TrimSpace(h.out.String()), "\n")
	require.Len(t, lines, 2)
	pts, err := compact.Decode(lines[1])
	require.NoError(t, err)
	require.Equal(t, []geom.Point{{X: 5, Y: 5}, {X: 6, Y: 6}, {X: 7, Y: 7}}, pts)
}

func TestEncodeMeasure(t *testing.T) {
	p := tempFile(t, "route.wkt", "LINESTRING (0 0, 1 0)")
	h := newHarness()
	require.NoError(t, h.exec("encode", "--measure", p))

	pts, err := compact.Decode(strings.TrimSpace(h.out.String()))
	require.NoError(t, err)
	require.Len(t, pts, 2)
	assert.Zero(t, pts[0].M)
	assert.InDelta(t, 111194.93, pts[1].M, 0.01)
}

func TestEncodeBinary(t *testing.T) {
	in := tempFile(t, "route.wkt", "LINESTRING (0 0, 1 0, 2 1)")
	out := filepath.Join(t.TempDir(), "route.pcb")
	h := newHarness()
	require.NoError(t, h.exec("encode", "--format", "binary", "-o", out, in))
	require.Empty(t, h.out.String())

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	pl, err := geom.PolylineFromBytes(b)
	require.NoError(t, err)
	require.Equal(t, 3, pl.NumPoints())

	require.Error(t, newHarness().exec("encode", "--format", "wkt", in))
	require.Error(t, newHarness().exec("encode", filepath.Join(t.TempDir(), "missing.wkt")))
}

func TestDecode(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.exec("decode", "+5+a+b", "+0+1+2+1+1+1+2+2|+1+0+a"))
	require.Equal(t, "POINT (2 2.2)\nLINESTRING M (1 1 0, 3 3 10)\n", h.out.String())

	err := newHarness().exec("decode", "+0+1+2+1+1")
	require.True(t, errors.Is(err, compact.ErrMalformed))
	require.Error(t, newHarness().exec("decode"))
	require.Error(t, newHarness().exec("decode", "--format", "kml", "+1+1+1"))
}

func TestDecodeFromFile(t *testing.T) {
	p := tempFile(t, "routes.cgeo", "# two routes\n+1+1+1+1+1\n\n+5+a+b\n")
	h := newHarness()
	require.NoError(t, h.exec("decode", "--in", p, "--format", "csv"))
	require.Equal(t, "shape,part,x,y,m\n0,0,1,1,0\n0,0,2,2,0\n1,0,2,2.2,0\n", h.out.String())

	b, err := geom.NewPolylineFromPoints([]geom.Point{{X: 1, Y: 2, M: 3}}).MarshalBinary()
	require.NoError(t, err)
	p = tempFile(t, "route.pcb", string(b))
	h = newHarness()
	require.NoError(t, h.exec("decode", "--in", p, "--format", "compact"))
	pts, err := compact.Decode(strings.TrimSpace(h.out.String()))
	require.NoError(t, err)
	require.Equal(t, []geom.Point{{X: 1, Y: 2, M: 3}}, pts)
}

func TestInspect(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.exec("inspect", "+0+1+2+1+1+1+2+2|+1+0+a"))
	out := h.out.String()
	assert.Contains(t, out, "format:   version 1, has z: false, has m: true")
	assert.Contains(t, out, "points:   2")
	assert.Contains(t, out, "extent:   [1 1, 3 3] 2 x 2")
	assert.NotContains(t, out, "area:")
	assert.Contains(t, out, "m range:  0 .. 10")

	h = newHarness()
	require.NoError(t, h.exec("inspect", "+5"))
	assert.Contains(t, h.out.String(), "format:   legacy")
	assert.Contains(t, h.out.String(), "points:   0")

	err := newHarness().exec("inspect", "+0+3+0+1")
	require.True(t, errors.Is(err, compact.ErrUnsupportedVersion))
}

func TestInspectRingsAndTotals(t *testing.T) {
	ring, err := compact.Encode([]geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 0}})
	require.NoError(t, err)
	h := newHarness()
	require.NoError(t, h.exec("inspect", ring, "+0+1+2+1+5+5|+1+0"))
	out := h.out.String()
	assert.Contains(t, out, "#0\n")
	assert.Contains(t, out, "#1\n")
	assert.Contains(t, out, "area:     12,36")
	assert.Contains(t, out, "km²")
	assert.Contains(t, out, "total:    6 points in [0 0, 5 5]")

	err = newHarness().exec("inspect", ring, "+0+9")
	require.True(t, errors.Is(err, compact.ErrUnsupportedVersion))
	assert.Contains(t, err.Error(), "string 1")
}

func TestGP(t *testing.T) {
	body := `{"geometryType":"esriGeometryPolyline","features":[
	  {"attributes":{"Name":"Route 1"},"compressedGeometry":"+1+1+1+1+1"},
	  {"attributes":{"Name":"Route 2"},"geometry":{"paths":[[[0,0],[2,2]]]}}]}`
	p := tempFile(t, "rs.json", body)
	h := newHarness()
	require.NoError(t, h.exec("gp", p))
	require.Equal(t, "LINESTRING (1 1, 2 2)\nLINESTRING (0 0, 2 2)\n", h.out.String())

	p = tempFile(t, "bad.json", `{"geometryType":"esriGeometryMultipoint","features":[]}`)
	require.Error(t, newHarness().exec("gp", p))
}

func TestView(t *testing.T) {
	t.Setenv("COMPACTGEO_VIEW_ZOOM", "3")
	p := tempFile(t, "route.wkt", "LINESTRING (0 0, 1 1)")
	h := newHarness()
	require.NoError(t, h.exec(p))
	require.NoError(t, h.exec("view", "--dir", filepath.Dir(p)))
	require.Len(t, h.viewed, 2)
	assert.Equal(t, 3.0, h.app.conf.GetFloat64(keyViewZoom))
	assert.Equal(t, filepath.Dir(p), h.app.conf.GetString(keyViewDir))

	require.Error(t, h.exec("view", "a", "b"))
}

func TestConfigFile(t *testing.T) {
	cfg := tempFile(t, "compactgeo.yaml", "decode:\n  format: geojson\n")
	h := newHarness()
	require.NoError(t, h.exec("--config", cfg, "decode", "+5+a+b"))
	assert.Contains(t, h.out.String(), `"type":"Point"`)

	require.Error(t, newHarness().exec("--config", filepath.Join(t.TempDir(), "nope.yaml"), "decode", "+5+a+b"))
}

func TestNewLogger(t *testing.T) {
	lg, err := newLogger("debug", "", 10, true)
	require.NoError(t, err)
	assert.False(t, lg.Core().Enabled(zap.ErrorLevel), "viewer without a file is silent")

	file := filepath.Join(t.TempDir(), "compactgeo.log")
	lg, err = newLogger("warn", file, 1, true)
	require.NoError(t, err)
	lg.Info("dropped")
	lg.Warn("kept")
	require.NoError(t, lg.Sync())
	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"kept"`)
	assert.NotContains(t, string(b), "dropped")

	_, err = newLogger("loud", "", 10, false)
	require.Error(t, err)
}

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, n := range []string{"view", "encode", "decode", "inspect", "gp"} {
		assert.True(t, names[n], n)
	}
}
