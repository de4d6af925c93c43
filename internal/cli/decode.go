package cli

import (
	"bytes"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"compactgeo/internal/compact"
	"compactgeo/internal/export"
	"compactgeo/internal/geom"
	"compactgeo/internal/source"
)

func (a *app) decodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [strings...]",
		Short: "Decode compact geometry strings",
		Long: `
Decodes compact geometry strings given as arguments, or read from --in (one
per line, # comments allowed; a binary poly curve file is detected and read
as well). A string with a single vertex becomes a point, anything else a
line. Output is one record per line in the chosen --format.
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.decode(cmd.OutOrStdout(), args)
		},
	}
	f := cmd.Flags()
	f.StringP("in", "i", "", "Read input from this file ('-' for stdin).")
	f.String("format", "wkt", "Output format: "+strings.Join(export.Names(), ", ")+".")
	f.StringP("out", "o", "", "Write to this file instead of stdout.")
	_ = a.conf.BindPFlag(keyDecodeFormat, f.Lookup("format"))
	_ = a.conf.BindPFlag("decode.in", f.Lookup("in"))
	_ = a.conf.BindPFlag("decode.out", f.Lookup("out"))
	return cmd
}

func shapeOf(pts []geom.Point) geom.Shape {
	if len(pts) == 1 {
		return pts[0]
	}
	return geom.NewPolylineFromPoints(pts)
}

// decodeLines decodes every non-blank, non-comment line in parallel and
// keeps input order.
func (a *app) decodeLines(lines []string) ([]geom.Shape, error) {
	type input struct {
		n int
		s string
	}
	var inputs []input
	for i, line := range lines {
		s := strings.TrimSpace(line)
		if s == "" || s[0] == '#' {
			continue
		}
		inputs = append(inputs, input{n: i + 1, s: s})
	}
	out := make([]geom.Shape, len(inputs))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			pts, err := compact.Decode(in.s)
			if err != nil {
				a.log.Debug("decode failed", zap.Int("input", in.n), zap.String("string", in.s))
				return errors.Wrapf(err, "input %d", in.n)
			}
			out[i] = shapeOf(pts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func readInput(in string) ([]byte, error) {
	if in == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(in)
}

func (a *app) decode(stdout io.Writer, args []string) error {
	format, err := export.ParseFormat(a.conf.GetString(keyDecodeFormat))
	if err != nil {
		return err
	}
	lines := args
	var shapes []geom.Shape
	if in := a.conf.GetString("decode.in"); in != "" {
		b, err := readInput(in)
		if err != nil {
			return errors.Wrapf(err, "reading %s", in)
		}
		if source.Sniff(b) {
			pl, err := geom.PolylineFromBytes(b)
			if err != nil {
				return errors.Wrapf(err, "reading %s", in)
			}
			shapes = append(shapes, pl)
		} else {
			lines = append(lines, strings.Split(string(b), "\n")...)
		}
	}
	decoded, err := a.decodeLines(lines)
	if err != nil {
		return err
	}
	shapes = append(shapes, decoded...)
	if len(shapes) == 0 {
		return errors.New("decode: no input; pass strings or --in")
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, shapes); err != nil {
		return err
	}
	a.log.Debug("decoded", zap.Int("shapes", len(shapes)), zap.Stringer("format", format))
	return writeOut(stdout, a.conf.GetString("decode.out"), buf.Bytes())
}
