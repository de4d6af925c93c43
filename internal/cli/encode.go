package cli

import (
	"bytes"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"compactgeo/internal/export"
	"compactgeo/internal/geom"
	"compactgeo/internal/measure"
	"compactgeo/internal/source"
)

func (a *app) encodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode <path>",
		Short: "Encode every part of a geometry file as compact strings",
		Long: `
Reads any supported file (GeoJSON, GP record set JSON, CSV, KML, WKT, .cgeo,
binary .pcb) and writes one compact geometry string per part. With --measure
each vertex gets the distance travelled along its part as M. With
--format binary all parts are written as one binary poly curve instead.
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.encode(cmd.OutOrStdout(), args[0])
		},
	}
	f := cmd.Flags()
	f.Bool("measure", false, "Replace M with the cumulative great-circle distance in metres.")
	f.String("format", "compact", "Output format: compact or binary.")
	f.StringP("out", "o", "", "Write to this file instead of stdout.")
	_ = a.conf.BindPFlag(keyEncodeMeasure, f.Lookup("measure"))
	_ = a.conf.BindPFlag(keyEncodeFormat, f.Lookup("format"))
	_ = a.conf.BindPFlag("encode.out", f.Lookup("out"))
	return cmd
}

func (a *app) encode(stdout io.Writer, path string) error {
	format, err := export.ParseFormat(a.conf.GetString(keyEncodeFormat))
	if err != nil {
		return err
	}
	if format != export.Compact && format != export.Binary {
		return errors.Errorf("encode: format must be compact or binary, not %v", format)
	}
	d, err := source.Load(path)
	if err != nil {
		return errors.Wrapf(err, "loading %s", path)
	}
	parts, err := dataParts(d)
	if err != nil {
		return err
	}
	if a.conf.GetBool(keyEncodeMeasure) {
		for i, p := range parts {
			parts[i] = measure.Assign(p)
		}
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, []geom.Shape{geom.NewPolylineFromParts(parts)}); err != nil {
		return err
	}
	a.log.Info("encoded",
		zap.String("path", path),
		zap.Int("parts", len(parts)),
		zap.Int("vertices", len(d.Vertices)),
		zap.String("size", humanize.Bytes(uint64(buf.Len()))))
	return writeOut(stdout, a.conf.GetString("encode.out"), buf.Bytes())
}

func dataParts(d geom.Data) ([][]geom.Point, error) {
	pl, err := d.Polyline()
	if err != nil {
		return nil, err
	}
	return geom.Parts(pl), nil
}

func writeOut(stdout io.Writer, path string, b []byte) error {
	if path == "" {
		_, err := stdout.Write(b)
		return err
	}
	return errors.Wrapf(os.WriteFile(path, b, 0o644), "writing %s", path)
}
