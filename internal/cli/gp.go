package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"compactgeo/internal/export"
	"compactgeo/internal/gp"
)

func (a *app) gpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gp <recordset.json>",
		Short: "Decode the features of a geoprocessing record set",
		Long: `
Reads a geoprocessing service record set (geometryType, features with
geometry or compressedGeometry) and writes every feature's shape in the
chosen --format. A record set whose geometry type is not point, polyline,
polygon or envelope is rejected.
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(cmd.Flag("format").Value.String())
			if err != nil {
				return err
			}
			return a.gp(cmd.OutOrStdout(), args[0], f)
		},
	}
	cmd.Flags().String("format", "wkt", "Output format: "+strings.Join(export.Names(), ", ")+".")
	return cmd
}

func (a *app) gp(w io.Writer, path string, f export.Format) error {
	b, err := readInput(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}
	var rs gp.RecordSet
	if err := json.Unmarshal(b, &rs); err != nil {
		return errors.Wrapf(err, "parsing %s", path)
	}
	shapes, err := rs.Shapes()
	if err != nil {
		return err
	}
	a.log.Info("record set", zap.String("path", path), zap.Stringer("type", rs.GeometryType), zap.Int("features", len(shapes)))
	var buf bytes.Buffer
	if err := export.Write(&buf, f, shapes); err != nil {
		return err
	}
	_, err = w.Write(buf.Bytes())
	return err
}
