package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"compactgeo/internal/compact"
	"compactgeo/internal/geom"
	"compactgeo/internal/measure"
)

func (a *app) inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <string>...",
		Short: "Describe compact geometry strings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			total := geom.EmptyEnvelope()
			n := 0
			for i, s := range args {
				if len(args) > 1 {
					if i > 0 {
						fmt.Fprintln(w)
					}
					fmt.Fprintf(w, "#%d\n", i)
				}
				pl, err := inspect(w, s)
				if err != nil {
					return errors.Wrapf(err, "string %d", i)
				}
				total = total.UnionEnvelope(pl.Extent())
				n += pl.NumPoints()
			}
			if len(args) > 1 {
				fmt.Fprintf(w, "\ntotal:    %s points", humanize.Comma(int64(n)))
				if !total.IsEmpty() {
					fmt.Fprintf(w, " in [%g %g, %g %g]", total.Left, total.Bottom, total.Right, total.Top)
				}
				fmt.Fprintln(w)
			}
			return nil
		},
	}
}

// inspect prints a summary of one string and returns its points as a path.
func inspect(w io.Writer, s string) (*geom.Polyline, error) {
	h, err := compact.DecodeHeader(s)
	if err != nil {
		return nil, err
	}
	pts, err := compact.Decode(s)
	if err != nil {
		return nil, err
	}
	pl := geom.NewPolylineFromPoints(pts)

	if h.Legacy {
		fmt.Fprintln(w, "format:   legacy")
	} else {
		fmt.Fprintf(w, "format:   version %d, has z: %v, has m: %v\n", h.Version, h.Flags.HasZ(), h.Flags.HasM())
	}
	fmt.Fprintf(w, "xy mult:  %g\n", h.XYMultiplier)
	if h.Flags.HasZ() {
		fmt.Fprintf(w, "z mult:   %g\n", h.ZMultiplier)
	}
	if h.Flags.HasM() {
		fmt.Fprintf(w, "m mult:   %g\n", h.MMultiplier)
	}
	fmt.Fprintf(w, "size:     %s\n", humanize.Bytes(uint64(len(s))))
	fmt.Fprintf(w, "points:   %s\n", humanize.Comma(int64(pl.NumPoints())))
	if pl.NumPoints() == 0 {
		return pl, nil
	}
	ext := pl.Extent()
	fmt.Fprintf(w, "extent:   [%g %g, %g %g] %g x %g\n", ext.Left, ext.Bottom, ext.Right, ext.Top, ext.Width(), ext.Height())
	fmt.Fprintf(w, "length:   %v\n", measure.Of(pts))
	if measure.IsRing(pts) {
		fmt.Fprintf(w, "area:     %v\n", measure.RingArea(pts))
	}
	if h.Flags.HasM() {
		fmt.Fprintf(w, "m range:  %g .. %g\n", pts[0].M, pts[len(pts)-1].M)
	}
	return pl, nil
}
