package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"compactgeo/internal/tui"
)

// addViewFlags puts the viewer flags on the root so that both "compactgeo"
// and "compactgeo view" accept them.
func addViewFlags(a *app, root *cobra.Command) {
	pf := root.PersistentFlags()
	pf.String("dir", "", "Directory listed in the viewer's file sidebar (default: working directory).")
	pf.Float64("zoom", 1, "Initial viewer zoom.")
	_ = a.conf.BindPFlag(keyViewDir, pf.Lookup("dir"))
	_ = a.conf.BindPFlag(keyViewZoom, pf.Lookup("zoom"))
}

func (a *app) viewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [path]",
		Short: "Open the terminal map viewer, optionally preloading a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.view(args)
		},
	}
}

func (a *app) view(args []string) error {
	opts := tui.Options{
		Dir:    a.conf.GetString(keyViewDir),
		Zoom:   a.conf.GetFloat64(keyViewZoom),
		Logger: a.log,
	}
	var m tui.Model
	if len(args) == 1 {
		a.log.Info("opening viewer", zap.String("path", args[0]))
		m = tui.NewWithPath(opts, args[0])
	} else {
		m = tui.New(opts)
	}
	return errors.Wrap(a.run(m), "viewer")
}
