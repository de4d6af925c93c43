// Package cli is the compactgeo command line.
package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type app struct {
	conf *viper.Viper
	log  *zap.Logger
	// run starts the viewer; tests replace it.
	run func(tea.Model) error
}

func runProgram(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}

// setup reads the config file and builds the logger. It runs before every
// command.
func (a *app) setup(cmd *cobra.Command) error {
	if err := readConfigFile(a.conf); err != nil {
		return err
	}
	viewer := cmd.Name() == "view" || !cmd.HasParent()
	lg, err := newLogger(a.conf.GetString(keyLogLevel), a.conf.GetString(keyLogFile),
		a.conf.GetInt(keyLogMaxSize), viewer)
	if err != nil {
		return err
	}
	a.log = lg
	return nil
}

// NewRootCmd builds the command tree. Every call gets its own configuration.
func NewRootCmd() *cobra.Command {
	a := &app{conf: newConfig(), log: zap.NewNop(), run: runProgram}
	return a.rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "compactgeo [path]",
		Short: "Compact geometry codec and terminal viewer",
		Long: `
compactgeo encodes and decodes compact geometry strings: point sequences
written as delta-encoded base-32 tokens, optionally carrying measures.
Without a subcommand it opens the terminal map viewer.
`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}
	root.RunE = func(cmd *cobra.Command, args []string) error {
		return a.view(args)
	}

	pf := root.PersistentFlags()
	pf.String(keyConfig, "", "Configuration file (yaml, toml or json). Overridden by environment variables and flags.")
	pf.String(keyLogLevel, "info", "Log level: debug, info, warn or error.")
	pf.String(keyLogFile, "", "Log to this file (JSON, rotated) instead of stderr.")
	for _, k := range []string{keyConfig, keyLogLevel, keyLogFile} {
		_ = a.conf.BindPFlag(k, pf.Lookup(k))
	}
	addViewFlags(a, root)

	root.AddCommand(a.viewCmd(), a.encodeCmd(), a.decodeCmd(), a.inspectCmd(), a.gpCmd())
	return root
}

// Execute runs the command line and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
