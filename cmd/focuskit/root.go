package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/focuskit/internal/config"
	"github.com/dshills/focuskit/internal/kernel"
)

// App holds the persistent flags shared by every subcommand.
type App struct {
	ConfigPath string
	LogLevel   string
	Stats      bool
}

// NewRootCmd builds the focuskit command tree.
func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "focuskit",
		Short:        "Inspect focus kernel presets, keymaps and layouts",
		SilenceUsage: true,
		Version:      fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Example: strings.TrimSpace(`
  # Role preset table
  focuskit roles

  # Bindings in scope for a grid zone
  focuskit keymap --role grid

  # Walk a layout with the arrow keys
  focuskit nav layout.yaml down down right

  # Print the Tab sequence of a layout
  focuskit tab layout.yaml --count 6

  # Drive a layout with the keyboard and mouse
  focuskit demo layout.yaml
`),
	}

	cmd.PersistentFlags().StringVarP(&app.ConfigPath, "config", "c", "", "Path to a TOML or YAML configuration file")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config file")
	cmd.PersistentFlags().BoolVar(&app.Stats, "stats", false, "Print dispatch statistics after layout commands")

	cmd.AddCommand(newRolesCmd(app))
	cmd.AddCommand(newKeymapCmd(app))
	cmd.AddCommand(newNavCmd(app))
	cmd.AddCommand(newTabCmd(app))
	cmd.AddCommand(newAttrsCmd(app))
	cmd.AddCommand(newDemoCmd(app))
	return cmd
}

// loadConfig returns the configuration named by --config, or the defaults.
func (a *App) loadConfig() (config.Config, error) {
	cfg := config.Default()
	if a.ConfigPath != "" {
		loaded, err := config.Load(a.ConfigPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if a.LogLevel != "" {
		if _, err := config.ParseLevel(a.LogLevel); err != nil {
			return cfg, err
		}
		cfg.Log.Level = a.LogLevel
	}
	return cfg, nil
}

// newKernel creates a kernel for one command invocation. Persistence is
// disabled; the CLI never writes application state.
func (a *App) newKernel(cmd *cobra.Command, opts kernel.Options) (*kernel.Kernel, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	cfg.Persistence.Key = ""
	cfg.Dispatch.Metrics = cfg.Dispatch.Metrics || a.Stats
	opts.Config = &cfg
	opts.Logger = newLogger(cmd.ErrOrStderr(), cfg.LogLevel())
	return kernel.New(opts)
}

// writeStats prints per-command dispatch counts when --stats is set.
func (a *App) writeStats(w io.Writer, k *kernel.Kernel) error {
	m := k.Metrics()
	if !a.Stats || m == nil {
		return nil
	}
	t := &table{}
	t.add("COMMAND", "COUNT", "ERRORS", "LAST")
	for _, cm := range m.TopCommands(10) {
		t.add(cm.Type, strconv.FormatUint(cm.DispatchCount, 10), strconv.FormatUint(cm.ErrorCount, 10), cm.LastStatus.String())
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return t.write(w)
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
