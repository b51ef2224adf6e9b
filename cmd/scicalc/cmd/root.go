package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/scicalc/config"
)

// app holds settings shared by all commands.
type app struct {
	cfgFile string
	verbose bool
	angle   string
	lenient bool

	cfg *config.Config
	log *slog.Logger
}

// NewRootCmd creates the scicalc command tree.
func NewRootCmd() *cobra.Command {
	a := new(app)
	root := &cobra.Command{
		Use:   "scicalc",
		Short: "Scientific calculator",
		Long: `scicalc evaluates calculator expressions like "2 + 3 * 4" or
"sin(30) + √(2) * n!(5)".

Settings come from a TOML or YAML config file, then SCICALC_* environment
variables, then flags.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file, TOML or YAML (default $SCICALC_CONFIG)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug messages")
	root.PersistentFlags().StringVar(&a.angle, "angle", "", "angle mode, DEG or RAD (default DEG)")
	root.PersistentFlags().BoolVar(&a.lenient, "lenient", false, "skip malformed input instead of failing")
	root.AddCommand(newEvalCmd(a), newReplCmd(a), newVersionCmd())
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) setup(cmd *cobra.Command) error {
	path := a.cfgFile
	if path == "" {
		path = os.Getenv(config.EnvPrefix + "_CONFIG")
	}
	cfg := config.Default()
	if path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
	}
	if err := cfg.ApplyEnv(config.EnvPrefix); err != nil {
		return fmt.Errorf("couldn't read environment: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("angle") {
		cfg.Angle = a.angle
	}
	if flags.Changed("lenient") {
		cfg.Lenient = a.lenient
	}
	if a.verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	a.cfg = cfg
	a.log = newLogger(cmd.ErrOrStderr(), cfg.Level())
	a.log.Debug("settings",
		slog.String("config", path),
		slog.String("angle", cfg.AngleMode().String()),
		slog.Bool("lenient", cfg.Lenient),
		slog.Int("aliases", len(cfg.Aliases)),
	)
	return nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
