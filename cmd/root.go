package cmd

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/spf13/cobra"
	xterm "golang.org/x/term"

	"github.com/fchimpan/block-breaker/internal/config"
	"github.com/fchimpan/block-breaker/internal/sprite"
)

type Deps struct {
	LoadConfig  func(path string) (config.Config, error)
	LoadSprite  func(path string, fallback color.RGBA) (*sprite.Sprite, error)
	OpenLogFile func(path string) (io.WriteCloser, error)
	IsTerminal  func() bool
	RunTUI      func(ctx context.Context, cfg config.Config, helper *sprite.Sprite, logger *log.Logger, seed uint64, speed float64) error
	Now         func() time.Time
	Stdout      io.Writer
	Stderr      io.Writer
}

func DefaultDeps() Deps {
	return Deps{
		LoadConfig:  config.Load,
		LoadSprite:  sprite.Load,
		OpenLogFile: openLogFile,
		IsTerminal:  isInteractive,
		RunTUI:      defaultRunTUI,
		Now:         time.Now,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
	}
}

// isInteractive reports whether both ends of the session are a terminal.
// Bubble Tea reads keys from stdin and draws to stdout.
func isInteractive() bool {
	return term.FromEnv().IsTerminalOutput() && xterm.IsTerminal(int(os.Stdin.Fd()))
}

type options struct {
	configPath string
	variant    string
	seed       uint64
	speed      float64
	logFile    string
	logLevel   string
}

func NewRootCmd(deps Deps) *cobra.Command {
	var opts options

	c := &cobra.Command{
		Use:          "block-breaker",
		Short:        "Play breakout in your terminal",
		Long:         "Play breakout in your terminal. Break every block with the ball; items dropped by broken blocks help you along.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.speed <= 0 {
				return fmt.Errorf("--speed must be > 0")
			}
			if opts.variant != "" && !config.Variant(opts.variant).Valid() {
				return fmt.Errorf("invalid --variant %q (expected %s or %s)", opts.variant, config.VariantSweep, config.VariantPowerUp)
			}
			if opts.seed == 0 {
				opts.seed = uint64(deps.Now().UnixNano())
			}

			if err := run(cmd.Context(), deps, opts); err != nil {
				switch {
				case config.IsValidation(err):
					fmt.Fprintln(deps.Stderr, "hint: fix the value in your config file, or pass --config to use another one")
				case errors.Is(err, errNotTerminal):
					fmt.Fprintln(deps.Stderr, "hint: block-breaker needs an interactive terminal")
				}
				return err
			}
			return nil
		},
	}

	c.Flags().StringVarP(&opts.configPath, "config", "c", "", "path to a config file (default: ~/.block-breaker/config.yaml, ./configs/breaker.yaml, built-in)")
	c.Flags().StringVar(&opts.variant, "variant", "", "item variant: sweep or powerup (default from config)")
	c.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (0 picks one from the clock)")
	c.Flags().Float64VarP(&opts.speed, "speed", "s", 1.0, "game speed multiplier (1.0 is normal)")
	c.Flags().StringVar(&opts.logFile, "log-file", "", "write logs to this file (default: logs are discarded)")
	c.Flags().StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")

	c.SetOut(deps.Stdout)
	c.SetErr(deps.Stderr)
	return c
}
