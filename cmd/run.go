package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/fchimpan/block-breaker/internal/config"
	"github.com/fchimpan/block-breaker/internal/sprite"
)

var errNotTerminal = errors.New("stdout is not a terminal")

func run(ctx context.Context, deps Deps, opts options) error {
	if deps.LoadConfig == nil {
		return fmt.Errorf("deps.LoadConfig is nil")
	}
	if deps.LoadSprite == nil {
		return fmt.Errorf("deps.LoadSprite is nil")
	}
	if deps.IsTerminal == nil {
		return fmt.Errorf("deps.IsTerminal is nil")
	}
	if deps.RunTUI == nil {
		return fmt.Errorf("deps.RunTUI is nil")
	}

	logger, closeLog, err := newLogger(deps, opts.logFile, opts.logLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := deps.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.variant != "" {
		cfg.Variant = config.Variant(opts.variant)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger.Debug("config loaded", "path", opts.configPath, "variant", cfg.Variant, "fps", cfg.FPS)

	if !deps.IsTerminal() {
		return errNotTerminal
	}

	var helper *sprite.Sprite
	if cfg.Variant == config.VariantSweep {
		fallback, err := sprite.ParseHex(cfg.Sweep.HelperColor)
		if err != nil {
			return fmt.Errorf("failed to parse helper color: %w", err)
		}
		helper, err = deps.LoadSprite(cfg.Sweep.HelperSprite, fallback)
		if err != nil {
			logger.Warn("helper sprite unavailable, drawing a placeholder", "error", err)
		}
		if helper == nil {
			helper = sprite.Placeholder(fallback)
		}
	}

	if err := deps.RunTUI(ctx, cfg, helper, logger, opts.seed, opts.speed); err != nil {
		return fmt.Errorf("game exited with error: %w", err)
	}
	return nil
}
