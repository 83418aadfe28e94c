package cmd

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/fchimpan/block-breaker/internal/config"
	"github.com/fchimpan/block-breaker/internal/sprite"
	"github.com/fchimpan/block-breaker/internal/tui"
)

func defaultRunTUI(ctx context.Context, cfg config.Config, helper *sprite.Sprite, logger *log.Logger, seed uint64, speed float64) error {
	p := tea.NewProgram(
		tui.NewModel(cfg, helper, logger, seed, speed),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
