package tui

import (
	"context"
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jpl-au/bookrab/internal/logging"
)

// Run shows the TUI until the user quits or ctx is cancelled. The book
// lists are reloaded whenever root changes on disk.
func Run(ctx context.Context, lib Library, root string, smartCase bool) error {
	log := logging.ForComponent(logging.CompTUI)

	p := tea.NewProgram(New(ctx, lib, smartCase), tea.WithAltScreen(), tea.WithContext(ctx))

	w, err := NewWatcher(root, func() { p.Send(ReloadMsg{}) })
	if err != nil {
		log.Warn("live reload disabled", slog.Any("error", err))
	} else {
		if err := w.Start(); err != nil {
			log.Warn("live reload disabled", slog.Any("error", err))
		}
		defer w.Stop()
	}

	log.Info("tui started", slog.String("root", root))
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
