package main

import (
	"fmt"

	"pomo/internal/clock"
	"pomo/internal/logging"
	"pomo/internal/notify"
	"pomo/internal/timer"
	"pomo/internal/ui"

	"github.com/rs/zerolog/log"
)

// RunCmd starts or resumes the full-screen timer.
type RunCmd struct{}

func (r *RunCmd) Run(g *Globals) error {
	cfg, store, err := g.setup()
	if err != nil {
		return err
	}

	// The alt screen owns the terminal, so logs go to a file.
	logFile := cfg.GetLogFile()
	closer, err := logging.ToFile(logFile)
	if err != nil {
		log.Warn().Err(err).Str("path", logFile).Msg("Logging disabled")
		logging.Discard()
	} else {
		defer closer.Close()
	}

	state, events := timer.LoadOrInit(store, clock.System.Now())
	log.Info().
		Str("path", store.Path()).
		Str("phase", state.Phase.String()).
		Int64("remaining", state.Remaining).
		Bool("paused", state.Paused).
		Int("fast_forwarded", len(events)).
		Msg("Session started")

	app := ui.NewApp(state, store, ui.NewStyles(cfg), &ui.AppConfig{
		Keys:     &cfg.Keys,
		Clock:    clock.System,
		Notifier: notify.NewSink(notify.New(), cfg.Notifications),
	})
	app.NoteResume(events)

	final, err := ui.Run(app)
	if err != nil {
		return err
	}

	fmt.Fprintln(g.out(), describe(final))
	return nil
}

// describe is the one-line summary of a session, e.g. "🍅 Work 12:34 (paused)".
func describe(s timer.State) string {
	line := fmt.Sprintf("%s %s %s", s.Phase.Emoji(), s.Phase, s.Clock())
	if s.Paused {
		line += " (paused)"
	}
	return line
}
