package main

import (
	"fmt"

	"pomo/internal/clock"
	"pomo/internal/timer"

	"github.com/rs/zerolog/log"
)

// ResetCmd replaces the session with a fresh work phase.
type ResetCmd struct{}

func (r *ResetCmd) Run(g *Globals) error {
	_, store, err := g.setup()
	if err != nil {
		return err
	}

	state := timer.New(clock.System.Now())
	if err := store.Save(state); err != nil {
		return fmt.Errorf("reset session: %w", err)
	}
	log.Debug().Str("path", store.Path()).Msg("Session reset")

	fmt.Fprintln(g.out(), "Session reset: "+describe(state))
	return nil
}
