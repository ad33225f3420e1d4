package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pomo/internal/clock"
	"pomo/internal/storage"
	"pomo/internal/timer"
	"pomo/internal/watch"

	"github.com/rs/zerolog/log"
)

// StatusCmd prints the session as it stands right now. It never writes
// the session file.
type StatusCmd struct {
	JSON  bool `help:"Print the session as JSON in the session file format."`
	Watch bool `short:"w" help:"Keep printing every second and whenever the session file changes."`
}

func (c *StatusCmd) Run(g *Globals) error {
	_, store, err := g.setup()
	if err != nil {
		return err
	}
	store = store.ReadOnly()

	if !c.Watch {
		return c.print(g.out(), store, clock.System)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.watch(ctx, g.out(), store, clock.System, time.Second)
}

func (c *StatusCmd) print(w io.Writer, l timer.Loader, clk clock.Clock) error {
	state, _ := timer.LoadOrInit(l, clk.Now())

	if c.JSON {
		data, err := storage.Encode(state)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	_, err := fmt.Fprintln(w, describe(state))
	return err
}

func (c *StatusCmd) watch(ctx context.Context, w io.Writer, store *storage.Store, clk clock.Clock, every time.Duration) error {
	changed := make(chan struct{}, 1)
	watcher, err := watch.New(store.Path(), func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Start(ctx); err != nil {
		// Keep polling; only change notifications are lost.
		log.Warn().Err(err).Str("path", store.Path()).Msg("Cannot watch session file")
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		if err := c.print(w, store, clk); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		case <-changed:
			log.Debug().Str("path", store.Path()).Msg("Session file changed")
		}
	}
}
