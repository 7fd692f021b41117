package plugin

import (
	"context"
	"fmt"

	"embedbot/internal/core/port"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
)

// Plugin is initialized once after the gateway session is ready.
type Plugin interface {
	Name() string
	Init(ctx context.Context, settings port.Settings) error
}

// InitAll runs every plugin concurrently and waits for all of them. A failing or panicking plugin is logged
// and does not affect the others. The returned error joins all failures.
func InitAll(ctx context.Context, plugins []Plugin, settings port.Settings) error {
	p := pool.New().WithErrors().WithContext(ctx)

	for _, pl := range plugins {
		p.Go(func(ctx context.Context) error {
			l := log.With().Str("plugin", pl.Name()).Logger()

			if err := safeInit(ctx, pl, settings); err != nil {
				l.Error().Err(err).Msg("plugin failed to initialize")
				return fmt.Errorf("%s: %w", pl.Name(), err)
			}

			l.Debug().Msg("plugin initialized")
			return nil
		})
	}

	return p.Wait()
}

func safeInit(ctx context.Context, pl Plugin, settings port.Settings) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic during init: %v", rec)
		}
	}()

	return pl.Init(ctx, settings)
}
