package registry

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/time/rate"
)

type Overwriter interface {
	ApplicationCommandBulkOverwrite(appID, guildID string, commands []*discordgo.ApplicationCommand,
		options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

// Purge replaces the global commands and those of every guild in guildIDs with an empty list. Every scope is
// attempted; the returned error joins all failures.
func Purge(ctx context.Context, api Overwriter, appID string, guildIDs []string, limiter *rate.Limiter) error {
	scopes := append([]string{""}, guildIDs...)

	p := pool.New().WithErrors().WithContext(ctx)
	for _, guildID := range scopes {
		p.Go(func(ctx context.Context) error {
			l := log.With().Str("guild", scopeName(guildID)).Logger()

			if err := limiter.Wait(ctx); err != nil {
				return fmt.Errorf("waiting to purge %s: %w", scopeName(guildID), err)
			}

			_, err := api.ApplicationCommandBulkOverwrite(appID, guildID, []*discordgo.ApplicationCommand{},
				discordgo.WithContext(ctx))
			if err != nil {
				l.Error().Err(err).Msg("failed to purge commands")
				return fmt.Errorf("purging %s: %w", scopeName(guildID), err)
			}

			l.Info().Msg("purged commands")
			return nil
		})
	}

	return p.Wait()
}

func scopeName(guildID string) string {
	if guildID == "" {
		return "global"
	}

	return guildID
}
