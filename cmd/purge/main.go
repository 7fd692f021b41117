// Command purge removes every slash command of the bot, globally and in each guild it has joined.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"embedbot/internal/adapters/config"
	"embedbot/internal/adapters/logger"
	"embedbot/internal/adapters/registry"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Minimum spacing between two bulk overwrites.
const purgeInterval = 500 * time.Millisecond

func main() {
	logger.Setup("info", os.Stderr)

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	settings, err := config.Read(config.Path())
	if err != nil {
		os.Exit(1)
	}

	level := logger.SetLevel(settings.LogLevel())
	discordgo.Logger = logger.DiscordLogger

	session, err := discordgo.New("Bot " + settings.Token())
	if err != nil {
		log.Fatal().Err(err).Msg("failed initializing discord session")
	}
	session.LogLevel = logger.DiscordLogLevel(level)
	session.Identify.Intents = discordgo.IntentsGuilds

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	done := make(chan error, 1)
	session.AddHandlerOnce(func(s *discordgo.Session, r *discordgo.Ready) {
		guildIDs := registry.GuildIDs(r)
		log.Info().Int("guilds", len(guildIDs)).Msg("purging commands")

		done <- registry.Purge(ctx, s, registry.ApplicationID(r), guildIDs,
			rate.NewLimiter(rate.Every(purgeInterval), 1))
	})

	if err := session.Open(); err != nil {
		log.Fatal().Err(err).Msg("failed connecting to discord")
	}

	exitCode := 0
	select {
	case err := <-done:
		if err != nil {
			log.Error().Err(err).Msg("purge incomplete")
			exitCode = 1
		} else {
			log.Info().Msg("all commands purged")
		}
	case <-ctx.Done():
		log.Warn().Msg("interrupted")
		exitCode = 1
	}

	if err := session.Close(); err != nil {
		log.Warn().Err(err).Msg("failed closing discord session")
	}

	cancel()
	os.Exit(exitCode)
}
