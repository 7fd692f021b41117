package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"embedbot/internal/adapters/config"
	"embedbot/internal/adapters/logger"
	"embedbot/internal/adapters/registry"
	"embedbot/internal/adapters/sender"
	"embedbot/internal/adapters/store"
	"embedbot/internal/plugin"
	"embedbot/internal/plugin/activity"
	"embedbot/internal/plugin/slashcommands"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	logger.Setup("info", os.Stderr)
	log.Info().Msg("starting embedbot...")

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	log.Info().Msg("reading config file...")
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

	s := sender.NewDiscordSender(session)
	modals := sender.NewModalCollector(session)
	commandStore := store.NewCommandStore(store.DefaultPath)

	session.AddHandlerOnce(func(sess *discordgo.Session, r *discordgo.Ready) {
		log.Info().
			Str("user", r.User.Username).
			Int("guilds", len(r.Guilds)).
			Msg("connected to discord")

		commandRegistry := registry.New(sess, sess, s, registry.ApplicationID(r))

		plugins := []plugin.Plugin{
			activity.New(sess),
			slashcommands.New(commandRegistry, commandStore, s, modals, cancel),
		}

		if err := plugin.InitAll(ctx, plugins, settings); err != nil {
			log.Warn().Err(err).Msg("not every plugin initialized")
			return
		}

		log.Info().Msg("bot listening")
	})

	if err := session.Open(); err != nil {
		log.Fatal().Err(err).Msg("failed connecting to discord")
	}

	<-ctx.Done()

	log.Info().Msg("shutting down")
	if err := session.Close(); err != nil {
		log.Warn().Err(err).Msg("failed closing discord session")
	}
}
