package slashcommands

import (
	"context"
	"fmt"

	"embedbot/internal/core/domain"
	"embedbot/internal/core/domain/commands"
	"embedbot/internal/core/port"
	"embedbot/internal/core/service"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
)

const name = "SlashCommands"

type Store interface {
	port.CommandStore
	Load() bool
	Len() int
}

// Plugin registers the custom commands together with the admin commands that manage them.
type Plugin struct {
	registry port.CommandRegistry
	store    Store
	sender   port.InteractionSender
	modals   port.ModalAwaiter
	shutdown func()
}

func New(registry port.CommandRegistry, store Store, sender port.InteractionSender, modals port.ModalAwaiter,
	shutdown func()) *Plugin {
	return &Plugin{registry: registry, store: store, sender: sender, modals: modals, shutdown: shutdown}
}

func (p *Plugin) Name() string {
	return name
}

func (p *Plugin) Init(ctx context.Context, settings port.Settings) error {
	l := log.With().Str("plugin", name).Logger()

	auth, err := service.NewAuthorizer(settings, p.sender)
	if err != nil {
		return fmt.Errorf("settings malformed, not adding/handling commands: %w", err)
	}

	p.store.Load()
	if p.store.Len() == 0 {
		l.Warn().Msg("No custom commands found")
	}

	current, err := p.registry.List(ctx)
	if err != nil {
		return err
	}

	manager := commands.NewCommandManager(p.registry, p.store, p.sender, p.modals, auth)
	stop := commands.NewStopHandler(auth, p.sender, p.shutdown)

	builtin := []struct {
		def     domain.CommandDefinition
		handler port.Handler
	}{
		{def: commands.AddCommandDefinition, handler: manager.Add},
		{def: commands.EditCommandDefinition, handler: manager.Edit},
		{def: commands.StopDefinition, handler: stop.Respond},
	}

	wp := pool.New().WithContext(ctx)

	for _, cmd := range p.store.All() {
		wp.Go(func(ctx context.Context) error {
			if err := manager.Install(ctx, cmd, port.WithCache(current)); err != nil {
				l.Error().Err(err).Str("command", cmd.Name).Msg("failed to register custom command")
			}
			return nil
		})
	}

	for _, b := range builtin {
		wp.Go(func(ctx context.Context) error {
			if _, err := p.registry.Register(ctx, b.def, b.handler, port.WithCache(current)); err != nil {
				l.Error().Err(err).Str("command", b.def.Name).Msg("failed to register command")
			}
			return nil
		})
	}

	_ = wp.Wait()

	l.Info().Int("custom", p.store.Len()).Msg("slash commands ready")

	return nil
}
