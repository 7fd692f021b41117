package registry

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"embedbot/internal/adapters/handler"
	"embedbot/internal/core/domain"
	"embedbot/internal/core/port"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

const unknownCommand = "Unknown command, how did you get here?"

// CommandAPI is the subset of *discordgo.Session used to manage application commands.
type CommandAPI interface {
	ApplicationCommands(appID, guildID string, options ...discordgo.RequestOption) (
		[]*discordgo.ApplicationCommand, error)
	ApplicationCommandCreate(appID, guildID string, cmd *discordgo.ApplicationCommand,
		options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error)
	ApplicationCommandEdit(appID, guildID, cmdID string, cmd *discordgo.ApplicationCommand,
		options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error)
}

type EventSource interface {
	AddHandler(handler interface{}) func()
}

// Registry keeps global slash commands in sync with local definitions and routes interactions to the
// handler bound to each command name.
type Registry struct {
	api    CommandAPI
	sender port.InteractionSender
	appID  string

	mu       sync.RWMutex
	handlers map[string]port.Handler
	cache    map[string]domain.RemoteCommand
}

// New creates a Registry and attaches its interaction listener to events. Call it once per connection.
func New(api CommandAPI, events EventSource, sender port.InteractionSender, appID string) *Registry {
	r := &Registry{
		api:      api,
		sender:   sender,
		appID:    appID,
		handlers: map[string]port.Handler{},
		cache:    map[string]domain.RemoteCommand{},
	}

	events.AddHandler(handler.NewInteraction(r, handler.DefaultTimeout).Handle)

	return r
}

func (r *Registry) List(ctx context.Context) ([]domain.RemoteCommand, error) {
	remote, err := r.api.ApplicationCommands(r.appID, "", discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to list application commands: %w", err)
	}

	commands := make([]domain.RemoteCommand, 0, len(remote))
	for _, cmd := range remote {
		if cmd != nil {
			commands = append(commands, fromDiscord(cmd))
		}
	}

	r.mu.Lock()
	r.cache = make(map[string]domain.RemoteCommand, len(commands))
	for _, cmd := range commands {
		r.cache[cmd.Name] = cmd
	}
	r.mu.Unlock()

	return commands, nil
}

func (r *Registry) Register(ctx context.Context, def domain.CommandDefinition, h port.Handler,
	opts ...port.RegisterOption) (domain.RemoteCommand, error) {
	cfg := &port.RegisterConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	l := log.With().Str("command", def.Name).Logger()

	baseline := cfg.Cache
	if !cfg.HasCache {
		var err error
		baseline, err = r.List(ctx)
		if err != nil {
			return domain.RemoteCommand{}, err
		}
	}

	var result domain.RemoteCommand

	idx := slices.IndexFunc(baseline, func(c domain.RemoteCommand) bool { return c.Name == def.Name })
	switch {
	case idx < 0:
		created, err := r.api.ApplicationCommandCreate(r.appID, "", toDiscord(def), discordgo.WithContext(ctx))
		if err != nil {
			l.Error().Err(err).Msg("failed to create command")
			return domain.RemoteCommand{}, fmt.Errorf("failed to create command %s: %w", def.Name, err)
		}
		result = fromDiscord(created)
		l.Info().Msg("created command")
	case def.Differs(baseline[idx]):
		existing := baseline[idx]
		patch := toDiscord(def)
		patch.Name = existing.Name

		edited, err := r.api.ApplicationCommandEdit(r.appID, "", existing.ID, patch, discordgo.WithContext(ctx))
		if err != nil {
			l.Error().Err(err).Msg("failed to patch command")
			return domain.RemoteCommand{}, fmt.Errorf("failed to patch command %s: %w", def.Name, err)
		}
		result = fromDiscord(edited)
		l.Info().Msg("patched command")
	default:
		result = baseline[idx]
		l.Debug().Msg("command up to date")
	}

	r.mu.Lock()
	r.handlers[def.Name] = h
	r.cache[result.Name] = result
	r.mu.Unlock()

	return result, nil
}

// Cached returns the known remote commands ordered by name.
func (r *Registry) Cached() []domain.RemoteCommand {
	r.mu.RLock()
	commands := make([]domain.RemoteCommand, 0, len(r.cache))
	for _, cmd := range r.cache {
		commands = append(commands, cmd)
	}
	r.mu.RUnlock()

	slices.SortFunc(commands, func(a, b domain.RemoteCommand) int { return strings.Compare(a.Name, b.Name) })

	return commands
}

// Dispatch runs the handler bound to the interaction's command. Handler errors and panics are logged and
// never escape.
func (r *Registry) Dispatch(ctx context.Context, interaction *domain.Interaction) {
	l := log.With().
		Str("command", interaction.CommandName).
		Str("user", interaction.Username).
		Logger()

	r.mu.RLock()
	h, ok := r.handlers[interaction.CommandName]
	r.mu.RUnlock()

	if !ok {
		l.Error().Msg("received interaction for a command without handler")
		if err := r.sender.Reply(ctx, interaction, domain.Message{Content: unknownCommand, Ephemeral: true}); err != nil {
			l.Error().Err(err).Msg("failed to send unknown command reply")
		}
		return
	}

	l.Info().Msg("handling command")

	if err := run(ctx, h, interaction); err != nil {
		l.Error().Err(err).Msg("failed to handle command")
	}
}

func run(ctx context.Context, h port.Handler, interaction *domain.Interaction) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("handler panicked: %v", rec)
		}
	}()

	return h(ctx, interaction)
}
