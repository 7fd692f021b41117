package port

import (
	"context"
	"embedbot/internal/core/domain"
)

// Handler answers a single command interaction.
type Handler func(ctx context.Context, interaction *domain.Interaction) error

type RegisterConfig struct {
	Cache    []domain.RemoteCommand
	HasCache bool
}

type RegisterOption func(*RegisterConfig)

// WithCache makes Register compare against the given remote commands instead of listing them again.
func WithCache(cache []domain.RemoteCommand) RegisterOption {
	return func(c *RegisterConfig) {
		c.Cache = cache
		c.HasCache = true
	}
}

type CommandRegistry interface {
	// List fetches every global command currently registered for the application.
	List(ctx context.Context) ([]domain.RemoteCommand, error)
	// Register creates or patches the remote command when needed and binds handler to its name.
	Register(ctx context.Context, def domain.CommandDefinition, handler Handler,
		opts ...RegisterOption) (domain.RemoteCommand, error)
	// Cached returns the last known remote commands.
	Cached() []domain.RemoteCommand
}
