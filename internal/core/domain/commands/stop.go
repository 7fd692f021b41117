package commands

import (
	"context"

	"embedbot/internal/core/domain"
	"embedbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

var StopDefinition = domain.CommandDefinition{
	Name:        "stop",
	Description: "Shut down the bot",
}

type StopHandler struct {
	auth     port.Authorizer
	sender   port.InteractionSender
	shutdown func()
}

// NewStopHandler returns a handler that calls shutdown once an admin confirmed the stop.
func NewStopHandler(auth port.Authorizer, sender port.InteractionSender, shutdown func()) *StopHandler {
	return &StopHandler{auth: auth, sender: sender, shutdown: shutdown}
}

func (h *StopHandler) Respond(ctx context.Context, interaction *domain.Interaction) error {
	if !h.auth.IsAuthorized(ctx, interaction, "You are not authorized to stop the bot!") {
		return nil
	}

	log.Info().Str("user", interaction.Username).Msg("stop requested")

	err := h.sender.Reply(ctx, interaction, domain.Message{Content: "Shutting down, goodbye", Ephemeral: true})
	if err != nil {
		log.Warn().Err(err).Msg("failed to say goodbye")
	}

	h.shutdown()

	return nil
}
