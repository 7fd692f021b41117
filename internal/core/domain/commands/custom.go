package commands

import (
	"context"
	"fmt"

	"embedbot/internal/core/domain"
	"embedbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

// CustomHandler answers custom commands with their stored content.
type CustomHandler struct {
	store  port.CommandStore
	sender port.InteractionSender
}

func NewCustomHandler(store port.CommandStore, sender port.InteractionSender) *CustomHandler {
	return &CustomHandler{store: store, sender: sender}
}

// Respond sends the embeds first and the video links as a follow-up. A command without embeds answers with
// the video links directly.
func (h *CustomHandler) Respond(ctx context.Context, interaction *domain.Interaction) error {
	l := log.With().
		Str("command", interaction.CommandName).
		Str("user", interaction.Username).
		Logger()

	cmd, ok := h.store.Get(interaction.CommandName)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrCommandNotFound, interaction.CommandName)
	}

	var messages []domain.Message

	reply := domain.BuildReply(cmd)
	if len(reply.Embeds) > 0 {
		messages = append(messages, domain.Message{Embeds: reply.Embeds})
	}
	if reply.FollowUp != "" {
		messages = append(messages, domain.Message{Content: reply.FollowUp})
	}

	if len(messages) == 0 {
		l.Warn().Msg("custom command has nothing to send")
		return nil
	}

	if err := h.sender.Reply(ctx, interaction, messages[0]); err != nil {
		return err
	}

	for _, message := range messages[1:] {
		if err := h.sender.FollowUp(ctx, interaction, message); err != nil {
			return err
		}
	}

	return nil
}
