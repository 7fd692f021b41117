package sender

import (
	"context"
	"fmt"

	"embedbot/internal/core/domain"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// DiscordAPI is the subset of *discordgo.Session used to answer interactions.
type DiscordAPI interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse,
		options ...discordgo.RequestOption) error
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams,
		options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type DiscordSender struct {
	api DiscordAPI
}

func NewDiscordSender(api DiscordAPI) *DiscordSender {
	return &DiscordSender{api: api}
}

func (s *DiscordSender) Reply(ctx context.Context, interaction *domain.Interaction, message domain.Message) error {
	err := s.api.InteractionRespond(toDiscord(interaction), &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message.Content,
			Embeds:  toEmbeds(message.Embeds),
			Flags:   flags(message),
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		log.Error().Err(err).Str("interaction", interaction.ID).Msg("failed to reply to interaction")
		return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	return nil
}

func (s *DiscordSender) FollowUp(ctx context.Context, interaction *domain.Interaction, message domain.Message) error {
	_, err := s.api.FollowupMessageCreate(toDiscord(interaction), true, &discordgo.WebhookParams{
		Content: message.Content,
		Embeds:  toEmbeds(message.Embeds),
		Flags:   flags(message),
	}, discordgo.WithContext(ctx))
	if err != nil {
		log.Error().Err(err).Str("interaction", interaction.ID).Msg("failed to send follow-up")
		return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	return nil
}

func (s *DiscordSender) ShowModal(ctx context.Context, interaction *domain.Interaction, modal domain.Modal) error {
	rows := make([]discordgo.MessageComponent, 0, len(modal.Inputs))
	for _, input := range modal.Inputs {
		rows = append(rows, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{toTextInput(input)},
		})
	}

	err := s.api.InteractionRespond(toDiscord(interaction), &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   modal.CustomID,
			Title:      modal.Title,
			Components: rows,
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		log.Error().Err(err).Str("modal", modal.CustomID).Msg("failed to show modal")
		return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	return nil
}

// toDiscord restores the fields discordgo needs to address the interaction webhook.
func toDiscord(interaction *domain.Interaction) *discordgo.Interaction {
	return &discordgo.Interaction{
		ID:        interaction.ID,
		AppID:     interaction.AppID,
		Token:     interaction.Token,
		GuildID:   interaction.GuildID,
		ChannelID: interaction.ChannelID,
	}
}

func toEmbeds(embeds []domain.Embed) []*discordgo.MessageEmbed {
	if len(embeds) == 0 {
		return nil
	}

	out := make([]*discordgo.MessageEmbed, len(embeds))
	for i, embed := range embeds {
		out[i] = &discordgo.MessageEmbed{Description: embed.Description}
		if embed.ImageURL != "" {
			out[i].Image = &discordgo.MessageEmbedImage{URL: embed.ImageURL}
		}
	}

	return out
}

func toTextInput(input domain.TextInput) discordgo.TextInput {
	style := discordgo.TextInputShort
	if input.Style == domain.TextInputParagraph {
		style = discordgo.TextInputParagraph
	}

	return discordgo.TextInput{
		CustomID:    input.ID,
		Label:       input.Label,
		Style:       style,
		Placeholder: input.Placeholder,
		Value:       input.Value,
		Required:    input.Required,
	}
}

func flags(message domain.Message) discordgo.MessageFlags {
	if message.Ephemeral {
		return discordgo.MessageFlagsEphemeral
	}

	return 0
}
