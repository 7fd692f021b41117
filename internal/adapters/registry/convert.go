package registry

import (
	"embedbot/internal/core/domain"

	"github.com/bwmarrin/discordgo"
)

func toDiscord(def domain.CommandDefinition) *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Type:                     discordgo.ChatApplicationCommand,
		Name:                     def.Name,
		Description:              def.Description,
		DefaultMemberPermissions: def.DefaultMemberPermissions,
		Options:                  toDiscordOptions(def.Options),
	}
}

func toDiscordOptions(options []domain.CommandOption) []*discordgo.ApplicationCommandOption {
	if len(options) == 0 {
		return nil
	}

	out := make([]*discordgo.ApplicationCommandOption, len(options))
	for i, opt := range options {
		out[i] = &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionType(opt.Type),
			Name:        opt.Name,
			Description: opt.Description,
			Required:    opt.Required,
			Options:     toDiscordOptions(opt.Options),
		}

		for _, choice := range opt.Choices {
			out[i].Choices = append(out[i].Choices, &discordgo.ApplicationCommandOptionChoice{
				Name:  choice.Name,
				Value: choice.Value,
			})
		}
	}

	return out
}

func fromDiscord(cmd *discordgo.ApplicationCommand) domain.RemoteCommand {
	return domain.RemoteCommand{
		ID:                       cmd.ID,
		ApplicationID:            cmd.ApplicationID,
		Name:                     cmd.Name,
		Description:              cmd.Description,
		DefaultMemberPermissions: cmd.DefaultMemberPermissions,
		Options:                  fromDiscordOptions(cmd.Options),
	}
}

func fromDiscordOptions(options []*discordgo.ApplicationCommandOption) []domain.CommandOption {
	if len(options) == 0 {
		return nil
	}

	out := make([]domain.CommandOption, 0, len(options))
	for _, opt := range options {
		if opt == nil {
			continue
		}

		converted := domain.CommandOption{
			Type:        domain.OptionType(opt.Type),
			Name:        opt.Name,
			Description: opt.Description,
			Required:    opt.Required,
			Options:     fromDiscordOptions(opt.Options),
		}

		for _, choice := range opt.Choices {
			if choice != nil {
				converted.Choices = append(converted.Choices, domain.OptionChoice{Name: choice.Name, Value: choice.Value})
			}
		}

		out = append(out, converted)
	}

	return out
}

// ApplicationID picks the application the session belongs to from the ready payload.
func ApplicationID(r *discordgo.Ready) string {
	if r.Application != nil && r.Application.ID != "" {
		return r.Application.ID
	}

	if r.User != nil {
		return r.User.ID
	}

	return ""
}

// GuildIDs lists the guilds the session joined, as announced in the ready payload.
func GuildIDs(r *discordgo.Ready) []string {
	ids := make([]string, 0, len(r.Guilds))
	for _, g := range r.Guilds {
		if g != nil {
			ids = append(ids, g.ID)
		}
	}

	return ids
}
