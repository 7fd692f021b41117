package service

import (
	"context"
	"fmt"
	"slices"

	"embedbot/internal/core/domain"
	"embedbot/internal/core/port"

	"github.com/disgoorg/snowflake/v2"
	"github.com/rs/zerolog/log"
)

const AdminsKey = "slashCommands.admins"

// AdminAuthorizer lets only the configured admins through.
type AdminAuthorizer struct {
	admins []string
	sender port.InteractionSender
}

// NewAuthorizer reads the admin user IDs from settings. At least one is required and each has to be a valid
// Discord ID.
func NewAuthorizer(settings port.Settings, sender port.InteractionSender) (*AdminAuthorizer, error) {
	var list []string

	err := settings.UnmarshalKey(AdminsKey, &list)
	if err != nil {
		return nil, fmt.Errorf("failed to load admin IDs: %w", err)
	}

	if len(list) == 0 {
		return nil, domain.ErrNoAdmins
	}

	for _, id := range list {
		if _, err := snowflake.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid admin ID %q: %w", id, err)
		}
	}

	return &AdminAuthorizer{
		admins: list,
		sender: sender,
	}, nil
}

func (a *AdminAuthorizer) IsAuthorized(ctx context.Context, interaction *domain.Interaction, denial string) bool {
	if slices.Contains(a.admins, interaction.UserID) {
		return true
	}

	err := a.sender.Reply(ctx, interaction, domain.Message{Content: denial, Ephemeral: true})
	if err != nil {
		log.Err(err).Str("user", interaction.UserID).Msg("failed to send unauthorized warning")
	}

	return false
}
