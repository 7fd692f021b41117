package activity

import (
	"context"
	"math"
	"slices"

	"embedbot/internal/core/domain"
	"embedbot/internal/core/port"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

const name = "SetActivity"

var validTypes = []int{
	int(discordgo.ActivityTypeGame),
	int(discordgo.ActivityTypeStreaming),
	int(discordgo.ActivityTypeListening),
	int(discordgo.ActivityTypeWatching),
	int(discordgo.ActivityTypeCompeting),
}

type StatusUpdater interface {
	UpdateStatusComplex(usd discordgo.UpdateStatusData) error
}

// Plugin sets the bot presence from the "activity" settings block.
type Plugin struct {
	updater StatusUpdater
}

func New(updater StatusUpdater) *Plugin {
	return &Plugin{updater: updater}
}

func (p *Plugin) Name() string {
	return name
}

func (p *Plugin) Init(_ context.Context, settings port.Settings) error {
	activity, ok := parse(settings)
	if !ok {
		log.Info().Str("plugin", name).Msg("Activity settings not specified/malformed, deactivating")
		return nil
	}

	log.Debug().Str("plugin", name).Int("type", activity.Type).Str("name", activity.Name).Msg("setting activity")

	return p.updater.UpdateStatusComplex(discordgo.UpdateStatusData{
		Status: string(discordgo.StatusOnline),
		Activities: []*discordgo.Activity{{
			Name: activity.Name,
			Type: discordgo.ActivityType(activity.Type),
			URL:  activity.URL,
		}},
	})
}

func parse(settings port.Settings) (domain.Activity, bool) {
	if !settings.IsSet("activity") {
		return domain.Activity{}, false
	}

	// JSON numbers arrive as float64; decoding into an int would truncate 2.9 to 2.
	var raw struct {
		Type *float64
		Name *string
		URL  *string
	}
	if err := settings.UnmarshalKey("activity", &raw); err != nil {
		return domain.Activity{}, false
	}

	if raw.Type == nil || raw.Name == nil || math.Trunc(*raw.Type) != *raw.Type {
		return domain.Activity{}, false
	}

	activityType := int(*raw.Type)
	if !slices.Contains(validTypes, activityType) {
		return domain.Activity{}, false
	}

	activity := domain.Activity{Type: activityType, Name: *raw.Name}
	if raw.URL != nil {
		activity.URL = *raw.URL
	}

	return activity, true
}
