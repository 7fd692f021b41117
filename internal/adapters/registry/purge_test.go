package registry

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type fakeOverwriter struct {
	mu      sync.Mutex
	scopes  []string
	failFor string
}

func (f *fakeOverwriter) ApplicationCommandBulkOverwrite(appID, guildID string,
	commands []*discordgo.ApplicationCommand, _ ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if appID != "app" || len(commands) != 0 {
		return nil, errors.New("unexpected overwrite")
	}

	f.scopes = append(f.scopes, guildID)
	if guildID == f.failFor {
		return nil, errors.New("missing access")
	}

	return commands, nil
}

func TestPurge(t *testing.T) {
	tests := []struct {
		name       string
		guilds     []string
		failFor    string
		wantScopes []string
		wantErr    bool
	}{
		{
			name:       "global only",
			wantScopes: []string{""},
		},
		{
			name:       "global and guilds",
			guilds:     []string{"g1", "g2"},
			wantScopes: []string{"", "g1", "g2"},
		},
		{
			name:       "one guild fails, others still purged",
			guilds:     []string{"g1", "g2"},
			failFor:    "g1",
			wantScopes: []string{"", "g1", "g2"},
			wantErr:    true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			api := &fakeOverwriter{failFor: tc.failFor}

			err := Purge(t.Context(), api, "app", tc.guilds, rate.NewLimiter(rate.Inf, 1))
			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "g1")
			} else {
				require.NoError(t, err)
			}

			slices.Sort(api.scopes)
			assert.Equal(t, tc.wantScopes, api.scopes)
		})
	}
}

func TestPurgeCancelled(t *testing.T) {
	api := &fakeOverwriter{}
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err := Purge(ctx, api, "app", []string{"g1"}, rate.NewLimiter(rate.Every(time.Hour), 1))
	require.Error(t, err)
}
