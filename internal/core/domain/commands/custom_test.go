package commands

import (
	"testing"

	"embedbot/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomHandler_Respond(t *testing.T) {
	tests := []struct {
		name          string
		command       domain.CustomCommand
		wantReplies   []domain.Message
		wantFollowUps []domain.Message
	}{
		{
			name:        "text only",
			command:     domain.CustomCommand{Name: "hi", Response: "hi"},
			wantReplies: []domain.Message{{Embeds: []domain.Embed{{Description: "hi"}}}},
		},
		{
			name:        "video only replies with the links",
			command:     domain.CustomCommand{Name: "hi", VideoAttachments: []string{"http://a/v.mp4"}},
			wantReplies: []domain.Message{{Content: "http://a/v.mp4"}},
		},
		{
			name: "embeds then videos",
			command: domain.CustomCommand{
				Name:             "hi",
				Response:         "r",
				ImageAttachments: []string{"u1", "u2"},
				VideoAttachments: []string{"v1", "v2"},
			},
			wantReplies: []domain.Message{{Embeds: []domain.Embed{
				{Description: "r", ImageURL: "u1"},
				{ImageURL: "u2"},
			}}},
			wantFollowUps: []domain.Message{{Content: "v1\nv2"}},
		},
		{
			name:    "nothing to send",
			command: domain.CustomCommand{Name: "hi"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sender := &MockSender{}
			h := NewCustomHandler(NewMockStore(tc.command), sender)

			err := h.Respond(t.Context(), &domain.Interaction{CommandName: "hi"})
			require.NoError(t, err)

			assert.Equal(t, tc.wantReplies, sender.Replies)
			assert.Equal(t, tc.wantFollowUps, sender.FollowUps)
		})
	}
}

func TestCustomHandler_RespondUnknown(t *testing.T) {
	sender := &MockSender{}
	h := NewCustomHandler(NewMockStore(), sender)

	err := h.Respond(t.Context(), &domain.Interaction{CommandName: "ghost"})
	require.ErrorIs(t, err, domain.ErrCommandNotFound)
	assert.Empty(t, sender.Replies)
}

func TestCustomHandler_RespondSendFails(t *testing.T) {
	sender := &MockSender{err: errMock}
	h := NewCustomHandler(NewMockStore(domain.CustomCommand{
		Name:             "hi",
		Response:         "r",
		VideoAttachments: []string{"v"},
	}), sender)

	err := h.Respond(t.Context(), &domain.Interaction{CommandName: "hi"})
	require.ErrorIs(t, err, errMock)
	assert.Empty(t, sender.FollowUps, "no follow-up after the first message failed")
}
