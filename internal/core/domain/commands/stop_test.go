package commands

import (
	"testing"

	"embedbot/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopHandler_Respond(t *testing.T) {
	tests := []struct {
		name         string
		allow        bool
		sendErr      error
		wantShutdown bool
		wantReply    string
	}{
		{
			name:         "admin stops the bot",
			allow:        true,
			wantShutdown: true,
			wantReply:    "Shutting down, goodbye",
		},
		{
			name:         "goodbye fails but shutdown proceeds",
			allow:        true,
			sendErr:      errMock,
			wantShutdown: true,
			wantReply:    "Shutting down, goodbye",
		},
		{
			name:         "unauthorized",
			allow:        false,
			wantShutdown: false,
			wantReply:    "You are not authorized to stop the bot!",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sender := &MockSender{err: tc.sendErr}
			auth := &MockAuthorizer{allow: tc.allow, sender: sender}

			stopped := false
			h := NewStopHandler(auth, sender, func() { stopped = true })

			require.NoError(t, h.Respond(t.Context(), &domain.Interaction{UserID: "u1"}))

			assert.Equal(t, tc.wantShutdown, stopped)
			require.Len(t, sender.Replies, 1)
			assert.Equal(t, domain.Message{Content: tc.wantReply, Ephemeral: true}, sender.Replies[0])
		})
	}
}
