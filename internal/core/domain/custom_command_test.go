package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReply(t *testing.T) {
	tests := []struct {
		name         string
		command      CustomCommand
		wantEmbeds   []Embed
		wantFollowUp string
	}{
		{
			name:       "text only",
			command:    CustomCommand{Response: "hi", ImageAttachments: []string{}, VideoAttachments: []string{}},
			wantEmbeds: []Embed{{Description: "hi"}},
		},
		{
			name: "video only",
			command: CustomCommand{
				Response:         "",
				ImageAttachments: []string{},
				VideoAttachments: []string{"http://a/v.mp4"},
			},
			wantEmbeds:   nil,
			wantFollowUp: "http://a/v.mp4",
		},
		{
			name:       "nothing at all",
			command:    CustomCommand{},
			wantEmbeds: nil,
		},
		{
			name:    "two images with response",
			command: CustomCommand{Response: "r", ImageAttachments: []string{"u1", "u2"}},
			wantEmbeds: []Embed{
				{Description: "r", ImageURL: "u1"},
				{ImageURL: "u2"},
			},
		},
		{
			name:       "image without response",
			command:    CustomCommand{ImageAttachments: []string{"u1"}},
			wantEmbeds: []Embed{{ImageURL: "u1"}},
		},
		{
			name: "everything",
			command: CustomCommand{
				Response:         "r",
				ImageAttachments: []string{"u1"},
				VideoAttachments: []string{"v1", "v2"},
			},
			wantEmbeds:   []Embed{{Description: "r", ImageURL: "u1"}},
			wantFollowUp: "v1\nv2",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reply := BuildReply(tc.command)

			assert.Equal(t, tc.wantEmbeds, reply.Embeds)
			assert.Equal(t, tc.wantFollowUp, reply.FollowUp)
		})
	}
}

func TestCustomCommand_Validate(t *testing.T) {
	valid := CustomCommand{
		Name:             "hello",
		Description:      "Says hello",
		Response:         "hello!",
		ImageAttachments: []string{"https://example.org/a.png"},
		VideoAttachments: []string{"https://example.org/b.mp4"},
	}

	tests := []struct {
		name    string
		mutate  func(c *CustomCommand)
		wantErr error
	}{
		{
			name:   "valid",
			mutate: func(_ *CustomCommand) {},
		},
		{
			name:   "empty response is fine",
			mutate: func(c *CustomCommand) { c.Response = "" },
		},
		{
			name:    "missing name",
			mutate:  func(c *CustomCommand) { c.Name = "" },
			wantErr: ErrEmptyName,
		},
		{
			name:    "missing description",
			mutate:  func(c *CustomCommand) { c.Description = "" },
			wantErr: ErrEmptyDescription,
		},
		{
			name:    "relative image url",
			mutate:  func(c *CustomCommand) { c.ImageAttachments = []string{"a.png"} },
			wantErr: ErrInvalidAttachmentURL,
		},
		{
			name:    "non http scheme",
			mutate:  func(c *CustomCommand) { c.ImageAttachments = []string{"ftp://example.org/a.png"} },
			wantErr: ErrInvalidAttachmentURL,
		},
		{
			name:   "plain http is fine",
			mutate: func(c *CustomCommand) { c.VideoAttachments = []string{"http://example.org/b.mp4"} },
		},
		{
			name:    "garbage video url",
			mutate:  func(c *CustomCommand) { c.VideoAttachments = []string{"not a url"} },
			wantErr: ErrInvalidAttachmentURL,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := valid
			tc.mutate(&c)

			err := c.Validate()
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestParseURLList(t *testing.T) {
	tests := []struct {
		description string
		input       string
		want        []string
	}{
		{
			description: "empty input",
			input:       "",
			want:        []string{},
		},
		{
			description: "single url",
			input:       "https://a/1.png",
			want:        []string{"https://a/1.png"},
		},
		{
			description: "blank lines dropped",
			input:       "https://a/1.png\n\n  \nhttps://a/2.png\n",
			want:        []string{"https://a/1.png", "https://a/2.png"},
		},
		{
			description: "windows line endings trimmed",
			input:       "https://a/1.png\r\nhttps://a/2.png",
			want:        []string{"https://a/1.png", "https://a/2.png"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.description, func(t *testing.T) {
			assert.Equal(t, testCase.want, ParseURLList(testCase.input))
		})
	}
}

func TestCustomCommand_Normalized(t *testing.T) {
	c := CustomCommand{Name: "a", Description: "b"}.Normalized()

	assert.NotNil(t, c.ImageAttachments)
	assert.NotNil(t, c.VideoAttachments)
	assert.Equal(t, CommandDefinition{Name: "a", Description: "b"}, c.Definition())
}
