package domain

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// CustomCommand is a user-authored command answering with static content.
type CustomCommand struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Response         string   `json:"response"`
	ImageAttachments []string `json:"imageAttachments"`
	VideoAttachments []string `json:"videoAttachments"`
}

func (c CustomCommand) Validate() error {
	if c.Name == "" {
		return ErrEmptyName
	}

	if c.Description == "" {
		return ErrEmptyDescription
	}

	for _, attachment := range slices.Concat(c.ImageAttachments, c.VideoAttachments) {
		if !isURL(attachment) {
			return fmt.Errorf("%w: %q", ErrInvalidAttachmentURL, attachment)
		}
	}

	return nil
}

// Normalized returns a copy with nil attachment lists replaced by empty ones, so the command serializes
// with [] instead of null.
func (c CustomCommand) Normalized() CustomCommand {
	c.ImageAttachments = slicesOrEmpty(c.ImageAttachments)
	c.VideoAttachments = slicesOrEmpty(c.VideoAttachments)
	return c
}

// Definition is the slash command registered for c.
func (c CustomCommand) Definition() CommandDefinition {
	return CommandDefinition{Name: c.Name, Description: c.Description}
}

// BuildReply derives the messages sent for a custom command. Videos can't be embedded, so they are
// joined into a plain text follow-up.
func BuildReply(c CustomCommand) Reply {
	reply := Reply{FollowUp: strings.Join(c.VideoAttachments, "\n")}

	if len(c.ImageAttachments) == 0 {
		if c.Response != "" {
			reply.Embeds = []Embed{{Description: c.Response}}
		}
		return reply
	}

	reply.Embeds = make([]Embed, len(c.ImageAttachments))
	for i, imageURL := range c.ImageAttachments {
		reply.Embeds[i] = Embed{ImageURL: imageURL}
	}
	reply.Embeds[0].Description = c.Response

	return reply
}

// ParseURLList splits newline separated input, dropping blank lines.
func ParseURLList(input string) []string {
	urls := []string{}
	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			urls = append(urls, line)
		}
	}

	return urls
}

func isURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func slicesOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}

	return s
}
