package handler

import (
	"context"
	"fmt"
	"time"

	"embedbot/internal/core/domain"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// DefaultTimeout bounds a single command invocation. It has to cover the modal wait of the add and edit
// commands.
const DefaultTimeout = 30 * time.Minute

type Dispatcher interface {
	Dispatch(ctx context.Context, interaction *domain.Interaction)
}

type ModalReceiver interface {
	Deliver(submission *domain.ModalSubmission) bool
}

// Interaction forwards slash command invocations from the gateway to a Dispatcher.
type Interaction struct {
	dispatcher Dispatcher
	timeout    time.Duration
}

func NewInteraction(dispatcher Dispatcher, timeout time.Duration) *Interaction {
	return &Interaction{dispatcher: dispatcher, timeout: timeout}
}

// Handle is registered with discordgo, which calls it on its own goroutine for every interaction.
func (h *Interaction) Handle(_ *discordgo.Session, event *discordgo.InteractionCreate) {
	if event == nil || event.Interaction == nil || event.Type != discordgo.InteractionApplicationCommand {
		return
	}

	interaction := ToDomain(event.Interaction)

	log.Debug().
		Str("command", interaction.CommandName).
		Str("user", interaction.Username).
		Msg("received command")

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	h.dispatcher.Dispatch(ctx, interaction)
}

// Modal forwards modal submissions to a ModalReceiver.
type Modal struct {
	receiver ModalReceiver
}

func NewModal(receiver ModalReceiver) *Modal {
	return &Modal{receiver: receiver}
}

func (h *Modal) Handle(_ *discordgo.Session, event *discordgo.InteractionCreate) {
	if event == nil || event.Interaction == nil || event.Type != discordgo.InteractionModalSubmit {
		return
	}

	submission := ModalToDomain(event.Interaction)
	if !h.receiver.Deliver(submission) {
		log.Debug().Str("customId", submission.CustomID).Msg("no one is waiting for modal submission")
	}
}

// ToDomain converts an application command interaction. Only top-level options are kept, rendered as text.
func ToDomain(i *discordgo.Interaction) *domain.Interaction {
	interaction := &domain.Interaction{
		ID:        i.ID,
		AppID:     i.AppID,
		Token:     i.Token,
		GuildID:   i.GuildID,
		ChannelID: i.ChannelID,
		Options:   map[string]string{},
	}

	if user := invokingUser(i); user != nil {
		interaction.UserID = user.ID
		interaction.Username = user.Username
	}

	if i.Type != discordgo.InteractionApplicationCommand {
		return interaction
	}

	data := i.ApplicationCommandData()
	interaction.CommandName = data.Name
	for _, opt := range data.Options {
		if opt == nil || opt.Value == nil {
			continue
		}
		interaction.Options[opt.Name] = fmt.Sprint(opt.Value)
	}

	return interaction
}

// ModalToDomain converts a modal submission, collecting every text input by its custom ID.
func ModalToDomain(i *discordgo.Interaction) *domain.ModalSubmission {
	submission := &domain.ModalSubmission{
		Interaction: ToDomain(i),
		Fields:      map[string]string{},
	}

	if i.Type != discordgo.InteractionModalSubmit {
		return submission
	}

	data := i.ModalSubmitData()
	submission.CustomID = data.CustomID

	for _, component := range data.Components {
		row, ok := component.(*discordgo.ActionsRow)
		if !ok {
			continue
		}

		for _, inner := range row.Components {
			if input, ok := inner.(*discordgo.TextInput); ok {
				submission.Fields[input.CustomID] = input.Value
			}
		}
	}

	return submission
}

func invokingUser(i *discordgo.Interaction) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}

	return i.User
}
