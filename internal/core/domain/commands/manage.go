package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"embedbot/internal/core/domain"
	"embedbot/internal/core/port"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

const ModalTimeout = 20 * time.Minute

const (
	fieldName        = "commandName"
	fieldDescription = "commandDescription"
	fieldResponse    = "commandResponse"
	fieldImages      = "commandImages"
	fieldVideos      = "commandVideos"

	commandNameOption = "command-name"
)

var (
	AddCommandDefinition = domain.CommandDefinition{
		Name:        "add-command",
		Description: "Add a new Embed command",
	}
	EditCommandDefinition = domain.CommandDefinition{
		Name:        "edit-command",
		Description: "Edit an existing Embed command",
		Options: []domain.CommandOption{{
			Type:        domain.OptionTypeString,
			Name:        commandNameOption,
			Description: "The name of the command you want to edit",
			Required:    true,
		}},
	}
)

// CommandManager runs the admin flows that create and change custom commands.
type CommandManager struct {
	registry port.CommandRegistry
	store    port.CommandStore
	sender   port.InteractionSender
	modals   port.ModalAwaiter
	auth     port.Authorizer
	custom   *CustomHandler
	timeout  time.Duration
}

func NewCommandManager(registry port.CommandRegistry, store port.CommandStore, sender port.InteractionSender,
	modals port.ModalAwaiter, auth port.Authorizer) *CommandManager {
	return &CommandManager{
		registry: registry,
		store:    store,
		sender:   sender,
		modals:   modals,
		auth:     auth,
		custom:   NewCustomHandler(store, sender),
		timeout:  ModalTimeout,
	}
}

// Install registers cmd as a slash command answered from the store.
func (m *CommandManager) Install(ctx context.Context, cmd domain.CustomCommand, opts ...port.RegisterOption) error {
	_, err := m.registry.Register(ctx, cmd.Definition(), m.custom.Respond, opts...)
	if err != nil {
		return fmt.Errorf("failed to register custom command %s: %w", cmd.Name, err)
	}

	return nil
}

func (m *CommandManager) Add(ctx context.Context, interaction *domain.Interaction) error {
	if !m.auth.IsAuthorized(ctx, interaction, "You are not authorized to add commands!") {
		return nil
	}

	customID, err := modalID("addCommand")
	if err != nil {
		return err
	}

	modal := domain.Modal{
		CustomID: customID,
		Title:    "Add a new Embed command",
		Inputs:   append([]domain.TextInput{nameInput()}, contentInputs(domain.CustomCommand{})...),
	}

	wait, release := m.modals.Expect(customID, interaction.UserID)
	defer release()

	if err := m.sender.ShowModal(ctx, interaction, modal); err != nil {
		return err
	}

	return m.collect(ctx, interaction, wait, "",
		"Added new command `/%s`, your client might need a reload for it to show up")
}

func (m *CommandManager) Edit(ctx context.Context, interaction *domain.Interaction) error {
	if !m.auth.IsAuthorized(ctx, interaction, "You are not authorized to modify commands!") {
		return nil
	}

	name := interaction.Option(commandNameOption)
	existing, ok := m.store.Get(name)
	if !ok {
		return m.sender.Reply(ctx, interaction, domain.Message{
			Content:   fmt.Sprintf("The command you provided (`/%s`) does not exist", name),
			Ephemeral: true,
		})
	}

	customID, err := modalID("editCommand")
	if err != nil {
		return err
	}

	modal := domain.Modal{
		CustomID: customID,
		Title:    "Editing " + name,
		Inputs:   contentInputs(existing),
	}

	wait, release := m.modals.Expect(customID, interaction.UserID)
	defer release()

	if err := m.sender.ShowModal(ctx, interaction, modal); err != nil {
		return err
	}

	return m.collect(ctx, interaction, wait, name, "Edited command `/%s`")
}

// collect waits for the modal, then registers, stores and saves the submitted command. A fixed name is used
// when editing.
func (m *CommandManager) collect(ctx context.Context, interaction *domain.Interaction, wait port.ModalWait, name,
	confirmation string) error {
	submission, err := wait(ctx, m.timeout)
	if err != nil {
		if errors.Is(err, domain.ErrModalTimeout) || errors.Is(err, context.Canceled) ||
			errors.Is(err, context.DeadlineExceeded) {
			return nil
		}
		return err
	}

	l := log.With().
		Str("command", interaction.CommandName).
		Str("user", interaction.Username).
		Logger()

	cmd := fromSubmission(submission, name)
	if err := cmd.Validate(); err != nil {
		return m.sender.Reply(ctx, submission.Interaction, domain.Message{
			Content:   fmt.Sprintf("Invalid command: %s", err),
			Ephemeral: true,
		})
	}

	if err := m.Install(ctx, cmd, port.WithCache(m.registry.Cached())); err != nil {
		l.Error().Err(err).Str("customCommand", cmd.Name).Msg("failed to register submitted command")
		return m.sender.Reply(ctx, submission.Interaction, domain.Message{
			Content:   fmt.Sprintf("Could not register `/%s`, please try again later", cmd.Name),
			Ephemeral: true,
		})
	}

	m.store.Set(cmd)
	if err := m.store.Save(); err != nil {
		l.Error().Err(err).Str("customCommand", cmd.Name).Msg("failed to save custom commands")
	}

	l.Info().Str("customCommand", cmd.Name).Msg("custom command saved")

	return m.sender.Reply(ctx, submission.Interaction, domain.Message{
		Content:   fmt.Sprintf(confirmation, cmd.Name),
		Ephemeral: true,
	})
}

func fromSubmission(submission *domain.ModalSubmission, name string) domain.CustomCommand {
	if name == "" {
		name = strings.TrimSpace(submission.Fields[fieldName])
	}

	return domain.CustomCommand{
		Name:             name,
		Description:      strings.TrimSpace(submission.Fields[fieldDescription]),
		Response:         submission.Fields[fieldResponse],
		ImageAttachments: domain.ParseURLList(submission.Fields[fieldImages]),
		VideoAttachments: domain.ParseURLList(submission.Fields[fieldVideos]),
	}
}

func modalID(prefix string) (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("failed to generate modal id: %w", err)
	}

	return prefix + "-" + id.String(), nil
}

func nameInput() domain.TextInput {
	return domain.TextInput{ID: fieldName, Label: "Command Name", Style: domain.TextInputShort, Required: true}
}

// contentInputs are the form fields shared by add and edit, prefilled from cmd.
func contentInputs(cmd domain.CustomCommand) []domain.TextInput {
	return []domain.TextInput{
		{
			ID:          fieldDescription,
			Label:       "Description",
			Placeholder: "One-line description shown in the command list",
			Value:       cmd.Description,
			Style:       domain.TextInputShort,
			Required:    true,
		},
		{
			ID:          fieldResponse,
			Label:       "Response",
			Placeholder: "Response text that'll be sent by the bot",
			Value:       cmd.Response,
			Style:       domain.TextInputParagraph,
		},
		{
			ID:          fieldImages,
			Label:       "Image Attachments",
			Placeholder: "Any images that should be attached to the response message; image URLs, one per line",
			Value:       strings.Join(cmd.ImageAttachments, "\n"),
			Style:       domain.TextInputParagraph,
		},
		{
			ID:          fieldVideos,
			Label:       "Video Attachments",
			Placeholder: "Any videos that should be attached to the response message; video URLs, one per line",
			Value:       strings.Join(cmd.VideoAttachments, "\n"),
			Style:       domain.TextInputParagraph,
		},
	}
}
