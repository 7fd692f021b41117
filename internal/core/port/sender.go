package port

import (
	"context"
	"embedbot/internal/core/domain"
	"time"
)

type InteractionSender interface {
	// Reply sends the initial response to an interaction.
	Reply(ctx context.Context, interaction *domain.Interaction, message domain.Message) error
	// FollowUp sends an additional message after the interaction has been answered.
	FollowUp(ctx context.Context, interaction *domain.Interaction, message domain.Message) error
	// ShowModal answers the interaction with a form.
	ShowModal(ctx context.Context, interaction *domain.Interaction, modal domain.Modal) error
}

// ModalWait blocks until the expected modal is submitted, the timeout passes or ctx is done.
type ModalWait func(ctx context.Context, timeout time.Duration) (*domain.ModalSubmission, error)

type ModalAwaiter interface {
	// Expect starts accepting the modal with customID from userID. It has to be called before the modal is
	// shown. release drops the registration and may be called more than once.
	Expect(customID, userID string) (wait ModalWait, release func())
}
