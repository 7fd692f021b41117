package sender

import (
	"context"
	"sync"
	"time"

	"embedbot/internal/adapters/handler"
	"embedbot/internal/core/domain"
	"embedbot/internal/core/port"
)

// EventSource registers gateway event handlers, as *discordgo.Session does.
type EventSource interface {
	AddHandler(handler interface{}) func()
}

type waiter struct {
	userID string
	ch     chan *domain.ModalSubmission
}

// ModalCollector hands modal submissions to whoever awaits their custom ID.
type ModalCollector struct {
	mu      sync.Mutex
	waiting map[string]waiter
}

func NewModalCollector(events EventSource) *ModalCollector {
	c := &ModalCollector{waiting: map[string]waiter{}}
	events.AddHandler(handler.NewModal(c).Handle)

	return c
}

// Deliver passes submission to its waiter. Submissions nobody waits for, or sent by another user, are
// rejected.
func (c *ModalCollector) Deliver(submission *domain.ModalSubmission) bool {
	c.mu.Lock()
	w, ok := c.waiting[submission.CustomID]
	if !ok || submission.Interaction == nil || w.userID != submission.Interaction.UserID {
		c.mu.Unlock()
		return false
	}
	delete(c.waiting, submission.CustomID)
	c.mu.Unlock()

	w.ch <- submission

	return true
}

// Expect registers a waiter for customID. Submissions arriving before wait is called are buffered.
func (c *ModalCollector) Expect(customID, userID string) (port.ModalWait, func()) {
	ch := make(chan *domain.ModalSubmission, 1)

	c.mu.Lock()
	c.waiting[customID] = waiter{userID: userID, ch: ch}
	c.mu.Unlock()

	release := func() {
		c.mu.Lock()
		if w, ok := c.waiting[customID]; ok && w.ch == ch {
			delete(c.waiting, customID)
		}
		c.mu.Unlock()
	}

	wait := func(ctx context.Context, timeout time.Duration) (*domain.ModalSubmission, error) {
		defer release()

		timer := time.NewTimer(timeout)
		defer timer.Stop()

		select {
		case submission := <-ch:
			return submission, nil
		case <-timer.C:
			return nil, domain.ErrModalTimeout
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return wait, release
}
