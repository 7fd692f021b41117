package commands

import (
	"context"
	"errors"
	"sync"
	"time"

	"embedbot/internal/core/domain"
	"embedbot/internal/core/port"
)

type MockSender struct {
	mu        sync.Mutex
	err       error
	Replies   []domain.Message
	FollowUps []domain.Message
	Modals    []domain.Modal
	ReplyTo   []*domain.Interaction
}

func (m *MockSender) Reply(_ context.Context, interaction *domain.Interaction, message domain.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Replies = append(m.Replies, message)
	m.ReplyTo = append(m.ReplyTo, interaction)
	return m.err
}

func (m *MockSender) FollowUp(_ context.Context, _ *domain.Interaction, message domain.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FollowUps = append(m.FollowUps, message)
	return m.err
}

func (m *MockSender) ShowModal(_ context.Context, _ *domain.Interaction, modal domain.Modal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Modals = append(m.Modals, modal)
	return m.err
}

type MockStore struct {
	commands map[string]domain.CustomCommand
	saves    int
	saveErr  error
}

func NewMockStore(commands ...domain.CustomCommand) *MockStore {
	s := &MockStore{commands: map[string]domain.CustomCommand{}}
	for _, cmd := range commands {
		s.commands[cmd.Name] = cmd
	}
	return s
}

func (m *MockStore) Get(name string) (domain.CustomCommand, bool) {
	cmd, ok := m.commands[name]
	return cmd, ok
}

func (m *MockStore) Set(command domain.CustomCommand) {
	m.commands[command.Name] = command
}

func (m *MockStore) All() []domain.CustomCommand {
	out := make([]domain.CustomCommand, 0, len(m.commands))
	for _, cmd := range m.commands {
		out = append(out, cmd)
	}
	return out
}

func (m *MockStore) Save() error {
	m.saves++
	return m.saveErr
}

type MockRegistry struct {
	err       error
	cache     []domain.RemoteCommand
	Defs      []domain.CommandDefinition
	Handlers  map[string]port.Handler
	UsedCache []bool
}

func (m *MockRegistry) List(context.Context) ([]domain.RemoteCommand, error) {
	return m.cache, nil
}

func (m *MockRegistry) Register(_ context.Context, def domain.CommandDefinition, handler port.Handler,
	opts ...port.RegisterOption) (domain.RemoteCommand, error) {
	cfg := &port.RegisterConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	m.UsedCache = append(m.UsedCache, cfg.HasCache)

	if m.err != nil {
		return domain.RemoteCommand{}, m.err
	}

	m.Defs = append(m.Defs, def)
	if m.Handlers == nil {
		m.Handlers = map[string]port.Handler{}
	}
	m.Handlers[def.Name] = handler

	return domain.RemoteCommand{Name: def.Name, Description: def.Description}, nil
}

func (m *MockRegistry) Cached() []domain.RemoteCommand {
	return m.cache
}

// MockModals answers with a prepared submission built from fields, or err.
type MockModals struct {
	fields   map[string]string
	err      error
	sender   *MockSender
	CustomID string
	UserID   string
	Timeout  time.Duration
	// ShownAtExpect is the number of modals the sender had shown when Expect was called.
	ShownAtExpect int
	Released      int
}

func (m *MockModals) Expect(customID, userID string) (port.ModalWait, func()) {
	m.CustomID, m.UserID = customID, userID
	if m.sender != nil {
		m.sender.mu.Lock()
		m.ShownAtExpect = len(m.sender.Modals)
		m.sender.mu.Unlock()
	}

	wait := func(_ context.Context, timeout time.Duration) (*domain.ModalSubmission, error) {
		m.Timeout = timeout
		if m.err != nil {
			return nil, m.err
		}

		return &domain.ModalSubmission{
			Interaction: &domain.Interaction{ID: "submit", UserID: userID},
			CustomID:    customID,
			Fields:      m.fields,
		}, nil
	}

	return wait, func() { m.Released++ }
}

type MockAuthorizer struct {
	allow   bool
	sender  port.InteractionSender
	Denials []string
}

func (m *MockAuthorizer) IsAuthorized(ctx context.Context, interaction *domain.Interaction, denial string) bool {
	if m.allow {
		return true
	}
	m.Denials = append(m.Denials, denial)
	_ = m.sender.Reply(ctx, interaction, domain.Message{Content: denial, Ephemeral: true})
	return false
}

var errMock = errors.New("mock error")
