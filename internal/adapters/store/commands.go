package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"embedbot/internal/adapters/file"
	"embedbot/internal/core/domain"

	"github.com/rs/zerolog/log"
)

const DefaultPath = "commands.json"

var errMissingField = errors.New("missing required field")

type document struct {
	Commands []domain.CustomCommand `json:"commands"`
}

// CommandStore holds the custom commands in memory and mirrors them to a JSON file.
type CommandStore struct {
	path string

	mu       sync.RWMutex
	commands map[string]domain.CustomCommand

	saveMu sync.Mutex
}

func NewCommandStore(path string) *CommandStore {
	return &CommandStore{path: path, commands: map[string]domain.CustomCommand{}}
}

// Load replaces the in-memory commands with the file content. It returns false when the file is unreadable
// or is not shaped like {"commands": [...]}; invalid entries inside a valid document are logged and skipped.
func (s *CommandStore) Load() bool {
	l := log.With().Str("path", s.path).Logger()

	raw, err := file.Read(s.path)
	if err != nil {
		l.Warn().Err(err).Msg("could not read custom commands")
		return false
	}

	var doc struct {
		Commands *[]json.RawMessage `json:"commands"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil || doc.Commands == nil {
		l.Error().Err(err).Msg("custom commands file malformed, expected an object with a commands list")
		return false
	}

	loaded := make(map[string]domain.CustomCommand, len(*doc.Commands))
	for i, rawEntry := range *doc.Commands {
		cmd, err := decodeCommand(rawEntry)
		if err != nil {
			l.Error().Err(err).Int("index", i).RawJSON("entry", rawEntry).Msg("skipping invalid custom command")
			continue
		}

		if _, ok := loaded[cmd.Name]; ok {
			l.Warn().Str("command", cmd.Name).Msg("duplicate custom command, keeping the last one")
		}
		loaded[cmd.Name] = cmd
	}

	s.mu.Lock()
	s.commands = loaded
	s.mu.Unlock()

	l.Info().Int("count", len(loaded)).Msg("loaded custom commands")

	return true
}

// decodeCommand requires every field under its exact key. A null value counts as missing.
func decodeCommand(raw json.RawMessage) (domain.CustomCommand, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return domain.CustomCommand{}, fmt.Errorf("invalid entry: %w", err)
	}

	var cmd domain.CustomCommand
	targets := []struct {
		key string
		out any
	}{
		{key: "name", out: &cmd.Name},
		{key: "description", out: &cmd.Description},
		{key: "response", out: &cmd.Response},
		{key: "imageAttachments", out: &cmd.ImageAttachments},
		{key: "videoAttachments", out: &cmd.VideoAttachments},
	}

	var missing []string
	for _, target := range targets {
		value, ok := fields[target.key]
		if !ok || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			missing = append(missing, target.key)
			continue
		}

		if err := json.Unmarshal(value, target.out); err != nil {
			return domain.CustomCommand{}, fmt.Errorf("invalid %s: %w", target.key, err)
		}
	}
	if len(missing) > 0 {
		return domain.CustomCommand{}, fmt.Errorf("%w: %s", errMissingField, strings.Join(missing, ", "))
	}

	cmd = cmd.Normalized()
	if err := cmd.Validate(); err != nil {
		return domain.CustomCommand{}, err
	}

	return cmd, nil
}

func (s *CommandStore) Get(name string) (domain.CustomCommand, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cmd, ok := s.commands[name]
	return cmd, ok
}

// Set adds or replaces the command with the same name. Call Save to persist it.
func (s *CommandStore) Set(command domain.CustomCommand) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.commands[command.Name] = command.Normalized()
}

// All returns every command ordered by name.
func (s *CommandStore) All() []domain.CustomCommand {
	s.mu.RLock()
	commands := make([]domain.CustomCommand, 0, len(s.commands))
	for _, cmd := range s.commands {
		commands = append(commands, cmd)
	}
	s.mu.RUnlock()

	slices.SortFunc(commands, func(a, b domain.CustomCommand) int { return strings.Compare(a.Name, b.Name) })

	return commands
}

func (s *CommandStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.commands)
}

// Save writes every command to the file, replacing its previous content.
func (s *CommandStore) Save() error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	data, err := json.MarshalIndent(document{Commands: s.All()}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode custom commands: %w", err)
	}

	if err := file.WriteAtomic(s.path, append(data, '\n')); err != nil {
		return fmt.Errorf("failed to save custom commands: %w", err)
	}

	log.Debug().Str("path", s.path).Int("count", s.Len()).Msg("saved custom commands")

	return nil
}
