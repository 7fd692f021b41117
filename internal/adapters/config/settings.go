package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"embedbot/internal/adapters/logger"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	DefaultPath = "bot_config.json"
	PathEnv     = "BOT_CONFIG"
)

var (
	ErrSettingsMissing = errors.New("settings file missing")
	ErrSettingsInvalid = errors.New("settings file invalid")
)

// Settings is the validated content of the settings file. Keys are case-insensitive and nested keys are
// addressed with dots, e.g. "slashCommands.admins".
type Settings struct {
	v *viper.Viper
}

// Path returns the settings file location, honoring BOT_CONFIG.
func Path() string {
	if p := os.Getenv(PathEnv); p != "" {
		return p
	}

	return DefaultPath
}

// Read loads and validates the settings file at path. A missing file is replaced by an empty JSON object so
// the operator has something to fill in; the call still fails.
func Read(path string) (*Settings, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if werr := os.WriteFile(path, []byte("{}"), 0o644); werr != nil {
			logger.Critical().Err(werr).Str("path", path).
				Msg("settings file not found and default could not be written")
		} else {
			logger.Critical().Str("path", path).
				Msg("settings file not found, created an empty one, please fill in botToken")
		}
		return nil, ErrSettingsMissing
	}

	f, err := os.Open(path)
	if err != nil {
		logger.Critical().Err(err).Str("path", path).Msg("could not open settings file")
		return nil, fmt.Errorf("%w: %w", ErrSettingsInvalid, err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		logger.Critical().Err(err).Str("path", path).Msg("settings file failed validation")
		return nil, err
	}

	return s, nil
}

// Parse reads JSON settings from r and validates them.
func Parse(r io.Reader) (*Settings, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSettingsInvalid, err)
	}

	s := &Settings{v: v}
	if err := s.validate(); err != nil {
		return nil, err
	}

	return s, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("json")
	_ = v.BindEnv("botToken", "BOT_TOKEN")
	_ = v.BindEnv("logLevel", "BOT_LOG_LEVEL")

	return v
}

func (s *Settings) validate() error {
	raw := s.v.Get("botToken")
	if raw == nil {
		return fmt.Errorf("%w: botToken is missing", ErrSettingsInvalid)
	}

	token, ok := raw.(string)
	if !ok {
		return fmt.Errorf("%w: botToken must be a string", ErrSettingsInvalid)
	}

	if token == "" {
		return fmt.Errorf("%w: botToken is empty", ErrSettingsInvalid)
	}

	return nil
}

func (s *Settings) Token() string {
	return s.v.GetString("botToken")
}

// LogLevel is the configured log level name, empty when unset.
func (s *Settings) LogLevel() string {
	return s.v.GetString("logLevel")
}

func (s *Settings) IsSet(key string) bool {
	return s.v.IsSet(key)
}

// UnmarshalKey decodes the value at key into out. Values must already have the target type: numbers are
// not turned into strings, and a single value is not wrapped into a list.
func (s *Settings) UnmarshalKey(key string, out any) error {
	return s.v.UnmarshalKey(key, out, strictDecoding)
}

func strictDecoding(c *mapstructure.DecoderConfig) {
	c.WeaklyTypedInput = false
	c.DecodeHook = nil
}
