package logger

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup points the global logger at a human readable writer and applies level.
func Setup(level string, w io.Writer) {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.DateTime}).
		With().
		Timestamp().
		Logger()

	SetLevel(level)
}

// SetLevel applies a level name from the settings file. Unknown names fall back to info.
func SetLevel(level string) zerolog.Level {
	var logLevel zerolog.Level

	switch strings.ToLower(level) {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn", "warning":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	return logLevel
}

// Critical starts a message at the highest severity without terminating the process.
func Critical() *zerolog.Event {
	return log.WithLevel(zerolog.FatalLevel)
}

// DiscordLogger forwards discordgo's internal messages. Assign it to discordgo.Logger.
func DiscordLogger(msgL, caller int, format string, a ...interface{}) {
	var event *zerolog.Event

	switch msgL {
	case discordgo.LogError:
		event = log.Error()
	case discordgo.LogWarning:
		event = log.Warn()
	case discordgo.LogInformational:
		event = log.Info()
	default:
		event = log.Debug()
	}

	if _, file, line, ok := runtime.Caller(caller); ok {
		event = event.Str("caller", fmt.Sprintf("%s:%d", filepath.Base(file), line))
	}

	event.Str("source", "discordgo").Msg(fmt.Sprintf(format, a...))
}

// DiscordLogLevel maps the configured level onto discordgo's session log level.
func DiscordLogLevel(level zerolog.Level) int {
	switch {
	case level <= zerolog.DebugLevel:
		return discordgo.LogDebug
	case level == zerolog.InfoLevel:
		return discordgo.LogInformational
	case level == zerolog.WarnLevel:
		return discordgo.LogWarning
	default:
		return discordgo.LogError
	}
}
