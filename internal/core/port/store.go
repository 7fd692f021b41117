package port

import "embedbot/internal/core/domain"

type CommandStore interface {
	Get(name string) (domain.CustomCommand, bool)
	Set(command domain.CustomCommand)
	All() []domain.CustomCommand
	Save() error
}
