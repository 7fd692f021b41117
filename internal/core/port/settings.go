package port

import (
	"context"
	"embedbot/internal/core/domain"
)

// Settings gives plugins read access to arbitrary keys of the settings file. UnmarshalKey fails when a value
// does not already have the target type.
type Settings interface {
	UnmarshalKey(key string, out any) error
	IsSet(key string) bool
}

type Authorizer interface {
	// IsAuthorized reports whether the invoking user may proceed. Denied users are answered with denial.
	IsAuthorized(ctx context.Context, interaction *domain.Interaction, denial string) bool
}
