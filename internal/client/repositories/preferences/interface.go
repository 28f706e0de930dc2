package preferences

import (
	"context"
)

// Key names a persisted client preference.
type Key string

const (
	KeyTheme          Key = "theme"
	KeyLastValidRoute Key = "last_valid_route"
	KeyShortDomain    Key = "short_domain"
)

// Repository is the durable key/value store behind client preferences.
// Get reports ok=false when the key has never been written.
type Repository interface {
	Get(ctx context.Context, key Key) (value string, ok bool, err error)
	Set(ctx context.Context, key Key, value string) error
	Seed(ctx context.Context, defaults map[Key]string) error
	Delete(ctx context.Context, key Key) error
	List(ctx context.Context) (map[Key]string, error)
}
