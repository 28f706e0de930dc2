package services

import (
	"context"

	"github.com/dmitrijs2005/linkkeeper/internal/client/repositories/preferences"
)

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// confirmed reports whether c approved prompt. A nil Confirmer or a prompt
// error counts as "no".
func confirmed(ctx context.Context, c Confirmer, prompt string) bool {
	if c == nil {
		return false
	}
	ok, err := c.Confirm(ctx, prompt)
	return err == nil && ok
}

// PreferenceStore is the part of the preferences repository the stores use.
type PreferenceStore interface {
	Get(ctx context.Context, key preferences.Key) (string, bool, error)
	Set(ctx context.Context, key preferences.Key, value string) error
}
