package ports

import (
	"context"

	"github.com/fintrack/finance-system/internal/core/domain"
)

// TokenRepository defines the persistence interface for single-use
// verification and reset tokens.
type TokenRepository interface {
	// Replace stores the token, removing any prior token of the same kind for
	// the same user first. At most one live token per (user, kind).
	Replace(ctx context.Context, token *domain.VerificationToken) error
	// Consume atomically finds and deletes the record for the given token
	// value and kind. Exactly one of two concurrent callers receives the
	// record; the other receives domain.ErrTokenNotFound. A token of another
	// kind is not found and is left untouched. Never a read-then-write pair.
	Consume(ctx context.Context, token string, kind domain.TokenKind) (*domain.VerificationToken, error)
	// DeleteByUser removes every outstanding token for the user, any kind.
	DeleteByUser(ctx context.Context, userID string) error
}
