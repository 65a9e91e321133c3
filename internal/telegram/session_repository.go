package telegram

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sessiondb "mealmind/internal/telegram/session_db"
)

// ErrNotLinked is returned when a chat has no associated user yet.
var ErrNotLinked = errors.New("chat not linked to a user")

// SessionRepository links Telegram chats to application users.
type SessionRepository struct {
	queries *sessiondb.Queries
	db      *sql.DB
}

// NewSessionRepository creates a SessionRepository backed by an existing
// connection.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{
		queries: sessiondb.New(db),
		db:      db,
	}
}

// Link associates a chat with a user, replacing any previous link.
func (sr *SessionRepository) Link(ctx context.Context, chatID int64, userID string) error {
	err := sr.queries.LinkChat(ctx, sessiondb.LinkChatParams{
		ChatID:    chatID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to link chat %d: %w", chatID, err)
	}
	return nil
}

// UserFor resolves the user behind a chat, or ErrNotLinked.
func (sr *SessionRepository) UserFor(ctx context.Context, chatID int64) (string, error) {
	row, err := sr.queries.GetChatLink(ctx, chatID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotLinked
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up chat %d: %w", chatID, err)
	}
	return row.UserID, nil
}

// Unlink removes a chat's association.
func (sr *SessionRepository) Unlink(ctx context.Context, chatID int64) error {
	if err := sr.queries.UnlinkChat(ctx, chatID); err != nil {
		return fmt.Errorf("failed to unlink chat %d: %w", chatID, err)
	}
	return nil
}
