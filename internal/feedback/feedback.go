// Package feedback accumulates long-term food preferences learned from
// chat interactions.
package feedback

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	feedbackdb "mealmind/internal/feedback/feedback_db"
)

// Preference types as stored in user_preferences.
const (
	TypeLike        = "like"
	TypeDislike     = "dislike"
	TypeCuisine = "cuisine"
)

// Preference is one learned fact about a user's tastes.
type Preference struct {
	Type        string
	Item        string
	Occurrences int
	LastSeen    time.Time
}

// Preferences groups a user's learned preferences by type.
type Preferences struct {
	Likes    []string
	Dislikes []string
	Cuisines []string
}

// Repository provides access to preference persistence.
type Repository struct {
	queries *feedbackdb.Queries
	db      *sql.DB
}

// NewRepository creates a Repository backed by an existing connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		queries: feedbackdb.New(db),
		db:      db,
	}
}

// Record upserts a preference, bumping its occurrence count when it was
// already known.
func (r *Repository) Record(ctx context.Context, userID, prefType, item string) error {
	item = strings.ToLower(strings.TrimSpace(item))
	if item == "" {
		return nil
	}
	err := r.queries.UpsertPreference(ctx, feedbackdb.UpsertPreferenceParams{
		PreferenceID:   uuid.NewString(),
		UserID:         userID,
		PreferenceType: prefType,
		Item:           item,
		LastSeen:       time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to record preference: %w", err)
	}
	return nil
}

// Get returns a user's preferences grouped by type, strongest first.
func (r *Repository) Get(ctx context.Context, userID string) (Preferences, error) {
	rows, err := r.queries.ListPreferencesByUser(ctx, userID)
	if err != nil {
		return Preferences{}, fmt.Errorf("failed to list preferences: %w", err)
	}
	var prefs Preferences
	for _, row := range rows {
		switch row.PreferenceType {
		case TypeLike:
			prefs.Likes = append(prefs.Likes, row.Item)
		case TypeDislike:
			prefs.Dislikes = append(prefs.Dislikes, row.Item)
		case TypeCuisine:
			prefs.Cuisines = append(prefs.Cuisines, row.Item)
		}
	}
	return prefs, nil
}

// Forget removes a single preference.
func (r *Repository) Forget(ctx context.Context, userID, prefType, item string) error {
	err := r.queries.DeletePreference(ctx, feedbackdb.DeletePreferenceParams{
		UserID:         userID,
		PreferenceType: prefType,
		Item:           strings.ToLower(strings.TrimSpace(item)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete preference: %w", err)
	}
	return nil
}

// FormatForPrompt renders preferences as a compact block for inclusion in
// chat and planner prompts. Empty preferences yield an empty string.
func (p Preferences) FormatForPrompt() string {
	var parts []string
	if len(p.Likes) > 0 {
		parts = append(parts, "Likes: "+strings.Join(p.Likes, ", "))
	}
	if len(p.Dislikes) > 0 {
		parts = append(parts, "Dislikes: "+strings.Join(p.Dislikes, ", "))
	}
	if len(p.Cuisines) > 0 {
		parts = append(parts, "Preferred cuisines: "+strings.Join(p.Cuisines, ", "))
	}
	return strings.Join(parts, "\n")
}

// IsEmpty reports whether nothing has been learned yet.
func (p Preferences) IsEmpty() bool {
	return len(p.Likes) == 0 && len(p.Dislikes) == 0 && len(p.Cuisines) == 0
}
