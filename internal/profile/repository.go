package profile

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	profiledb "mealmind/internal/profile/profile_db"
)

// Repository provides access to user profile persistence.
type Repository struct {
	queries *profiledb.Queries
	db      *sql.DB
}

// NewRepository creates a Repository backed by an existing connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		queries: profiledb.New(db),
		db:      db,
	}
}

// Create inserts a new user profile and returns its generated ID.
func (r *Repository) Create(ctx context.Context, p Profile) (string, error) {
	id := p.UserID
	if id == "" {
		id = uuid.NewString()
	}
	now := time.Now().UTC()

	err := r.queries.CreateUser(ctx, profiledb.CreateUserParams{
		UserID:              id,
		Username:            p.Username,
		Email:               nullString(p.Email),
		Age:                 nullInt(p.Age),
		Gender:              nullString(p.Gender),
		HeightCm:            nullFloat(p.HeightCM),
		WeightKg:            nullFloat(p.WeightKG),
		ActivityLevel:       nullString(p.ActivityLevel),
		HealthGoal:          nullString(p.HealthGoal),
		DietaryRestrictions: nullString(p.DietaryRestrictions),
		FoodAllergies:       nullString(p.FoodAllergies),
		PreferredCuisines:   nullString(p.PreferredCuisines),
		CreatedAt:           now,
		UpdatedAt:           now,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// Get returns a single profile by user ID.
func (r *Repository) Get(ctx context.Context, userID string) (Profile, error) {
	row, err := r.queries.GetUser(ctx, userID)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	return fromRow(row), nil
}

// GetByUsername returns a single profile by username.
func (r *Repository) GetByUsername(ctx context.Context, username string) (Profile, error) {
	row, err := r.queries.GetUserByUsername(ctx, username)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to get user %s: %w", username, err)
	}
	return fromRow(row), nil
}

// ListCompleted returns all users with a completed profile, the population
// eligible for weekly plan generation.
func (r *Repository) ListCompleted(ctx context.Context) ([]Profile, error) {
	rows, err := r.queries.ListCompletedProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed profiles: %w", err)
	}
	profiles := make([]Profile, 0, len(rows))
	for _, row := range rows {
		profiles = append(profiles, fromRow(row))
	}
	return profiles, nil
}

// SaveTargets recomputes and stores BMI and daily targets, marking the
// profile as completed.
func (r *Repository) SaveTargets(ctx context.Context, userID string, bmi float64, t Targets) error {
	err := r.queries.UpdateUserTargets(ctx, profiledb.UpdateUserTargetsParams{
		Bmi:               nullFloat(bmi),
		DailyCalories:     nullInt(t.Calories),
		DailyProtein:      nullFloat(t.ProteinG),
		DailyCarbohydrate: nullFloat(t.CarbohydrateG),
		DailyFat:          nullFloat(t.FatG),
		DailyFiber:        nullFloat(t.FiberG),
		UpdatedAt:         time.Now().UTC(),
		UserID:            userID,
	})
	if err != nil {
		return fmt.Errorf("failed to update targets for %s: %w", userID, err)
	}
	return nil
}

func fromRow(row profiledb.User) Profile {
	return Profile{
		UserID:              row.UserID,
		Username:            row.Username,
		Email:               row.Email.String,
		Age:                 int(row.Age.Int64),
		Gender:              row.Gender.String,
		HeightCM:            row.HeightCm.Float64,
		WeightKG:            row.WeightKg.Float64,
		BMI:                 row.Bmi.Float64,
		ActivityLevel:       row.ActivityLevel.String,
		HealthGoal:          row.HealthGoal.String,
		DietaryRestrictions: row.DietaryRestrictions.String,
		FoodAllergies:       row.FoodAllergies.String,
		PreferredCuisines:   row.PreferredCuisines.String,
		Targets: Targets{
			Calories:      int(row.DailyCalories.Int64),
			ProteinG:      row.DailyProtein.Float64,
			CarbohydrateG: row.DailyCarbohydrate.Float64,
			FatG:          row.DailyFat.Float64,
			FiberG:        row.DailyFiber.Float64,
		},
		ProfileCompleted: row.ProfileCompleted == 1,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(v int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(v), Valid: v != 0}
}

func nullFloat(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: v != 0}
}
