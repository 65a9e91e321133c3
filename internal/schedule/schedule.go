// Package schedule tracks when each user's next weekly plan is due.
package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	scheduledb "mealmind/internal/schedule/schedule_db"
)

// Schedule is one user's planning window.
type Schedule struct {
	ScheduleID    string
	UserID        string
	PlanStartDate time.Time
	PlanEndDate   time.Time
	NextPlanDate  time.Time
	Status        string
	CreatedAt     time.Time
}

// Repository provides access to planning schedule persistence.
type Repository struct {
	queries *scheduledb.Queries
	db      *sql.DB
}

// NewRepository creates a Repository backed by an existing connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		queries: scheduledb.New(db),
		db:      db,
	}
}

// Create registers a new ACTIVE schedule covering [start, end] and returns
// its ID. nextPlanDate is when the generation loop should next pick the
// user up.
func (r *Repository) Create(ctx context.Context, userID string, start, end, nextPlanDate time.Time) (string, error) {
	id := uuid.NewString()
	err := r.queries.CreateSchedule(ctx, scheduledb.CreateScheduleParams{
		ScheduleID:    id,
		UserID:        userID,
		PlanStartDate: start,
		PlanEndDate:   end,
		NextPlanDate:  nextPlanDate,
		Status:        "ACTIVE",
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create schedule: %w", err)
	}
	return id, nil
}

// ListDue returns all ACTIVE schedules whose next_plan_date is on or
// before the given date.
func (r *Repository) ListDue(ctx context.Context, date time.Time) ([]Schedule, error) {
	rows, err := r.queries.ListDueSchedules(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list due schedules: %w", err)
	}
	out := make([]Schedule, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromRow(row))
	}
	return out, nil
}

// GetActive returns the most recent ACTIVE schedule for a user, or nil
// when none exists.
func (r *Repository) GetActive(ctx context.Context, userID string) (*Schedule, error) {
	row, err := r.queries.GetActiveSchedule(ctx, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active schedule: %w", err)
	}
	s := fromRow(row)
	return &s, nil
}

// CompleteOthers marks every other ACTIVE schedule for the user as
// INACTIVE, leaving only the given one active.
func (r *Repository) CompleteOthers(ctx context.Context, userID, scheduleID string) error {
	err := r.queries.CompleteOtherSchedules(ctx, scheduledb.CompleteOtherSchedulesParams{
		UserID:     userID,
		ScheduleID: scheduleID,
	})
	if err != nil {
		return fmt.Errorf("failed to complete other schedules: %w", err)
	}
	return nil
}

// Advance moves a schedule's next_plan_date forward.
func (r *Repository) Advance(ctx context.Context, scheduleID string, nextPlanDate time.Time) error {
	err := r.queries.AdvanceSchedule(ctx, scheduledb.AdvanceScheduleParams{
		NextPlanDate: nextPlanDate,
		ScheduleID:   scheduleID,
	})
	if err != nil {
		return fmt.Errorf("failed to advance schedule: %w", err)
	}
	return nil
}

func fromRow(row scheduledb.PlanningSchedule) Schedule {
	return Schedule{
		ScheduleID:    row.ScheduleID,
		UserID:        row.UserID,
		PlanStartDate: row.PlanStartDate,
		PlanEndDate:   row.PlanEndDate,
		NextPlanDate:  row.NextPlanDate,
		Status:        row.Status,
		CreatedAt:     row.CreatedAt,
	}
}
