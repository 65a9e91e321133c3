package schedule

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"mealmind/internal/database"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if _, err := db.SQL.Exec(`INSERT INTO users (user_id, username) VALUES ('u1', 'alice')`); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return NewRepository(db.SQL)
}

func TestCompleteOthersDemotesToInactive(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 6)

	first, err := repo.Create(ctx, "u1", start, end, start)
	if err != nil {
		t.Fatal(err)
	}
	second, err := repo.Create(ctx, "u1", start, end, start)
	if err != nil {
		t.Fatal(err)
	}

	if err := repo.CompleteOthers(ctx, "u1", second); err != nil {
		t.Fatalf("CompleteOthers: %v", err)
	}

	due, err := repo.ListDue(ctx, start)
	if err != nil {
		t.Fatal(err)
	}
	if len(due) != 1 || due[0].ScheduleID != second {
		t.Fatalf("due schedules = %+v, want only the kept one", due)
	}
	if due[0].Status != "ACTIVE" {
		t.Errorf("kept schedule status = %q, want ACTIVE", due[0].Status)
	}

	var status string
	if err := repo.db.QueryRow(`SELECT status FROM planning_schedule WHERE schedule_id = ?`, first).Scan(&status); err != nil {
		t.Fatal(err)
	}
	if status != "INACTIVE" {
		t.Errorf("demoted schedule status = %q, want INACTIVE", status)
	}
}

func TestAdvanceMovesNextPlanDate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	id, err := repo.Create(ctx, "u1", start, start.AddDate(0, 0, 6), start)
	if err != nil {
		t.Fatal(err)
	}

	next := start.AddDate(0, 0, 7)
	if err := repo.Advance(ctx, id, next); err != nil {
		t.Fatalf("Advance: %v", err)
	}

	due, err := repo.ListDue(ctx, start)
	if err != nil {
		t.Fatal(err)
	}
	if len(due) != 0 {
		t.Errorf("schedule still due before its new date: %+v", due)
	}

	s, err := repo.GetActive(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if s == nil || !s.NextPlanDate.Equal(next) {
		t.Errorf("next_plan_date = %v, want %v", s, next)
	}
}
