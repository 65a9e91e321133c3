// Package workflow runs the weekly planning loop: find users whose next
// plan is due, aggregate their context, generate, and persist.
package workflow

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"mealmind/internal/feedback"
	"mealmind/internal/inventory"
	"mealmind/internal/plan"
	"mealmind/internal/profile"
	"mealmind/internal/schedule"
	"mealmind/internal/shared"
)

// UserStore serves user profiles.
type UserStore interface {
	Get(ctx context.Context, userID string) (profile.Profile, error)
	SaveTargets(ctx context.Context, userID string, bmi float64, t profile.Targets) error
}

// ScheduleStore serves and updates planning schedules.
type ScheduleStore interface {
	ListDue(ctx context.Context, date time.Time) ([]schedule.Schedule, error)
	CompleteOthers(ctx context.Context, userID, scheduleID string) error
	Advance(ctx context.Context, scheduleID string, nextPlanDate time.Time) error
}

// InventoryStore serves a user's pantry items.
type InventoryStore interface {
	ListByUser(ctx context.Context, userID string) ([]inventory.Item, error)
}

// PreferenceStore serves learned user preferences.
type PreferenceStore interface {
	Get(ctx context.Context, userID string) (feedback.Preferences, error)
}

// PlanStore persists generated plan documents.
type PlanStore interface {
	Save(ctx context.Context, in plan.SaveInput) (string, error)
	PreviousMeals(ctx context.Context, userID string) ([]plan.PreviousMealName, error)
}

// Generator produces a plan document for one user.
type Generator interface {
	Generate(ctx context.Context, in plan.GenerateInput) plan.GenerateResult
}

// MetricsRecorder receives agent execution metadata.
type MetricsRecorder interface {
	RecordMeta(meta shared.AgentMeta) error
}

const (
	defaultMaxRetries = 3
	defaultRetryDelay = 2 * time.Second
	planIntervalDays  = 7
)

// Deps bundles everything the Runner needs.
type Deps struct {
	Users       UserStore
	Schedules   ScheduleStore
	Inventory   InventoryStore
	Preferences PreferenceStore
	Plans       PlanStore
	Generator   Generator
	Metrics     MetricsRecorder
	DRI         *profile.DRIClient
	Logger      *zap.Logger
}

// Runner drives one pass of the weekly planning loop.
type Runner struct {
	deps       Deps
	maxRetries int
	retryDelay time.Duration
}

// NewRunner creates a Runner. A nil Logger is replaced with a no-op one.
func NewRunner(deps Deps) *Runner {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Runner{
		deps:       deps,
		maxRetries: defaultMaxRetries,
		retryDelay: defaultRetryDelay,
	}
}

// SetRetryPolicy overrides how persistence failures are retried.
func (r *Runner) SetRetryPolicy(retries int, delay time.Duration) {
	r.maxRetries = retries
	r.retryDelay = delay
}

// RunError describes one failed user in a run.
type RunError struct {
	UserID     string
	ScheduleID string
	Err        error
	Timestamp  time.Time
}

// RunResult summarizes one pass over the due schedules.
type RunResult struct {
	SuccessCount int
	FailureCount int
	MockedCount  int
	Errors       []RunError
}

// Run processes every schedule due on or before today. Per-user failures
// are collected rather than aborting the pass; only the initial schedule
// query can fail the run outright.
func (r *Runner) Run(ctx context.Context, today time.Time) (RunResult, error) {
	due, err := r.deps.Schedules.ListDue(ctx, today)
	if err != nil {
		return RunResult{}, fmt.Errorf("failed to list due schedules: %w", err)
	}

	var result RunResult
	seen := make(map[string]bool, len(due))
	for _, s := range due {
		// Duplicate ACTIVE schedules drift in over time; plan each user
		// once per pass, letting CompleteOthers demote the extras.
		if seen[s.UserID] {
			continue
		}
		seen[s.UserID] = true
		mocked, err := r.planUser(ctx, s, today)
		if err != nil {
			r.deps.Logger.Error("plan generation failed",
				zap.String("user_id", s.UserID),
				zap.String("schedule_id", s.ScheduleID),
				zap.Error(err))
			result.FailureCount++
			result.Errors = append(result.Errors, RunError{
				UserID:     s.UserID,
				ScheduleID: s.ScheduleID,
				Err:        err,
				Timestamp:  time.Now().UTC(),
			})
			continue
		}
		result.SuccessCount++
		if mocked {
			result.MockedCount++
		}
	}

	r.deps.Logger.Info("planning pass finished",
		zap.Int("due", len(due)),
		zap.Int("succeeded", result.SuccessCount),
		zap.Int("failed", result.FailureCount),
		zap.Int("mocked", result.MockedCount))
	return result, nil
}

// planUser generates and persists one user's plan. The returned bool
// reports whether the fallback plan was used.
func (r *Runner) planUser(ctx context.Context, s schedule.Schedule, today time.Time) (bool, error) {
	p, err := r.deps.Users.Get(ctx, s.UserID)
	if err != nil {
		return false, fmt.Errorf("failed to load profile: %w", err)
	}
	if !p.ProfileCompleted {
		return false, fmt.Errorf("profile incomplete for user %s", s.UserID)
	}

	// Rows written before target calculation existed carry zero targets.
	if p.Targets.Calories == 0 {
		bmi, t := profile.ResolveTargets(ctx, r.deps.DRI, p.Age, p.Gender, p.WeightKG, p.HeightCM, p.ActivityLevel, p.HealthGoal)
		p.BMI, p.Targets = bmi, t
		if err := r.deps.Users.SaveTargets(ctx, s.UserID, bmi, t); err != nil {
			r.deps.Logger.Warn("failed to save recomputed targets",
				zap.String("user_id", s.UserID), zap.Error(err))
		}
	}

	items, err := r.deps.Inventory.ListByUser(ctx, s.UserID)
	if err != nil {
		return false, fmt.Errorf("failed to load inventory: %w", err)
	}

	// Preferences and meal history are advisory; lookup failures just
	// mean none.
	var prefText string
	if prefs, err := r.deps.Preferences.Get(ctx, s.UserID); err == nil {
		prefText = prefs.FormatForPrompt()
	}
	recent, err := r.deps.Plans.PreviousMeals(ctx, s.UserID)
	if err != nil {
		recent = nil
	}

	startDate := s.NextPlanDate
	if startDate.IsZero() {
		startDate = today
	}

	gen := r.deps.Generator.Generate(ctx, plan.GenerateInput{
		Profile:     p,
		Inventory:   items,
		Preferences: prefText,
		RecentMeals: recent,
		StartDate:   startDate,
	})
	r.recordMetas(gen.Metas)

	generatedBy := "AGENT"
	if gen.Mocked {
		generatedBy = "MOCK"
	}

	err = shared.Retry(ctx, r.maxRetries, r.retryDelay, func(ctx context.Context) error {
		_, err := r.deps.Plans.Save(ctx, plan.SaveInput{
			UserID:      s.UserID,
			ScheduleID:  s.ScheduleID,
			StartDate:   startDate,
			Document:    gen.Document,
			GeneratedBy: generatedBy,
		})
		return err
	})
	if err != nil {
		return gen.Mocked, fmt.Errorf("failed to persist plan: %w", err)
	}

	if err := r.deps.Schedules.CompleteOthers(ctx, s.UserID, s.ScheduleID); err != nil {
		return gen.Mocked, err
	}
	if err := r.deps.Schedules.Advance(ctx, s.ScheduleID, today.AddDate(0, 0, planIntervalDays)); err != nil {
		return gen.Mocked, err
	}

	r.deps.Logger.Info("plan persisted",
		zap.String("user_id", s.UserID),
		zap.String("generated_by", generatedBy),
		zap.Time("start_date", startDate))
	return gen.Mocked, nil
}

func (r *Runner) recordMetas(metas []shared.AgentMeta) {
	if r.deps.Metrics == nil {
		return
	}
	for _, meta := range metas {
		if err := r.deps.Metrics.RecordMeta(meta); err != nil {
			r.deps.Logger.Warn("failed to record metric", zap.Error(err))
		}
	}
}
