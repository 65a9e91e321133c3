package plan

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	plandb "mealmind/internal/plan/plan_db"
)

// ErrNoPlan is returned by lookups when no matching plan data exists.
var ErrNoPlan = errors.New("no plan found")

// Repository persists plan documents and serves the stored rows back to
// the chat layer.
type Repository struct {
	queries *plandb.Queries
	db      *sql.DB
}

// NewRepository creates a Repository backed by an existing connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		queries: plandb.New(db),
		db:      db,
	}
}

// SaveInput carries everything needed to persist one generated plan.
type SaveInput struct {
	UserID      string
	ScheduleID  string
	StartDate   time.Time
	Document    *Document
	GeneratedBy string
}

// Save writes the whole document in one transaction: the plan row, one
// daily_meals row per day, one meal_details row per meal, and the
// shopping list. Any existing ACTIVE plan for the user is demoted so the
// new plan is the only active one.
func (r *Repository) Save(ctx context.Context, in SaveInput) (string, error) {
	if err := in.Document.Validate(); err != nil {
		return "", err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin plan transaction: %w", err)
	}
	defer tx.Rollback()

	q := r.queries.WithTx(tx)
	now := time.Now().UTC()
	planID := uuid.NewString()

	days := in.Document.MealPlan.Days
	endDate := in.StartDate.AddDate(0, 0, len(days)-1)

	var weekSummary sql.NullString
	if len(in.Document.MealPlan.WeekSummary) > 0 {
		raw, err := json.Marshal(in.Document.MealPlan.WeekSummary)
		if err != nil {
			return "", fmt.Errorf("failed to encode week summary: %w", err)
		}
		weekSummary = sql.NullString{String: string(raw), Valid: true}
	}

	err = q.InsertMealPlan(ctx, plandb.InsertMealPlanParams{
		PlanID:      planID,
		UserID:      in.UserID,
		ScheduleID:  nullString(in.ScheduleID),
		PlanName:    nullString(fmt.Sprintf("Week of %s", in.StartDate.Format("Jan 2, 2006"))),
		StartDate:   in.StartDate,
		EndDate:     endDate,
		WeekSummary: weekSummary,
		Status:      "ACTIVE",
		GeneratedBy: in.GeneratedBy,
		CreatedAt:   now,
	})
	if err != nil {
		return "", fmt.Errorf("failed to insert meal plan: %w", err)
	}

	if err := q.DeactivateUserPlans(ctx, plandb.DeactivateUserPlansParams{
		UserID: in.UserID,
		PlanID: planID,
	}); err != nil {
		return "", fmt.Errorf("failed to deactivate previous plans: %w", err)
	}

	for _, day := range days {
		mealID := uuid.NewString()
		mealDate := in.StartDate.AddDate(0, 0, day.Day-1)

		totalNutrition, err := json.Marshal(day.TotalNutrition)
		if err != nil {
			return "", fmt.Errorf("failed to encode day %d nutrition: %w", day.Day, err)
		}

		err = q.InsertDailyMeal(ctx, plandb.InsertDailyMealParams{
			MealID:          mealID,
			PlanID:          planID,
			UserID:          in.UserID,
			DayNumber:       int64(day.Day),
			DayName:         nullString(day.DayName),
			MealDate:        sql.NullTime{Time: mealDate, Valid: true},
			TotalNutrition:  sql.NullString{String: string(totalNutrition), Valid: true},
			InventoryImpact: nullRaw(day.InventoryImpact),
			CreatedAt:       now,
		})
		if err != nil {
			return "", fmt.Errorf("failed to insert day %d: %w", day.Day, err)
		}

		for mealType, meal := range day.Meals {
			nutrition, err := json.Marshal(meal.Nutrition)
			if err != nil {
				return "", fmt.Errorf("failed to encode %s nutrition: %w", mealType, err)
			}
			err = q.InsertMealDetail(ctx, plandb.InsertMealDetailParams{
				DetailID:                  uuid.NewString(),
				MealID:                    mealID,
				MealType:                  mealType,
				MealName:                  meal.MealName,
				IngredientsWithQuantities: nullRaw(meal.IngredientsWithQuantities),
				Recipe:                    nullRaw(meal.Recipe),
				Nutrition:                 sql.NullString{String: string(nutrition), Valid: true},
				PreparationTime:           nullInt(meal.PreparationTime),
				CookingTime:               nullInt(meal.CookingTime),
				Servings:                  nullInt(meal.Servings),
				ServingSize:               nullString(meal.ServingSize),
				DifficultyLevel:           nullString(meal.DifficultyLevel),
				CreatedAt:                 now,
			})
			if err != nil {
				return "", fmt.Errorf("failed to insert %s for day %d: %w", mealType, day.Day, err)
			}
		}
	}

	if sl, ok := in.Document.ShoppingList(); ok {
		data, err := json.Marshal(sl)
		if err != nil {
			return "", fmt.Errorf("failed to encode shopping list: %w", err)
		}
		err = q.InsertShoppingList(ctx, plandb.InsertShoppingListParams{
			ListID:                  uuid.NewString(),
			PlanID:                  planID,
			UserID:                  in.UserID,
			ShoppingData:            sql.NullString{String: string(data), Valid: true},
			TotalEstimatedCost:      sql.NullFloat64{Float64: sl.TotalEstimatedCost, Valid: true},
			TotalItemsFromInventory: sql.NullInt64{Int64: int64(sl.TotalItemsFromInventory), Valid: true},
			TotalItemsToPurchase:    sql.NullInt64{Int64: int64(sl.TotalItemsToPurchase), Valid: true},
			CreatedAt:               now,
		})
		if err != nil {
			return "", fmt.Errorf("failed to insert shopping list: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit plan: %w", err)
	}
	return planID, nil
}

// StoredDay is one persisted daily_meals row.
type StoredDay struct {
	MealID         string
	PlanID         string
	DayNumber      int
	DayName        string
	MealDate       time.Time
	TotalNutrition Nutrition
}

// StoredMeal is one persisted meal_details row.
type StoredMeal struct {
	DetailID string
	MealID   string
	MealType string
	Meal     Meal
}

// DayByDate returns the stored day for a user and calendar date.
func (r *Repository) DayByDate(ctx context.Context, userID string, date time.Time) (StoredDay, error) {
	row, err := r.queries.GetDailyMealByDate(ctx, plandb.GetDailyMealByDateParams{
		UserID:   userID,
		MealDate: sql.NullTime{Time: date, Valid: true},
	})
	if errors.Is(err, sql.ErrNoRows) {
		return StoredDay{}, ErrNoPlan
	}
	if err != nil {
		return StoredDay{}, fmt.Errorf("failed to get day for %s: %w", date.Format("2006-01-02"), err)
	}
	return dayFromRow(row), nil
}

// MealByDate returns one meal of a user's day, identified by date and
// meal type.
func (r *Repository) MealByDate(ctx context.Context, userID string, date time.Time, mealType string) (StoredMeal, error) {
	day, err := r.DayByDate(ctx, userID, date)
	if err != nil {
		return StoredMeal{}, err
	}
	row, err := r.queries.GetMealDetail(ctx, plandb.GetMealDetailParams{
		MealID:   day.MealID,
		MealType: mealType,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return StoredMeal{}, ErrNoPlan
	}
	if err != nil {
		return StoredMeal{}, fmt.Errorf("failed to get %s meal: %w", mealType, err)
	}
	return mealFromRow(row), nil
}

// MealsForDay returns every stored meal of one daily_meals row.
func (r *Repository) MealsForDay(ctx context.Context, mealID string) ([]StoredMeal, error) {
	rows, err := r.queries.ListMealDetailsForDay(ctx, mealID)
	if err != nil {
		return nil, fmt.Errorf("failed to list meals for day: %w", err)
	}
	meals := make([]StoredMeal, 0, len(rows))
	for _, row := range rows {
		meals = append(meals, mealFromRow(row))
	}
	return meals, nil
}

// UpdateMeal overwrites the editable fields of a stored meal.
func (r *Repository) UpdateMeal(ctx context.Context, detailID string, m Meal) error {
	nutrition, err := json.Marshal(m.Nutrition)
	if err != nil {
		return fmt.Errorf("failed to encode nutrition: %w", err)
	}
	err = r.queries.UpdateMealDetail(ctx, plandb.UpdateMealDetailParams{
		MealName:                  m.MealName,
		IngredientsWithQuantities: nullRaw(m.IngredientsWithQuantities),
		Recipe:                    nullRaw(m.Recipe),
		Nutrition:                 sql.NullString{String: string(nutrition), Valid: true},
		DetailID:                  detailID,
	})
	if err != nil {
		return fmt.Errorf("failed to update meal %s: %w", detailID, err)
	}
	return nil
}

// UpdateDayNutrition overwrites the stored day totals.
func (r *Repository) UpdateDayNutrition(ctx context.Context, mealID string, n Nutrition) error {
	raw, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to encode day nutrition: %w", err)
	}
	err = r.queries.UpdateDailyNutrition(ctx, plandb.UpdateDailyNutritionParams{
		TotalNutrition: sql.NullString{String: string(raw), Valid: true},
		MealID:         mealID,
	})
	if err != nil {
		return fmt.Errorf("failed to update day nutrition: %w", err)
	}
	return nil
}

// PreviousMealName is one recently planned meal, used to steer the agent
// away from repetition.
type PreviousMealName struct {
	MealName string
	MealType string
	MealDate time.Time
}

// PreviousMeals lists the user's most recently planned meals, newest
// first.
func (r *Repository) PreviousMeals(ctx context.Context, userID string) ([]PreviousMealName, error) {
	rows, err := r.queries.ListPreviousMealNames(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list previous meals: %w", err)
	}
	names := make([]PreviousMealName, 0, len(rows))
	for _, row := range rows {
		names = append(names, PreviousMealName{
			MealName: row.MealName,
			MealType: row.MealType,
			MealDate: row.MealDate.Time,
		})
	}
	return names, nil
}

// ActivePlan describes the user's current ACTIVE plan row.
type ActivePlan struct {
	PlanID      string
	PlanName    string
	StartDate   time.Time
	EndDate     time.Time
	WeekSummary map[string]any
	GeneratedBy string
}

// LatestActivePlan returns the user's current ACTIVE plan, or ErrNoPlan.
func (r *Repository) LatestActivePlan(ctx context.Context, userID string) (ActivePlan, error) {
	row, err := r.queries.GetLatestActivePlan(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return ActivePlan{}, ErrNoPlan
	}
	if err != nil {
		return ActivePlan{}, fmt.Errorf("failed to get active plan: %w", err)
	}
	p := ActivePlan{
		PlanID:      row.PlanID,
		PlanName:    row.PlanName.String,
		StartDate:   row.StartDate,
		EndDate:     row.EndDate,
		GeneratedBy: row.GeneratedBy,
	}
	if row.WeekSummary.Valid {
		// Best effort: a summary that fails to decode is just omitted.
		_ = json.Unmarshal([]byte(row.WeekSummary.String), &p.WeekSummary)
	}
	return p, nil
}

// ShoppingListForPlan returns the stored shopping list of a plan, or
// ErrNoPlan when none was persisted.
func (r *Repository) ShoppingListForPlan(ctx context.Context, planID string) (ShoppingList, error) {
	row, err := r.queries.GetShoppingListForPlan(ctx, planID)
	if errors.Is(err, sql.ErrNoRows) {
		return ShoppingList{}, ErrNoPlan
	}
	if err != nil {
		return ShoppingList{}, fmt.Errorf("failed to get shopping list: %w", err)
	}
	var sl ShoppingList
	if row.ShoppingData.Valid {
		if err := json.Unmarshal([]byte(row.ShoppingData.String), &sl); err != nil {
			return ShoppingList{}, fmt.Errorf("failed to decode shopping list: %w", err)
		}
	}
	return sl, nil
}

func dayFromRow(row plandb.DailyMeal) StoredDay {
	day := StoredDay{
		MealID:    row.MealID,
		PlanID:    row.PlanID,
		DayNumber: int(row.DayNumber),
		DayName:   row.DayName.String,
		MealDate:  row.MealDate.Time,
	}
	if row.TotalNutrition.Valid {
		_ = json.Unmarshal([]byte(row.TotalNutrition.String), &day.TotalNutrition)
	}
	return day
}

func mealFromRow(row plandb.MealDetail) StoredMeal {
	m := Meal{
		MealName:        row.MealName,
		PreparationTime: int(row.PreparationTime.Int64),
		CookingTime:     int(row.CookingTime.Int64),
		Servings:        int(row.Servings.Int64),
		ServingSize:     row.ServingSize.String,
		DifficultyLevel: row.DifficultyLevel.String,
	}
	if row.IngredientsWithQuantities.Valid {
		m.IngredientsWithQuantities = json.RawMessage(row.IngredientsWithQuantities.String)
	}
	if row.Recipe.Valid {
		m.Recipe = json.RawMessage(row.Recipe.String)
	}
	if row.Nutrition.Valid {
		_ = json.Unmarshal([]byte(row.Nutrition.String), &m.Nutrition)
	}
	return StoredMeal{
		DetailID: row.DetailID,
		MealID:   row.MealID,
		MealType: row.MealType,
		Meal:     m,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(v int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(v), Valid: v != 0}
}

func nullRaw(raw json.RawMessage) sql.NullString {
	return sql.NullString{String: string(raw), Valid: len(raw) > 0}
}
