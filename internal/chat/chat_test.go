package chat

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"mealmind/internal/feedback"
	"mealmind/internal/inventory"
	"mealmind/internal/llm"
	"mealmind/internal/plan"
	"mealmind/internal/profile"
	"mealmind/internal/shared"
)

type scriptedGen struct {
	responses []string
	prompts   []string
	err       error
}

func (g *scriptedGen) GenerateContent(_ context.Context, prompt string) (llm.ContentResponse, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return llm.ContentResponse{}, g.err
	}
	if len(g.responses) == 0 {
		return llm.ContentResponse{}, errors.New("no scripted response left")
	}
	resp := g.responses[0]
	g.responses = g.responses[1:]
	return llm.ContentResponse{
		Content: resp,
		Usage:   shared.TokenUsage{PromptTokens: 10, CompletionTokens: 5, Model: "test-model"},
	}, nil
}

type fakePlans struct {
	day       plan.StoredDay
	dayErr    error
	wantDate  time.Time
	gotDate   time.Time
	meals     []plan.StoredMeal
	active    plan.ActivePlan
	activeErr error
	dayTotals map[string]plan.Nutrition
}

func (f *fakePlans) DayByDate(_ context.Context, _ string, date time.Time) (plan.StoredDay, error) {
	f.gotDate = date
	if f.dayErr != nil {
		return plan.StoredDay{}, f.dayErr
	}
	return f.day, nil
}

func (f *fakePlans) MealByDate(_ context.Context, _ string, _ time.Time, mealType string) (plan.StoredMeal, error) {
	for _, m := range f.meals {
		if m.MealType == mealType {
			return m, nil
		}
	}
	return plan.StoredMeal{}, plan.ErrNoPlan
}

func (f *fakePlans) MealsForDay(_ context.Context, _ string) ([]plan.StoredMeal, error) {
	return f.meals, nil
}

func (f *fakePlans) UpdateMeal(_ context.Context, detailID string, m plan.Meal) error {
	for i := range f.meals {
		if f.meals[i].DetailID == detailID {
			f.meals[i].Meal = m
			return nil
		}
	}
	return errors.New("unknown detail id")
}

func (f *fakePlans) UpdateDayNutrition(_ context.Context, mealID string, n plan.Nutrition) error {
	if f.dayTotals == nil {
		f.dayTotals = make(map[string]plan.Nutrition)
	}
	f.dayTotals[mealID] = n
	return nil
}

func (f *fakePlans) LatestActivePlan(_ context.Context, _ string) (plan.ActivePlan, error) {
	if f.activeErr != nil {
		return plan.ActivePlan{}, f.activeErr
	}
	return f.active, nil
}

type fakeUsers struct {
	profile profile.Profile
}

func (f *fakeUsers) Get(_ context.Context, _ string) (profile.Profile, error) {
	return f.profile, nil
}

type fakeInventory struct {
	items []inventory.Item
}

func (f *fakeInventory) ListByUser(_ context.Context, _ string) ([]inventory.Item, error) {
	return f.items, nil
}

type fakePrefs struct {
	prefs    feedback.Preferences
	recorded []string
}

func (f *fakePrefs) Get(_ context.Context, _ string) (feedback.Preferences, error) {
	return f.prefs, nil
}

func (f *fakePrefs) Record(_ context.Context, _, prefType, item string) error {
	f.recorded = append(f.recorded, prefType+":"+item)
	return nil
}

func plannerJSON(t *testing.T, steps []Step) string {
	t.Helper()
	raw, err := json.Marshal(map[string][]Step{"steps": steps})
	if err != nil {
		t.Fatal(err)
	}
	return string(raw)
}

func testNow() time.Time {
	// A Monday.
	return time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
}

func lunchAndBreakfast() []plan.StoredMeal {
	return []plan.StoredMeal{
		{
			DetailID: "det-breakfast",
			MealID:   "day-1",
			MealType: "breakfast",
			Meal: plan.Meal{
				MealName:  "Oatmeal with Berries",
				Nutrition: plan.Nutrition{Calories: 300, ProteinG: 15, CarbohydratesG: 40, FatG: 10, FiberG: 5},
			},
		},
		{
			DetailID: "det-lunch",
			MealID:   "day-1",
			MealType: "lunch",
			Meal: plan.Meal{
				MealName:  "Greek Salad with Olives",
				Nutrition: plan.Nutrition{Calories: 450, ProteinG: 20, CarbohydratesG: 30, FatG: 25, FiberG: 8},
			},
		},
	}
}

func TestAdjustMealRemovesItemAndRecomputesTotals(t *testing.T) {
	plans := &fakePlans{
		day: plan.StoredDay{
			MealID:   "day-1",
			DayName:  "Monday",
			MealDate: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		},
		meals: lunchAndBreakfast(),
	}

	adjusted := `{
		"intent": "remove",
		"meal_name": "Greek Salad (no olives)",
		"ingredients_with_quantities": [{"ingredient": "Feta", "quantity": "50", "unit": "g"}],
		"nutrition": {"calories": 400, "protein_g": 19.5, "carbohydrates_g": 29, "fat_g": 20.2, "fiber_g": 7.5},
		"recipe": {"instructions": ["Toss"], "preparation_time": 10, "cooking_time": 0, "difficulty_level": "easy"}
	}`
	gen := &scriptedGen{responses: []string{
		plannerJSON(t, []Step{{Type: StepMealAdjustment, MealType: "lunch", Instruction: "remove olives from lunch"}}),
		adjusted,
	}}

	r := NewRouter(Deps{
		TextGen:   gen,
		Plans:     plans,
		Users:     &fakeUsers{profile: profile.Profile{Targets: profile.Targets{Calories: 2000, ProteinG: 120, CarbohydrateG: 220, FatG: 60}}},
		Inventory: &fakeInventory{},
		Prefs:     &fakePrefs{},
	})

	reply := r.Respond(context.Background(), Request{
		UserID:  "u1",
		Message: "remove olives from my lunch",
		Now:     testNow(),
	})

	if !strings.Contains(reply, "Successfully updated lunch") {
		t.Errorf("reply missing confirmation: %q", reply)
	}
	if !strings.Contains(reply, "Greek Salad (no olives)") {
		t.Errorf("reply missing new meal name: %q", reply)
	}
	// 300 + 400 calories, 15 + 19.5 protein
	if !strings.Contains(reply, "Calories: 700 kcal") {
		t.Errorf("reply missing recomputed calories: %q", reply)
	}
	if !strings.Contains(reply, "Protein: 34.5g") {
		t.Errorf("reply missing recomputed protein: %q", reply)
	}

	total, ok := plans.dayTotals["day-1"]
	if !ok {
		t.Fatal("day totals were not persisted")
	}
	want := plan.Nutrition{Calories: 700, ProteinG: 34.5, CarbohydratesG: 69, FatG: 30.2, FiberG: 12.5}
	if total != want {
		t.Errorf("persisted totals = %+v, want %+v", total, want)
	}
	if plans.meals[1].Meal.MealName != "Greek Salad (no olives)" {
		t.Errorf("stored meal not updated: %+v", plans.meals[1].Meal)
	}
}

func TestAdjustMealEmitsHealthWarnings(t *testing.T) {
	plans := &fakePlans{
		day:   plan.StoredDay{MealID: "day-1"},
		meals: lunchAndBreakfast(),
	}
	adjusted := `{"intent": "report", "meal_name": "Buffet Plate",
		"nutrition": {"calories": 1800, "protein_g": 40, "carbohydrates_g": 150, "fat_g": 90, "fiber_g": 5}}`
	gen := &scriptedGen{responses: []string{
		plannerJSON(t, []Step{{Type: StepMealAdjustment, MealType: "lunch", Instruction: "I went to a buffet for lunch"}}),
		adjusted,
	}}

	r := NewRouter(Deps{
		TextGen:   gen,
		Plans:     plans,
		Users:     &fakeUsers{profile: profile.Profile{Targets: profile.Targets{Calories: 2000, FatG: 60}}},
		Inventory: &fakeInventory{},
		Prefs:     &fakePrefs{},
	})

	reply := r.Respond(context.Background(), Request{UserID: "u1", Message: "I went to a buffet for lunch", Now: testNow()})

	if !strings.Contains(reply, "Health Alerts") {
		t.Fatalf("expected health alerts in reply: %q", reply)
	}
	if !strings.Contains(reply, "Calories") || !strings.Contains(reply, "exceed") {
		t.Errorf("expected calorie warning: %q", reply)
	}
}

func TestAdjustMealNoPlanForDate(t *testing.T) {
	plans := &fakePlans{dayErr: plan.ErrNoPlan}
	gen := &scriptedGen{responses: []string{
		plannerJSON(t, []Step{{Type: StepMealAdjustment, MealType: "dinner", Instruction: "swap dinner"}}),
	}}

	r := NewRouter(Deps{
		TextGen:   gen,
		Plans:     plans,
		Users:     &fakeUsers{},
		Inventory: &fakeInventory{},
		Prefs:     &fakePrefs{},
	})

	reply := r.Respond(context.Background(), Request{UserID: "u1", Message: "swap dinner", Now: testNow()})
	if !strings.Contains(reply, "No meal plan found for this date") {
		t.Errorf("unexpected reply: %q", reply)
	}
}

func TestRetrieveMealsRuleBasedParse(t *testing.T) {
	now := testNow()
	tomorrow := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)
	plans := &fakePlans{
		day: plan.StoredDay{
			MealID:   "day-2",
			DayName:  "Tuesday",
			MealDate: tomorrow,
		},
		meals: []plan.StoredMeal{{
			DetailID: "det-dinner",
			MealID:   "day-2",
			MealType: "dinner",
			Meal: plan.Meal{
				MealName:  "Lentil Curry",
				Nutrition: plan.Nutrition{Calories: 550, ProteinG: 25},
			},
		}},
	}
	// Planner supplies only the instruction; date and meal type come from
	// the rule-based parse without a second model call.
	gen := &scriptedGen{responses: []string{
		plannerJSON(t, []Step{{Type: StepMealRetrieval, Instruction: "what am I eating for dinner tomorrow"}}),
	}}

	r := NewRouter(Deps{
		TextGen:   gen,
		Plans:     plans,
		Users:     &fakeUsers{},
		Inventory: &fakeInventory{},
		Prefs:     &fakePrefs{},
	})

	reply := r.Respond(context.Background(), Request{UserID: "u1", Message: "what am I eating for dinner tomorrow", Now: now})

	if !plans.gotDate.Equal(tomorrow) {
		t.Errorf("queried date %v, want %v", plans.gotDate, tomorrow)
	}
	if !strings.Contains(reply, "Lentil Curry") {
		t.Errorf("reply missing meal: %q", reply)
	}
	if len(gen.prompts) != 1 {
		t.Errorf("expected 1 model call (planner only), got %d", len(gen.prompts))
	}
}

func TestRetrieveMealsNoData(t *testing.T) {
	plans := &fakePlans{dayErr: plan.ErrNoPlan}
	gen := &scriptedGen{responses: []string{
		plannerJSON(t, []Step{{Type: StepMealRetrieval, Date: "2025-03-05", MealType: "lunch"}}),
	}}

	r := NewRouter(Deps{
		TextGen:   gen,
		Plans:     plans,
		Users:     &fakeUsers{},
		Inventory: &fakeInventory{},
		Prefs:     &fakePrefs{},
	})

	reply := r.Respond(context.Background(), Request{UserID: "u1", Message: "what's for lunch on the 5th", Now: testNow()})
	if !strings.Contains(reply, "No meals found") {
		t.Errorf("unexpected reply: %q", reply)
	}
}

func TestPlannerFailureFallsBackToGeneralChat(t *testing.T) {
	gen := &scriptedGen{err: errors.New("model unavailable")}

	r := NewRouter(Deps{
		TextGen:   gen,
		Plans:     &fakePlans{activeErr: plan.ErrNoPlan},
		Users:     &fakeUsers{},
		Inventory: &fakeInventory{},
		Prefs:     &fakePrefs{},
	})

	reply := r.Respond(context.Background(), Request{UserID: "u1", Message: "hello", Now: testNow()})
	if reply == "" {
		t.Fatal("chat must always return some text")
	}
	if !strings.Contains(reply, "offline") {
		t.Errorf("expected offline message, got %q", reply)
	}
}

func TestMultiStepRepliesAreConcatenated(t *testing.T) {
	plans := &fakePlans{
		day: plan.StoredDay{
			MealID:   "day-1",
			DayName:  "Monday",
			MealDate: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		},
		meals:  lunchAndBreakfast(),
		active: plan.ActivePlan{PlanName: "Week of Mar 3"},
	}
	gen := &scriptedGen{responses: []string{
		plannerJSON(t, []Step{
			{Type: StepMealRetrieval, Date: "today", MealType: "lunch"},
			{Type: StepGeneralChat, Instruction: "any tips?"},
		}),
		"Drink more water.",
	}}

	r := NewRouter(Deps{
		TextGen:   gen,
		Plans:     plans,
		Users:     &fakeUsers{},
		Inventory: &fakeInventory{},
		Prefs:     &fakePrefs{},
	})

	reply := r.Respond(context.Background(), Request{UserID: "u1", Message: "what's my lunch today, and any tips?", Now: testNow()})

	lunchIdx := strings.Index(reply, "Greek Salad with Olives")
	tipIdx := strings.Index(reply, "Drink more water.")
	if lunchIdx == -1 || tipIdx == -1 {
		t.Fatalf("reply missing step outputs: %q", reply)
	}
	if lunchIdx > tipIdx {
		t.Error("step outputs out of order")
	}
}

func TestStreamEmitsStatusThenContent(t *testing.T) {
	gen := &scriptedGen{responses: []string{
		plannerJSON(t, []Step{{Type: StepGeneralChat, Instruction: "hi"}}),
		"Hello there!",
	}}

	r := NewRouter(Deps{
		TextGen:   gen,
		Plans:     &fakePlans{activeErr: plan.ErrNoPlan},
		Users:     &fakeUsers{},
		Inventory: &fakeInventory{},
		Prefs:     &fakePrefs{},
	})

	var chunks []string
	r.Stream(context.Background(), Request{UserID: "u1", Message: "hi", Now: testNow()}, func(s string) {
		chunks = append(chunks, s)
	})

	var sawStatus, sawContent bool
	for _, c := range chunks {
		if strings.HasPrefix(c, StatusPrefix) {
			if sawContent && c != StatusPrefix+"Analyzing your input..." {
				t.Errorf("status %q emitted after content", c)
			}
			sawStatus = true
			continue
		}
		if c == "Hello there!" {
			sawContent = true
		}
	}
	if !sawStatus || !sawContent {
		t.Fatalf("expected status and content chunks, got %v", chunks)
	}
}

func TestFeedbackRecordedAfterReply(t *testing.T) {
	prefs := &fakePrefs{}
	gen := &scriptedGen{responses: []string{
		plannerJSON(t, []Step{{Type: StepGeneralChat, Instruction: "I love salmon"}}),
		"Great choice!",
	}}

	r := NewRouter(Deps{
		TextGen:   gen,
		Plans:     &fakePlans{activeErr: plan.ErrNoPlan},
		Users:     &fakeUsers{},
		Inventory: &fakeInventory{},
		Prefs:     prefs,
		Extractor: staticExtractor{prefs: feedback.Preferences{Likes: []string{"salmon"}}},
	})

	_ = r.Respond(context.Background(), Request{UserID: "u1", Message: "I love salmon", Now: testNow()})

	if len(prefs.recorded) != 1 || prefs.recorded[0] != "like:salmon" {
		t.Errorf("recorded preferences = %v", prefs.recorded)
	}
}

type staticExtractor struct {
	prefs feedback.Preferences
}

func (s staticExtractor) Extract(_ context.Context, _ string) feedback.ExtractResult {
	return feedback.ExtractResult{Preferences: s.prefs}
}
