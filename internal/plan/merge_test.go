package plan

import (
	"encoding/json"
	"testing"
	"time"
)

func testDay(calories, protein float64) Day {
	return Day{
		Day:     1,
		DayName: "Someday",
		TotalNutrition: Nutrition{
			Calories:       calories,
			ProteinG:       protein,
			CarbohydratesG: 200,
			FatG:           60,
			FiberG:         25,
		},
		Meals: map[string]Meal{
			"lunch": {MealName: "Bowl", Nutrition: Nutrition{Calories: calories}},
		},
	}
}

func testDocument(days []Day, sl ShoppingList) *Document {
	doc := &Document{
		UserSummary:     json.RawMessage(`{"user_id":"u1"}`),
		MealPlan:        &Week{WeekSummary: map[string]any{}, Days: days},
		Recommendations: map[string]json.RawMessage{},
		Metadata:        json.RawMessage(`{"version":"1.0"}`),
	}
	if err := doc.SetShoppingList(sl); err != nil {
		panic(err)
	}
	return doc
}

func fourThreeSplit() (*Document, *Document) {
	a := testDocument([]Day{
		testDay(2000, 100), testDay(2100, 110), testDay(1900, 90), testDay(2000, 100),
	}, ShoppingList{
		Proteins: []ShoppingItem{
			{Item: "Chicken Breast", TotalQuantityNeeded: 600.0, QuantityToPurchase: 400.0, Unit: "g"},
		},
		TotalEstimatedCost:      40,
		TotalItemsFromInventory: 5,
		TotalItemsToPurchase:    8,
	})
	b := testDocument([]Day{
		testDay(2200, 120), testDay(2000, 100), testDay(1800, 80),
	}, ShoppingList{
		Proteins: []ShoppingItem{
			{Item: "  chicken breast ", TotalQuantityNeeded: 300.0, QuantityToPurchase: 200.0, Unit: "g"},
			{Item: "Salmon", TotalQuantityNeeded: 500.0, QuantityToPurchase: 500.0, Unit: "g"},
		},
		TotalEstimatedCost:      25,
		TotalItemsFromInventory: 3,
		TotalItemsToPurchase:    6,
	})
	return a, b
}

func TestMergeDayNumberingAndNames(t *testing.T) {
	a, b := fourThreeSplit()
	start := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC) // a Friday

	merged, err := Merge(a, b, start, 10)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	days := merged.MealPlan.Days
	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}
	wantNames := []string{"Friday", "Saturday", "Sunday", "Monday", "Tuesday", "Wednesday", "Thursday"}
	for i, d := range days {
		if d.Day != i+1 {
			t.Errorf("day %d numbered %d", i, d.Day)
		}
		if d.DayName != wantNames[i] {
			t.Errorf("day %d name = %q, want %q", i+1, d.DayName, wantNames[i])
		}
	}
	if days[4].MealDate != "2025-01-14" {
		t.Errorf("day 5 date = %q, want 2025-01-14", days[4].MealDate)
	}
}

func TestMergeWeekSummaryAverages(t *testing.T) {
	a, b := fourThreeSplit()
	merged, err := Merge(a, b, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), 10)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	ws := merged.MealPlan.WeekSummary
	// (2000+2100+1900+2000+2200+2000+1800)/7 = 14000/7 = 2000
	if got := ws["average_daily_calories"]; got != 2000 {
		t.Errorf("average_daily_calories = %v, want 2000", got)
	}
	// (100+110+90+100+120+100+80)/7 = 700/7 = 100.0
	if got := ws["average_daily_protein"]; got != 100.0 {
		t.Errorf("average_daily_protein = %v, want 100.0", got)
	}
	if got := ws["average_daily_fat"]; got != 60.0 {
		t.Errorf("average_daily_fat = %v, want 60.0", got)
	}
}

func TestMergeShoppingListQuantities(t *testing.T) {
	a, b := fourThreeSplit()
	merged, err := Merge(a, b, time.Now(), 10)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	sl, ok := merged.ShoppingList()
	if !ok {
		t.Fatal("missing shopping list")
	}
	if len(sl.Proteins) != 2 {
		t.Fatalf("expected 2 protein entries, got %d", len(sl.Proteins))
	}
	chicken := sl.Proteins[0]
	if q, _ := asFloat(chicken.QuantityToPurchase); q != 600 {
		t.Errorf("chicken quantity_to_purchase = %v, want 600", chicken.QuantityToPurchase)
	}
	if q, _ := asFloat(chicken.TotalQuantityNeeded); q != 900 {
		t.Errorf("chicken total_quantity_needed = %v, want 900", chicken.TotalQuantityNeeded)
	}
	if sl.Proteins[1].Item != "Salmon" {
		t.Errorf("unmatched item should be appended, got %+v", sl.Proteins[1])
	}
	if sl.TotalEstimatedCost != 65 {
		t.Errorf("total_estimated_cost = %v, want 65", sl.TotalEstimatedCost)
	}
	if sl.TotalItemsFromInventory != 8 || sl.TotalItemsToPurchase != 14 {
		t.Errorf("totals = %d/%d, want 8/14", sl.TotalItemsFromInventory, sl.TotalItemsToPurchase)
	}
}

func TestMergeNonNumericQuantityKeepsOriginal(t *testing.T) {
	a, b := fourThreeSplit()
	slA, _ := a.ShoppingList()
	slA.Proteins[0].QuantityToPurchase = "2 bunches"
	if err := a.SetShoppingList(slA); err != nil {
		t.Fatal(err)
	}

	merged, err := Merge(a, b, time.Now(), 10)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	sl, _ := merged.ShoppingList()
	if sl.Proteins[0].QuantityToPurchase != "2 bunches" {
		t.Errorf("non-numeric quantity was modified: %v", sl.Proteins[0].QuantityToPurchase)
	}
	// The numeric sibling field still sums.
	if q, _ := asFloat(sl.Proteins[0].TotalQuantityNeeded); q != 900 {
		t.Errorf("total_quantity_needed = %v, want 900", sl.Proteins[0].TotalQuantityNeeded)
	}
}

func TestMergeUtilizationClampedAndZeroOnEmptyInventory(t *testing.T) {
	a, b := fourThreeSplit()
	merged, err := Merge(a, b, time.Now(), 4) // 8 items used of 4 -> raw 200%
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if got := merged.MealPlan.WeekSummary["inventory_utilization_rate"]; got != 100.0 {
		t.Errorf("utilization = %v, want clamped 100.0", got)
	}

	a, b = fourThreeSplit()
	merged, err = Merge(a, b, time.Now(), 0)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if got := merged.MealPlan.WeekSummary["inventory_utilization_rate"]; got != 0.0 {
		t.Errorf("utilization with empty inventory = %v, want 0", got)
	}
}

func TestMergeRejectsInvalidBatch(t *testing.T) {
	a, b := fourThreeSplit()
	b.Metadata = nil
	if _, err := Merge(a, b, time.Now(), 10); err == nil {
		t.Error("expected error for invalid batch B")
	}

	a, b = fourThreeSplit()
	a.MealPlan.Days = nil
	if _, err := Merge(a, b, time.Now(), 10); err == nil {
		t.Error("expected error for batch A without days")
	}
}

func TestParseDocumentRoundTrip(t *testing.T) {
	payload := map[string]any{
		"user_summary": map[string]any{"user_id": "u1"},
		"meal_plan": map[string]any{
			"days": []any{map[string]any{
				"day": 1, "day_name": "Monday",
				"total_nutrition": map[string]any{"calories": 2000},
				"meals":           map[string]any{"lunch": map[string]any{"meal_name": "Bowl"}},
			}},
		},
		"recommendations": map[string]any{"hydration": "2500ml daily"},
		"metadata":        map[string]any{"version": "1.0"},
	}
	doc, err := ParseDocument(payload)
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if err := doc.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	if doc.MealPlan.Days[0].TotalNutrition.Calories != 2000 {
		t.Errorf("calories = %v", doc.MealPlan.Days[0].TotalNutrition.Calories)
	}
	// Unknown recommendation keys survive verbatim.
	if _, ok := doc.Recommendations["hydration"]; !ok {
		t.Error("hydration recommendation lost in parsing")
	}
}

func TestParseDocumentNil(t *testing.T) {
	if _, err := ParseDocument(nil); err == nil {
		t.Error("expected error for nil payload")
	}
}
