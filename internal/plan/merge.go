package plan

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Merge reconciles two batch documents (days 1-4 and 5-7) into a single
// plan. Both inputs must validate; the merged result is re-validated and
// discarded entirely when invalid, never returned half-built. startDate
// anchors the rewritten day numbers and weekday names; inventoryCount is
// the size of the user's inventory at generation time, used for the
// utilization rate.
func Merge(a, b *Document, startDate time.Time, inventoryCount int) (*Document, error) {
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("batch A: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("batch B: %w", err)
	}

	merged := *a
	mergedWeek := *a.MealPlan
	mergedWeek.Days = append(append([]Day{}, a.MealPlan.Days...), b.MealPlan.Days...)
	merged.MealPlan = &mergedWeek

	mergeShoppingLists(&merged, a, b)
	recomputeWeekSummary(&merged, inventoryCount)

	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("merged plan: %w", err)
	}

	FixDays(&merged, startDate)
	return &merged, nil
}

// mergeShoppingLists folds batch B's list into batch A's, summing
// quantities for same-named items and appending the rest. Missing or
// undecodable lists leave A's untouched.
func mergeShoppingLists(merged, a, b *Document) {
	slA, okA := a.ShoppingList()
	slB, okB := b.ShoppingList()
	if !okA || !okB {
		return
	}

	catsA := slA.categories()
	catsB := slB.categories()
	for i := range catsA {
		*catsA[i] = mergeCategory(*catsA[i], *catsB[i])
	}

	slA.TotalEstimatedCost += slB.TotalEstimatedCost
	slA.TotalItemsFromInventory += slB.TotalItemsFromInventory
	slA.TotalItemsToPurchase += slB.TotalItemsToPurchase

	// Best-effort: an encode failure keeps A's original list.
	_ = merged.SetShoppingList(slA)
}

func mergeCategory(a, b []ShoppingItem) []ShoppingItem {
	out := append([]ShoppingItem{}, a...)
	index := make(map[string]int, len(out))
	for i, item := range out {
		if item.Item != "" {
			index[normalizeName(item.Item)] = i
		}
	}

	for _, item := range b {
		if item.Item == "" {
			continue
		}
		name := normalizeName(item.Item)
		i, exists := index[name]
		if !exists {
			out = append(out, item)
			index[name] = len(out) - 1
			continue
		}
		if q1, ok1 := asFloat(out[i].QuantityToPurchase); ok1 {
			if q2, ok2 := asFloat(item.QuantityToPurchase); ok2 {
				out[i].QuantityToPurchase = q1 + q2
			}
		}
		if t1, ok1 := asFloat(out[i].TotalQuantityNeeded); ok1 {
			if t2, ok2 := asFloat(item.TotalQuantityNeeded); ok2 {
				out[i].TotalQuantityNeeded = t1 + t2
			}
		}
	}
	return out
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// recomputeWeekSummary rewrites the averages from the merged daily totals
// and derives the inventory utilization rate.
func recomputeWeekSummary(doc *Document, inventoryCount int) {
	days := doc.MealPlan.Days
	if len(days) == 0 {
		return
	}

	ws := doc.MealPlan.WeekSummary
	if ws == nil {
		ws = make(map[string]any)
		doc.MealPlan.WeekSummary = ws
	}

	var cals, prot, carbs, fat, fiber float64
	for _, d := range days {
		cals += d.TotalNutrition.Calories
		prot += d.TotalNutrition.ProteinG
		carbs += d.TotalNutrition.CarbohydratesG
		fat += d.TotalNutrition.FatG
		fiber += d.TotalNutrition.FiberG
	}

	n := float64(len(days))
	ws["average_daily_calories"] = int(cals / n)
	ws["average_daily_protein"] = round1(prot / n)
	ws["average_daily_carbs"] = round1(carbs / n)
	ws["average_daily_fat"] = round1(fat / n)
	ws["average_daily_fiber"] = round1(fiber / n)

	ws["inventory_utilization_rate"] = utilizationRate(doc, inventoryCount)
}

// utilizationRate is items-used-from-inventory over inventory size,
// clamped to [0, 100]. The agent can double-count an item across
// categories, which is why the clamp exists; the ratio is approximate.
func utilizationRate(doc *Document, inventoryCount int) float64 {
	if inventoryCount <= 0 {
		return 0
	}
	sl, ok := doc.ShoppingList()
	if !ok {
		return 0
	}
	rate := float64(sl.TotalItemsFromInventory) / float64(inventoryCount) * 100
	if rate > 100 {
		rate = 100
	}
	if rate < 0 {
		rate = 0
	}
	return round1(rate)
}

// FixDays rewrites day numbers, weekday names, and dates so the plan's
// labels always match the real calendar regardless of what the agent
// returned.
func FixDays(doc *Document, startDate time.Time) {
	if doc == nil || doc.MealPlan == nil {
		return
	}
	for i := range doc.MealPlan.Days {
		date := startDate.AddDate(0, 0, i)
		doc.MealPlan.Days[i].Day = i + 1
		doc.MealPlan.Days[i].DayName = date.Weekday().String()
		doc.MealPlan.Days[i].MealDate = date.Format("2006-01-02")
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
