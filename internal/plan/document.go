// Package plan owns the weekly meal plan document: its structure, the
// two-batch merge, generation, and persistence.
package plan

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Document is the full plan envelope produced by the agent. user_summary
// and metadata are kept verbatim; recommendations preserves unknown keys
// while allowing typed access to the shopping list.
type Document struct {
	UserSummary     json.RawMessage            `json:"user_summary"`
	MealPlan        *Week                      `json:"meal_plan"`
	Recommendations map[string]json.RawMessage `json:"recommendations"`
	Metadata        json.RawMessage            `json:"metadata"`
}

// Week is the meal_plan section: a summary plus one entry per day.
type Week struct {
	WeekSummary map[string]any `json:"week_summary,omitempty"`
	Days        []Day          `json:"days"`
}

// Day is a single plan day.
type Day struct {
	Day             int             `json:"day"`
	DayName         string          `json:"day_name"`
	MealDate        string          `json:"meal_date,omitempty"`
	TotalNutrition  Nutrition       `json:"total_nutrition"`
	InventoryImpact json.RawMessage `json:"inventory_impact,omitempty"`
	Meals           map[string]Meal `json:"meals"`
}

// Meal is one meal within a day.
type Meal struct {
	MealName                  string          `json:"meal_name"`
	IngredientsWithQuantities json.RawMessage `json:"ingredients_with_quantities,omitempty"`
	PreparationTime           int             `json:"preparation_time,omitempty"`
	CookingTime               int             `json:"cooking_time,omitempty"`
	Nutrition                 Nutrition       `json:"nutrition"`
	ServingSize               string          `json:"serving_size,omitempty"`
	Servings                  int             `json:"servings,omitempty"`
	Recipe                    json.RawMessage `json:"recipe,omitempty"`
	DifficultyLevel           string          `json:"difficulty_level,omitempty"`
}

// Nutrition holds the macro totals used throughout the plan.
type Nutrition struct {
	Calories       float64 `json:"calories"`
	ProteinG       float64 `json:"protein_g"`
	CarbohydratesG float64 `json:"carbohydrates_g"`
	FatG           float64 `json:"fat_g"`
	FiberG         float64 `json:"fiber_g"`
}

// ShoppingItem is one shopping list entry. Quantity fields are untyped
// since the agent sometimes emits strings like "2 bunches"; non-numeric
// values survive the merge untouched.
type ShoppingItem struct {
	Item                string `json:"item"`
	TotalQuantityNeeded any    `json:"total_quantity_needed,omitempty"`
	QuantityInInventory any    `json:"quantity_in_inventory,omitempty"`
	QuantityToPurchase  any    `json:"quantity_to_purchase,omitempty"`
	Unit                string `json:"unit,omitempty"`
}

// ShoppingList is the shopping_list_summary recommendation.
type ShoppingList struct {
	Proteins          []ShoppingItem `json:"proteins,omitempty"`
	Produce           []ShoppingItem `json:"produce,omitempty"`
	Pantry            []ShoppingItem `json:"pantry,omitempty"`
	Grains            []ShoppingItem `json:"grains,omitempty"`
	Vegetables        []ShoppingItem `json:"vegetables,omitempty"`
	Fruits            []ShoppingItem `json:"fruits,omitempty"`
	DairyAlternatives []ShoppingItem `json:"dairy_alternatives,omitempty"`

	TotalEstimatedCost      float64 `json:"total_estimated_cost,omitempty"`
	TotalItemsFromInventory int     `json:"total_items_from_inventory,omitempty"`
	TotalItemsToPurchase    int     `json:"total_items_to_purchase,omitempty"`
}

const shoppingListKey = "shopping_list_summary"

// ErrInvalidDocument signals a structurally incomplete plan.
var ErrInvalidDocument = errors.New("invalid plan document")

// ParseDocument converts extracted agent JSON into a Document. A nil input
// or non-object shape returns an error.
func ParseDocument(v any) (*Document, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidDocument)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return &doc, nil
}

// Validate checks the structural contract: the four top-level sections are
// present and the plan has at least one day.
func (d *Document) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: nil document", ErrInvalidDocument)
	}
	if len(d.UserSummary) == 0 {
		return fmt.Errorf("%w: missing user_summary", ErrInvalidDocument)
	}
	if d.MealPlan == nil {
		return fmt.Errorf("%w: missing meal_plan", ErrInvalidDocument)
	}
	if len(d.MealPlan.Days) == 0 {
		return fmt.Errorf("%w: meal_plan has no days", ErrInvalidDocument)
	}
	if d.Recommendations == nil {
		return fmt.Errorf("%w: missing recommendations", ErrInvalidDocument)
	}
	if len(d.Metadata) == 0 {
		return fmt.Errorf("%w: missing metadata", ErrInvalidDocument)
	}
	return nil
}

// ShoppingList decodes the shopping_list_summary recommendation. The
// second return is false when it is absent or undecodable.
func (d *Document) ShoppingList() (ShoppingList, bool) {
	raw, ok := d.Recommendations[shoppingListKey]
	if !ok {
		return ShoppingList{}, false
	}
	var sl ShoppingList
	if err := json.Unmarshal(raw, &sl); err != nil {
		return ShoppingList{}, false
	}
	return sl, true
}

// SetShoppingList writes the shopping_list_summary recommendation back.
func (d *Document) SetShoppingList(sl ShoppingList) error {
	raw, err := json.Marshal(sl)
	if err != nil {
		return err
	}
	if d.Recommendations == nil {
		d.Recommendations = make(map[string]json.RawMessage)
	}
	d.Recommendations[shoppingListKey] = raw
	return nil
}

// categories returns the category slices in their fixed merge order.
func (sl *ShoppingList) categories() []*[]ShoppingItem {
	return []*[]ShoppingItem{
		&sl.Proteins, &sl.Produce, &sl.Pantry, &sl.Grains,
		&sl.Vegetables, &sl.Fruits, &sl.DairyAlternatives,
	}
}

// asFloat converts agent-supplied quantity values to float64 when they are
// numeric, including numeric strings.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
