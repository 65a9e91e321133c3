package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const driEndpoint = "https://nutrition-calculator.p.rapidapi.com/api/nutrition-info"

// driActivityLevels maps profile activity labels to the API's vocabulary.
var driActivityLevels = map[string]string{
	"Sedentary":         "Sedentary",
	"Lightly active":    "Light",
	"Moderately active": "Moderate",
	"Very active":       "Active",
	"Extremely active":  "Very Active",
}

// DRIClient queries the remote dietary-reference-intake calculator. It is
// an optional refinement over the manual formula: callers fall back to
// CalculateTargets when the client is absent or the call fails.
type DRIClient struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewDRIClient creates a client authenticated with a RapidAPI key.
func NewDRIClient(apiKey string) *DRIClient {
	return &DRIClient{
		apiKey:   apiKey,
		endpoint: driEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type driResponse struct {
	BMIEER struct {
		EstimatedCalories string `json:"Estimated Daily Caloric Needs"`
	} `json:"BMI_EER"`
	MacronutrientsTable struct {
		Table [][]string `json:"macronutrients-table"`
	} `json:"macronutrients_table"`
}

// FetchTargets asks the remote calculator for daily targets. The API
// takes imperial units, so metric inputs are converted on the way in.
func (c *DRIClient) FetchTargets(ctx context.Context, age int, gender string, weightKG, heightCM float64, activity string) (Targets, error) {
	totalInches := heightCM / 2.54
	activityLevel, ok := driActivityLevels[activity]
	if !ok {
		activityLevel = "Moderate"
	}

	params := url.Values{}
	params.Set("measurement_units", "std")
	params.Set("sex", strings.ToLower(gender))
	params.Set("age_value", strconv.Itoa(age))
	params.Set("age_type", "yrs")
	params.Set("feet", strconv.Itoa(int(totalInches)/12))
	params.Set("inches", strconv.Itoa(int(totalInches)%12))
	params.Set("lbs", strconv.Itoa(int(weightKG*2.20462)))
	params.Set("activity_level", activityLevel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return Targets{}, fmt.Errorf("failed to build DRI request: %w", err)
	}
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", "nutrition-calculator.p.rapidapi.com")

	resp, err := c.client.Do(req)
	if err != nil {
		return Targets{}, fmt.Errorf("DRI request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Targets{}, fmt.Errorf("DRI request returned status %d", resp.StatusCode)
	}

	var body driResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Targets{}, fmt.Errorf("failed to decode DRI response: %w", err)
	}

	calories := int(parseNutrientValue(body.BMIEER.EstimatedCalories))
	if calories == 0 {
		return Targets{}, fmt.Errorf("DRI response missing caloric estimate")
	}

	t := Targets{
		Calories:      calories,
		ProteinG:      macroValue(body.MacronutrientsTable.Table, "Protein"),
		CarbohydrateG: macroValue(body.MacronutrientsTable.Table, "Carbohydrate"),
		FatG:          macroValue(body.MacronutrientsTable.Table, "Fat"),
		FiberG:        macroValue(body.MacronutrientsTable.Table, "Total Fiber"),
	}
	return t, nil
}

// macroValue finds a nutrient row in the macronutrients table. The first
// row is a header and is skipped.
func macroValue(table [][]string, nutrient string) float64 {
	for i, row := range table {
		if i == 0 || len(row) < 2 {
			continue
		}
		if row[0] == nutrient {
			return parseNutrientValue(row[1])
		}
	}
	return 0
}

// parseNutrientValue reads the leading number out of strings like
// "2,417 kcal/day" or "130 - 150 grams", taking the low end of a range.
func parseNutrientValue(s string) float64 {
	if i := strings.Index(s, "-"); i >= 0 {
		s = s[:i]
	}
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(fields[0], ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}

// ResolveTargets computes BMI and daily targets, preferring the remote
// calculator when a client is given and falling back to the manual
// formula on any failure.
func ResolveTargets(ctx context.Context, c *DRIClient, age int, gender string, weightKG, heightCM float64, activity, goal string) (float64, Targets) {
	bmi, manual := CalculateTargets(age, gender, weightKG, heightCM, activity, goal)
	if c == nil {
		return bmi, manual
	}
	remote, err := c.FetchTargets(ctx, age, gender, weightKG, heightCM, activity)
	if err != nil {
		return bmi, manual
	}
	// The remote estimate has no goal adjustment; apply the same offset
	// the manual path uses.
	switch goal {
	case "Weight Loss":
		remote.Calories -= 500
	case "Weight Gain", "Muscle Gain":
		remote.Calories += 500
	}
	if remote.ProteinG == 0 {
		remote.ProteinG = manual.ProteinG
	}
	if remote.FiberG == 0 {
		remote.FiberG = manual.FiberG
	}
	return bmi, remote
}
