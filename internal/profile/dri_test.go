package profile

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const driBody = `{
	"BMI_EER": {"Estimated Daily Caloric Needs": "2,417 kcal/day"},
	"macronutrients_table": {"macronutrients-table": [
		["Macronutrient", "Recommended Intake Per Day"],
		["Carbohydrate", "130 grams"],
		["Protein", "146 - 512 grams"],
		["Fat", "54 grams"],
		["Total Fiber", "34 grams"]
	]}
}`

func driTestClient(t *testing.T, handler http.HandlerFunc) *DRIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewDRIClient("test-key")
	c.endpoint = srv.URL
	return c
}

func TestFetchTargetsParsesResponse(t *testing.T) {
	var gotQuery map[string]string
	c := driTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"sex":            r.URL.Query().Get("sex"),
			"feet":           r.URL.Query().Get("feet"),
			"inches":         r.URL.Query().Get("inches"),
			"lbs":            r.URL.Query().Get("lbs"),
			"activity_level": r.URL.Query().Get("activity_level"),
		}
		w.Write([]byte(driBody))
	})

	targets, err := c.FetchTargets(context.Background(), 30, "Male", 80, 180, "Moderately active")
	if err != nil {
		t.Fatalf("FetchTargets: %v", err)
	}

	if targets.Calories != 2417 {
		t.Errorf("calories = %d, want 2417", targets.Calories)
	}
	if targets.ProteinG != 146 {
		t.Errorf("protein = %v, want low end of range 146", targets.ProteinG)
	}
	if targets.CarbohydrateG != 130 {
		t.Errorf("carbs = %v, want 130", targets.CarbohydrateG)
	}
	if targets.FiberG != 34 {
		t.Errorf("fiber = %v, want 34", targets.FiberG)
	}

	// 180cm = 70.86in -> 5ft 10in, 80kg -> 176lbs.
	if gotQuery["sex"] != "male" || gotQuery["feet"] != "5" || gotQuery["inches"] != "10" || gotQuery["lbs"] != "176" {
		t.Errorf("unit conversion sent %v", gotQuery)
	}
	if gotQuery["activity_level"] != "Moderate" {
		t.Errorf("activity_level = %q, want Moderate", gotQuery["activity_level"])
	}
}

func TestFetchTargetsNonOKStatus(t *testing.T) {
	c := driTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	if _, err := c.FetchTargets(context.Background(), 30, "Male", 80, 180, "Sedentary"); err == nil {
		t.Fatal("expected error on 403 response")
	}
}

func TestResolveTargetsFallsBackToManual(t *testing.T) {
	c := driTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	bmi, got := ResolveTargets(context.Background(), c, 30, "Male", 80, 180, "Moderately active", "Maintenance")
	_, want := CalculateTargets(30, "Male", 80, 180, "Moderately active", "Maintenance")
	if got != want {
		t.Errorf("targets = %+v, want manual %+v", got, want)
	}
	if bmi == 0 {
		t.Error("bmi should still be computed on fallback")
	}
}

func TestResolveTargetsAppliesGoalAdjustment(t *testing.T) {
	c := driTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(driBody))
	})
	_, got := ResolveTargets(context.Background(), c, 30, "Male", 80, 180, "Moderately active", "Weight Loss")
	if got.Calories != 2417-500 {
		t.Errorf("calories = %d, want %d", got.Calories, 2417-500)
	}
}
