package chat

import (
	"strings"
	"time"
)

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// resolveDate turns a planner-supplied or user-written day reference into
// a concrete date. Supported forms: YYYY-MM-DD, "today", "tomorrow", and
// weekday names (meaning the next occurrence, or today when it matches).
// The second return is false when nothing was recognized.
func resolveDate(s string, now time.Time) (time.Time, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return time.Time{}, false
	}

	if d, err := time.Parse("2006-01-02", s); err == nil {
		return d, true
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch s {
	case "today":
		return today, true
	case "tomorrow":
		return today.AddDate(0, 0, 1), true
	case "yesterday":
		return today.AddDate(0, 0, -1), true
	}

	if wd, ok := weekdayNames[s]; ok {
		ahead := (int(wd) - int(today.Weekday()) + 7) % 7
		return today.AddDate(0, 0, ahead), true
	}
	return time.Time{}, false
}

// parseMealQuery scans free text for a day reference and a meal type.
func parseMealQuery(text string, now time.Time) (date time.Time, hasDate bool, mealType string) {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "breakfast"):
		mealType = "breakfast"
	case strings.Contains(lower, "lunch"):
		mealType = "lunch"
	case strings.Contains(lower, "dinner"):
		mealType = "dinner"
	case strings.Contains(lower, "snack"):
		mealType = "snacks"
	}

	for _, word := range append([]string{"today", "tomorrow", "yesterday"}, weekdayList()...) {
		if strings.Contains(lower, word) {
			date, hasDate = resolveDate(word, now)
			break
		}
	}
	return date, hasDate, mealType
}

func weekdayList() []string {
	return []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
}
