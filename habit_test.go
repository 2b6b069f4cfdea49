package habitbank

import (
	"testing"
	"time"
)

func TestClassifyHabit(t *testing.T) {
	testCases := []struct {
		name     string
		title    string
		category string
		want     AccountType
	}{
		{name: "exercise keyword", title: "Morning Exercise", want: Energy},
		{name: "walk keyword", title: "Walk the dog", want: Energy},
		{name: "family keyword", title: "Family dinner", want: Connection},
		{name: "relationship category", title: "Call grandma", category: "Relationships", want: Connection},
		{name: "clean keyword", title: "Clean the kitchen", want: Order},
		{name: "tidy keyword", title: "Tidy up bedroom", want: Order},
		{name: "read keyword", title: "Read 20 minutes", want: Growth},
		{name: "practice keyword", title: "Practice piano", want: Growth},
		{name: "household category fallback", title: "Take out trash", category: "Household", want: Order},
		{name: "parenting category fallback", title: "Bedtime routine", category: "Parenting", want: Connection},
		{name: "default is growth", title: "Meditate", want: Growth},
		// Title keywords win over the category.
		{name: "title beats category", title: "Family walk", category: "Household", want: Energy},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyHabit(tc.title, tc.category); got != tc.want {
				t.Errorf("ClassifyHabit(%q, %q) = %q, want %q", tc.title, tc.category, got, tc.want)
			}
		})
	}
}

func TestHabitAccountType(t *testing.T) {
	// An explicit account wins over any keyword.
	h := &Habit{Title: "Morning Exercise", Account: Order}
	if got := h.AccountType(); got != Order {
		t.Errorf("AccountType() = %q, want explicit %q", got, Order)
	}

	// Without one, the title is classified.
	h = &Habit{Title: "Morning Exercise"}
	if got := h.AccountType(); got != Energy {
		t.Errorf("AccountType() = %q, want classified %q", got, Energy)
	}
}

func TestLastCompletion(t *testing.T) {
	h := &Habit{}
	if !h.LastCompletion().IsZero() {
		t.Error("LastCompletion() of a fresh habit should be the zero time")
	}

	last := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)
	h.Completions = []Completion{
		{Timestamp: last.AddDate(0, 0, -2)},
		{Timestamp: last},
	}
	if got := h.LastCompletion(); !got.Equal(last) {
		t.Errorf("LastCompletion() = %v, want %v", got, last)
	}
}
