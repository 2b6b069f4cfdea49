package habitbank

import (
	"strings"
	"time"
)

// Completion is one recorded instance of a habit being done.
type Completion struct {
	Timestamp  time.Time `json:"timestamp"`
	UserID     string    `json:"userId"`
	UserName   string    `json:"userName,omitempty"`
	Quality    int       `json:"quality,omitempty"`
	Reflection string    `json:"reflection,omitempty"`
}

// Habit is the tracked habit entity, as stored in the family's habit
// collection. The engine reads it, never writes it.
type Habit struct {
	ID               string       `json:"id"`
	Title            string       `json:"title"`
	Category         string       `json:"category,omitempty"` // legacy free text
	Account          AccountType  `json:"account,omitempty"`  // typed classification, may be empty on old data
	Frequency        string       `json:"frequency,omitempty"`
	Difficulty       string       `json:"difficulty,omitempty"`
	EstimatedMinutes int          `json:"estimatedMinutes,omitempty"`
	Streak           int          `json:"streak,omitempty"`
	CompletionRate   float64      `json:"completionRate,omitempty"`
	HelperChild      string       `json:"helperChild,omitempty"`
	Completions      []Completion `json:"completionInstances,omitempty"`
}

// AccountType resolves the wealth account this habit feeds. The typed field
// wins when set; the keyword scan only remains as a backfill for habits
// created before classification was explicit.
func (h *Habit) AccountType() AccountType {
	if h.Account != "" {
		return h.Account
	}
	return ClassifyHabit(h.Title, h.Category)
}

// ClassifyHabit maps free habit text to an account type, first match wins.
// New habits should carry an explicit account instead; this scan is the
// migration path for legacy records.
func ClassifyHabit(title, category string) AccountType {
	t := strings.ToLower(title)
	c := strings.ToLower(category)

	switch {
	case contains(t, "exercise", "walk", "energy"):
		return Energy
	case contains(t, "family", "together") || strings.Contains(c, "relationship"):
		return Connection
	case contains(t, "clean", "organize", "tidy"):
		return Order
	case contains(t, "learn", "read", "practice"):
		return Growth
	}

	if strings.Contains(c, "household") {
		return Order
	}
	if strings.Contains(c, "parenting") {
		return Connection
	}
	return Growth
}

func contains(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// LastCompletion returns the timestamp of the most recent completion, or the
// zero time when there is none.
func (h *Habit) LastCompletion() time.Time {
	if len(h.Completions) == 0 {
		return time.Time{}
	}
	return h.Completions[len(h.Completions)-1].Timestamp
}

// recentCompletions returns up to the n most recent completion records.
func (h *Habit) recentCompletions(n int) []Completion {
	if len(h.Completions) <= n {
		return h.Completions
	}
	return h.Completions[len(h.Completions)-n:]
}
