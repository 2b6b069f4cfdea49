package habitbank

import (
	"fmt"
	"time"
)

// Ledger is the full habit-wealth document of one family: the four accounts,
// the derived portfolio, the statement history and the reward history. It is
// read, mutated in memory, and written back as a whole.
type Ledger struct {
	FamilyID   string           `json:"familyId"`
	Accounts   []Account        `json:"accounts"`
	Portfolio  Portfolio        `json:"portfolio"`
	Statements []Statement      `json:"statements"`
	Rewards    []RedeemedReward `json:"rewards"`
	Unlocked   []string         `json:"unlockedRewards,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

// newLedger creates a ledger with the four accounts seeded from balances.
func newLedger(familyID string, balances map[AccountType]Points, now time.Time) *Ledger {
	l := &Ledger{
		FamilyID:   familyID,
		Accounts:   make([]Account, 0, 4),
		Statements: []Statement{},
		Rewards:    []RedeemedReward{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, t := range AccountTypes() {
		l.Accounts = append(l.Accounts, newAccount(t, balances[t], now))
	}
	return l
}

// Account returns the account of the given type.
func (l *Ledger) Account(t AccountType) (*Account, error) {
	for i := range l.Accounts {
		if l.Accounts[i].Type == t {
			return &l.Accounts[i], nil
		}
	}
	return nil, fmt.Errorf("ledger %q has no %q account", l.FamilyID, t)
}

// TotalValue sums all account balances.
func (l *Ledger) TotalValue() Points {
	var total Points
	for i := range l.Accounts {
		total = total.Add(l.Accounts[i].Balance)
	}
	return total
}

// Balances returns the current balance per account type.
func (l *Ledger) Balances() map[AccountType]Points {
	out := make(map[AccountType]Points, len(l.Accounts))
	for i := range l.Accounts {
		out[l.Accounts[i].Type] = l.Accounts[i].Balance
	}
	return out
}

func (l *Ledger) hasUnlocked(id string) bool {
	for _, u := range l.Unlocked {
		if u == id {
			return true
		}
	}
	for _, r := range l.Rewards {
		if r.ID == id {
			return true
		}
	}
	return false
}
