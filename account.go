package habitbank

import (
	"fmt"
	"math"
	"time"
)

// AccountType identifies one of the four fixed wealth accounts.
type AccountType string

const (
	Energy     AccountType = "energy"
	Connection AccountType = "connection"
	Order      AccountType = "order"
	Growth     AccountType = "growth"
)

// AccountTypes returns the four account types in their canonical order.
func AccountTypes() []AccountType {
	return []AccountType{Energy, Connection, Order, Growth}
}

// ParseAccountType parses a string into an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	switch AccountType(s) {
	case Energy, Connection, Order, Growth:
		return AccountType(s), nil
	default:
		return "", fmt.Errorf("unknown account type: %q", s)
	}
}

// AccountSpec carries the fixed display metadata and the daily interest rate
// of an account type.
type AccountSpec struct {
	Name        string
	Emoji       string
	Color       string
	Description string
	DailyRate   float64
}

var accountSpecs = map[AccountType]AccountSpec{
	Energy: {
		Name:        "Energy Account",
		Emoji:       "⚡",
		Color:       "#FCD34D",
		Description: "Physical and mental vitality",
		DailyRate:   0.05,
	},
	Connection: {
		Name:        "Connection Account",
		Emoji:       "❤️",
		Color:       "#F87171",
		Description: "Family bonds and relationships",
		DailyRate:   0.07,
	},
	Order: {
		Name:        "Order Account",
		Emoji:       "🏠",
		Color:       "#60A5FA",
		Description: "Home organization and systems",
		DailyRate:   0.04,
	},
	Growth: {
		Name:        "Growth Account",
		Emoji:       "🌱",
		Color:       "#34D399",
		Description: "Learning and development",
		DailyRate:   0.06,
	},
}

// Spec returns the fixed metadata for the account type.
func (t AccountType) Spec() AccountSpec { return accountSpecs[t] }

// Deposit is the immutable record of a credit event. It is created by the
// ledger core only, and never mutated afterwards.
type Deposit struct {
	ID             string    `json:"depositId"`
	HabitID        string    `json:"habitId"`
	UserID         string    `json:"userId"`
	Amount         Points    `json:"amount"`          // raw deposit before boost
	CreditedAmount Points    `json:"compoundedValue"` // boost + accrued interest actually credited
	Timestamp      time.Time `json:"timestamp"`
	Quality        int       `json:"quality"`
	StreakAtTime   int       `json:"streakAtTime"`
	HadHelper      bool      `json:"hadHelper"`
}

// Interest returns the part of the credited amount that is not the raw deposit.
func (d Deposit) Interest() Points { return d.CreditedAmount.Sub(d.Amount) }

// Withdrawal is the immutable record of a successful reward redemption.
type Withdrawal struct {
	ID         string    `json:"withdrawalId"`
	RewardID   string    `json:"rewardId"`
	Amount     Points    `json:"amount"`
	Timestamp  time.Time `json:"timestamp"`
	ApprovedBy string    `json:"approvedBy"`
	RewardName string    `json:"rewardName"`
	RewardType string    `json:"rewardType"`
}

// Account is one of the four wealth accounts of a family ledger.
type Account struct {
	Type                    AccountType  `json:"accountType"`
	Name                    string       `json:"accountName"`
	Balance                 Points       `json:"balance"`
	InterestRate            float64      `json:"interestRate"` // daily rate
	LastInterestCalculation time.Time    `json:"lastInterestCalculation"`
	Deposits                []Deposit    `json:"deposits"`
	Withdrawals             []Withdrawal `json:"withdrawals"`
	Tier                    Tier         `json:"tier"`
}

// newAccount returns an account of the given type seeded with a balance.
func newAccount(t AccountType, balance Points, now time.Time) Account {
	spec := t.Spec()
	return Account{
		Type:                    t,
		Name:                    spec.Name,
		Balance:                 balance,
		InterestRate:            spec.DailyRate,
		LastInterestCalculation: now,
		Deposits:                []Deposit{},
		Withdrawals:             []Withdrawal{},
		Tier:                    ComputeTier(balance),
	}
}

// compoundCredit computes the total amount to credit for a new deposit: the
// deposit boosted by the current tier multiplier, plus the compound interest
// accrued on the existing balance since the last calculation.
//
// A zero LastInterestCalculation means no time has elapsed: interest only
// starts accruing once the account has been touched at a known instant.
func (a *Account) compoundCredit(deposit Points, now time.Time) Points {
	var days float64
	if !a.LastInterestCalculation.IsZero() {
		days = now.Sub(a.LastInterestCalculation).Hours() / 24
		if days < 0 {
			days = 0
		}
	}

	balance := a.Balance.AsFloat()
	accrued := balance*math.Pow(1+a.InterestRate, days) - balance

	multiplier := a.Tier.Multiplier
	if multiplier == 0 {
		multiplier = 1.0
	}
	boosted := deposit.AsFloat() * multiplier

	return P(boosted + accrued).round2()
}

// credit applies a deposit to the account: the credited amount is added to
// the balance, the deposit record is appended, and the interest clock is
// reset to now. It returns the recorded deposit.
func (a *Account) credit(d Deposit, now time.Time) Deposit {
	a.Deposits = append(a.Deposits, d)
	a.Balance = a.Balance.Add(d.CreditedAmount).round2()
	a.LastInterestCalculation = now
	return d
}

// debit removes the withdrawal amount from the balance and appends the
// record. The caller must have verified the balance beforehand.
func (a *Account) debit(w Withdrawal) {
	a.Withdrawals = append(a.Withdrawals, w)
	a.Balance = a.Balance.Sub(w.Amount).round2()
}
