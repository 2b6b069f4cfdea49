package habitbank

import "errors"

var (
	// ErrNoLedger is returned by a Store when a family has no ledger document yet.
	ErrNoLedger = errors.New("no ledger for family")

	// ErrHabitNotFound is returned when a referenced habit id does not resolve.
	ErrHabitNotFound = errors.New("habit not found")

	// ErrRewardNotFound is returned when a reward id is not in the catalog.
	ErrRewardNotFound = errors.New("reward not found")

	// ErrInsufficientBalance is returned when a redemption costs more than the
	// target account holds. The ledger is left untouched.
	ErrInsufficientBalance = errors.New("insufficient balance")
)
