package habitbank

import (
	"testing"
	"time"
)

var testDay = time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)

func TestCompoundCreditNoElapsedTime(t *testing.T) {
	a := newAccount(Energy, P(0), testDay)

	// Same instant as the last calculation: no interest, Bronze boost is x1.
	got := a.compoundCredit(P(10), testDay)
	if !got.Equal(P(10)) {
		t.Errorf("compoundCredit(10) = %s, want 10", got)
	}
}

func TestCompoundCreditAccruesDailyInterest(t *testing.T) {
	a := newAccount(Energy, P(100), testDay)

	// One full day at the 5% energy rate accrues 5 on the 100 balance.
	got := a.compoundCredit(P(10), testDay.AddDate(0, 0, 1))
	if !got.Equal(P(15)) {
		t.Errorf("compoundCredit(10) after one day = %s, want 15", got)
	}

	// Two days compound: 100*(1.05^2 - 1) = 10.25.
	got = a.compoundCredit(P(10), testDay.AddDate(0, 0, 2))
	if !got.Equal(P(20.25)) {
		t.Errorf("compoundCredit(10) after two days = %s, want 20.25", got)
	}
}

func TestCompoundCreditClampsClockSkew(t *testing.T) {
	// A last calculation in the future must not produce negative interest.
	a := newAccount(Energy, P(100), testDay.AddDate(0, 0, 3))
	got := a.compoundCredit(P(10), testDay)
	if !got.Equal(P(10)) {
		t.Errorf("compoundCredit(10) with future clock = %s, want 10", got)
	}
}

func TestCompoundCreditNoClockYet(t *testing.T) {
	// A zero LastInterestCalculation means no measurable elapsed time.
	a := Account{Type: Energy, Balance: P(100), InterestRate: 0.05}
	got := a.compoundCredit(P(10), testDay)
	if !got.Equal(P(10)) {
		t.Errorf("compoundCredit(10) without a clock = %s, want 10", got)
	}
}

func TestCompoundCreditAppliesTierBoost(t *testing.T) {
	// 500 is Silver, so the deposit itself is boosted x1.2.
	a := newAccount(Energy, P(500), testDay)
	got := a.compoundCredit(P(10), testDay)
	if !got.Equal(P(12)) {
		t.Errorf("compoundCredit(10) at Silver = %s, want 12", got)
	}
}

func TestCreditUpdatesBalanceAndClock(t *testing.T) {
	a := newAccount(Energy, P(100), testDay)
	later := testDay.AddDate(0, 0, 1)

	a.credit(Deposit{ID: "dep_1", Amount: P(10), CreditedAmount: P(15), Timestamp: later}, later)

	if !a.Balance.Equal(P(115)) {
		t.Errorf("Balance = %s, want 115", a.Balance)
	}
	if !a.LastInterestCalculation.Equal(later) {
		t.Errorf("LastInterestCalculation = %v, want %v", a.LastInterestCalculation, later)
	}
	if len(a.Deposits) != 1 {
		t.Fatalf("len(Deposits) = %d, want 1", len(a.Deposits))
	}
}

func TestDebit(t *testing.T) {
	a := newAccount(Connection, P(150), testDay)
	a.debit(Withdrawal{ID: "wd_1", Amount: P(100), Timestamp: testDay})

	if !a.Balance.Equal(P(50)) {
		t.Errorf("Balance = %s, want 50", a.Balance)
	}
	if len(a.Withdrawals) != 1 {
		t.Fatalf("len(Withdrawals) = %d, want 1", len(a.Withdrawals))
	}
}

func TestDepositInterest(t *testing.T) {
	d := Deposit{Amount: P(10), CreditedAmount: P(15.5)}
	if got := d.Interest(); !got.Equal(P(5.5)) {
		t.Errorf("Interest() = %s, want 5.5", got)
	}
}
