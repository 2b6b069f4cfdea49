package habitbank

import (
	"time"
)

// AccountStatement is the weekly activity of one account.
type AccountStatement struct {
	Account       AccountType `json:"accountType"`
	Deposits      Points      `json:"deposits"`
	Interest      Points      `json:"interest"`
	Withdrawals   Points      `json:"withdrawals"`
	NetChange     Points      `json:"netChange"`
	EndingBalance Points      `json:"endingBalance"`
}

// StatementSummary is the family-level roll-up of a statement.
type StatementSummary struct {
	Deposits    Points `json:"deposits"`
	Interest    Points `json:"interest"`
	Withdrawals Points `json:"withdrawals"`
	NetGrowth   Points `json:"netGrowth"`
}

// Statement is an immutable point-in-time summary of account activity over a
// date range. Once appended to the ledger it is never modified.
type Statement struct {
	ID                   string             `json:"statementId"`
	WeekNumber           int                `json:"weekNumber"`
	StartDate            time.Time          `json:"startDate"`
	EndDate              time.Time          `json:"endDate"`
	Summary              StatementSummary   `json:"summary"`
	Accounts             []AccountStatement `json:"accountDetails"`
	Insights             []string           `json:"insights"`
	TotalValue           Points             `json:"totalValue"`
	DiversificationScore int                `json:"diversificationScore"`
	GeneratedAt          time.Time          `json:"generatedAt"`
}

// buildStatement partitions each account's history into the trailing window
// and aggregates the family summary. Insights are filled in by the caller.
func buildStatement(l *Ledger, start, end time.Time) Statement {
	var summary StatementSummary
	accounts := make([]AccountStatement, 0, len(l.Accounts))

	for i := range l.Accounts {
		a := &l.Accounts[i]

		var deposits, interest, withdrawals Points
		for _, d := range a.Deposits {
			if d.Timestamp.Before(start) || d.Timestamp.After(end) {
				continue
			}
			deposits = deposits.Add(d.Amount)
			interest = interest.Add(d.Interest())
		}
		for _, w := range a.Withdrawals {
			if w.Timestamp.Before(start) || w.Timestamp.After(end) {
				continue
			}
			withdrawals = withdrawals.Add(w.Amount)
		}

		summary.Deposits = summary.Deposits.Add(deposits)
		summary.Interest = summary.Interest.Add(interest)
		summary.Withdrawals = summary.Withdrawals.Add(withdrawals)

		accounts = append(accounts, AccountStatement{
			Account:       a.Type,
			Deposits:      deposits,
			Interest:      interest,
			Withdrawals:   withdrawals,
			NetChange:     deposits.Add(interest).Sub(withdrawals),
			EndingBalance: a.Balance,
		})
	}
	summary.NetGrowth = summary.Deposits.Add(summary.Interest).Sub(summary.Withdrawals)

	_, week := end.ISOWeek()
	return Statement{
		WeekNumber:           week,
		StartDate:            start,
		EndDate:              end,
		Summary:              summary,
		Accounts:             accounts,
		TotalValue:           l.TotalValue(),
		DiversificationScore: Diversification(l.Balances()),
		GeneratedAt:          end,
	}
}
