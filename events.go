package habitbank

import (
	"context"
	"log"
	"time"
)

// Event is a domain event emitted by the ledger core after a mutation has
// been committed. Delivery is best-effort: a Sink failure is logged and
// never propagated to the caller of the mutating operation.
type Event interface {
	Kind() string
}

// BankOpened announces a freshly bootstrapped ledger.
type BankOpened struct {
	FamilyID   string
	TotalValue Points
	At         time.Time
}

func (BankOpened) Kind() string { return "bank-opened" }

// DepositMade announces a credited deposit.
type DepositMade struct {
	FamilyID string
	UserID   string
	Account  AccountType
	Amount   Points
	At       time.Time
}

func (DepositMade) Kind() string { return "deposit-made" }

// TierUpgraded announces that an account crossed into a higher tier.
type TierUpgraded struct {
	FamilyID string
	UserID   string
	Account  AccountType
	Tier     Tier
	At       time.Time
}

func (TierUpgraded) Kind() string { return "tier-upgraded" }

// RewardRedeemed announces a successful withdrawal.
type RewardRedeemed struct {
	FamilyID   string
	RedeemedBy string
	Reward     Reward
	At         time.Time
}

func (RewardRedeemed) Kind() string { return "reward-redeemed" }

// StatementReady announces a generated weekly statement.
type StatementReady struct {
	FamilyID   string
	Statement  string // statement id
	NetGrowth  Points
	TotalValue Points
	At         time.Time
}

func (StatementReady) Kind() string { return "statement-ready" }

// Sink consumes domain events, typically to create calendar entries or send
// proactive messages. Implementations should be fast; slow delivery belongs
// behind their own queue.
type Sink interface {
	Publish(ctx context.Context, e Event) error
}

// LogSink writes events to the standard logger. It is the default Sink.
type LogSink struct{}

func (LogSink) Publish(_ context.Context, e Event) error {
	log.Printf("event %s: %+v", e.Kind(), e)
	return nil
}

// outbox collects events raised during a ledger mutation so they can be
// dispatched only after the document is committed.
type outbox struct {
	events []Event
}

func (o *outbox) raise(e Event) { o.events = append(o.events, e) }

// dispatch publishes all collected events, logging failures.
func (o *outbox) dispatch(ctx context.Context, sink Sink) {
	if sink == nil {
		return
	}
	for _, e := range o.events {
		if err := sink.Publish(ctx, e); err != nil {
			log.Printf("warning: could not deliver %s event: %v", e.Kind(), err)
		}
	}
	o.events = nil
}
