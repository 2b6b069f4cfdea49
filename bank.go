package habitbank

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/habitwealth/habitbank/advisor"
)

// Bank is the habit wealth engine. All ledger mutations for a family are
// serialized through a per-family lock: the underlying document store only
// guarantees single-document atomicity, so concurrent read-modify-write
// cycles would otherwise lose updates.
type Bank struct {
	store   Store
	advisor advisor.Advisor
	sink    Sink
	catalog Catalog
	now     func() time.Time

	mu       sync.Mutex
	families map[string]*sync.Mutex
}

// Option configures a Bank.
type Option func(*Bank)

// WithAdvisor sets the text-generation advisor. The bank guards every call
// with the static fallback regardless, so any implementation is safe.
func WithAdvisor(a advisor.Advisor) Option { return func(b *Bank) { b.advisor = a } }

// WithSink sets the event sink for calendar/notification side effects.
func WithSink(s Sink) Option { return func(b *Bank) { b.sink = s } }

// WithCatalog replaces the built-in reward catalog.
func WithCatalog(c Catalog) Option { return func(b *Bank) { b.catalog = c } }

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option { return func(b *Bank) { b.now = now } }

// New creates a Bank on top of a Store.
func New(store Store, opts ...Option) *Bank {
	b := &Bank{
		store:    store,
		advisor:  advisor.Static{},
		sink:     LogSink{},
		catalog:  DefaultCatalog(),
		now:      time.Now,
		families: make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Bank) famLock(familyID string) *sync.Mutex {
	b.mu.Lock()
	defer b.mu.Unlock()
	l, ok := b.families[familyID]
	if !ok {
		l = &sync.Mutex{}
		b.families[familyID] = l
	}
	return l
}

// Bootstrap initializes the family's ledger from its habit completion
// history, or resynchronizes the portfolio of an existing ledger against the
// latest habit data.
func (b *Bank) Bootstrap(ctx context.Context, familyID string) (*Ledger, error) {
	lock := b.famLock(familyID)
	lock.Lock()
	defer lock.Unlock()
	return b.bootstrap(ctx, familyID)
}

// bootstrap is Bootstrap without the family lock, for callers already
// holding it.
func (b *Bank) bootstrap(ctx context.Context, familyID string) (*Ledger, error) {
	ledger, err := b.store.Ledger(ctx, familyID)
	switch {
	case err == nil:
		return b.resync(ctx, ledger)
	case !errors.Is(err, ErrNoLedger):
		return nil, err
	}

	habits, err := b.store.Habits(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("could not read habit history for %q: %w", familyID, err)
	}

	// Seed balances from the real completion history. A completion with a
	// reflection note counts as quality 5, otherwise 3, and the whole seed
	// gets a flat +20% to reflect interest that settled before tracking.
	balances := make(map[AccountType]float64, 4)
	for i := range habits {
		h := &habits[i]
		account := h.AccountType()
		for _, c := range h.Completions {
			quality := 3
			if c.Reflection != "" {
				quality = 5
			}
			balances[account] += 10 * float64(quality) / 5
		}
	}
	seeded := make(map[AccountType]Points, 4)
	for _, t := range AccountTypes() {
		seeded[t] = P(math.Round(balances[t] * 1.2))
	}

	now := b.now()
	ledger = newLedger(familyID, seeded, now)

	total := ledger.TotalValue().AsFloat()
	ledger.Portfolio = Portfolio{
		Habits:               AnalyzeHabitPortfolio(habits),
		DiversificationScore: Diversification(ledger.Balances()),
		TotalValue:           ledger.TotalValue(),
		// Optimistic first projection, replaced by measured growth as soon
		// as deposits flow in.
		ProjectedGrowth: GrowthProjection{
			OneWeek:     P(math.Round(total * 0.35)),
			OneMonth:    P(math.Round(total * 1.5)),
			ThreeMonths: P(math.Round(total * 5)),
		},
	}

	if err := b.store.SaveLedger(ctx, ledger); err != nil {
		return nil, err
	}

	var out outbox
	out.raise(BankOpened{FamilyID: familyID, TotalValue: ledger.TotalValue(), At: now})
	out.dispatch(ctx, b.sink)
	return ledger, nil
}

// resync refreshes the portfolio of an existing ledger against the current
// habit collection and persists the result.
func (b *Bank) resync(ctx context.Context, ledger *Ledger) (*Ledger, error) {
	habits, err := b.store.Habits(ctx, ledger.FamilyID)
	if err != nil {
		return nil, fmt.Errorf("could not read habits for %q: %w", ledger.FamilyID, err)
	}

	ledger.Portfolio.Habits = AnalyzeHabitPortfolio(habits)
	ledger.Portfolio.TotalValue = ledger.TotalValue()
	ledger.Portfolio.DiversificationScore = Diversification(ledger.Balances())

	// Coarse weekly heuristic until per-deposit history says better.
	total := ledger.Portfolio.TotalValue.AsFloat()
	const weeklyRate = 0.35
	ledger.Portfolio.ProjectedGrowth = GrowthProjection{
		OneWeek:     P(math.Round(total * weeklyRate)),
		OneMonth:    P(math.Round(total * weeklyRate * 4)),
		ThreeMonths: P(math.Round(total * weeklyRate * 12)),
	}

	ledger.UpdatedAt = b.now()
	if err := b.store.SaveLedger(ctx, ledger); err != nil {
		return nil, err
	}
	return ledger, nil
}

// DepositRequest identifies a habit completion to credit.
type DepositRequest struct {
	FamilyID string
	HabitID  string
	UserID   string
	// Quality of the completion in [1,5]. Out-of-range values are clamped;
	// zero means unrated and counts as 5, matching the product's default.
	Quality int
}

// DepositReceipt is the outcome of a credited deposit.
type DepositReceipt struct {
	Deposit         Deposit
	NewBalance      Points
	Account         AccountType
	Tier            Tier
	UnlockedRewards []Unlock
	ProjectedGrowth GrowthProjection
}

// Deposit credits a habit completion to the matching account: the raw amount
// from quality/streak/helper bonuses, boosted by the account tier, plus the
// compound interest accrued on the existing balance. The portfolio and
// reward unlocks are refreshed in the same document write.
func (b *Bank) Deposit(ctx context.Context, req DepositRequest) (*DepositReceipt, error) {
	habit, err := b.store.Habit(ctx, req.FamilyID, req.HabitID)
	if err != nil {
		return nil, err
	}

	lock := b.famLock(req.FamilyID)
	lock.Lock()
	defer lock.Unlock()

	ledger, err := b.store.Ledger(ctx, req.FamilyID)
	if errors.Is(err, ErrNoLedger) {
		ledger, err = b.bootstrap(ctx, req.FamilyID)
	}
	if err != nil {
		return nil, err
	}

	quality := req.Quality
	if quality == 0 {
		quality = 5
	}
	quality = min(max(quality, 1), 5)

	const baseAmount = 10
	streakBonus := float64(min(habit.Streak, 30)) * 0.5
	var helperBonus float64
	if habit.HelperChild != "" {
		helperBonus = 5
	}
	amount := P(math.Round(baseAmount*float64(quality)/5 + streakBonus + helperBonus))

	account, err := ledger.Account(habit.AccountType())
	if err != nil {
		return nil, err
	}

	now := b.now()
	credited := account.compoundCredit(amount, now)

	deposit := account.credit(Deposit{
		ID:             "dep_" + uuid.NewString(),
		HabitID:        habit.ID,
		UserID:         req.UserID,
		Amount:         amount,
		CreditedAmount: credited,
		Timestamp:      now,
		Quality:        quality,
		StreakAtTime:   habit.Streak,
		HadHelper:      habit.HelperChild != "",
	}, now)

	var out outbox
	previous := account.Tier
	account.Tier = ComputeTier(account.Balance)
	if account.Tier.MinBalance > previous.MinBalance {
		out.raise(TierUpgraded{
			FamilyID: req.FamilyID,
			UserID:   req.UserID,
			Account:  account.Type,
			Tier:     account.Tier,
			At:       now,
		})
	}

	ledger.updatePortfolio(habit, amount, now)
	unlocked := CheckRewardUnlocks(ledger)
	ledger.UpdatedAt = now

	if err := b.store.SaveLedger(ctx, ledger); err != nil {
		return nil, err
	}

	out.raise(DepositMade{
		FamilyID: req.FamilyID,
		UserID:   req.UserID,
		Account:  account.Type,
		Amount:   credited,
		At:       now,
	})
	out.dispatch(ctx, b.sink)

	return &DepositReceipt{
		Deposit:         deposit,
		NewBalance:      account.Balance,
		Account:         account.Type,
		Tier:            account.Tier,
		UnlockedRewards: unlocked,
		ProjectedGrowth: ledger.ProjectGrowth(now),
	}, nil
}

// WithdrawReceipt is the outcome of a successful redemption.
type WithdrawReceipt struct {
	Withdrawal Withdrawal
	NewBalance Points
	Reward     Reward
}

// Withdraw redeems a catalog reward against its account. When the account
// balance does not cover the cost, the ledger is left byte-for-byte
// unchanged and ErrInsufficientBalance is returned.
func (b *Bank) Withdraw(ctx context.Context, rewardID, familyID, approverID string) (*WithdrawReceipt, error) {
	reward, err := b.catalog.Reward(rewardID)
	if err != nil {
		return nil, err
	}

	lock := b.famLock(familyID)
	lock.Lock()
	defer lock.Unlock()

	ledger, err := b.store.Ledger(ctx, familyID)
	if err != nil {
		return nil, err
	}

	account, err := ledger.Account(reward.Account)
	if err != nil {
		return nil, err
	}
	cost := P(reward.Cost)
	if account.Balance.LessThan(cost) {
		return nil, fmt.Errorf("%w: reward %q costs %s, %s holds %s",
			ErrInsufficientBalance, reward.ID, cost, account.Type, account.Balance)
	}

	now := b.now()
	withdrawal := Withdrawal{
		ID:         "wd_" + uuid.NewString(),
		RewardID:   reward.ID,
		Amount:     cost,
		Timestamp:  now,
		ApprovedBy: approverID,
		RewardName: reward.Name,
		RewardType: reward.Type,
	}
	account.debit(withdrawal)
	ledger.Rewards = append(ledger.Rewards, RedeemedReward{
		Reward:     reward,
		RedeemedAt: now,
		RedeemedBy: approverID,
	})
	ledger.UpdatedAt = now

	if err := b.store.SaveLedger(ctx, ledger); err != nil {
		return nil, err
	}

	var out outbox
	out.raise(RewardRedeemed{FamilyID: familyID, RedeemedBy: approverID, Reward: reward, At: now})
	out.dispatch(ctx, b.sink)

	return &WithdrawReceipt{
		Withdrawal: withdrawal,
		NewBalance: account.Balance,
		Reward:     reward,
	}, nil
}

// WeeklyStatement generates, persists and returns the statement of the
// trailing seven days. Insight generation is best-effort: on advisor failure
// the statement carries the canned insights instead.
func (b *Bank) WeeklyStatement(ctx context.Context, familyID string) (*Statement, error) {
	lock := b.famLock(familyID)
	lock.Lock()
	defer lock.Unlock()

	ledger, err := b.store.Ledger(ctx, familyID)
	if err != nil {
		return nil, err
	}

	now := b.now()
	statement := buildStatement(ledger, now.AddDate(0, 0, -7), now)
	statement.ID = "stmt_" + uuid.NewString()
	statement.Insights = b.statementInsights(ctx, ledger, statement)

	ledger.Statements = append(ledger.Statements, statement)
	ledger.UpdatedAt = now

	if err := b.store.SaveLedger(ctx, ledger); err != nil {
		return nil, err
	}

	var out outbox
	out.raise(StatementReady{
		FamilyID:   familyID,
		Statement:  statement.ID,
		NetGrowth:  statement.Summary.NetGrowth,
		TotalValue: statement.TotalValue,
		At:         now,
	})
	out.dispatch(ctx, b.sink)

	return &statement, nil
}

func (b *Bank) statementInsights(ctx context.Context, ledger *Ledger, s Statement) []string {
	brief := advisor.StatementBrief{
		TotalDeposits:   s.Summary.Deposits.AsFloat(),
		TotalInterest:   s.Summary.Interest.AsFloat(),
		Balances:        make(map[string]float64, len(ledger.Accounts)),
		Diversification: s.DiversificationScore,
	}
	for t, balance := range ledger.Balances() {
		brief.Balances[string(t)] = balance.AsFloat()
	}

	insights, err := b.advisor.StatementInsights(ctx, brief)
	if err != nil {
		// Last line of defense, advisors are expected to fall back themselves.
		insights, _ = advisor.Static{}.StatementInsights(ctx, brief)
	}
	return insights
}
