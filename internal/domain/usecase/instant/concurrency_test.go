package instant

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/luckyrupee/wager-engine/internal/domain/entity"
	errs "github.com/luckyrupee/wager-engine/internal/domain/error"
	coreport "github.com/luckyrupee/wager-engine/internal/domain/port/core"
	persistport "github.com/luckyrupee/wager-engine/internal/domain/port/persistence"
	accountUseCase "github.com/luckyrupee/wager-engine/internal/domain/usecase/account"
	coremocks "github.com/luckyrupee/wager-engine/mocks/port/core"
)

// memoryLedger is an AccountRepository whose mutex stands in for the
// database row lock: concurrent AdjustBalance calls serialize, and a
// debit that would overdraw fails with no effect.
type memoryLedger struct {
	mu           sync.Mutex
	balances     map[uint64]int64
	timeProvider coreport.TimeProvider
}

func newMemoryLedger(timeProvider coreport.TimeProvider) *memoryLedger {
	return &memoryLedger{
		balances:     make(map[uint64]int64),
		timeProvider: timeProvider,
	}
}

func (l *memoryLedger) account(id uint64, cents int64) *entity.Account {
	acct, _ := entity.NewAccount(id, "0.00", l.timeProvider)
	acct.SetBalance(cents, l.timeProvider)
	return acct
}

func (l *memoryLedger) GetByID(_ context.Context, id uint64) (*entity.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cents, ok := l.balances[id]
	if !ok {
		return nil, errs.ErrAccountNotFound
	}
	return l.account(id, cents), nil
}

func (l *memoryLedger) Create(_ context.Context, acct *entity.Account) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.balances[acct.ID]; ok {
		return errs.ErrDuplicateAccount
	}
	l.balances[acct.ID] = acct.Balance()
	return nil
}

func (l *memoryLedger) AdjustBalance(_ context.Context, accountID uint64, deltaCents int64, requireSufficient bool) (*entity.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cents, ok := l.balances[accountID]
	if !ok {
		return nil, errs.ErrAccountNotFound
	}
	newBalance := cents + deltaCents
	if requireSufficient && newBalance < 0 {
		return nil, errs.ErrInsufficientFunds
	}
	l.balances[accountID] = newBalance
	return l.account(accountID, newBalance), nil
}

// memoryBetStore records created bets; the instant flow resolves bets
// before storing them, so the settlement methods stay unused here.
type memoryBetStore struct {
	mu   sync.Mutex
	bets []*entity.Bet
}

func (s *memoryBetStore) Create(_ context.Context, bet *entity.Bet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bets = append(s.bets, bet)
	return nil
}

func (s *memoryBetStore) ResolvePending(context.Context, string, entity.BetStatus, int64) (bool, error) {
	return false, nil
}

func (s *memoryBetStore) ListPendingByRound(context.Context, string) ([]*entity.Bet, error) {
	return nil, nil
}

func (s *memoryBetStore) TotalsByRound(context.Context, string) ([]persistport.ColorTotal, error) {
	return nil, nil
}

func (s *memoryBetStore) ListByAccount(context.Context, uint64, int) ([]*entity.Bet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*entity.Bet(nil), s.bets...), nil
}

// passthroughUnitOfWork hands every caller the shared fakes. Commit and
// Rollback are no-ops, which is sound here because the ledger fake only
// applies adjustments that succeed.
type passthroughUnitOfWork struct {
	accounts persistport.AccountRepository
	bets     persistport.BetRepository
}

func (u *passthroughUnitOfWork) Begin(ctx context.Context) (context.Context, error) { return ctx, nil }
func (u *passthroughUnitOfWork) Commit(context.Context) error                       { return nil }
func (u *passthroughUnitOfWork) Rollback(context.Context) error                     { return nil }

func (u *passthroughUnitOfWork) GetAccountRepository(context.Context) persistport.AccountRepository {
	return u.accounts
}

func (u *passthroughUnitOfWork) GetBetRepository(context.Context) persistport.BetRepository {
	return u.bets
}

func (u *passthroughUnitOfWork) GetRoundRepository(context.Context) persistport.RoundRepository {
	return nil
}

func (u *passthroughUnitOfWork) GetPaymentRepository(context.Context) persistport.PaymentRepository {
	return nil
}

func TestPlaceBet_ConcurrentStakesShareOneBalance(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

	timeProvider := new(coremocks.MockTimeProvider)
	timeProvider.On("Now").Return(now).Maybe()

	ledger := newMemoryLedger(timeProvider)
	bets := &memoryBetStore{}
	uow := &passthroughUnitOfWork{accounts: ledger, bets: bets}

	randSource := new(coremocks.MockRandSource)
	// Die roll of 4: the accepted odd bet loses, so the final balance is
	// exactly the starting 100.00 minus one 60.00 stake
	randSource.On("Intn", 6).Return(3)

	metrics := new(coremocks.MockMetrics)
	metrics.On("IncBetPlaced", mock.Anything).Maybe()
	metrics.On("IncBetSettled", mock.Anything).Maybe()

	logger := relaxedLogger()
	accounts := accountUseCase.NewUseCase(ledger, timeProvider, logger, "100.00")
	useCase := NewUseCase(uow, accounts, randSource, timeProvider, logger, metrics)

	// Materialize the account up front so the race is purely between
	// the two stake debits
	_, err := accounts.Ensure(ctx, 42)
	assert.NoError(t, err)

	errCh := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := useCase.PlaceBet(ctx, 42, "60.00", entity.VariantOddEven, entity.SelectParity, "odd")
			errCh <- err
		}()
	}
	wg.Wait()
	close(errCh)

	accepted, rejected := 0, 0
	for err := range errCh {
		if err == nil {
			accepted++
			continue
		}
		assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
		rejected++
	}

	// Two 60.00 stakes against one 100.00 balance: exactly one clears
	assert.Equal(t, 1, accepted)
	assert.Equal(t, 1, rejected)
	assert.Equal(t, int64(4000), ledger.balances[42])
	assert.Len(t, bets.bets, 1)
}
