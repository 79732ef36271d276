package live

import (
	"context"
	"sync"
	"time"

	"github.com/luckyrupee/wager-engine/internal/domain/entity"
	coreport "github.com/luckyrupee/wager-engine/internal/domain/port/core"
	"github.com/luckyrupee/wager-engine/internal/domain/port/persistence"
	accountUseCase "github.com/luckyrupee/wager-engine/internal/domain/usecase/account"
)

// RoundView is the externally visible snapshot of a round
type RoundView struct {
	RoundID      string     `json:"roundId"`
	Variant      string     `json:"variant"`
	Status       string     `json:"status"`
	StartTime    time.Time  `json:"startTime"`
	BetCloseTime time.Time  `json:"betCloseTime"`
	EndTime      time.Time  `json:"endTime"`
	Outcome      *string    `json:"outcome,omitempty"`
	ResolvedAt   *time.Time `json:"resolvedAt,omitempty"`
}

// Broadcaster publishes round snapshots for out-of-scope push transports.
// Publishing is best-effort: a failure never affects round state.
type Broadcaster interface {
	PublishRound(ctx context.Context, view RoundView) error
}

// Config holds the live-round timing parameters
type Config struct {
	// SpinCycle is the full Spin & Win round period
	SpinCycle time.Duration
	// SpinBetWindow is how long a Spin & Win round accepts bets; must be
	// shorter than SpinCycle
	SpinBetWindow time.Duration
	// FourColorWindow is the betting duration of an operator-started round
	FourColorWindow time.Duration
}

// Service drives the shared live rounds: the autonomous Spin & Win
// scheduler and the operator-driven 4-Color cycle. Round transitions are
// mutually exclusive per variant.
type Service struct {
	uow          persistence.UnitOfWork
	accounts     *accountUseCase.UseCase
	rand         coreport.RandSource
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.Metrics
	broadcaster  Broadcaster
	cfg          Config

	spinMu sync.Mutex
	fourMu sync.Mutex
}

// NewService creates a live round service. broadcaster may be nil.
func NewService(
	uow persistence.UnitOfWork,
	accounts *accountUseCase.UseCase,
	rand coreport.RandSource,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.Metrics,
	broadcaster Broadcaster,
	cfg Config,
) *Service {
	return &Service{
		uow:          uow,
		accounts:     accounts,
		rand:         rand,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
		broadcaster:  broadcaster,
		cfg:          cfg,
	}
}

// CurrentRound returns the most recent round for a variant: the open one,
// or the last finished one until it is replaced
func (s *Service) CurrentRound(ctx context.Context, variant entity.GameVariant) (*RoundView, error) {
	roundRepo := s.uow.GetRoundRepository(ctx)
	round, err := roundRepo.GetLatest(ctx, variant)
	if err != nil {
		return nil, err
	}
	view := viewOf(round)
	return &view, nil
}

func viewOf(r *entity.Round) RoundView {
	return RoundView{
		RoundID:      r.ID,
		Variant:      string(r.Variant),
		Status:       string(r.Status),
		StartTime:    r.StartTime,
		BetCloseTime: r.BetCloseTime,
		EndTime:      r.EndTime,
		Outcome:      r.Outcome,
		ResolvedAt:   r.ResolvedAt,
	}
}

func (s *Service) publish(ctx context.Context, r *entity.Round) {
	if s.broadcaster == nil {
		return
	}
	if err := s.broadcaster.PublishRound(ctx, viewOf(r)); err != nil {
		s.logger.Warn("Round broadcast failed", map[string]any{
			"round_id": r.ID,
			"error":    err.Error(),
		})
	}
}
