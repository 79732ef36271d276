package entity

import (
	"fmt"
	"strconv"
	"time"

	errs "github.com/luckyrupee/wager-engine/internal/domain/error"
	coreport "github.com/luckyrupee/wager-engine/internal/domain/port/core"
)

// RoundStatus defines the phase of a live round
type RoundStatus string

// Round statuses. Spin & Win rounds move betting -> spinning -> finished on
// the scheduler's clock; 4-Color rounds move betting -> awarding on an
// operator action. Reconcile marks a round whose settlement failed and is
// waiting for manual reconciliation.
const (
	RoundBetting   RoundStatus = "betting"
	RoundSpinning  RoundStatus = "spinning"
	RoundFinished  RoundStatus = "finished"
	RoundAwarding  RoundStatus = "awarding"
	RoundReconcile RoundStatus = "reconcile"
)

// Round represents one cycle of a shared live game
type Round struct {
	ID           string      // Derived from the start time
	Variant      GameVariant // spinwin or fourcolor
	Status       RoundStatus
	StartTime    time.Time
	BetCloseTime time.Time
	EndTime      time.Time
	Outcome      *string // Wheel slot multiplier or winning color; nil until resolved
	ResolvedAt   *time.Time
}

// NewRound opens a fresh round in betting state. The ID is derived from the
// start time so successive rounds of a variant sort chronologically.
func NewRound(variant GameVariant, betWindow, cycle time.Duration, timeProvider coreport.TimeProvider) *Round {
	now := timeProvider.Now()
	return &Round{
		ID:           roundID(variant, now),
		Variant:      variant,
		Status:       RoundBetting,
		StartTime:    now,
		BetCloseTime: now.Add(betWindow),
		EndTime:      now.Add(cycle),
	}
}

func roundID(variant GameVariant, start time.Time) string {
	return string(variant) + "-" + strconv.FormatInt(start.Unix(), 10)
}

// IsOpen reports whether the round still accepts bets
func (r *Round) IsOpen() bool {
	return r.Status == RoundBetting
}

// IsTerminal reports whether the round has been fully resolved or parked
// for reconciliation
func (r *Round) IsTerminal() bool {
	return r.Status == RoundFinished || r.Status == RoundAwarding || r.Status == RoundReconcile
}

// CloseBetting moves the round out of the betting phase. Only valid from
// betting; rounds never reopen.
func (r *Round) CloseBetting() error {
	if r.Status != RoundBetting {
		return fmt.Errorf("%w: round %s is %s", errs.ErrRoundNotOpen, r.ID, r.Status)
	}
	r.Status = RoundSpinning
	return nil
}

// Finish records the outcome and moves the round to its terminal state.
// The outcome is fixed here, before any bet is settled.
func (r *Round) Finish(outcome string, terminal RoundStatus, timeProvider coreport.TimeProvider) {
	now := timeProvider.Now()
	r.Outcome = &outcome
	r.ResolvedAt = &now
	r.Status = terminal
}

// MarkReconcile parks the round for manual reconciliation after a failed
// settlement. The outcome, if already drawn, is preserved.
func (r *Round) MarkReconcile(timeProvider coreport.TimeProvider) {
	now := timeProvider.Now()
	r.ResolvedAt = &now
	r.Status = RoundReconcile
}
