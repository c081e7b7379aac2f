package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"betanalytix/internal/domain"
)

func settledBet(stake, odds, actualReturn float64, status domain.BetStatus, settledAt time.Time) *domain.Bet {
	stakeDec := decimal.NewFromFloat(stake)
	returnDec := decimal.NewFromFloat(actualReturn)
	return &domain.Bet{
		Stake:        stakeDec,
		TotalOdds:    decimal.NewFromFloat(odds),
		ActualReturn: returnDec,
		ProfitLoss:   returnDec.Sub(stakeDec),
		Status:       status,
		SettledAt:    &settledAt,
	}
}

func openBet(stake, odds float64) *domain.Bet {
	return &domain.Bet{
		Stake:     decimal.NewFromFloat(stake),
		TotalOdds: decimal.NewFromFloat(odds),
		Status:    domain.BetStatusPending,
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil, decimal.NewFromInt(1000))

	if stats.TotalBets != 0 {
		t.Errorf("expected 0 bets, got %d", stats.TotalBets)
	}
	if !stats.WinRate.IsZero() || !stats.ROI.IsZero() || !stats.ROC.IsZero() {
		t.Errorf("expected zero rates on empty input, got win=%s roi=%s roc=%s",
			stats.WinRate, stats.ROI, stats.ROC)
	}
	if !stats.AvgOdds.IsZero() || !stats.AvgStake.IsZero() {
		t.Errorf("expected zero averages on empty input")
	}
}

func TestComputeStatsCountsAndTotals(t *testing.T) {
	now := time.Now()
	bets := []*domain.Bet{
		settledBet(50, 1.8, 90, domain.BetStatusWon, now),
		settledBet(50, 2.0, 0, domain.BetStatusLost, now),
		settledBet(25, 1.5, 25, domain.BetStatusVoid, now),
		openBet(100, 3.0),
	}

	stats := ComputeStats(bets, decimal.NewFromInt(1000))

	if stats.TotalBets != 4 || stats.WonBets != 1 || stats.LostBets != 1 || stats.PendingBets != 1 {
		t.Errorf("unexpected counts: total=%d won=%d lost=%d pending=%d",
			stats.TotalBets, stats.WonBets, stats.LostBets, stats.PendingBets)
	}

	// staked covers every bet including the pending one
	if !stats.TotalStaked.Equal(decimal.NewFromInt(225)) {
		t.Errorf("expected total staked 225, got %s", stats.TotalStaked)
	}
	// returns and profit cover settled bets only
	if !stats.TotalReturns.Equal(decimal.NewFromInt(115)) {
		t.Errorf("expected total returns 115, got %s", stats.TotalReturns)
	}
	if !stats.TotalProfit.Equal(decimal.NewFromInt(-10)) {
		t.Errorf("expected total profit -10, got %s", stats.TotalProfit)
	}
}

func TestComputeStatsWinRateExcludesVoid(t *testing.T) {
	now := time.Now()
	bets := []*domain.Bet{
		settledBet(10, 2.0, 20, domain.BetStatusWon, now),
		settledBet(10, 2.0, 20, domain.BetStatusWon, now),
		settledBet(10, 2.0, 0, domain.BetStatusLost, now),
		settledBet(10, 2.0, 10, domain.BetStatusVoid, now),
	}

	stats := ComputeStats(bets, decimal.NewFromInt(100))

	want, _ := decimal.NewFromString("66.67")
	if !stats.WinRate.Equal(want) {
		t.Errorf("expected win rate 66.67, got %s", stats.WinRate)
	}
}

func TestComputeStatsROIAndROC(t *testing.T) {
	now := time.Now()
	bets := []*domain.Bet{
		settledBet(100, 1.5, 150, domain.BetStatusWon, now),
		settledBet(100, 2.0, 0, domain.BetStatusLost, now),
	}

	stats := ComputeStats(bets, decimal.NewFromInt(500))

	// profit 50 over 200 staked
	if !stats.ROI.Equal(decimal.NewFromInt(25)) {
		t.Errorf("expected ROI 25, got %s", stats.ROI)
	}
	// profit 50 over 500 initial capital
	if !stats.ROC.Equal(decimal.NewFromInt(10)) {
		t.Errorf("expected ROC 10, got %s", stats.ROC)
	}
}

func TestComputeStatsZeroInitialCapital(t *testing.T) {
	now := time.Now()
	bets := []*domain.Bet{
		settledBet(100, 1.5, 150, domain.BetStatusWon, now),
	}

	stats := ComputeStats(bets, decimal.Zero)

	if !stats.ROC.IsZero() {
		t.Errorf("expected ROC 0 with zero initial capital, got %s", stats.ROC)
	}
}

func TestComputeStatsAverages(t *testing.T) {
	now := time.Now()
	bets := []*domain.Bet{
		settledBet(10, 1.5, 15, domain.BetStatusWon, now),
		openBet(30, 2.5),
	}

	stats := ComputeStats(bets, decimal.NewFromInt(100))

	if !stats.AvgOdds.Equal(decimal.NewFromInt(2)) {
		t.Errorf("expected avg odds 2, got %s", stats.AvgOdds)
	}
	if !stats.AvgStake.Equal(decimal.NewFromInt(20)) {
		t.Errorf("expected avg stake 20, got %s", stats.AvgStake)
	}
}

func TestComputeBalanceHistoryNoSettlements(t *testing.T) {
	now := time.Now()
	bankroll := &domain.Bankroll{
		InitialCapital: decimal.NewFromInt(1000),
		CurrentCapital: decimal.NewFromInt(1000),
		CreatedAt:      now.AddDate(0, -6, 0),
	}

	points := ComputeBalanceHistory(bankroll, []*domain.Bet{openBet(50, 2.0)}, 30, now)

	if len(points) != 1 {
		t.Fatalf("expected 1 flat point, got %d", len(points))
	}
	if !points[0].Balance.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected balance 1000, got %s", points[0].Balance)
	}
}

func TestComputeBalanceHistoryWalksBack(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	bankroll := &domain.Bankroll{
		InitialCapital: decimal.NewFromInt(1000),
		CurrentCapital: decimal.NewFromInt(1040),
		CreatedAt:      now.AddDate(0, -6, 0),
	}

	bets := []*domain.Bet{
		// +90 on day -10, then -50 on day -5
		settledBet(50, 1.8, 90, domain.BetStatusWon, now.AddDate(0, 0, -10)),
		settledBet(50, 2.0, 0, domain.BetStatusLost, now.AddDate(0, 0, -5)),
	}

	points := ComputeBalanceHistory(bankroll, bets, 30, now)

	if len(points) != 3 {
		t.Fatalf("expected opening + 2 settlement points, got %d", len(points))
	}
	if !points[0].Balance.Equal(decimal.NewFromInt(1050)) {
		t.Errorf("expected opening balance 1050, got %s", points[0].Balance)
	}
	if !points[1].Balance.Equal(decimal.NewFromInt(1090)) {
		t.Errorf("expected 1090 after the win, got %s", points[1].Balance)
	}
	if !points[2].Balance.Equal(decimal.NewFromInt(1040)) {
		t.Errorf("expected 1040 after the loss, got %s", points[2].Balance)
	}
}

func TestComputeBalanceHistoryCollapsesSameDay(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	bankroll := &domain.Bankroll{
		InitialCapital: decimal.NewFromInt(1000),
		CurrentCapital: decimal.NewFromInt(1030),
		CreatedAt:      now.AddDate(0, -6, 0),
	}

	day := now.AddDate(0, 0, -3)
	bets := []*domain.Bet{
		settledBet(50, 1.8, 90, domain.BetStatusWon, day.Add(1*time.Hour)),
		settledBet(10, 2.0, 0, domain.BetStatusLost, day.Add(2*time.Hour)),
	}

	points := ComputeBalanceHistory(bankroll, bets, 30, now)

	// opening plus one point for the single settlement day
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if !points[1].Balance.Equal(decimal.NewFromInt(1030)) {
		t.Errorf("expected final balance 1030, got %s", points[1].Balance)
	}
}

func TestComputeBalanceHistoryIgnoresOutOfWindow(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	bankroll := &domain.Bankroll{
		InitialCapital: decimal.NewFromInt(1000),
		CurrentCapital: decimal.NewFromInt(1040),
		CreatedAt:      now.AddDate(0, -6, 0),
	}

	bets := []*domain.Bet{
		settledBet(50, 1.8, 90, domain.BetStatusWon, now.AddDate(0, 0, -60)),
		settledBet(50, 2.0, 0, domain.BetStatusLost, now.AddDate(0, 0, -2)),
	}

	points := ComputeBalanceHistory(bankroll, bets, 30, now)

	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	// only the in-window loss is walked back from the current capital
	if !points[0].Balance.Equal(decimal.NewFromInt(1090)) {
		t.Errorf("expected opening balance 1090, got %s", points[0].Balance)
	}
}
