package oddsmath

import (
	"testing"

	"github.com/shopspring/decimal"

	"betanalytix/internal/domain"
)

func legs(odds ...float64) []*domain.BetLeg {
	out := make([]*domain.BetLeg, 0, len(odds))
	for _, o := range odds {
		out = append(out, &domain.BetLeg{Odds: decimal.NewFromFloat(o)})
	}
	return out
}

func TestTotalOddsSingleLeg(t *testing.T) {
	got := TotalOdds(legs(1.8))
	if !got.Equal(decimal.NewFromFloat(1.8)) {
		t.Errorf("expected 1.8, got %s", got)
	}
}

func TestTotalOddsAccumulator(t *testing.T) {
	got := TotalOdds(legs(1.5, 2.0, 1.2))
	if !got.Equal(decimal.NewFromFloat(3.6)) {
		t.Errorf("expected 3.6, got %s", got)
	}
}

func TestTotalOddsOrderIndependent(t *testing.T) {
	a := TotalOdds(legs(1.33, 2.75, 1.91))
	b := TotalOdds(legs(1.91, 1.33, 2.75))
	if !a.Equal(b) {
		t.Errorf("order changed the product: %s vs %s", a, b)
	}
}

func TestPotentialReturn(t *testing.T) {
	tests := []struct {
		name      string
		stake     float64
		totalOdds float64
		want      string
	}{
		{"single at 1.8", 50, 1.8, "90"},
		{"accumulator at 3.6", 20, 3.6, "72"},
		{"even money", 100, 2.0, "200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PotentialReturn(decimal.NewFromFloat(tt.stake), decimal.NewFromFloat(tt.totalOdds))
			want, _ := decimal.NewFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("expected %s, got %s", want, got)
			}
		})
	}
}

func TestPotentialReturnKeepsPrecision(t *testing.T) {
	// 33.33 * 1.91 = 63.6603; rounding is deferred to Round2
	got := PotentialReturn(decimal.NewFromFloat(33.33), decimal.NewFromFloat(1.91))
	want, _ := decimal.NewFromString("63.6603")
	if !got.Equal(want) {
		t.Errorf("expected %s, got %s", want, got)
	}
	if rounded := Round2(got); rounded.String() != "63.66" {
		t.Errorf("expected 63.66 after rounding, got %s", rounded)
	}
}

func TestValidLegOdds(t *testing.T) {
	if ValidLegOdds(decimal.NewFromFloat(1.0)) {
		t.Error("1.0 should be below the minimum")
	}
	if ValidLegOdds(decimal.NewFromFloat(1.009)) {
		t.Error("1.009 should be below the minimum")
	}
	if !ValidLegOdds(decimal.NewFromFloat(1.01)) {
		t.Error("1.01 should be accepted")
	}
	if !ValidLegOdds(decimal.NewFromFloat(250)) {
		t.Error("250 should be accepted")
	}
}
