package schedule

import (
	"testing"
	"time"
)

// fixed "today" for ranking tests: March 10, 2026, mid-afternoon to prove
// normalization to midnight.
var rankToday = time.Date(2026, time.March, 10, 15, 42, 0, 0, time.Local)

func TestRankCards(t *testing.T) {
	t.Run("rolls_past_cutoff_into_next_month", func(t *testing.T) {
		ranked := RankCards([]Card{{ID: 1, CutoffDay: 5, PaymentDueDay: 20}}, rankToday)
		if len(ranked) != 1 {
			t.Fatalf("expected 1 ranked card, got %d", len(ranked))
		}
		r := ranked[0]
		if r.Cutoff.Month() != time.April || r.Cutoff.Day() != 5 {
			t.Errorf("expected cutoff rolled to Apr 5, got %s", r.Cutoff)
		}
		if r.DaysToCutoff != 26 {
			t.Errorf("expected 26 days to cutoff, got %d", r.DaysToCutoff)
		}
		// Payment is due the month after the resolved cutoff month.
		if r.Payment.Month() != time.May || r.Payment.Day() != 20 {
			t.Errorf("expected payment on May 20, got %s", r.Payment)
		}
	})

	t.Run("cutoff_today_does_not_roll", func(t *testing.T) {
		ranked := RankCards([]Card{{ID: 1, CutoffDay: 10, PaymentDueDay: 1}}, rankToday)
		if len(ranked) != 1 {
			t.Fatalf("expected 1 ranked card, got %d", len(ranked))
		}
		if ranked[0].Cutoff.Month() != time.March || ranked[0].DaysToCutoff != 0 {
			t.Errorf("expected today's cutoff to stand, got %s (%d days)", ranked[0].Cutoff, ranked[0].DaysToCutoff)
		}
	})

	t.Run("nearest_cutoff_wins_longer_float_breaks_ties", func(t *testing.T) {
		cards := []Card{
			{ID: 1, CutoffDay: 5, PaymentDueDay: 25},  // rolled, 26 days out
			{ID: 2, CutoffDay: 15, PaymentDueDay: 1},  // 5 days, pay Apr 1
			{ID: 3, CutoffDay: 15, PaymentDueDay: 10}, // 5 days, pay Apr 10
		}
		ranked := RankCards(cards, rankToday)
		if len(ranked) != 3 {
			t.Fatalf("expected 3 ranked cards, got %d", len(ranked))
		}
		if ranked[0].Card.ID != 3 {
			t.Errorf("expected card 3 first (tie broken by longer float), got %d", ranked[0].Card.ID)
		}
		if ranked[1].Card.ID != 2 {
			t.Errorf("expected card 2 second, got %d", ranked[1].Card.ID)
		}
		if ranked[2].Card.ID != 1 {
			t.Errorf("expected card 1 last, got %d", ranked[2].Card.ID)
		}
		if ranked[0].DaysToPayment <= ranked[1].DaysToPayment {
			t.Errorf("tie-break violated: %d <= %d", ranked[0].DaysToPayment, ranked[1].DaysToPayment)
		}
	})

	t.Run("returns_at_most_three", func(t *testing.T) {
		cards := []Card{
			{ID: 1, CutoffDay: 11, PaymentDueDay: 5},
			{ID: 2, CutoffDay: 12, PaymentDueDay: 5},
			{ID: 3, CutoffDay: 13, PaymentDueDay: 5},
			{ID: 4, CutoffDay: 14, PaymentDueDay: 5},
			{ID: 5, CutoffDay: 15, PaymentDueDay: 5},
		}
		ranked := RankCards(cards, rankToday)
		if len(ranked) != 3 {
			t.Fatalf("expected top 3, got %d", len(ranked))
		}
		if ranked[0].Card.ID != 1 || ranked[2].Card.ID != 3 {
			t.Errorf("expected cards 1..3 in order, got %d..%d", ranked[0].Card.ID, ranked[2].Card.ID)
		}
	})

	t.Run("ineligible_cards_excluded", func(t *testing.T) {
		cards := []Card{
			{ID: 1, CutoffDay: 15, PaymentDueDay: 0}, // no due day configured
			{ID: 2, CutoffDay: 0, PaymentDueDay: 10}, // no cutoff configured
		}
		if ranked := RankCards(cards, rankToday); len(ranked) != 0 {
			t.Errorf("expected no eligible cards, got %d", len(ranked))
		}
	})

	t.Run("empty_input", func(t *testing.T) {
		if ranked := RankCards(nil, rankToday); len(ranked) != 0 {
			t.Errorf("expected empty result, got %d", len(ranked))
		}
	})
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2026, time.March, 15, 23, 50, 0, 0, time.Local)
	b := time.Date(2026, time.March, 10, 0, 5, 0, 0, time.Local)
	if d := daysBetween(a, b); d != 5 {
		t.Errorf("expected 5 whole days, got %d", d)
	}
	if d := daysBetween(b, a); d != -5 {
		t.Errorf("expected -5 whole days, got %d", d)
	}
}
