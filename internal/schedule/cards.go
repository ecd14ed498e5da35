package schedule

import (
	"slices"
	"time"
)

// Card is a snapshot of a credit card's billing-cycle configuration.
// CutoffDay is the statement closing day; PaymentDueDay is the day in the
// month after the cutoff's month on which the statement balance is due.
// Either field at zero makes the card ineligible for ranking.
type Card struct {
	ID            uint
	CutoffDay     int
	PaymentDueDay int
}

// RankedCard describes one card's current cycle relative to "today".
type RankedCard struct {
	Card          Card
	Cutoff        time.Time
	Payment       time.Time
	DaysToCutoff  int
	DaysToPayment int
}

// maxRankedCards caps RankCards output; the UI only surfaces a podium.
const maxRankedCards = 3

// RankCards ranks the eligible cards by how favorable a purchase made today
// would be, returning at most the top three.
//
// For each card the next cutoff is this month's cutoff day, rolled into next
// month if it already passed; the payment lands on the due day of the month
// after the resolved cutoff, however the cutoff was rolled. A card whose
// cutoff is nearest ranks best: the purchase posts to the next statement, so
// a just-closed or about-to-close cycle yields the longest float. Ties on
// days-to-cutoff break toward the larger days-to-payment.
func RankCards(cards []Card, today time.Time) []RankedCard {
	t := localMidnight(today)

	ranked := make([]RankedCard, 0, len(cards))
	for _, card := range cards {
		if card.CutoffDay <= 0 || card.PaymentDueDay <= 0 {
			continue
		}

		cutoff := time.Date(t.Year(), t.Month(), card.CutoffDay, 0, 0, 0, 0, time.Local)
		if cutoff.Before(t) {
			cutoff = time.Date(t.Year(), t.Month()+1, card.CutoffDay, 0, 0, 0, 0, time.Local)
		}
		pay := time.Date(cutoff.Year(), cutoff.Month()+1, card.PaymentDueDay, 0, 0, 0, 0, time.Local)

		ranked = append(ranked, RankedCard{
			Card:          card,
			Cutoff:        cutoff,
			Payment:       pay,
			DaysToCutoff:  daysBetween(cutoff, t),
			DaysToPayment: daysBetween(pay, t),
		})
	}

	slices.SortStableFunc(ranked, func(a, b RankedCard) int {
		if a.DaysToCutoff != b.DaysToCutoff {
			return a.DaysToCutoff - b.DaysToCutoff
		}
		return b.DaysToPayment - a.DaysToPayment
	})

	if len(ranked) > maxRankedCards {
		ranked = ranked[:maxRankedCards]
	}
	return ranked
}
