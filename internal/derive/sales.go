package derive

import (
	"math"

	"dwh/internal/schema"
)

// Sales reconciles the measures of cleansed sales rows, preferring internal
// consistency over either stored field:
//
//   - an amount that is missing, non-positive, or not equal to
//     quantity × |price| is recomputed as quantity × |price| from the
//     stored price;
//   - a price that is missing or non-positive is then recomputed as
//     amount ÷ quantity from the reconciled amount; a zero quantity or a
//     non-positive result yields the no-price sentinel (nil), never a
//     division error.
//
// Repairing the price after the amount keeps the pair consistent: whenever
// both quantity and price come out present and non-zero, the amount equals
// quantity × |price|.
func Sales(in []schema.Sale) ([]schema.Sale, Stats) {
	st := Stats{In: len(in)}

	out := make([]schema.Sale, 0, len(in))
	for _, s := range in {
		amount, price := s.Amount, s.Price

		if badAmount(s.Amount, s.Price, s.Quantity) {
			if s.Price != nil {
				v := float64(s.Quantity) * math.Abs(*s.Price)
				s.Amount = &v
			} else {
				s.Amount = nil
			}
		}

		if s.Price == nil || *s.Price <= 0 {
			s.Price = nil
			if s.Quantity != 0 && s.Amount != nil {
				if p := *s.Amount / float64(s.Quantity); p > 0 {
					s.Price = &p
				}
			}
		}

		// A row only counts as repaired when a measure actually changed;
		// a row that was already in its final state passes through unseen.
		if measureChanged(amount, s.Amount) || measureChanged(price, s.Price) {
			st.Repaired++
		}
		out = append(out, s)
	}

	st.Out = len(out)
	return out, st
}

func measureChanged(before, after *float64) bool {
	if before == nil || after == nil {
		return before != after
	}
	return *before != *after
}

func badAmount(amount, price *float64, qty int) bool {
	if amount == nil || *amount <= 0 {
		return true
	}
	return price != nil && *amount != float64(qty)*math.Abs(*price)
}
