package derive

import (
	"sort"

	"dwh/internal/normalize"
	"dwh/internal/schema"
)

// Products applies the product business rules to cleansed rows:
//
//   - the composite raw key decomposes into category id + entity key; a
//     malformed key fails the row;
//   - within each entity key, versions sorted by start date get an end date
//     of one day before the next version's start; the last version stays
//     open (nil end date).
//
// The returned slice is ordered by (key, start) so the output is
// deterministic regardless of input order.
func Products(in []schema.Product) ([]schema.Product, Stats) {
	st := Stats{In: len(in)}

	out := make([]schema.Product, 0, len(in))
	for _, p := range in {
		catID, key, err := normalize.SplitProductKey(p.RawKey)
		if err != nil {
			st.Failed++
			continue
		}
		p.CategoryID = catID
		p.Key = key
		p.End = nil
		out = append(out, p)
	}

	// Lifecycle end-dating needs each key's versions adjacent and in start
	// order; the sort also fixes the output ordering.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Key != out[j].Key {
			return out[i].Key < out[j].Key
		}
		return out[i].Start.Before(out[j].Start)
	})
	for i := range out {
		if i+1 < len(out) && out[i+1].Key == out[i].Key {
			end := out[i+1].Start.AddDate(0, 0, -1)
			out[i].End = &end
		}
	}

	st.Out = len(out)
	return out, st
}
