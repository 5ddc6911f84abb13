package cleanse

import (
	"strconv"
	"time"

	"dwh/internal/normalize"
	"dwh/internal/schema"
	"dwh/pkg/records"
)

// Products cleanses the CRM product extract. Key decomposition and
// lifecycle end-dating are business rules and happen later, in the derive
// stage; here the composite key is only carried through as RawKey.
func Products(in []records.Record) ([]schema.Product, Stats, error) {
	st := Stats{In: len(in)}
	contract := schema.Contracts[schema.TableCRMProducts]
	if err := requireColumns(contract.Name, contract.Required(), in); err != nil {
		return nil, st, err
	}

	rows := make([]schema.Product, 0, len(in))
	for _, r := range in {
		id, idOK := r.Int("prd_id")
		rawKey := r.Trimmed("prd_key")
		if !idOK || rawKey == "" {
			st.Dropped++
			continue
		}

		repaired := false
		cost, ok := r.Float("prd_cost")
		if !ok || cost < 0 {
			cost = 0
			if r.Trimmed("prd_cost") != "" {
				repaired = true
			}
		}
		line := normalize.ProductLine(r.String("prd_line"))
		if line == normalize.NotApplicable && r.Trimmed("prd_line") != "" {
			repaired = true
		}
		start, err := time.Parse(schema.DateLayout, r.Trimmed("prd_start_dt"))
		if err != nil {
			start = time.Time{}
			repaired = true
		}
		if repaired {
			st.Repaired++
		}

		rows = append(rows, schema.Product{
			ID:     id,
			RawKey: rawKey,
			Name:   r.Trimmed("prd_nm"),
			Cost:   cost,
			Line:   line,
			Start:  start,
		})
	}

	// Product versions are distinguished by start date; dedup only exact
	// (id, start) duplicates, keeping the first seen.
	deduped := latestByKey(rows,
		func(p schema.Product) string {
			return strconv.Itoa(p.ID) + "\x1f" + p.Start.Format(schema.DateLayout)
		},
		func(schema.Product) time.Time { return time.Time{} },
	)
	st.Dropped += len(rows) - len(deduped)
	st.Out = len(deduped)
	return deduped, st, nil
}
