package cleanse

import (
	"time"

	"dwh/internal/normalize"
	"dwh/internal/schema"
	"dwh/pkg/records"
)

// Sales cleanses the CRM sales-detail extract. Encoded 8-digit dates decode
// here via the field normalizers; measure reconciliation is a business rule
// and happens in the derive stage. Every transactional line is kept: sales
// rows have no duplicate semantics to collapse.
func Sales(in []records.Record) ([]schema.Sale, Stats, error) {
	st := Stats{In: len(in)}
	contract := schema.Contracts[schema.TableCRMSales]
	if err := requireColumns(contract.Name, contract.Required(), in); err != nil {
		return nil, st, err
	}

	rows := make([]schema.Sale, 0, len(in))
	for _, r := range in {
		ord := r.Trimmed("sls_ord_num")
		prdKey := r.Trimmed("sls_prd_key")
		custID, custOK := r.Int("sls_cust_id")
		if ord == "" || prdKey == "" || !custOK {
			st.Dropped++
			continue
		}

		repaired := false
		date := func(col string) *time.Time {
			n, ok := r.Int(col)
			if !ok {
				if r.Trimmed(col) != "" {
					repaired = true
				}
				return nil
			}
			d, ok := normalize.DateFromYMD(n)
			if !ok {
				// A literal zero means "never filled in" upstream and is not
				// counted as a repair; anything else malformed is.
				if n != 0 {
					repaired = true
				}
				return nil
			}
			return &d
		}

		row := schema.Sale{
			OrderNumber: ord,
			ProductKey:  prdKey,
			CustomerID:  custID,
			OrderDate:   date("sls_order_dt"),
			ShipDate:    date("sls_ship_dt"),
			DueDate:     date("sls_due_dt"),
		}
		if v, ok := r.Float("sls_sales"); ok {
			row.Amount = &v
		}
		if q, ok := r.Int("sls_quantity"); ok {
			row.Quantity = q
		}
		if v, ok := r.Float("sls_price"); ok {
			row.Price = &v
		}
		if repaired {
			st.Repaired++
		}
		rows = append(rows, row)
	}

	st.Out = len(rows)
	return rows, st, nil
}
