package cleanse

import (
	"strconv"
	"time"

	"dwh/internal/normalize"
	"dwh/internal/schema"
	"dwh/pkg/records"
)

// Customers cleanses the CRM customer extract: one row per customer id,
// the one with the latest create date winning among duplicates.
func Customers(in []records.Record) ([]schema.Customer, Stats, error) {
	st := Stats{In: len(in)}
	contract := schema.Contracts[schema.TableCRMCustomers]
	if err := requireColumns(contract.Name, contract.Required(), in); err != nil {
		return nil, st, err
	}

	rows := make([]schema.Customer, 0, len(in))
	for _, r := range in {
		id, idOK := r.Int("cst_id")
		key := r.Trimmed("cst_key")
		if !idOK || key == "" {
			st.Dropped++
			continue
		}

		repaired := false
		created, err := time.Parse(schema.DateLayout, r.Trimmed("cst_create_date"))
		if err != nil {
			// Unusable create date: keep the row but let it lose any dedup
			// against a dated duplicate.
			created = time.Time{}
			repaired = true
		}

		gender := normalize.Gender(r.String("cst_gndr"))
		marital := normalize.MaritalStatus(r.String("cst_marital_status"))
		if gender == normalize.NotApplicable && r.Trimmed("cst_gndr") != "" {
			repaired = true
		}
		if marital == normalize.NotApplicable && r.Trimmed("cst_marital_status") != "" {
			repaired = true
		}
		if repaired {
			st.Repaired++
		}

		rows = append(rows, schema.Customer{
			ID:            id,
			Key:           key,
			FirstName:     r.Trimmed("cst_firstname"),
			LastName:      r.Trimmed("cst_lastname"),
			MaritalStatus: marital,
			Gender:        gender,
			Created:       created,
		})
	}

	deduped := latestByKey(rows,
		func(c schema.Customer) string { return strconv.Itoa(c.ID) },
		func(c schema.Customer) time.Time { return c.Created },
	)
	st.Dropped += len(rows) - len(deduped)
	st.Out = len(deduped)
	return deduped, st, nil
}
