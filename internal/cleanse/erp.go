package cleanse

import (
	"strings"
	"time"

	"dwh/internal/normalize"
	"dwh/internal/schema"
	"dwh/pkg/records"
)

// The ERP extracts carry no effective timestamp, so their dedup degrades to
// keep-first (see latestByKey).

// Demographics cleanses the ERP customer-demographics extract. Keys may
// carry a legacy "NAS" prefix, which is stripped so they match the CRM
// customer key. Birthdates in the future are unusable and nulled.
func Demographics(in []records.Record) ([]schema.Demographic, Stats, error) {
	return cleanseERP(in, schema.TableERPDemographic, func(r records.Record, st *Stats) (schema.Demographic, bool) {
		key := r.Trimmed("cid")
		key = strings.TrimPrefix(key, "NAS")
		if key == "" {
			return schema.Demographic{}, false
		}
		row := schema.Demographic{
			Key:    key,
			Gender: normalize.Gender(r.String("gen")),
		}
		repaired := row.Gender == normalize.NotApplicable && r.Trimmed("gen") != ""
		if raw := r.Trimmed("bdate"); raw != "" {
			d, err := time.Parse(schema.DateLayout, raw)
			switch {
			case err != nil:
				repaired = true
			case d.After(time.Now()):
				repaired = true
			default:
				row.Birthdate = &d
			}
		}
		if repaired {
			st.Repaired++
		}
		return row, true
	}, func(d schema.Demographic) string { return d.Key })
}

// Locations cleanses the ERP customer-location extract. Keys embed dashes
// that the CRM key does not; they are removed before matching.
func Locations(in []records.Record) ([]schema.Location, Stats, error) {
	return cleanseERP(in, schema.TableERPLocation, func(r records.Record, st *Stats) (schema.Location, bool) {
		key := strings.ReplaceAll(r.Trimmed("cid"), "-", "")
		if key == "" {
			return schema.Location{}, false
		}
		row := schema.Location{
			Key:     key,
			Country: normalize.Country(r.String("cntry")),
		}
		if row.Country == normalize.NotApplicable && r.Trimmed("cntry") != "" {
			st.Repaired++
		}
		return row, true
	}, func(l schema.Location) string { return l.Key })
}

// Categories cleanses the ERP product-category extract.
func Categories(in []records.Record) ([]schema.Category, Stats, error) {
	return cleanseERP(in, schema.TableERPCategory, func(r records.Record, st *Stats) (schema.Category, bool) {
		id := r.Trimmed("id")
		if id == "" {
			return schema.Category{}, false
		}
		return schema.Category{
			ID:          id,
			Category:    r.Trimmed("cat"),
			Subcategory: r.Trimmed("subcat"),
			Maintenance: r.Trimmed("maintenance"),
		}, true
	}, func(c schema.Category) string { return c.ID })
}

// cleanseERP is the shared walk for the three timestamp-less ERP tables:
// contract check, per-row projection, keep-first dedup on the natural key.
func cleanseERP[T any](
	in []records.Record,
	table string,
	project func(records.Record, *Stats) (T, bool),
	key func(T) string,
) ([]T, Stats, error) {
	st := Stats{In: len(in)}
	contract := schema.Contracts[table]
	if err := requireColumns(contract.Name, contract.Required(), in); err != nil {
		return nil, st, err
	}

	rows := make([]T, 0, len(in))
	for _, r := range in {
		row, ok := project(r, &st)
		if !ok {
			st.Dropped++
			continue
		}
		rows = append(rows, row)
	}

	deduped := latestByKey(rows, key, func(T) time.Time { return time.Time{} })
	st.Dropped += len(rows) - len(deduped)
	st.Out = len(deduped)
	return deduped, st, nil
}
