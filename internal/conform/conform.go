// Package conform assembles the gold layer: conformed customer and product
// dimensions and the sales fact, joined across the cleansed/derived source
// tables.
//
// Join policy is outer-preserving on the primary source: every primary row
// survives, and attributes missing from a secondary source resolve to the
// n/a sentinel. Where the same semantic attribute exists in two sources,
// a table-driven precedence rule decides which value wins (see rules.go).
//
// Surrogate keys are dense integers from 1, assigned by a stable ordering
// over the joined result, so the same input snapshot always yields the same
// keys. They carry no identity across differing snapshots.
package conform

import (
	"sort"

	"dwh/internal/normalize"
	"dwh/internal/schema"
)

// Customers builds the conformed customer dimension from the cleansed CRM
// customers (primary) and the ERP demographic and location tables
// (secondary), matched on the shared customer business key.
func Customers(crm []schema.Customer, demo []schema.Demographic, loc []schema.Location) []schema.CustomerDim {
	demoByKey := make(map[string]schema.Demographic, len(demo))
	for _, d := range demo {
		demoByKey[d.Key] = d
	}
	locByKey := make(map[string]schema.Location, len(loc))
	for _, l := range loc {
		locByKey[l.Key] = l
	}

	out := make([]schema.CustomerDim, 0, len(crm))
	for _, c := range crm {
		d := demoByKey[c.Key] // zero value when unmatched
		row := schema.CustomerDim{
			ID:            c.ID,
			Key:           c.Key,
			FirstName:     c.FirstName,
			LastName:      c.LastName,
			MaritalStatus: c.MaritalStatus,
			Gender:        resolveCustomerAttr(attrGender, c, d),
			Birthdate:     d.Birthdate,
			Country:       normalize.NotApplicable,
			Created:       c.Created,
		}
		if l, ok := locByKey[c.Key]; ok {
			row.Country = l.Country
		}
		out = append(out, row)
	}

	// Surrogate keys: order by (create date, natural key); the key is unique
	// after dedup, so the ordering is total.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Created.Equal(out[j].Created) {
			return out[i].Created.Before(out[j].Created)
		}
		return out[i].Key < out[j].Key
	})
	for i := range out {
		out[i].SK = i + 1
	}
	return out
}

// Products builds the conformed product dimension from derived CRM products
// (primary) and the ERP category table (secondary), matched on category id.
// Superseded versions (those with a derived end date) never appear.
func Products(prds []schema.Product, cats []schema.Category) []schema.ProductDim {
	catByID := make(map[string]schema.Category, len(cats))
	for _, c := range cats {
		catByID[c.ID] = c
	}

	out := make([]schema.ProductDim, 0, len(prds))
	for _, p := range prds {
		if p.End != nil {
			continue // only currently valid versions
		}
		row := schema.ProductDim{
			ID:          p.ID,
			Key:         p.Key,
			Name:        p.Name,
			CategoryID:  p.CategoryID,
			Category:    normalize.NotApplicable,
			Subcategory: normalize.NotApplicable,
			Maintenance: normalize.NotApplicable,
			Line:        p.Line,
			Cost:        p.Cost,
			Start:       p.Start,
		}
		if c, ok := catByID[p.CategoryID]; ok {
			row.Category = orNA(c.Category)
			row.Subcategory = orNA(c.Subcategory)
			row.Maintenance = orNA(c.Maintenance)
		}
		out = append(out, row)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].Key < out[j].Key
	})
	for i := range out {
		out[i].SK = i + 1
	}
	return out
}

// Sales builds the fact table. Each transactional line resolves its
// business keys against the assembled dimensions by equality lookup; an
// unmatched key keeps the business key and carries surrogate key 0, so no
// fact row is ever dropped.
func Sales(details []schema.Sale, customers []schema.CustomerDim, products []schema.ProductDim) []schema.SaleFact {
	custSK := make(map[int]int, len(customers))
	for _, c := range customers {
		custSK[c.ID] = c.SK
	}
	prodSK := make(map[string]int, len(products))
	for _, p := range products {
		prodSK[p.Key] = p.SK
	}

	out := make([]schema.SaleFact, 0, len(details))
	for _, s := range details {
		out = append(out, schema.SaleFact{
			OrderNumber: s.OrderNumber,
			ProductSK:   prodSK[s.ProductKey],
			CustomerSK:  custSK[s.CustomerID],
			ProductKey:  s.ProductKey,
			CustomerID:  s.CustomerID,
			OrderDate:   s.OrderDate,
			ShipDate:    s.ShipDate,
			DueDate:     s.DueDate,
			Amount:      s.Amount,
			Quantity:    s.Quantity,
			Price:       s.Price,
		})
	}
	return out
}

// orNA substitutes the n/a sentinel for a blank secondary-source value.
func orNA(s string) string {
	if s == "" {
		return normalize.NotApplicable
	}
	return s
}
