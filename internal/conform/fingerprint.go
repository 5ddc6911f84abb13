package conform

import (
	"bytes"
	"fmt"
	"time"

	"github.com/zeebo/xxh3"

	"dwh/internal/schema"
)

// Fingerprint hashes the fully assembled result set into a single value.
// Two runs over the same input snapshot must produce the same fingerprint,
// surrogate keys included; the orchestrator reports it so reruns can be
// checked for byte-identical output without diffing tables.
func Fingerprint(customers []schema.CustomerDim, products []schema.ProductDim, facts []schema.SaleFact) uint64 {
	var b bytes.Buffer
	for _, c := range customers {
		fmt.Fprintf(&b, "c|%d|%d|%s|%s|%s|%s|%s|%s|%s|%s\n",
			c.SK, c.ID, c.Key, c.FirstName, c.LastName, c.Country,
			c.MaritalStatus, c.Gender, fdate(c.Birthdate), c.Created.Format("20060102"))
	}
	for _, p := range products {
		fmt.Fprintf(&b, "p|%d|%d|%s|%s|%s|%s|%s|%s|%s|%g|%s\n",
			p.SK, p.ID, p.Key, p.Name, p.CategoryID, p.Category,
			p.Subcategory, p.Maintenance, p.Line, p.Cost, p.Start.Format("20060102"))
	}
	for _, f := range facts {
		fmt.Fprintf(&b, "f|%s|%d|%d|%s|%d|%s|%s|%s|%s|%d|%s\n",
			f.OrderNumber, f.ProductSK, f.CustomerSK, f.ProductKey, f.CustomerID,
			fdate(f.OrderDate), fdate(f.ShipDate), fdate(f.DueDate),
			ffloat(f.Amount), f.Quantity, ffloat(f.Price))
	}
	return xxh3.Hash(b.Bytes())
}

func fdate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("20060102")
}

func ffloat(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *v)
}
