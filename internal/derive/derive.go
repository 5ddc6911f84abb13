// Package derive layers table-specific business rules on top of cleansed
// rows: product key decomposition and lifecycle end-dating, and sales
// measure reconciliation.
//
// Derivations are pure functions of the row's own fields, except the
// lifecycle rule, which needs the row's neighbors within the same product
// key and therefore materializes each group before computing anything.
// Rows that cannot resolve a required derived field (a malformed composite
// key) are failed, counted, and excluded, never silently coerced.
package derive

// Stats counts the outcome of a derivation pass over one table.
type Stats struct {
	In       int // cleansed rows received
	Out      int // derived rows produced
	Repaired int // rows with at least one measure or date repaired
	Failed   int // rows dropped because a required derivation failed
}
