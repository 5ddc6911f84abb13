// Package cleanse implements the per-table cleansing stage: raw records in,
// one validated, typed row per natural key out.
//
// Each table's cleanse is independent of the others and consists of the same
// three steps:
//
//  1. structural check: every required column of the table contract must be
//     present, otherwise the whole table fails (StageFailure at the caller);
//  2. row repair: trimming, code normalization via the normalize package,
//     and typed projection; bad values repair to sentinels, never abort;
//  3. de-duplication: for rows sharing a natural key, the one with the most
//     recent effective timestamp wins; ties keep the first-seen row, so the
//     result is deterministic for a stable input ordering.
//
// Rows with a blank natural key are dropped entirely and counted. No step
// looks across tables or aggregates across rows beyond the dedup itself.
package cleanse

import (
	"fmt"
	"time"

	"dwh/pkg/records"
)

// Stats counts what happened to a table's rows during cleansing.
type Stats struct {
	In       int // raw rows received
	Out      int // cleansed rows produced
	Dropped  int // blank-key rows plus dedup losers
	Repaired int // rows with at least one value repaired to a sentinel/default
}

// MissingColumnError reports a structural input problem: a required column
// of the table contract is absent from the extract.
type MissingColumnError struct {
	Table  string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("table %s: required column %q missing from input", e.Table, e.Column)
}

// requireColumns verifies that all required contract columns exist in the
// first record. Extract rows share one header set, so checking one row is
// checking them all. Empty input passes vacuously.
func requireColumns(table string, required []string, in []records.Record) error {
	if len(in) == 0 {
		return nil
	}
	for _, col := range required {
		if !in[0].Has(col) {
			return &MissingColumnError{Table: table, Column: col}
		}
	}
	return nil
}

// latestByKey collapses rows sharing a natural key to the row with the
// greatest effective timestamp; ties keep the earliest occurrence. The
// output preserves the order in which keys first appeared. Rows whose
// timestamps are all equal (e.g. tables without one, using the zero time)
// therefore degrade to keep-first.
func latestByKey[T any](in []T, key func(T) string, ts func(T) time.Time) []T {
	type slot struct {
		row   T
		when  time.Time
		first int // position of the key's first appearance
	}
	winners := make(map[string]slot, len(in))
	order := make([]string, 0, len(in))
	for i, row := range in {
		k := key(row)
		when := ts(row)
		prev, seen := winners[k]
		if !seen {
			winners[k] = slot{row: row, when: when, first: i}
			order = append(order, k)
			continue
		}
		if when.After(prev.when) {
			prev.row = row
			prev.when = when
			winners[k] = prev
		}
	}
	out := make([]T, 0, len(order))
	for _, k := range order {
		out = append(out, winners[k].row)
	}
	return out
}
