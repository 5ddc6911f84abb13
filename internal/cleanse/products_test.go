package cleanse

import (
	"testing"

	"dwh/pkg/records"
)

func prdRecord(id any, key, cost, line, start string) records.Record {
	return records.Record{
		"prd_id":       id,
		"prd_key":      key,
		"prd_nm":       " HL Road Frame ",
		"prd_cost":     cost,
		"prd_line":     line,
		"prd_start_dt": start,
	}
}

func TestProductsCleanse(t *testing.T) {
	in := []records.Record{
		prdRecord(210, "CO-RF-FR-R92B-58", "1059.31", "R", "2012-07-01"),
		prdRecord(211, "CO-RF-FR-R92R-58", "", "X", "2013-07-01"),
		prdRecord(nil, "CO-RF-FR-R92R-60", "10", "M", "2013-07-01"),
	}
	out, st, err := Products(in)
	if err != nil {
		t.Fatalf("Products: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d rows, want 2", len(out))
	}
	if out[0].Name != "HL Road Frame" {
		t.Fatalf("name not trimmed: %q", out[0].Name)
	}
	if out[0].Line != "Road" || out[1].Line != "n/a" {
		t.Fatalf("lines = %q, %q", out[0].Line, out[1].Line)
	}
	if out[1].Cost != 0 {
		t.Fatalf("missing cost should default to 0, got %v", out[1].Cost)
	}
	if st.Dropped != 1 {
		t.Fatalf("dropped = %d", st.Dropped)
	}
}

func TestProductsNegativeCostRepairsToZero(t *testing.T) {
	out, st, err := Products([]records.Record{prdRecord(1, "CO-RF-X1", "-5", "M", "2012-01-01")})
	if err != nil {
		t.Fatalf("Products: %v", err)
	}
	if out[0].Cost != 0 {
		t.Fatalf("cost = %v, want 0", out[0].Cost)
	}
	if st.Repaired != 1 {
		t.Fatalf("repaired = %d", st.Repaired)
	}
}

func TestProductsKeepDistinctVersions(t *testing.T) {
	in := []records.Record{
		prdRecord(1, "CO-RF-X1", "10", "M", "2012-01-01"),
		prdRecord(1, "CO-RF-X1", "12", "M", "2013-01-01"),
		prdRecord(1, "CO-RF-X1", "12", "M", "2013-01-01"), // exact duplicate version
	}
	out, st, err := Products(in)
	if err != nil {
		t.Fatalf("Products: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d rows, want the two distinct versions", len(out))
	}
	if st.Dropped != 1 {
		t.Fatalf("dropped = %d", st.Dropped)
	}
}
