package derive

import (
	"testing"
	"time"

	"dwh/internal/schema"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func version(id int, rawKey string, start time.Time) schema.Product {
	return schema.Product{ID: id, RawKey: rawKey, Name: "x", Start: start}
}

func TestProductsLifecycleEndDating(t *testing.T) {
	d1, d2, d3 := day(2011, 7, 1), day(2012, 7, 1), day(2013, 7, 1)
	in := []schema.Product{
		// Deliberately out of start order.
		version(2, "CO-RF-FR-R92B-58", d2),
		version(1, "CO-RF-FR-R92B-58", d1),
		version(3, "CO-RF-FR-R92B-58", d3),
	}
	out, st := Products(in)
	if st.Out != 3 || st.Failed != 0 {
		t.Fatalf("stats = %+v", st)
	}
	wantEnds := []*time.Time{ptr(d2.AddDate(0, 0, -1)), ptr(d3.AddDate(0, 0, -1)), nil}
	for i, want := range wantEnds {
		got := out[i].End
		switch {
		case want == nil && got != nil:
			t.Fatalf("version %d: end = %v, want open", i, got)
		case want != nil && (got == nil || !got.Equal(*want)):
			t.Fatalf("version %d: end = %v, want %v", i, got, want)
		}
	}
}

func TestProductsSingleVersionStaysOpen(t *testing.T) {
	out, _ := Products([]schema.Product{version(1, "CO-RF-FR-R92B-58", day(2012, 1, 1))})
	if out[0].End != nil {
		t.Fatalf("single version end = %v, want open", out[0].End)
	}
}

func TestProductsKeyDecomposition(t *testing.T) {
	out, st := Products([]schema.Product{version(1, "AC-HE-HL-U509-R", day(2012, 1, 1))})
	if st.Failed != 0 {
		t.Fatalf("stats = %+v", st)
	}
	if out[0].CategoryID != "AC_HE" {
		t.Fatalf("category id = %q", out[0].CategoryID)
	}
	if out[0].Key != "HL-U509-R" {
		t.Fatalf("key = %q", out[0].Key)
	}
}

func TestProductsMalformedKeyFailsRow(t *testing.T) {
	in := []schema.Product{
		version(1, "BAD", day(2012, 1, 1)),
		version(2, "CO-RF-FR-R92B-58", day(2012, 1, 1)),
	}
	out, st := Products(in)
	if len(out) != 1 || out[0].ID != 2 {
		t.Fatalf("got %+v, want only id 2", out)
	}
	if st.Failed != 1 || st.Out != 1 {
		t.Fatalf("stats = %+v", st)
	}
}

func ptr(t time.Time) *time.Time { return &t }
