package extract

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"dwh/internal/schema"
	"dwh/pkg/records"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestReadTableMapsHeaders(t *testing.T) {
	contract := schema.Contract{
		Name:      "crm_cust_info",
		HeaderMap: map[string]string{"customer_id": "cst_id"},
	}
	path := writeFile(t, "cust.csv", "customer_id,cst_key\n11000,AW00011000\n11001,AW00011001\n")

	rows, err := ReadTable(path, contract)
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	want := []records.Record{
		{"cst_id": "11000", "cst_key": "AW00011000"},
		{"cst_id": "11001", "cst_key": "AW00011001"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %v, want %v", rows, want)
	}
}

func TestReadTableStripsBOM(t *testing.T) {
	path := writeFile(t, "loc.csv", "\ufeffcid, cntry \nAW-00011000,DE\n")

	rows, err := ReadTable(path, schema.Contract{Name: "erp_loc_a101"})
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if got := rows[0]["cid"]; got != "AW-00011000" {
		t.Fatalf("cid = %v, want AW-00011000 (keys: %v)", got, rows[0])
	}
	if got := rows[0]["cntry"]; got != "DE" {
		t.Fatalf("cntry = %v, want DE", got)
	}
}

func TestReadTableRaggedRows(t *testing.T) {
	// Short rows leave columns absent, long rows drop the extras.
	body := "prd_id,prd_key,prd_cost\n210,FR-R92B-58\n211,FR-R92R-58,1263.46,surplus\n"
	path := writeFile(t, "prd.csv", body)

	rows, err := ReadTable(path, schema.Contract{Name: "crm_prd_info"})
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if _, ok := rows[0]["prd_cost"]; ok {
		t.Fatalf("short row gained prd_cost: %v", rows[0])
	}
	if got := rows[1]["prd_cost"]; got != "1263.46" {
		t.Fatalf("prd_cost = %v, want 1263.46", got)
	}
	if len(rows[1]) != 3 {
		t.Fatalf("long row kept extra cell: %v", rows[1])
	}
}

func TestReadTableEmptyFile(t *testing.T) {
	path := writeFile(t, "empty.csv", "")
	rows, err := ReadTable(path, schema.Contract{Name: "erp_px_cat_g1v2"})
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if rows != nil {
		t.Fatalf("rows = %v, want nil", rows)
	}
}

func TestReadTableMissingFile(t *testing.T) {
	_, err := ReadTable(filepath.Join(t.TempDir(), "nope.csv"), schema.Contract{Name: "crm_sales_details"})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "crm_sales_details") {
		t.Fatalf("error %q does not name the table", err)
	}
}
