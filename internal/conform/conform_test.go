package conform

import (
	"reflect"
	"testing"
	"time"

	"dwh/internal/schema"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func crmCustomer(id int, key, gender string, created time.Time) schema.Customer {
	return schema.Customer{
		ID: id, Key: key, FirstName: "A", LastName: "B",
		MaritalStatus: "Single", Gender: gender, Created: created,
	}
}

func TestCustomersGenderPrecedence(t *testing.T) {
	crm := []schema.Customer{
		crmCustomer(1, "AW1", "Male", day(2020, 1, 1)),
		crmCustomer(2, "AW2", "n/a", day(2020, 1, 2)),
		crmCustomer(3, "AW3", "n/a", day(2020, 1, 3)),
	}
	demo := []schema.Demographic{
		{Key: "AW1", Gender: "Female"}, // CRM wins
		{Key: "AW2", Gender: "Female"}, // fallback applies
	}
	out := Customers(crm, demo, nil)
	got := map[int]string{}
	for _, c := range out {
		got[c.ID] = c.Gender
	}
	want := map[int]string{1: "Male", 2: "Female", 3: "n/a"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("genders = %v, want %v", got, want)
	}
}

func TestCustomersOuterJoinPreservesPrimary(t *testing.T) {
	crm := []schema.Customer{crmCustomer(1, "AW1", "Male", day(2020, 1, 1))}
	out := Customers(crm, nil, nil)
	if len(out) != 1 {
		t.Fatalf("got %d rows, want 1", len(out))
	}
	if out[0].Country != "n/a" {
		t.Fatalf("country = %q, want n/a", out[0].Country)
	}
	if out[0].Birthdate != nil {
		t.Fatalf("birthdate = %v, want nil", out[0].Birthdate)
	}
}

func TestCustomersSurrogateKeyOrdering(t *testing.T) {
	crm := []schema.Customer{
		crmCustomer(3, "AW3", "Male", day(2021, 5, 1)),
		crmCustomer(1, "AW1", "Male", day(2019, 1, 1)),
		// Same create date as AW3; natural key breaks the tie.
		crmCustomer(2, "AW2", "Male", day(2021, 5, 1)),
	}
	out := Customers(crm, nil, nil)
	wantOrder := []int{1, 2, 3} // by (created, key): AW1, AW2, AW3
	for i, id := range wantOrder {
		if out[i].ID != id || out[i].SK != i+1 {
			t.Fatalf("position %d: got id %d sk %d, want id %d sk %d",
				i, out[i].ID, out[i].SK, id, i+1)
		}
	}
}

func TestCustomersSurrogateKeyStability(t *testing.T) {
	crm := []schema.Customer{
		crmCustomer(2, "AW2", "n/a", day(2020, 3, 1)),
		crmCustomer(1, "AW1", "Male", day(2020, 1, 1)),
	}
	demo := []schema.Demographic{{Key: "AW2", Gender: "Female"}}
	loc := []schema.Location{{Key: "AW1", Country: "Germany"}}

	first := Customers(crm, demo, loc)
	second := Customers(crm, demo, loc)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("re-assembly differs:\n%v\n%v", first, second)
	}
}

func product(id int, key, catID string, start time.Time, end *time.Time) schema.Product {
	return schema.Product{
		ID: id, Key: key, CategoryID: catID, Name: "P",
		Line: "Road", Cost: 10, Start: start, End: end,
	}
}

func TestProductsExcludesEndDated(t *testing.T) {
	endAt := day(2012, 6, 30)
	in := []schema.Product{
		product(1, "K1", "CO_RF", day(2011, 7, 1), &endAt),
		product(2, "K1", "CO_RF", day(2012, 7, 1), nil),
	}
	out := Products(in, nil)
	if len(out) != 1 || out[0].ID != 2 {
		t.Fatalf("got %+v, want only the open version", out)
	}
}

func TestProductsCategoryJoin(t *testing.T) {
	in := []schema.Product{
		product(1, "K1", "CO_RF", day(2012, 7, 1), nil),
		product(2, "K2", "ZZ_99", day(2012, 7, 1), nil),
	}
	cats := []schema.Category{
		{ID: "CO_RF", Category: "Components", Subcategory: "Road Frames", Maintenance: "Yes"},
	}
	out := Products(in, cats)
	if out[0].Category != "Components" || out[0].Subcategory != "Road Frames" {
		t.Fatalf("matched row = %+v", out[0])
	}
	if out[1].Category != "n/a" || out[1].Subcategory != "n/a" || out[1].Maintenance != "n/a" {
		t.Fatalf("unmatched row = %+v", out[1])
	}
}

func TestProductsSurrogateKeyOrdering(t *testing.T) {
	in := []schema.Product{
		product(2, "K2", "CO_RF", day(2013, 1, 1), nil),
		product(1, "K1", "CO_RF", day(2012, 1, 1), nil),
		product(3, "K0", "CO_RF", day(2013, 1, 1), nil), // ties with K2, key K0 first
	}
	out := Products(in, nil)
	wantKeys := []string{"K1", "K0", "K2"}
	for i, k := range wantKeys {
		if out[i].Key != k || out[i].SK != i+1 {
			t.Fatalf("position %d: got key %q sk %d, want %q sk %d", i, out[i].Key, out[i].SK, k, i+1)
		}
	}
}

func TestSalesResolvesSurrogates(t *testing.T) {
	customers := []schema.CustomerDim{{SK: 7, ID: 11000, Key: "AW1"}}
	products := []schema.ProductDim{{SK: 3, ID: 210, Key: "FR-R92B-58"}}
	amount := 100.0
	details := []schema.Sale{
		{OrderNumber: "SO1", ProductKey: "FR-R92B-58", CustomerID: 11000, Quantity: 1, Amount: &amount},
		{OrderNumber: "SO2", ProductKey: "MISSING", CustomerID: 99999, Quantity: 2},
	}
	out := Sales(details, customers, products)
	if len(out) != 2 {
		t.Fatalf("got %d fact rows, want 2", len(out))
	}
	if out[0].ProductSK != 3 || out[0].CustomerSK != 7 {
		t.Fatalf("resolved row = %+v", out[0])
	}
	// Unmatched references keep the business keys and carry SK 0.
	if out[1].ProductSK != 0 || out[1].CustomerSK != 0 {
		t.Fatalf("unmatched row = %+v", out[1])
	}
	if out[1].ProductKey != "MISSING" || out[1].CustomerID != 99999 {
		t.Fatalf("unmatched row lost business keys: %+v", out[1])
	}
}

func TestFingerprintDeterministic(t *testing.T) {
	crm := []schema.Customer{crmCustomer(1, "AW1", "Male", day(2020, 1, 1))}
	dims := Customers(crm, nil, nil)
	prods := Products([]schema.Product{product(1, "K1", "CO_RF", day(2012, 1, 1), nil)}, nil)
	facts := Sales([]schema.Sale{{OrderNumber: "SO1", ProductKey: "K1", CustomerID: 1, Quantity: 1}}, dims, prods)

	a := Fingerprint(dims, prods, facts)
	b := Fingerprint(Customers(crm, nil, nil), prods, facts)
	if a != b {
		t.Fatalf("fingerprints differ: %x vs %x", a, b)
	}
	if c := Fingerprint(nil, prods, facts); c == a {
		t.Fatal("fingerprint ignored customer rows")
	}
}
