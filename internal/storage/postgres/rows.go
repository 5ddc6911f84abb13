package postgres

import "dwh/internal/schema"

// Column orders below match the COPY row builders; keep them in sync with
// the CREATE TABLE statements in ddl.go.

var customerColumns = []string{
	"customer_sk", "customer_id", "customer_key", "first_name", "last_name",
	"country", "marital_status", "gender", "birthdate", "create_date",
}

var productColumns = []string{
	"product_sk", "product_id", "product_key", "product_name", "category_id",
	"category", "subcategory", "maintenance", "product_line", "cost", "start_date",
}

var factColumns = []string{
	"order_number", "product_sk", "customer_sk", "product_key", "customer_id",
	"order_date", "ship_date", "due_date", "sales_amount", "quantity", "price",
}

func customerRows(dims []schema.CustomerDim) [][]any {
	rows := make([][]any, 0, len(dims))
	for _, d := range dims {
		rows = append(rows, []any{
			d.SK, d.ID, d.Key, d.FirstName, d.LastName,
			d.Country, d.MaritalStatus, d.Gender, d.Birthdate, d.Created,
		})
	}
	return rows
}

func productRows(dims []schema.ProductDim) [][]any {
	rows := make([][]any, 0, len(dims))
	for _, d := range dims {
		rows = append(rows, []any{
			d.SK, d.ID, d.Key, d.Name, d.CategoryID,
			d.Category, d.Subcategory, d.Maintenance, d.Line, d.Cost, d.Start,
		})
	}
	return rows
}

func factRows(facts []schema.SaleFact) [][]any {
	rows := make([][]any, 0, len(facts))
	for _, f := range facts {
		rows = append(rows, []any{
			f.OrderNumber, f.ProductSK, f.CustomerSK, f.ProductKey, f.CustomerID,
			f.OrderDate, f.ShipDate, f.DueDate, f.Amount, f.Quantity, f.Price,
		})
	}
	return rows
}
