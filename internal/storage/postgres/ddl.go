package postgres

import (
	"fmt"
	"strings"
)

type columnDef struct {
	Name     string
	SQLType  string
	Nullable bool
}

type tableDef struct {
	Name    string
	Columns []columnDef
}

var presentationTables = []tableDef{
	{
		Name: "dim_customers",
		Columns: []columnDef{
			{Name: "customer_sk", SQLType: "integer"},
			{Name: "customer_id", SQLType: "integer"},
			{Name: "customer_key", SQLType: "text"},
			{Name: "first_name", SQLType: "text"},
			{Name: "last_name", SQLType: "text"},
			{Name: "country", SQLType: "text"},
			{Name: "marital_status", SQLType: "text"},
			{Name: "gender", SQLType: "text"},
			{Name: "birthdate", SQLType: "date", Nullable: true},
			{Name: "create_date", SQLType: "date"},
		},
	},
	{
		Name: "dim_products",
		Columns: []columnDef{
			{Name: "product_sk", SQLType: "integer"},
			{Name: "product_id", SQLType: "integer"},
			{Name: "product_key", SQLType: "text"},
			{Name: "product_name", SQLType: "text"},
			{Name: "category_id", SQLType: "text"},
			{Name: "category", SQLType: "text"},
			{Name: "subcategory", SQLType: "text"},
			{Name: "maintenance", SQLType: "text"},
			{Name: "product_line", SQLType: "text"},
			{Name: "cost", SQLType: "numeric"},
			{Name: "start_date", SQLType: "date"},
		},
	},
	{
		Name: "fact_sales",
		Columns: []columnDef{
			{Name: "order_number", SQLType: "text"},
			{Name: "product_sk", SQLType: "integer"},
			{Name: "customer_sk", SQLType: "integer"},
			{Name: "product_key", SQLType: "text"},
			{Name: "customer_id", SQLType: "integer"},
			{Name: "order_date", SQLType: "date", Nullable: true},
			{Name: "ship_date", SQLType: "date", Nullable: true},
			{Name: "due_date", SQLType: "date", Nullable: true},
			{Name: "sales_amount", SQLType: "numeric", Nullable: true},
			{Name: "quantity", SQLType: "integer"},
			{Name: "price", SQLType: "numeric", Nullable: true},
		},
	},
}

// CreateStatements returns deterministic DDL for the presentation schema:
// a CREATE SCHEMA plus one CREATE TABLE per presentation table, all
// IF NOT EXISTS so repeated loads are safe.
func CreateStatements(schema string) []string {
	stmts := make([]string, 0, len(presentationTables)+1)
	stmts = append(stmts, "CREATE SCHEMA IF NOT EXISTS "+pgIdent(schema))
	for _, t := range presentationTables {
		stmts = append(stmts, buildCreateTableSQL(schema, t))
	}
	return stmts
}

func buildCreateTableSQL(schema string, t tableDef) string {
	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		var sb strings.Builder
		sb.WriteString(pgIdent(c.Name))
		sb.WriteByte(' ')
		sb.WriteString(c.SQLType)
		if !c.Nullable {
			sb.WriteString(" NOT NULL")
		}
		cols = append(cols, sb.String())
	}
	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n  %s\n)",
		pgFQN(schema, t.Name),
		strings.Join(cols, ",\n  "),
	)
}
