package schema

// Source table identifiers. The pipeline ingests six extracts: three from
// the CRM and three from the ERP. Column names are the source systems' own.
const (
	TableCRMCustomers   = "crm_cust_info"
	TableCRMProducts    = "crm_prd_info"
	TableCRMSales       = "crm_sales_details"
	TableERPDemographic = "erp_cust_az12"
	TableERPLocation    = "erp_loc_a101"
	TableERPCategory    = "erp_px_cat_g1v2"
)

// Contracts enumerates the fixed schemas of all source tables, keyed by
// table identifier.
var Contracts = map[string]Contract{
	TableCRMCustomers: {
		Name: TableCRMCustomers,
		Fields: []Field{
			{Name: "cst_id", Type: "int", Required: true},
			{Name: "cst_key", Type: "text", Required: true},
			{Name: "cst_firstname", Type: "text"},
			{Name: "cst_lastname", Type: "text"},
			{Name: "cst_marital_status", Type: "text"},
			{Name: "cst_gndr", Type: "text"},
			{Name: "cst_create_date", Type: "date", Required: true},
		},
	},
	TableCRMProducts: {
		Name: TableCRMProducts,
		Fields: []Field{
			{Name: "prd_id", Type: "int", Required: true},
			{Name: "prd_key", Type: "text", Required: true},
			{Name: "prd_nm", Type: "text"},
			{Name: "prd_cost", Type: "real"},
			{Name: "prd_line", Type: "text"},
			{Name: "prd_start_dt", Type: "date", Required: true},
		},
	},
	TableCRMSales: {
		Name: TableCRMSales,
		Fields: []Field{
			{Name: "sls_ord_num", Type: "text", Required: true},
			{Name: "sls_prd_key", Type: "text", Required: true},
			{Name: "sls_cust_id", Type: "int", Required: true},
			{Name: "sls_order_dt", Type: "int"},
			{Name: "sls_ship_dt", Type: "int"},
			{Name: "sls_due_dt", Type: "int"},
			{Name: "sls_sales", Type: "real"},
			{Name: "sls_quantity", Type: "int"},
			{Name: "sls_price", Type: "real"},
		},
	},
	TableERPDemographic: {
		Name: TableERPDemographic,
		Fields: []Field{
			{Name: "cid", Type: "text", Required: true},
			{Name: "bdate", Type: "date"},
			{Name: "gen", Type: "text"},
		},
	},
	TableERPLocation: {
		Name: TableERPLocation,
		Fields: []Field{
			{Name: "cid", Type: "text", Required: true},
			{Name: "cntry", Type: "text"},
		},
	},
	TableERPCategory: {
		Name: TableERPCategory,
		Fields: []Field{
			{Name: "id", Type: "text", Required: true},
			{Name: "cat", Type: "text"},
			{Name: "subcat", Type: "text"},
			{Name: "maintenance", Type: "text"},
		},
	},
}
