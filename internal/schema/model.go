package schema

import "time"

// DateLayout is the layout of calendar dates in the CRM extracts.
const DateLayout = "2006-01-02"

// Customer is a cleansed CRM customer row, one per customer id.
type Customer struct {
	ID            int       `db:"cst_id"`
	Key           string    `db:"cst_key"`
	FirstName     string    `db:"cst_firstname"`
	LastName      string    `db:"cst_lastname"`
	MaritalStatus string    `db:"cst_marital_status"`
	Gender        string    `db:"cst_gndr"`
	Created       time.Time `db:"cst_create_date"`
}

// Product is a cleansed (and, after derivation, rule-augmented) CRM product
// row. CategoryID and Key are filled by key decomposition; End is filled by
// lifecycle end-dating and stays nil for the currently valid version.
type Product struct {
	ID         int        `db:"prd_id"`
	RawKey     string     `db:"prd_key_raw"`
	CategoryID string     `db:"cat_id"`
	Key        string     `db:"prd_key"`
	Name       string     `db:"prd_nm"`
	Cost       float64    `db:"prd_cost"`
	Line       string     `db:"prd_line"`
	Start      time.Time  `db:"prd_start_dt"`
	End        *time.Time `db:"prd_end_dt"`
}

// Sale is a cleansed (and, after derivation, reconciled) sales-detail row.
// Dates decode from 8-digit integers; nil means the source carried no
// usable date. Amount and Price are nil when no consistent value exists.
type Sale struct {
	OrderNumber string     `db:"sls_ord_num"`
	ProductKey  string     `db:"sls_prd_key"`
	CustomerID  int        `db:"sls_cust_id"`
	OrderDate   *time.Time `db:"sls_order_dt"`
	ShipDate    *time.Time `db:"sls_ship_dt"`
	DueDate     *time.Time `db:"sls_due_dt"`
	Amount      *float64   `db:"sls_sales"`
	Quantity    int        `db:"sls_quantity"`
	Price       *float64   `db:"sls_price"`
}

// Demographic is a cleansed ERP customer-demographics row.
type Demographic struct {
	Key       string     `db:"cid"`
	Birthdate *time.Time `db:"bdate"`
	Gender    string     `db:"gen"`
}

// Location is a cleansed ERP customer-location row.
type Location struct {
	Key     string `db:"cid"`
	Country string `db:"cntry"`
}

// Category is a cleansed ERP product-category row.
type Category struct {
	ID          string `db:"id"`
	Category    string `db:"cat"`
	Subcategory string `db:"subcat"`
	Maintenance string `db:"maintenance"`
}

// CustomerDim is a conformed customer dimension row. SK is the surrogate
// key, dense from 1, ordered by (Created, Key).
type CustomerDim struct {
	SK            int        `db:"customer_sk"`
	ID            int        `db:"customer_id"`
	Key           string     `db:"customer_key"`
	FirstName     string     `db:"first_name"`
	LastName      string     `db:"last_name"`
	Country       string     `db:"country"`
	MaritalStatus string     `db:"marital_status"`
	Gender        string     `db:"gender"`
	Birthdate     *time.Time `db:"birthdate"`
	Created       time.Time  `db:"create_date"`
}

// ProductDim is a conformed product dimension row. Only currently valid
// product versions (open end date) appear. SK is ordered by (Start, Key).
type ProductDim struct {
	SK          int       `db:"product_sk"`
	ID          int       `db:"product_id"`
	Key         string    `db:"product_key"`
	Name        string    `db:"product_name"`
	CategoryID  string    `db:"category_id"`
	Category    string    `db:"category"`
	Subcategory string    `db:"subcategory"`
	Maintenance string    `db:"maintenance"`
	Line        string    `db:"product_line"`
	Cost        float64   `db:"cost"`
	Start       time.Time `db:"start_date"`
}

// SaleFact is one fact row per transactional sales line. Business keys are
// kept alongside the resolved surrogate keys; an unresolved reference
// carries surrogate key 0 (unknown member) rather than dropping the row.
type SaleFact struct {
	OrderNumber string     `db:"order_number"`
	ProductSK   int        `db:"product_sk"`
	CustomerSK  int        `db:"customer_sk"`
	ProductKey  string     `db:"product_key"`
	CustomerID  int        `db:"customer_id"`
	OrderDate   *time.Time `db:"order_date"`
	ShipDate    *time.Time `db:"ship_date"`
	DueDate     *time.Time `db:"due_date"`
	Amount      *float64   `db:"sales_amount"`
	Quantity    int        `db:"quantity"`
	Price       *float64   `db:"price"`
}
