// Package pipeline sequences the warehouse run: per-table cleansing and
// derivation in parallel, then dimensional assembly once every input a
// dimension depends on has finished.
//
// The per-table stages share no mutable state and run concurrently; the
// assembler waits for all of them. A table whose stage fails structurally
// (StageError) does not stop the others, but every gold output depending on
// it is skipped entirely (BatchError) rather than partially computed. The
// run itself is a pure full recompute: same input snapshot, same result,
// fingerprint and surrogate keys included.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"dwh/internal/cleanse"
	"dwh/internal/conform"
	"dwh/internal/derive"
	"dwh/internal/metrics"
	"dwh/internal/schema"
	"dwh/pkg/records"
)

// Gold output identifiers.
const (
	DimCustomers = "dim_customers"
	DimProducts  = "dim_products"
	FactSales    = "fact_sales"
)

// Inputs holds the raw extracts of all six source tables, fully
// materialized in memory by the caller.
type Inputs struct {
	Customers    []records.Record // crm_cust_info
	Products     []records.Record // crm_prd_info
	Sales        []records.Record // crm_sales_details
	Demographics []records.Record // erp_cust_az12
	Locations    []records.Record // erp_loc_a101
	Categories   []records.Record // erp_px_cat_g1v2
}

// Result is the complete output of one run. It fully replaces any previous
// run's output; nothing is carried between runs.
type Result struct {
	RunID string

	Customers []schema.CustomerDim
	Products  []schema.ProductDim
	Facts     []schema.SaleFact

	Stages      []StageReport
	Skipped     []BatchError
	Fingerprint uint64
	Duration    time.Duration
}

// tableOutputs carries each table's typed rows between the parallel phase
// and assembly. Each field is written by exactly one goroutine.
type tableOutputs struct {
	customers    []schema.Customer
	products     []schema.Product
	sales        []schema.Sale
	demographics []schema.Demographic
	locations    []schema.Location
	categories   []schema.Category
}

// Run executes the full pipeline over one input snapshot. Row-level
// problems are repaired or counted per the cleansing/derivation rules;
// table-level failures surface in the stage reports and skip dependent
// outputs. The only error Run itself returns is context cancellation.
func Run(ctx context.Context, job string, in Inputs) (*Result, error) {
	start := time.Now()
	res := &Result{RunID: uuid.NewString()}

	var (
		out     tableOutputs
		reports = &reportSet{}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t0 := time.Now()
		rows, st, err := cleanse.Customers(in.Customers)
		out.customers = rows
		return reports.record(gctx, job, schema.TableCRMCustomers, StageCleanse, cleanseStats(st), time.Since(t0), err)
	})
	g.Go(func() error {
		t0 := time.Now()
		rows, st, err := cleanse.Products(in.Products)
		if rerr := reports.record(gctx, job, schema.TableCRMProducts, StageCleanse, cleanseStats(st), time.Since(t0), err); rerr != nil || err != nil {
			return rerr
		}
		t1 := time.Now()
		rows, dst := derive.Products(rows)
		out.products = rows
		return reports.record(gctx, job, schema.TableCRMProducts, StageDerive, deriveStats(dst), time.Since(t1), nil)
	})
	g.Go(func() error {
		t0 := time.Now()
		rows, st, err := cleanse.Sales(in.Sales)
		if rerr := reports.record(gctx, job, schema.TableCRMSales, StageCleanse, cleanseStats(st), time.Since(t0), err); rerr != nil || err != nil {
			return rerr
		}
		t1 := time.Now()
		rows, dst := derive.Sales(rows)
		out.sales = rows
		return reports.record(gctx, job, schema.TableCRMSales, StageDerive, deriveStats(dst), time.Since(t1), nil)
	})
	g.Go(func() error {
		t0 := time.Now()
		rows, st, err := cleanse.Demographics(in.Demographics)
		out.demographics = rows
		return reports.record(gctx, job, schema.TableERPDemographic, StageCleanse, cleanseStats(st), time.Since(t0), err)
	})
	g.Go(func() error {
		t0 := time.Now()
		rows, st, err := cleanse.Locations(in.Locations)
		out.locations = rows
		return reports.record(gctx, job, schema.TableERPLocation, StageCleanse, cleanseStats(st), time.Since(t0), err)
	})
	g.Go(func() error {
		t0 := time.Now()
		rows, st, err := cleanse.Categories(in.Categories)
		out.categories = rows
		return reports.record(gctx, job, schema.TableERPCategory, StageCleanse, cleanseStats(st), time.Since(t0), err)
	})
	if err := g.Wait(); err != nil {
		// Only context cancellation propagates; table failures are reports.
		return nil, err
	}

	// Assembly: each gold output needs every one of its input tables to
	// have cleansed (and derived) successfully.
	customersOK := reports.ok(schema.TableCRMCustomers, schema.TableERPDemographic, schema.TableERPLocation)
	productsOK := reports.ok(schema.TableCRMProducts, schema.TableERPCategory)
	salesOK := reports.ok(schema.TableCRMSales)

	if customersOK {
		reports.assemble(job, DimCustomers, func() int {
			res.Customers = conform.Customers(out.customers, out.demographics, out.locations)
			return len(res.Customers)
		})
	} else {
		res.Skipped = append(res.Skipped, BatchError{
			Output: DimCustomers,
			Tables: reports.failed(schema.TableCRMCustomers, schema.TableERPDemographic, schema.TableERPLocation),
		})
	}
	if productsOK {
		reports.assemble(job, DimProducts, func() int {
			res.Products = conform.Products(out.products, out.categories)
			return len(res.Products)
		})
	} else {
		res.Skipped = append(res.Skipped, BatchError{
			Output: DimProducts,
			Tables: reports.failed(schema.TableCRMProducts, schema.TableERPCategory),
		})
	}
	// The fact resolves against both dimensions, so it needs every table.
	if salesOK && customersOK && productsOK {
		reports.assemble(job, FactSales, func() int {
			res.Facts = conform.Sales(out.sales, res.Customers, res.Products)
			return len(res.Facts)
		})
	} else {
		res.Skipped = append(res.Skipped, BatchError{
			Output: FactSales,
			Tables: reports.failed(schema.TableCRMSales, schema.TableCRMCustomers,
				schema.TableERPDemographic, schema.TableERPLocation,
				schema.TableCRMProducts, schema.TableERPCategory),
		})
	}

	res.Stages = reports.list()
	res.Fingerprint = conform.Fingerprint(res.Customers, res.Products, res.Facts)
	res.Duration = time.Since(start)
	metrics.RecordStage(job, "all", "run", nil, res.Duration)
	return res, nil
}
