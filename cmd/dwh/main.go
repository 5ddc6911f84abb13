package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"dwh/internal/config"
	"dwh/internal/extract"
	"dwh/internal/metrics"
	"dwh/internal/metrics/prompush"
	"dwh/internal/pipeline"
	"dwh/internal/schema"
	"dwh/internal/storage"
	"dwh/internal/storage/postgres"
	"dwh/pkg/records"
)

// main is the entry point for the warehouse binary. It loads the run config,
// optionally initializes a metrics backend, reads the six source extracts,
// runs the pipeline, and loads the gold tables.
func main() {
	var (
		cfgPath           string
		metricsBackendFlg string
		pushGatewayURLFlg string
		validate          bool
		dryRun            bool
	)

	flag.StringVar(&cfgPath, "config", "configs/run.yaml", "run config YAML path")
	flag.StringVar(&metricsBackendFlg, "metrics-backend", "", "metrics backend to use (pushgateway, none; overrides config)")
	flag.StringVar(&pushGatewayURLFlg, "pushgateway-url", "", "Pushgateway base URL (overrides config and env PUSHGATEWAY_URL)")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	flag.BoolVar(&dryRun, "dry-run", false, "run the pipeline but skip warehouse storage")
	verbose := flag.Bool("v", false, "enable verbose logs")

	flag.Parse()

	run, err := config.LoadFile(cfgPath)
	if err != nil {
		fatalf("%v", err)
	}

	issues := config.Validate(run)
	hasError := false
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
		if iss.Severity == config.SeverityError {
			hasError = true
		}
	}
	if hasError {
		log.Printf("Configuration is invalid: %v", cfgPath)
		os.Exit(1)
	}
	if validate {
		log.Printf("Configuration is valid: %v", cfgPath)
		os.Exit(0)
	}

	// Decide metrics backend: flag → config → env.
	backendName := metricsBackendFlg
	if backendName == "" {
		backendName = run.Metrics.Backend
	}
	if backendName == "" {
		backendName = os.Getenv("METRICS_BACKEND")
	}
	switch backendName {
	case "pushgateway":
		gwURL := pushGatewayURLFlg
		if gwURL == "" {
			gwURL = run.Metrics.GatewayURL
		}
		if gwURL == "" {
			gwURL = os.Getenv("PUSHGATEWAY_URL")
		}
		b, err := prompush.NewBackend(run.Job, gwURL)
		if err != nil {
			log.Printf("metrics: failed to init prom push backend: %v; using nop", err)
		} else {
			log.Printf("metrics: url=%v, backend=%v, job=%v", gwURL, backendName, run.Job)
			metrics.SetBackend(b)
			defer func() {
				if err := metrics.Flush(); err != nil {
					log.Printf("metrics: flush error: %v", err)
				}
			}()
		}

	case "", "none":
		if *verbose {
			log.Printf("metrics: disabled (backend=%q)", backendName)
		}

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", backendName)
	}

	ctx := context.Background()
	start := time.Now()

	in, err := loadInputs(run)
	if err != nil {
		log.Fatalf("%v", err)
	}

	res, err := pipeline.Run(ctx, run.Job, in)
	if err != nil {
		log.Fatalf("pipeline: %v", err)
	}

	for _, r := range res.Stages {
		log.Printf("stage %s", r)
	}
	log.Printf("run %s: customers=%d products=%d facts=%d fingerprint=%016x in %s",
		res.RunID, len(res.Customers), len(res.Products), len(res.Facts),
		res.Fingerprint, res.Duration.Round(time.Millisecond))

	if len(res.Skipped) > 0 {
		for _, s := range res.Skipped {
			log.Printf("skipped: %v", &s)
		}
		// The gold tables are replaced wholesale on load, so an incomplete
		// batch is never written.
		log.Fatalf("batch incomplete: %d output(s) skipped; not loading", len(res.Skipped))
	}

	if dryRun || run.Storage.Kind == "" || run.Storage.Kind == "none" {
		if *verbose {
			log.Printf("storage: skipped (dry-run=%v kind=%q)", dryRun, run.Storage.Kind)
		}
		return
	}

	wh, closeWh, err := postgres.NewWarehouse(ctx, postgres.Config{
		DSN:    run.Storage.Postgres.DSN,
		Schema: run.Storage.Postgres.Schema,
	})
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer closeWh()

	var sink storage.Warehouse = wh
	if err := sink.Load(ctx, res); err != nil {
		log.Fatalf("storage: %v", err)
	}

	if *verbose {
		log.Printf("completed in %s", time.Since(start).Truncate(time.Millisecond))
	}
}

// loadInputs reads all six source extracts named by the run config.
func loadInputs(run config.Run) (pipeline.Inputs, error) {
	var in pipeline.Inputs
	for table, dst := range map[string]*[]records.Record{
		schema.TableCRMCustomers:   &in.Customers,
		schema.TableCRMProducts:    &in.Products,
		schema.TableCRMSales:       &in.Sales,
		schema.TableERPDemographic: &in.Demographics,
		schema.TableERPLocation:    &in.Locations,
		schema.TableERPCategory:    &in.Categories,
	} {
		rows, err := extract.ReadTable(run.Extracts[table], schema.Contracts[table])
		if err != nil {
			return pipeline.Inputs{}, err
		}
		*dst = rows
	}
	return in, nil
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
