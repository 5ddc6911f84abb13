package config

import (
	"fmt"
	"strings"

	"dwh/internal/schema"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be surfaced
	// to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding for a Run.
//
// Path is a dotted path into the config (e.g. "storage.kind",
// "extracts.crm_cust_info"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a
// single error in contexts that expect one.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// Validate performs static validation of a Run. It does not mutate the
// config; callers decide whether warnings are fatal.
func Validate(r Run) []Issue {
	var issues []Issue

	if strings.TrimSpace(r.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it is used for metrics labeling and identifying runs",
		})
	}

	for table := range schema.Contracts {
		if strings.TrimSpace(r.Extracts[table]) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "extracts." + table,
				Message:  "extract path for this source table is required",
			})
		}
	}
	for table := range r.Extracts {
		if _, known := schema.Contracts[table]; !known {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     "extracts." + table,
				Message:  "unknown source table; entry will be ignored",
			})
		}
	}

	switch r.Storage.Kind {
	case "", "none":
		// Dry pipelines are fine; the caller just gets the in-memory result.
	case "postgres":
		if strings.TrimSpace(r.Storage.Postgres.DSN) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "storage.postgres.dsn",
				Message:  "dsn is required for the postgres backend",
			})
		}
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.kind",
			Message:  fmt.Sprintf("unknown storage kind %q (want postgres or none)", r.Storage.Kind),
		})
	}

	switch r.Metrics.Backend {
	case "", "none":
	case "pushgateway":
		if strings.TrimSpace(r.Metrics.GatewayURL) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "metrics.gateway_url",
				Message:  "gateway_url is required for the pushgateway backend",
			})
		}
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "metrics.backend",
			Message:  fmt.Sprintf("unknown metrics backend %q (want pushgateway or none)", r.Metrics.Backend),
		})
	}

	return issues
}
