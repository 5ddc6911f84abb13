// Package extract reads the raw source extracts from disk into untyped
// records, one slice per source table.
//
// This is the ingestion boundary of the core: files are assumed to be
// complete CSV snapshots with a header row. The reader maps headers through
// the table contract's HeaderMap, tolerates a UTF-8 BOM, and leaves all
// values as raw strings; typing, trimming, and repair belong to the
// cleansing stage.
package extract

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"dwh/internal/schema"
	"dwh/pkg/records"
)

const utf8BOM = "\ufeff"

// ReadTable reads one source table's CSV extract. Headers are trimmed,
// BOM-stripped, and mapped through the contract's HeaderMap; each data row
// becomes one records.Record keyed by canonical column name. Short rows
// leave trailing columns absent; extra cells are ignored.
func ReadTable(path string, contract schema.Contract) ([]records.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", contract.Name, err)
	}
	defer f.Close()

	// Snapshot files are read exactly once, front to back.
	_ = unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_SEQUENTIAL)

	rows, err := readCSV(f, contract)
	if err != nil {
		return nil, fmt.Errorf("extract %s from %s: %w", contract.Name, path, err)
	}
	return rows, nil
}

func readCSV(r io.Reader, contract schema.Contract) ([]records.Record, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1 // tolerant; contracts are enforced downstream

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := canonicalHeaders(header, contract.HeaderMap)

	var out []records.Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rec := make(records.Record, len(cols))
		for i, col := range cols {
			if col == "" || i >= len(row) {
				continue
			}
			rec[col] = row[i]
		}
		out = append(out, rec)
	}
	return out, nil
}

// canonicalHeaders trims headers, strips a leading BOM, and applies the
// contract's header mapping. Unmapped headers pass through unchanged.
func canonicalHeaders(header []string, headerMap map[string]string) []string {
	cols := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		if m, ok := headerMap[h]; ok {
			h = m
		}
		cols[i] = h
	}
	return cols
}
