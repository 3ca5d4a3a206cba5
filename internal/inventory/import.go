package inventory

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"
)

// rowOutcome classifies one CSV data row during reconciliation.
type rowOutcome int

const (
	rowAdded rowOutcome = iota
	rowSkippedMalformed
	rowDuplicate
)

// headerIndex maps lowercased, trimmed column names to their position
// in a CSV row. Columns the importer does not know are ignored; columns
// missing from the file read as empty.
type headerIndex map[string]int

// makeHeaderIndex builds a headerIndex from the header row. Call once
// per file and reuse for every row.
func makeHeaderIndex(header []string) headerIndex {
	idx := make(headerIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if key != "" {
			idx[key] = i
		}
	}
	return idx
}

// field returns the named column's value in row, or "" when the column
// is absent or the row is short.
func (h headerIndex) field(row []string, name string) string {
	pos, ok := h[name]
	if !ok || pos >= len(row) {
		return ""
	}
	return row[pos]
}

// Import consumes a CSV stream with a header row and reconciles each
// data row against the store: rows with an empty name are skipped as
// malformed, rows whose name already exists (case-insensitive,
// including rows committed earlier in this same import) are skipped as
// duplicates, and the rest are inserted. Import never overwrites an
// existing product.
//
// Each accepted row commits individually; there is no batch
// transaction. A stream read failure or storage failure aborts the
// import and rows inserted before the failure remain committed.
func (s *Service) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	result := &ImportResult{Duplicates: []Duplicate{}}

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		// An empty file imports nothing.
		return result, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "read csv header", Err: err}
	}
	idx := makeHeaderIndex(header)

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &StorageError{Op: "read csv row", Err: err}
		}

		outcome, dup, err := s.reconcileRow(ctx, idx, row)
		if err != nil {
			return nil, err
		}

		switch outcome {
		case rowAdded:
			result.Added++
		case rowSkippedMalformed:
			result.Skipped++
		case rowDuplicate:
			result.Skipped++
			result.Duplicates = append(result.Duplicates, dup)
		}
	}

	return result, nil
}

// reconcileRow decides what to do with a single data row: skip it as
// malformed, report it as a duplicate, or insert it.
func (s *Service) reconcileRow(ctx context.Context, idx headerIndex, row []string) (rowOutcome, Duplicate, error) {
	name := strings.TrimSpace(idx.field(row, "name"))
	if name == "" {
		return rowSkippedMalformed, Duplicate{}, nil
	}

	stock := parseStock(idx.field(row, "stock"))

	id, exists, err := s.findIDByName(ctx, name, 0)
	if err != nil {
		return 0, Duplicate{}, &StorageError{Op: "check csv row", Err: err}
	}
	if exists {
		return rowDuplicate, Duplicate{Name: name, ExistingID: id}, nil
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO products (name, unit, category, brand, stock, status, image) VALUES (?, ?, ?, ?, ?, ?, ?)",
		name,
		trimmedOrNil(idx.field(row, "unit")),
		trimmedOrNil(idx.field(row, "category")),
		trimmedOrNil(idx.field(row, "brand")),
		stock,
		DeriveStatus(stock),
		trimmedOrNil(idx.field(row, "image")))
	if err != nil {
		return 0, Duplicate{}, &StorageError{Op: "insert csv row", Err: err}
	}

	return rowAdded, Duplicate{}, nil
}

// parseStock parses a stock cell; non-numeric or missing values default
// to 0 rather than failing the row.
func parseStock(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// trimmedOrNil trims an optional cell and maps empty to NULL.
func trimmedOrNil(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}
