package inventory

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"
)

// exportHeader is the fixed column order of an export. Imports key rows
// by these names, so export output round-trips.
const exportHeader = "id,name,unit,category,brand,stock,status,image"

// ExportCSV writes every product, ordered by id, as CSV text. NULL
// fields serialize as empty strings; a field is quoted only when it
// contains a comma, a double-quote, or a newline, with internal quotes
// doubled. Each row ends in exactly one newline.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+productColumns+" FROM products ORDER BY id")
	if err != nil {
		return &StorageError{Op: "export products", Err: err}
	}
	defer rows.Close()

	buf := bufio.NewWriter(w)
	if _, err := buf.WriteString(exportHeader + "\n"); err != nil {
		return err
	}

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return &StorageError{Op: "scan product", Err: err}
		}

		fields := []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			stringOrEmpty(p.Unit),
			stringOrEmpty(p.Category),
			stringOrEmpty(p.Brand),
			strconv.Itoa(p.Stock),
			p.Status,
			stringOrEmpty(p.Image),
		}
		for i, f := range fields {
			fields[i] = escapeCSVField(f)
		}
		if _, err := buf.WriteString(strings.Join(fields, ",") + "\n"); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return &StorageError{Op: "export products", Err: err}
	}

	return buf.Flush()
}

// escapeCSVField wraps a value in double quotes when it contains a
// comma, double-quote, or newline, doubling internal quotes. Other
// values pass through unchanged.
func escapeCSVField(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

// stringOrEmpty renders an optional field, with NULL as "".
func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
