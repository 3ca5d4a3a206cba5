package inventory

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// defaultAttribution is recorded on audit entries when the caller does
// not supply a "changed by" string.
const defaultAttribution = "admin"

// changeDateLayout renders ISO-8601 timestamps with millisecond
// precision. Stored as TEXT, so lexicographic order is chronological.
const changeDateLayout = "2006-01-02T15:04:05.000Z07:00"

// Service implements the inventory operations over a SQLite store.
type Service struct {
	db *sql.DB
}

// NewService creates a Service on top of an opened database.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// List returns one page of products matching the filters in p, plus the
// pagination summary. The count query shares the filter predicates with
// the page query so the totals stay consistent.
func (s *Service) List(ctx context.Context, p ListParams) (*ListResult, error) {
	q := buildListQuery(p)

	var total int
	if err := s.db.QueryRowContext(ctx, q.countSQL(), q.args...).Scan(&total); err != nil {
		return nil, &StorageError{Op: "count products", Err: err}
	}

	rows, err := s.db.QueryContext(ctx, q.selectSQL(), q.selectArgs()...)
	if err != nil {
		return nil, &StorageError{Op: "list products", Err: err}
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, &StorageError{Op: "scan product", Err: err}
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "list products", Err: err}
	}

	return &ListResult{
		Products:   products,
		Pagination: computePagination(q.page, q.limit, total),
	}, nil
}

// Search returns all products whose name contains the given substring
// (case-insensitive), ordered by name.
func (s *Service) Search(ctx context.Context, name string) ([]Product, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE LOWER(name) LIKE ? ORDER BY name",
		"%"+strings.ToLower(name)+"%")
	if err != nil {
		return nil, &StorageError{Op: "search products", Err: err}
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, &StorageError{Op: "scan product", Err: err}
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "search products", Err: err}
	}

	return products, nil
}

// Get returns the product with the given id.
func (s *Service) Get(ctx context.Context, id int64) (*Product, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = ?", id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{ID: id}
	}
	if err != nil {
		return nil, &StorageError{Op: "get product", Err: err}
	}
	return &p, nil
}

// Create inserts a new product. The name must be unique under
// case-insensitive comparison; status is derived from the stock sign
// when not supplied.
func (s *Service) Create(ctx context.Context, in ProductInput) (*Product, error) {
	if verr := in.validate(); verr != nil {
		return nil, verr
	}

	if _, exists, err := s.findIDByName(ctx, in.Name, 0); err != nil {
		return nil, &StorageError{Op: "check product name", Err: err}
	} else if exists {
		return nil, &ConflictError{Name: in.Name}
	}

	stock := *in.Stock
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO products (name, unit, category, brand, stock, status, image) VALUES (?, ?, ?, ?, ?, ?, ?)",
		in.Name, optString(in.Unit), optString(in.Category), optString(in.Brand),
		stock, statusOr(in.Status, stock), optString(in.Image))
	if err != nil {
		return nil, &StorageError{Op: "insert product", Err: err}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, &StorageError{Op: "insert product", Err: err}
	}

	return s.Get(ctx, id)
}

// Update replaces the product with the given id. When the submitted
// stock differs from the stored stock, a history entry recording the
// transition is written first; if that write fails the product row is
// left untouched. changedBy attributes the audit entry and defaults to
// "admin" when empty.
func (s *Service) Update(ctx context.Context, id int64, in ProductInput, changedBy string) (*Product, error) {
	if verr := in.validate(); verr != nil {
		return nil, verr
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, exists, err := s.findIDByName(ctx, in.Name, id); err != nil {
		return nil, &StorageError{Op: "check product name", Err: err}
	} else if exists {
		return nil, &ConflictError{Name: in.Name}
	}

	stock := *in.Stock
	if existing.Stock != stock {
		if changedBy == "" {
			changedBy = defaultAttribution
		}
		_, err := s.db.ExecContext(ctx,
			"INSERT INTO inventory_history (product_id, old_quantity, new_quantity, change_date, user_info) VALUES (?, ?, ?, ?, ?)",
			id, existing.Stock, stock, time.Now().UTC().Format(changeDateLayout), changedBy)
		if err != nil {
			return nil, &StorageError{Op: "record stock change", Err: err}
		}
	}

	_, err = s.db.ExecContext(ctx,
		"UPDATE products SET name = ?, unit = ?, category = ?, brand = ?, stock = ?, status = ?, image = ? WHERE id = ?",
		in.Name, optString(in.Unit), optString(in.Category), optString(in.Brand),
		stock, statusOr(in.Status, stock), optString(in.Image), id)
	if err != nil {
		return nil, &StorageError{Op: "update product", Err: err}
	}

	return s.Get(ctx, id)
}

// Delete removes a product and, first, all of its history entries.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM inventory_history WHERE product_id = ?", id); err != nil {
		return &StorageError{Op: "delete product history", Err: err}
	}

	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM products WHERE id = ?", id); err != nil {
		return &StorageError{Op: "delete product", Err: err}
	}

	return nil
}

// History returns the stock-change entries for a product, most recent
// first. An id with no entries yields an empty slice.
func (s *Service) History(ctx context.Context, id int64) ([]HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, product_id, old_quantity, new_quantity, change_date, user_info FROM inventory_history WHERE product_id = ? ORDER BY change_date DESC, id DESC",
		id)
	if err != nil {
		return nil, &StorageError{Op: "get history", Err: err}
	}
	defer rows.Close()

	entries := []HistoryEntry{}
	for rows.Next() {
		var e HistoryEntry
		var userInfo sql.NullString
		if err := rows.Scan(&e.ID, &e.ProductID, &e.OldQuantity, &e.NewQuantity, &e.ChangeDate, &userInfo); err != nil {
			return nil, &StorageError{Op: "scan history entry", Err: err}
		}
		if userInfo.Valid {
			e.UserInfo = userInfo.String
		} else {
			e.UserInfo = defaultAttribution
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "get history", Err: err}
	}

	return entries, nil
}

// findIDByName looks up a product by case-insensitive name. excludeID
// ignores one id, for rename conflict checks against every product but
// the one being updated.
func (s *Service) findIDByName(ctx context.Context, name string, excludeID int64) (int64, bool, error) {
	query := "SELECT id FROM products WHERE LOWER(name) = LOWER(?)"
	args := []any{name}
	if excludeID > 0 {
		query += " AND id != ?"
		args = append(args, excludeID)
	}

	var id int64
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

// validate checks the fields the caller must supply. It mutates nothing.
func (in ProductInput) validate() *ValidationError {
	var fields []FieldError
	if strings.TrimSpace(in.Name) == "" {
		fields = append(fields, FieldError{Field: "name", Message: "Name is required"})
	}
	if in.Stock == nil {
		fields = append(fields, FieldError{Field: "stock", Message: "Stock must be a non-negative integer"})
	} else if *in.Stock < 0 {
		fields = append(fields, FieldError{Field: "stock", Message: "Stock must be a non-negative integer"})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// statusOr returns the supplied status, or the one derived from stock
// when the caller left it out.
func statusOr(status *string, stock int) string {
	if status != nil && *status != "" {
		return *status
	}
	return DeriveStatus(stock)
}

// optString converts an optional string to a driver argument, mapping
// nil and empty to NULL.
func optString(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanProduct reads one row in productColumns order.
func scanProduct(row rowScanner) (Product, error) {
	var p Product
	var unit, category, brand, status, image sql.NullString
	err := row.Scan(&p.ID, &p.Name, &unit, &category, &brand, &p.Stock, &status, &image)
	if err != nil {
		return Product{}, err
	}
	p.Unit = fromNull(unit)
	p.Category = fromNull(category)
	p.Brand = fromNull(brand)
	p.Image = fromNull(image)
	if status.Valid {
		p.Status = status.String
	}
	return p, nil
}

// fromNull converts a nullable column to an optional string.
func fromNull(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
