// Package inventory provides the business logic for the product catalog:
// listing with filters and pagination, CRUD with name uniqueness, the
// stock-change audit trail, and CSV import/export.
// This package has no HTTP dependencies and can be used by any frontend.
package inventory

// Product status labels. Status is derived from the stock sign whenever
// the caller does not supply it explicitly.
const (
	StatusInStock    = "In Stock"
	StatusOutOfStock = "Out of Stock"
)

// DeriveStatus returns the status label implied by a stock level.
func DeriveStatus(stock int) string {
	if stock > 0 {
		return StatusInStock
	}
	return StatusOutOfStock
}

// Product is a single inventory item. Optional fields are nil when the
// stored value is NULL so they serialize as JSON null, matching the wire
// format clients expect.
type Product struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Unit     *string `json:"unit"`
	Category *string `json:"category"`
	Brand    *string `json:"brand"`
	Stock    int     `json:"stock"`
	Status   string  `json:"status"`
	Image    *string `json:"image"`
}

// HistoryEntry is an immutable record of one stock-quantity transition.
// ChangeDate is the ISO-8601 creation timestamp; entries are never
// mutated and are deleted only as a cascade of their product.
type HistoryEntry struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"product_id"`
	OldQuantity int    `json:"old_quantity"`
	NewQuantity int    `json:"new_quantity"`
	ChangeDate  string `json:"change_date"`
	UserInfo    string `json:"user_info"`
}

// ProductInput is the caller-supplied payload for create and update.
// Stock is a pointer so a missing value can be told apart from zero.
type ProductInput struct {
	Name     string  `json:"name"`
	Unit     *string `json:"unit"`
	Category *string `json:"category"`
	Brand    *string `json:"brand"`
	Stock    *int    `json:"stock"`
	Status   *string `json:"status"`
	Image    *string `json:"image"`
}

// ListParams carries the raw query parameters for a product listing.
// Page and Limit stay strings here: non-numeric input collapses to the
// defaults inside the query builder rather than surfacing an error.
type ListParams struct {
	Name      string
	Category  string
	SortBy    string
	SortOrder string
	Page      string
	Limit     string
}

// Pagination describes the window a ListResult covers.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// ListResult is a single page of products plus its pagination summary.
type ListResult struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

// Duplicate identifies a CSV row that was skipped because a product with
// the same name (case-insensitive) already exists.
type Duplicate struct {
	Name       string `json:"name"`
	ExistingID int64  `json:"existingId"`
}

// ImportResult is the outcome of a CSV import: rows inserted, rows
// skipped (malformed or duplicate), and which duplicates were seen.
type ImportResult struct {
	Added      int         `json:"added"`
	Skipped    int         `json:"skipped"`
	Duplicates []Duplicate `json:"duplicates"`
}
