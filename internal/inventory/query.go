package inventory

import (
	"strconv"
	"strings"
)

// productColumns is the column list every product SELECT uses, in the
// order scanProduct expects.
const productColumns = "id, name, unit, category, brand, stock, status, image"

// Listing defaults. Callers may request arbitrarily large pages; pages
// past the end simply come back empty.
const (
	defaultPage  = 1
	defaultLimit = 10
)

// sortColumns is the allow-list for ORDER BY. The sort column is
// interpolated into the query rather than bound as a parameter, so only
// these exact identifiers ever reach clause position; anything else
// falls back to id.
var sortColumns = map[string]bool{
	"id":       true,
	"name":     true,
	"unit":     true,
	"category": true,
	"brand":    true,
	"stock":    true,
	"status":   true,
}

// listQuery is a fully normalized listing request: WHERE predicates with
// bound args, a safe ORDER BY pair, and the pagination window.
type listQuery struct {
	where  string
	args   []any
	sortBy string
	order  string
	page   int
	limit  int
	offset int
}

// buildListQuery normalizes raw listing parameters into a listQuery.
// Filter values are always bound; only allow-listed identifiers are
// interpolated. Non-numeric or non-positive page/limit collapse to the
// defaults rather than erroring.
func buildListQuery(p ListParams) listQuery {
	var conds []string
	var args []any

	if p.Name != "" {
		conds = append(conds, "LOWER(name) LIKE ?")
		args = append(args, "%"+strings.ToLower(p.Name)+"%")
	}
	if p.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, p.Category)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	sortBy := p.SortBy
	if !sortColumns[sortBy] {
		sortBy = "id"
	}

	order := "ASC"
	if strings.ToUpper(p.SortOrder) == "DESC" {
		order = "DESC"
	}

	page := parsePositiveInt(p.Page, defaultPage)
	limit := parsePositiveInt(p.Limit, defaultLimit)

	return listQuery{
		where:  where,
		args:   args,
		sortBy: sortBy,
		order:  order,
		page:   page,
		limit:  limit,
		offset: (page - 1) * limit,
	}
}

// parsePositiveInt parses s, falling back to def when s is empty,
// non-numeric, or less than 1.
func parsePositiveInt(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}
	return n
}

// countSQL is the count query sharing the WHERE predicates but not the
// sort or window.
func (q listQuery) countSQL() string {
	return "SELECT COUNT(*) FROM products" + q.where
}

// selectSQL is the page query.
func (q listQuery) selectSQL() string {
	return "SELECT " + productColumns + " FROM products" + q.where +
		" ORDER BY " + q.sortBy + " " + q.order + " LIMIT ? OFFSET ?"
}

// selectArgs returns the bound arguments for selectSQL.
func (q listQuery) selectArgs() []any {
	out := make([]any, 0, len(q.args)+2)
	out = append(out, q.args...)
	return append(out, q.limit, q.offset)
}

// computePagination derives the pagination summary for a page.
func computePagination(page, limit, total int) Pagination {
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
		HasNext:    page*limit < total,
		HasPrev:    page > 1,
	}
}
