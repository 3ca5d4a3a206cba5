package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Krishnachakri/Inventory-Management/internal/inventory"
	"github.com/go-chi/chi/v5"
)

// handleHealth reports service liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "OK",
		"message": "Server is running",
	})
}

// handleListProducts returns one page of products with filtering,
// sorting, and pagination taken from the query string.
func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := inventory.ListParams{
		Name:      q.Get("name"),
		Category:  q.Get("category"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
		Page:      q.Get("page"),
		Limit:     q.Get("limit"),
	}

	result, err := s.service.List(r.Context(), params)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleSearchProducts returns all products whose name contains the
// query, ordered by name.
func (s *Server) handleSearchProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.service.Search(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// handleGetProduct returns a single product by id.
func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	product, err := s.service.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// handleCreateProduct inserts a new product.
func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var in inventory.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	product, err := s.service.Create(r.Context(), in)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// handleUpdateProduct replaces a product. The optional changedBy field
// attributes any resulting stock-change history entry; it defaults to
// "admin" here at the boundary.
func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var payload struct {
		inventory.ProductInput
		ChangedBy string `json:"changedBy"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	changedBy := payload.ChangedBy
	if changedBy == "" {
		changedBy = "admin"
	}

	product, err := s.service.Update(r.Context(), id, payload.ProductInput, changedBy)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// handleDeleteProduct removes a product and its history.
func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := s.service.Delete(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

// handleHistory returns the stock-change entries for a product, most
// recent first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	entries, err := s.service.History(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// parseID parses the {id} route parameter, returning a ValidationError
// on anything that is not an integer.
func parseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &inventory.ValidationError{Fields: []inventory.FieldError{
			{Field: "id", Message: "Invalid product ID"},
		}}
	}
	return id, nil
}
