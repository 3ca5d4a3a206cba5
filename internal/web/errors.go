package web

// errors.go maps the inventory error taxonomy onto HTTP responses:
//
//	ValidationError -> 400 with the field(s) at fault
//	NotFoundError   -> 404
//	ConflictError   -> 409
//	StorageError    -> 500 with a user-friendly message and support code
//
// The technical error is logged server-side with the request id; the
// client only ever sees the mapped message.

import (
	"errors"
	"net/http"

	"github.com/Krishnachakri/Inventory-Management/internal/inventory"
	"github.com/Krishnachakri/Inventory-Management/internal/logging"
)

// respondError writes the HTTP response for a service error.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	var body any

	var verr *inventory.ValidationError
	var nferr *inventory.NotFoundError
	var cerr *inventory.ConflictError

	switch {
	case errors.As(err, &verr):
		status = http.StatusBadRequest
		body = map[string]any{"errors": verr.Fields}
	case errors.As(err, &nferr):
		status = http.StatusNotFound
		body = map[string]string{"error": "Product not found"}
	case errors.As(err, &cerr):
		status = http.StatusConflict
		body = map[string]string{"error": "Product with this name already exists"}
	default:
		msg := inventory.MapError(err)
		body = map[string]string{"error": msg.Message, "code": msg.Code}
	}

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
	)

	writeJSON(w, status, body)
}

// badRequest writes a plain 400 for malformed requests that never
// reached the service layer.
func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": message})
}
