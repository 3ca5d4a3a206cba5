package web

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/Krishnachakri/Inventory-Management/internal/logging"
	"github.com/google/uuid"
)

// handleImportCSV accepts a multipart CSV upload ("csvFile" field),
// stages it to a temp file, and runs the import. The staged file is
// removed unconditionally, on success and on failure. The import runs
// to completion on this connection; there is no background job.
func (s *Server) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Import.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		badRequest(w, "file too large or invalid form")
		return
	}

	file, _, err := r.FormFile("csvFile")
	if err != nil {
		badRequest(w, "No CSV file uploaded")
		return
	}
	defer file.Close()

	dir := s.cfg.Import.TempDir
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, "import-"+uuid.NewString()+".csv")

	dst, err := os.Create(path)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	defer os.Remove(path)

	_, err = io.Copy(dst, file)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	staged, err := os.Open(path)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	defer staged.Close()

	result, err := s.service.Import(r.Context(), staged)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info("csv import finished",
		"added", result.Added,
		"skipped", result.Skipped,
		"duplicates", len(result.Duplicates),
	)

	writeJSON(w, http.StatusOK, result)
}

// handleExportCSV streams the full product table as CSV. The export is
// buffered so a storage failure can still produce an error response
// instead of a truncated file.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.service.ExportCSV(r.Context(), &buf); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="products.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logging.FromContext(r.Context()).Error("export write error", "error", err)
	}
}
