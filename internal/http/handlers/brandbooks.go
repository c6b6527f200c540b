package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// GetBrandbook handles GET /api/brandbooks/{id}.
func (a *App) GetBrandbook(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		a.error(w, r, http.StatusBadRequest, codeBadRequest)
		return
	}
	book, err := a.Brandbooks.Get(r.Context(), id)
	if err != nil {
		a.fail(w, r, "get_brandbook", err)
		return
	}
	a.json(w, http.StatusOK, book)
}

// GetBrandbookArchive handles GET /api/brandbooks/{id}/archive.
func (a *App) GetBrandbookArchive(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	data, err := a.Brandbooks.Archive(r.Context(), id)
	if err != nil {
		a.fail(w, r, "brandbook_archive", err)
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="brandbook-%s.zip"`, id))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
