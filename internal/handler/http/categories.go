package http

import (
	"net/http"

	"github.com/MKhiriev/go-ferrari-store/models"
)

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.services.CategoryService.ListCategories(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "error listing categories")
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}

	writeJSON(w, r, categories, http.StatusOK)
}

func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	category, err := h.services.CategoryService.GetCategory(r.Context(), categoryID)
	if err != nil {
		writeServiceError(w, r, err, "error getting category")
		return
	}

	writeJSON(w, r, category, http.StatusOK)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var category models.Category
	if !decodeJSON(w, r, &category) {
		return
	}

	created, err := h.services.CategoryService.CreateCategory(r.Context(), category)
	if err != nil {
		writeServiceError(w, r, err, "error creating category")
		return
	}

	writeJSON(w, r, created, http.StatusCreated)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	var update models.CategoryUpdate
	if !decodeJSON(w, r, &update) {
		return
	}
	update.CategoryID = categoryID

	updated, err := h.services.CategoryService.UpdateCategory(r.Context(), update)
	if err != nil {
		writeServiceError(w, r, err, "error updating category")
		return
	}

	writeJSON(w, r, updated, http.StatusOK)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.services.CategoryService.DeleteCategory(r.Context(), categoryID); err != nil {
		writeServiceError(w, r, err, "error deleting category")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
