package handler

import (
	"net/http"

	"github.com/Dan9191/shop-service/internal/models"
)

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.ListCategories(r.Context())
	if err != nil {
		h.fail(w, r, err, msgCategoryMissing)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	category, err := h.svc.GetCategory(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, msgCategoryMissing)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in models.CategoryInput
	if !h.decode(w, r, &in) {
		return
	}
	category, err := h.svc.CreateCategory(r.Context(), in)
	if err != nil {
		h.fail(w, r, err, msgCategoryMissing)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in models.CategoryInput
	if !h.decode(w, r, &in) {
		return
	}
	category, err := h.svc.UpdateCategory(r.Context(), id, in)
	if err != nil {
		h.fail(w, r, err, msgCategoryMissing)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteCategory(r.Context(), id); err != nil {
		h.fail(w, r, err, msgCategoryMissing)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
