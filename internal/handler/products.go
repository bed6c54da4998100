package handler

import (
	"net/http"

	"github.com/Dan9191/shop-service/internal/models"
)

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListProducts(r.Context())
	if err != nil {
		h.fail(w, r, err, msgProductNotFound)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	product, err := h.svc.GetProduct(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, msgProductNotFound)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in models.ProductInput
	if !h.decode(w, r, &in) {
		return
	}
	product, err := h.svc.CreateProduct(r.Context(), in)
	if err != nil {
		h.fail(w, r, err, msgProductNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in models.ProductInput
	if !h.decode(w, r, &in) {
		return
	}
	product, err := h.svc.UpdateProduct(r.Context(), id, in)
	if err != nil {
		h.fail(w, r, err, msgProductNotFound)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteProduct(r.Context(), id); err != nil {
		h.fail(w, r, err, msgProductNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
