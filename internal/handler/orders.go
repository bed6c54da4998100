package handler

import (
	"net/http"

	"github.com/Dan9191/shop-service/internal/models"
)

// ListOrders returns every order
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListOrders(r.Context())
	if err != nil {
		h.fail(w, r, err, msgOrderNotFound)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// MyOrders returns the orders of the authenticated user
func (h *Handler) MyOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	orders, err := h.svc.ListUserOrders(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err, msgOrderNotFound)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	order, err := h.svc.GetOrder(r.Context(), id, userID)
	if err != nil {
		h.fail(w, r, err, msgOrderNotFound)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	var in models.OrderInput
	if !h.decode(w, r, &in) {
		return
	}
	order, err := h.svc.CreateOrder(r.Context(), userID, in)
	if err != nil {
		h.fail(w, r, err, msgOrderNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in models.OrderInput
	if !h.decode(w, r, &in) {
		return
	}
	order, err := h.svc.UpdateOrder(r.Context(), id, userID, in)
	if err != nil {
		h.fail(w, r, err, msgOrderNotFound)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteOrder(r.Context(), id, userID); err != nil {
		h.fail(w, r, err, msgOrderNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
