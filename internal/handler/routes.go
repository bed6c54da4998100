package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Routes registers every API route on r. Reads of the catalog and the auth
// endpoints are public; everything else goes through authMW.
// Routes sit directly on r so a wrong verb on a known path answers 405.
func (h *Handler) Routes(r *mux.Router, authMW mux.MiddlewareFunc) {
	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	protected := func(f http.HandlerFunc) http.Handler {
		return authMW(f)
	}

	r.HandleFunc("/", h.Root).Methods("GET")

	// Public routes
	r.HandleFunc("/api/users/register", h.Register).Methods("POST")
	r.HandleFunc("/api/users/login", h.Login).Methods("POST")
	r.HandleFunc("/api/products", h.ListProducts).Methods("GET")
	r.HandleFunc("/api/products/{id:[0-9]+}", h.GetProduct).Methods("GET")
	r.HandleFunc("/api/categories", h.ListCategories).Methods("GET")
	r.HandleFunc("/api/categories/{id:[0-9]+}", h.GetCategory).Methods("GET")

	// Protected routes
	r.Handle("/api/users", protected(h.ListUsers)).Methods("GET")

	r.Handle("/api/products", protected(h.CreateProduct)).Methods("POST")
	r.Handle("/api/products/{id:[0-9]+}", protected(h.UpdateProduct)).Methods("PUT")
	r.Handle("/api/products/{id:[0-9]+}", protected(h.DeleteProduct)).Methods("DELETE")

	r.Handle("/api/categories", protected(h.CreateCategory)).Methods("POST")
	r.Handle("/api/categories/{id:[0-9]+}", protected(h.UpdateCategory)).Methods("PUT")
	r.Handle("/api/categories/{id:[0-9]+}", protected(h.DeleteCategory)).Methods("DELETE")

	r.Handle("/api/orders", protected(h.ListOrders)).Methods("GET")
	r.Handle("/api/orders", protected(h.CreateOrder)).Methods("POST")
	r.Handle("/api/orders/my-orders", protected(h.MyOrders)).Methods("GET")
	r.Handle("/api/orders/{id:[0-9]+}", protected(h.GetOrder)).Methods("GET")
	r.Handle("/api/orders/{id:[0-9]+}", protected(h.UpdateOrder)).Methods("PUT")
	r.Handle("/api/orders/{id:[0-9]+}", protected(h.DeleteOrder)).Methods("DELETE")
}
