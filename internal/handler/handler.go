package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Dan9191/shop-service/internal/middleware"
	"github.com/Dan9191/shop-service/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// maxBodyBytes bounds every JSON request body
const maxBodyBytes = 1 << 20

const (
	msgBadRequest      = "Requisição inválida"
	msgInternal        = "Erro interno do servidor"
	msgDuplicateEmail  = "Este e-mail já está em uso."
	msgInvalidLogin    = "Credenciais inválidas"
	msgProductNotFound = "Produto não encontrado"
	msgCategoryMissing = "Categoria não encontrada"
	msgOrderNotFound   = "Pedido não encontrado"
	msgRouteNotFound   = "Rota não encontrada"
	msgMethodNotAllow  = "Método não permitido"
)

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		middleware.LoggerFromContext(r.Context(), h.log).WithError(err).Debug("Invalid request body")
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return false
	}
	return true
}

// pathID reads the numeric {id} route variable
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return 0, false
	}
	return id, true
}

// caller returns the identity attached by the auth gate
func caller(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, middleware.UnauthorizedMessage)
	}
	return userID, ok
}

// fail maps a service error onto the JSON error envelope
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, notFound)
	case errors.Is(err, service.ErrDuplicateIdentity):
		writeError(w, http.StatusBadRequest, msgDuplicateEmail)
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, msgInvalidLogin)
	case errors.Is(err, context.Canceled):
		middleware.LoggerFromContext(r.Context(), h.log).Info("Client went away")
	default:
		middleware.LoggerFromContext(r.Context(), h.log).WithError(err).Error("Request failed")
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}

// Root answers liveness probes
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("API funcionando!"))
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, msgRouteNotFound)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllow)
}
