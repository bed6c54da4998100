package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger(t *testing.T) {
	log, hook := test.NewNullLogger()

	var scoped bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, scoped = LoggerFromContext(r.Context(), nil).Data["request_id"]
		w.WriteHeader(http.StatusCreated)
	})

	rec := httptest.NewRecorder()
	RequestLogger(log)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/orders", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, scoped)
	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	require.NoError(t, err)

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, http.StatusCreated, last.Data["status"])
	assert.Equal(t, "/api/orders", last.Data["path"])
}

func TestRequestLogger_KeepsIncomingID(t *testing.T) {
	log, _ := test.NewNullLogger()
	id := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, id)
	rec := httptest.NewRecorder()
	RequestLogger(log)(http.NotFoundHandler()).ServeHTTP(rec, req)

	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))
}

func TestRequestLogger_RecoversPanic(t *testing.T) {
	log, hook := test.NewNullLogger()
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })

	rec := httptest.NewRecorder()
	RequestLogger(log)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Erro interno do servidor"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "boom")
	assert.Len(t, hook.AllEntries(), 2)
}

func TestRequestLogger_PanicAfterWrite(t *testing.T) {
	log, hook := test.NewNullLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1}`))
		panic("boom")
	})

	rec := httptest.NewRecorder()
	RequestLogger(log)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `[{"id":1}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "Erro interno do servidor")

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, "Request completed", last.Message)
	assert.Equal(t, http.StatusInternalServerError, last.Data["status"])
}

func TestStatusRecorder_FirstHeaderWins(t *testing.T) {
	rec := httptest.NewRecorder()
	sr := &statusRecorder{ResponseWriter: rec, status: http.StatusOK}

	sr.WriteHeader(http.StatusCreated)
	sr.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusCreated, sr.status)
	assert.Equal(t, http.StatusCreated, rec.Code)
}
