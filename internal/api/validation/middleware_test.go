package validation

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct {
	warnings int
}

func (l *nopLogger) Warn(format string, v ...interface{}) { l.warnings++ }

type countingMetrics struct {
	rejected map[string]int
}

func (m *countingMetrics) IncValidationRejected(validator string) {
	if m.rejected == nil {
		m.rejected = make(map[string]int)
	}
	m.rejected[validator]++
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func newBodyRouter(m *Middleware, v *Validator, got *Payload) *mux.Router {
	router := mux.NewRouter()
	router.Handle("/items", m.Body(v)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PayloadFromContext(r.Context())
		if ok {
			*got = p
		}
		w.WriteHeader(http.StatusCreated)
	}))).Methods(http.MethodPost)
	return router
}

func TestBodyMiddleware_ValidJSON(t *testing.T) {
	var got Payload
	router := newBodyRouter(NewMiddleware(&nopLogger{}, nil), Spot, &got)

	req := httptest.NewRequest(http.MethodPost, "/items",
		strings.NewReader(`{"id_user": 1, "id_car": "2", "location": "  Downtown  "}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(1), got.Int("id_user"))
	assert.Equal(t, int64(2), got.Int("id_car"))
	assert.Equal(t, "Downtown", got.String("location"))
}

func TestBodyMiddleware_FormBody(t *testing.T) {
	var got Payload
	router := newBodyRouter(NewMiddleware(&nopLogger{}, nil), Name, &got)

	req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader("name=+Toyota+"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Toyota", got.String("name"))
}

func TestBodyMiddleware_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"empty body", "", "Name is required"},
		{"null body", "null", "Name is required"},
		{"malformed json", "{", "Invalid request body"},
		{"array body", "[1,2]", "Invalid request body"},
		{"too long", `{"name":"` + strings.Repeat("n", 51) + `"}`, "Name must be 50 characters or less"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &nopLogger{}
			metrics := &countingMetrics{}
			called := false
			router := mux.NewRouter()
			router.Handle("/items", NewMiddleware(logger, metrics).Body(Name)(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }),
			)).Methods(http.MethodPost)

			req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.False(t, called)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.message, decodeError(t, rec))
			assert.Equal(t, 1, metrics.rejected["name"])
			assert.Equal(t, 1, logger.warnings)
		})
	}
}

func TestIDMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		status int
		id     int64
	}{
		{"plain", "/users/42", http.StatusOK, 42},
		{"numeric prefix", "/users/7x", http.StatusOK, 7},
		{"letters", "/users/abc", http.StatusBadRequest, 0},
		{"zero", "/users/0", http.StatusBadRequest, 0},
		{"negative", "/users/-5", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got int64
			router := mux.NewRouter()
			router.Handle("/users/{id}", NewMiddleware(&nopLogger{}, nil).ID(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					got = RouteID(r, "id")
				}),
			))

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.id, got)
			if tt.status == http.StatusBadRequest {
				assert.Equal(t, "Invalid ID parameter", decodeError(t, rec))
			}
		})
	}
}

func TestIDMiddleware_UsesFirstPresentParam(t *testing.T) {
	var userID int64
	router := mux.NewRouter()
	router.Handle("/users/{id_user}/cars/{id_car}", NewMiddleware(&nopLogger{}, nil).ID(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID = RouteID(r, "id_user")
		}),
	))

	// id_car не проверяется: достаточно первого найденного параметра
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/3/cars/abc", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), userID)
}

func TestCompositeIDMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"both valid", "/spots/1/2", http.StatusOK},
		{"bad user", "/spots/x/2", http.StatusBadRequest},
		{"bad car", "/spots/1/x", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := &countingMetrics{}
			var userID, carID int64
			router := mux.NewRouter()
			router.Handle("/spots/{id_user}/{id_car}", NewMiddleware(&nopLogger{}, metrics).CompositeID(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					userID = RouteID(r, "id_user")
					carID = RouteID(r, "id_car")
				}),
			))

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, tt.path, nil))

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, int64(1), userID)
				assert.Equal(t, int64(2), carID)
			} else {
				assert.Equal(t, 1, metrics.rejected["composite_id"])
			}
		})
	}
}
