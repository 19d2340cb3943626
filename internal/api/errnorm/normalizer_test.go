package errnorm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarSpot/internal/infra/storage/dberrors"
)

var errExecQuery = errors.New("failed to execute query")

type testLogger struct {
	warns  int
	errors int
}

func (l *testLogger) Warn(format string, v ...interface{})  { l.warns++ }
func (l *testLogger) Error(format string, v ...interface{}) { l.errors++ }

type testMetrics struct {
	kinds []string
}

func (m *testMetrics) IncStorageError(kind string) { m.kinds = append(m.kinds, kind) }

type body struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) body {
	t.Helper()
	var b body
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	return b
}

// storageErr имитирует ошибку репозитория: sentinel слоя + классифицированная ошибка драйвера
func storageErr(code, message string) error {
	return fmt.Errorf("%w: Create - execute query: %w", errExecQuery,
		dberrors.Wrap("brands.Create", &pq.Error{Code: pq.ErrorCode(code), Message: message}))
}

func TestRespond_KindTable(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		errText string
		message string
		kind    string
	}{
		{
			name:    "duplicate",
			err:     storageErr("23505", `duplicate key value violates unique constraint "brands_name_key"`),
			status:  http.StatusConflict,
			errText: "Duplicate entry",
			message: "This record already exists in the database",
			kind:    "duplicate",
		},
		{
			name:    "no referenced row",
			err:     storageErr("23503", `insert or update on table "cars" violates foreign key constraint "cars_id_brand_fkey"`),
			status:  http.StatusBadRequest,
			errText: "Invalid reference",
			message: "Referenced record does not exist",
			kind:    "no_referenced_row",
		},
		{
			name:    "row is referenced",
			err:     storageErr("23503", `update or delete on table "brands" violates foreign key constraint "cars_id_brand_fkey" on table "cars"`),
			status:  http.StatusConflict,
			errText: "Cannot delete",
			message: "This record is referenced by other records",
			kind:    "row_is_referenced",
		},
		{
			name:    "bad field",
			err:     storageErr("42703", `column "colour" does not exist`),
			status:  http.StatusBadRequest,
			errText: "Database error",
			message: "Invalid field in query",
			kind:    "bad_field",
		},
		{
			name:    "unclassified driver error",
			err:     storageErr("57014", "canceling statement due to statement timeout"),
			status:  http.StatusInternalServerError,
			errText: "Internal server error",
			message: "An unexpected error occurred",
			kind:    "unknown",
		},
		{
			name:    "plain error",
			err:     errors.New("connection refused"),
			status:  http.StatusInternalServerError,
			errText: "Internal server error",
			message: "An unexpected error occurred",
			kind:    "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := &testMetrics{}
			n := NewNormalizer(&testLogger{}, metrics, false)

			rec := httptest.NewRecorder()
			n.Respond(rec, httptest.NewRequest(http.MethodPost, "/api/brands", nil), tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			b := decode(t, rec)
			assert.Equal(t, tt.errText, b.Error)
			assert.Equal(t, tt.message, b.Message)
			assert.Equal(t, []string{tt.kind}, metrics.kinds)
		})
	}
}

func TestRespond_VerboseUnknown(t *testing.T) {
	logger := &testLogger{}
	n := NewNormalizer(logger, nil, true)

	rec := httptest.NewRecorder()
	n.Respond(rec, httptest.NewRequest(http.MethodGet, "/api/users", nil), errors.New("connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "connection refused", decode(t, rec).Message)
	assert.Equal(t, 1, logger.errors)
}

func TestRespond_VerboseDoesNotAffectClassified(t *testing.T) {
	n := NewNormalizer(&testLogger{}, nil, true)

	rec := httptest.NewRecorder()
	n.Respond(rec, httptest.NewRequest(http.MethodPost, "/api/users", nil),
		storageErr("23505", "duplicate key value violates unique constraint"))

	assert.Equal(t, "This record already exists in the database", decode(t, rec).Message)
}

func TestNotFound(t *testing.T) {
	n := NewNormalizer(&testLogger{}, nil, false)
	router := mux.NewRouter()
	router.NotFoundHandler = n.NotFound()
	router.MethodNotAllowedHandler = n.NotFound()
	router.HandleFunc("/api/users", func(w http.ResponseWriter, r *http.Request) {}).Methods(http.MethodGet)

	tests := []struct {
		method  string
		target  string
		message string
	}{
		{http.MethodGet, "/api/nope?x=1", "Route GET /api/nope?x=1 not found"},
		{http.MethodPatch, "/api/users", "Route PATCH /api/users not found"},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		b := decode(t, rec)
		assert.Equal(t, "Not found", b.Error)
		assert.Equal(t, tt.message, b.Message)
	}
}

func TestRecover(t *testing.T) {
	logger := &testLogger{}
	n := NewNormalizer(logger, nil, false)
	handler := n.Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cars", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "An unexpected error occurred", decode(t, rec).Message)
	assert.Equal(t, 1, logger.errors)
}
