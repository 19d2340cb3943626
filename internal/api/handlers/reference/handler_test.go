package reference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarSpot/internal/api/errnorm"
	"github.com/m04kA/SMC-CarSpot/internal/api/validation"
	"github.com/m04kA/SMC-CarSpot/internal/domain"
	"github.com/m04kA/SMC-CarSpot/internal/infra/storage/dberrors"
	referenceRepo "github.com/m04kA/SMC-CarSpot/internal/infra/storage/reference"
)

type testLogger struct{}

func (testLogger) Info(format string, v ...interface{})  {}
func (testLogger) Warn(format string, v ...interface{})  {}
func (testLogger) Error(format string, v ...interface{}) {}

// fakeRepo справочник в памяти; referenced имитирует записи, на которые ссылаются cars
type fakeRepo struct {
	kind       domain.ReferenceKind
	nextID     int64
	rows       map[int64]string
	referenced map[int64]bool
}

func newFakeRepo(kind domain.ReferenceKind) *fakeRepo {
	return &fakeRepo{kind: kind, nextID: 1, rows: make(map[int64]string), referenced: make(map[int64]bool)}
}

func (f *fakeRepo) Kind() domain.ReferenceKind { return f.kind }

func (f *fakeRepo) List(_ context.Context) ([]*domain.NamedEntity, error) {
	result := make([]*domain.NamedEntity, 0, len(f.rows))
	for id, name := range f.rows {
		result = append(result, &domain.NamedEntity{ID: id, Name: name})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.NamedEntity, error) {
	name, ok := f.rows[id]
	if !ok {
		return nil, referenceRepo.ErrNotFound
	}
	return &domain.NamedEntity{ID: id, Name: name}, nil
}

func (f *fakeRepo) Create(_ context.Context, name string) (*domain.NamedEntity, error) {
	for _, existing := range f.rows {
		if existing == name {
			return nil, dberrors.Wrap(f.kind.Table+".Create", &pq.Error{Code: "23505", Message: "duplicate key value"})
		}
	}
	id := f.nextID
	f.nextID++
	f.rows[id] = name
	return &domain.NamedEntity{ID: id, Name: name}, nil
}

func (f *fakeRepo) Update(_ context.Context, entity *domain.NamedEntity) (*domain.NamedEntity, error) {
	if _, ok := f.rows[entity.ID]; !ok {
		return nil, referenceRepo.ErrNotFound
	}
	f.rows[entity.ID] = entity.Name
	return entity, nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return referenceRepo.ErrNotFound
	}
	if f.referenced[id] {
		return dberrors.Wrap(f.kind.Table+".Delete", &pq.Error{
			Code:    "23503",
			Message: `update or delete on table "` + f.kind.Table + `" violates foreign key constraint on table "cars"`,
		})
	}
	delete(f.rows, id)
	return nil
}

func newTestRouter(repos ...*fakeRepo) *mux.Router {
	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()
	v := validation.NewMiddleware(testLogger{}, nil)
	norm := errnorm.NewNormalizer(testLogger{}, nil, false)
	for _, repo := range repos {
		NewHandler(repo, norm, testLogger{}).Register(api, v)
	}
	return router
}

func do(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCreateAndList(t *testing.T) {
	brands := newFakeRepo(domain.BrandKind)
	router := newTestRouter(brands)

	rec := do(t, router, http.MethodPost, "/api/brands", `{"name":"  Toyota  "}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":1,"name":"Toyota"}`, rec.Body.String())

	do(t, router, http.MethodPost, "/api/brands", `{"name":"Audi"}`)

	rec = do(t, router, http.MethodGet, "/api/brands", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id_brand":2,"name":"Audi"},{"id_brand":1,"name":"Toyota"}]`, rec.Body.String())
}

func TestRowsUseTableIDColumn(t *testing.T) {
	models := newFakeRepo(domain.ModelKind)
	trims := newFakeRepo(domain.TrimKind)
	router := newTestRouter(models, trims)

	do(t, router, http.MethodPost, "/api/models", `{"name":"Corolla"}`)
	do(t, router, http.MethodPost, "/api/trims", `{"name":"GR"}`)

	assert.JSONEq(t, `{"id_model":1,"name":"Corolla"}`, do(t, router, http.MethodGet, "/api/models/1", "").Body.String())
	assert.JSONEq(t, `{"id_trim":1,"name":"GR"}`, do(t, router, http.MethodGet, "/api/trims/1", "").Body.String())
}

func TestLabelledNotFound(t *testing.T) {
	router := newTestRouter(newFakeRepo(domain.BrandKind), newFakeRepo(domain.TrimKind))

	tests := []struct {
		method string
		target string
		body   string
		want   string
	}{
		{http.MethodGet, "/api/brands/5", "", "Brand not found"},
		{http.MethodPut, "/api/brands/5", `{"name":"X"}`, "Brand not found"},
		{http.MethodDelete, "/api/trims/5", "", "Trim not found"},
	}

	for _, tt := range tests {
		rec := do(t, router, tt.method, tt.target, tt.body)
		assert.Equal(t, http.StatusNotFound, rec.Code, tt.target)
		assert.Equal(t, tt.want, errorBody(t, rec)["error"])
	}
}

func TestValidation(t *testing.T) {
	router := newTestRouter(newFakeRepo(domain.BrandKind))

	rec := do(t, router, http.MethodPost, "/api/brands", `{"name":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Name is required", errorBody(t, rec)["error"])

	rec = do(t, router, http.MethodPost, "/api/brands", `{"name":"`+strings.Repeat("a", 51)+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Name must be 50 characters or less", errorBody(t, rec)["error"])

	rec = do(t, router, http.MethodGet, "/api/brands/zero", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid ID parameter", errorBody(t, rec)["error"])
}

func TestUpdate(t *testing.T) {
	router := newTestRouter(newFakeRepo(domain.BrandKind))
	do(t, router, http.MethodPost, "/api/brands", `{"name":"Toyta"}`)

	rec := do(t, router, http.MethodPut, "/api/brands/1", `{"name":"Toyota"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"name":"Toyota"}`, rec.Body.String())
}

func TestDuplicateName(t *testing.T) {
	router := newTestRouter(newFakeRepo(domain.BrandKind))
	do(t, router, http.MethodPost, "/api/brands", `{"name":"Toyota"}`)

	rec := do(t, router, http.MethodPost, "/api/brands", `{"name":"Toyota"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Duplicate entry", errorBody(t, rec)["error"])
}

func TestDelete(t *testing.T) {
	brands := newFakeRepo(domain.BrandKind)
	router := newTestRouter(brands)
	do(t, router, http.MethodPost, "/api/brands", `{"name":"Toyota"}`)
	do(t, router, http.MethodPost, "/api/brands", `{"name":"Lada"}`)
	brands.referenced[1] = true

	rec := do(t, router, http.MethodDelete, "/api/brands/1", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	body := errorBody(t, rec)
	assert.Equal(t, "Cannot delete", body["error"])
	assert.Equal(t, "This record is referenced by other records", body["message"])

	rec = do(t, router, http.MethodDelete, "/api/brands/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]string{"message": "Brand deleted"}, errorBody(t, rec))
}
