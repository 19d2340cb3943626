package reference

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarSpot/internal/api/handlers"
	"github.com/m04kA/SMC-CarSpot/internal/api/validation"
	"github.com/m04kA/SMC-CarSpot/internal/domain"
	referenceRepo "github.com/m04kA/SMC-CarSpot/internal/infra/storage/reference"
)

// Handler CRUD одного справочника; таблица, колонка ID и подпись
// для сообщений берутся из repo.Kind()
type Handler struct {
	repo   Repository
	kind   domain.ReferenceKind
	errs   ErrorResponder
	logger Logger

	msgNotFound string
	msgDeleted  string
}

func NewHandler(repo Repository, errs ErrorResponder, logger Logger) *Handler {
	kind := repo.Kind()
	return &Handler{
		repo:        repo,
		kind:        kind,
		errs:        errs,
		logger:      logger,
		msgNotFound: kind.Label + " not found",
		msgDeleted:  kind.Label + " deleted",
	}
}

// Register регистрирует маршруты /<table> и /<table>/{id}
func (h *Handler) Register(r *mux.Router, v *validation.Middleware) {
	collection := "/" + h.kind.Table
	item := collection + "/{id}"

	r.HandleFunc(collection, h.List).Methods(http.MethodGet)
	r.Handle(collection, v.Body(validation.Name)(http.HandlerFunc(h.Create))).Methods(http.MethodPost)
	r.Handle(item, v.ID(http.HandlerFunc(h.Get))).Methods(http.MethodGet)
	r.Handle(item, v.ID(v.Body(validation.Name)(http.HandlerFunc(h.Update)))).Methods(http.MethodPut)
	r.Handle(item, v.ID(http.HandlerFunc(h.Delete))).Methods(http.MethodDelete)
}

// List GET /api/<table>
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.List(r.Context())
	if err != nil {
		h.errs.Respond(w, r, err)
		return
	}

	rows := make([]Row, 0, len(list))
	for _, e := range list {
		rows = append(rows, newRow(h.kind, e))
	}

	h.logger.Info("GET /%s - Records listed: count=%d", h.kind.Table, len(rows))
	handlers.RespondJSON(w, http.StatusOK, rows)
}

// Get GET /api/<table>/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := validation.RouteID(r, "id")

	entity, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, id)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, newRow(h.kind, entity))
}

// Create POST /api/<table>
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	p, _ := validation.PayloadFromContext(r.Context())

	entity, err := h.repo.Create(r.Context(), p.String("name"))
	if err != nil {
		h.errs.Respond(w, r, err)
		return
	}

	h.logger.Info("POST /%s - Record created: id=%d", h.kind.Table, entity.ID)
	handlers.RespondJSON(w, http.StatusCreated, newEntityResponse(entity))
}

// Update PUT /api/<table>/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := validation.RouteID(r, "id")
	p, _ := validation.PayloadFromContext(r.Context())

	entity, err := h.repo.Update(r.Context(), &domain.NamedEntity{ID: id, Name: p.String("name")})
	if err != nil {
		h.fail(w, r, err, id)
		return
	}

	h.logger.Info("PUT /%s/{id} - Record updated: id=%d", h.kind.Table, id)
	handlers.RespondJSON(w, http.StatusOK, newEntityResponse(entity))
}

// Delete DELETE /api/<table>/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := validation.RouteID(r, "id")

	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err, id)
		return
	}

	h.logger.Info("DELETE /%s/{id} - Record deleted: id=%d", h.kind.Table, id)
	handlers.RespondMessage(w, http.StatusOK, h.msgDeleted)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, id int64) {
	if errors.Is(err, referenceRepo.ErrNotFound) {
		h.logger.Warn("%s /%s/{id} - Record not found: id=%d", r.Method, h.kind.Table, id)
		handlers.RespondNotFound(w, h.msgNotFound)
		return
	}
	h.errs.Respond(w, r, err)
}
