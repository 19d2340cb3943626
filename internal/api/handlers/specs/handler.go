package specs

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarSpot/internal/api/handlers"
	"github.com/m04kA/SMC-CarSpot/internal/api/validation"
	"github.com/m04kA/SMC-CarSpot/internal/domain"
	specsRepo "github.com/m04kA/SMC-CarSpot/internal/infra/storage/specs"
)

const (
	msgSpecsNotFound = "Specs not found"
	msgSpecsDeleted  = "Specs deleted"
)

type Handler struct {
	repo   SpecsRepository
	errs   ErrorResponder
	logger Logger
}

func NewHandler(repo SpecsRepository, errs ErrorResponder, logger Logger) *Handler {
	return &Handler{
		repo:   repo,
		errs:   errs,
		logger: logger,
	}
}

// Register регистрирует маршруты /specs
func (h *Handler) Register(r *mux.Router, v *validation.Middleware) {
	r.HandleFunc("/specs", h.List).Methods(http.MethodGet)
	r.Handle("/specs", v.Body(validation.Specs)(http.HandlerFunc(h.Create))).Methods(http.MethodPost)
	r.Handle("/specs/{id}", v.ID(http.HandlerFunc(h.Get))).Methods(http.MethodGet)
	r.Handle("/specs/{id}", v.ID(v.Body(validation.Specs)(http.HandlerFunc(h.Update)))).Methods(http.MethodPut)
	r.Handle("/specs/{id}", v.ID(http.HandlerFunc(h.Delete))).Methods(http.MethodDelete)
}

// List GET /api/specs
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.List(r.Context())
	if err != nil {
		h.errs.Respond(w, r, err)
		return
	}

	rows := make([]SpecsRow, 0, len(list))
	for _, s := range list {
		rows = append(rows, newSpecsRow(s))
	}

	h.logger.Info("GET /specs - Specs listed: count=%d", len(rows))
	handlers.RespondJSON(w, http.StatusOK, rows)
}

// Get GET /api/specs/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := validation.RouteID(r, "id")

	s, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, id)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, newSpecsRow(s))
}

// Create POST /api/specs
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	p, _ := validation.PayloadFromContext(r.Context())

	created, err := h.repo.Create(r.Context(), specsFromPayload(0, p))
	if err != nil {
		h.errs.Respond(w, r, err)
		return
	}

	h.logger.Info("POST /specs - Specs created: id_specs=%d", created.ID)
	handlers.RespondJSON(w, http.StatusCreated, newSpecsResponse(created))
}

// Update PUT /api/specs/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := validation.RouteID(r, "id")
	p, _ := validation.PayloadFromContext(r.Context())

	updated, err := h.repo.Update(r.Context(), specsFromPayload(id, p))
	if err != nil {
		h.fail(w, r, err, id)
		return
	}

	h.logger.Info("PUT /specs/{id} - Specs updated: id_specs=%d", id)
	handlers.RespondJSON(w, http.StatusOK, newSpecsResponse(updated))
}

// Delete DELETE /api/specs/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := validation.RouteID(r, "id")

	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err, id)
		return
	}

	h.logger.Info("DELETE /specs/{id} - Specs deleted: id_specs=%d", id)
	handlers.RespondMessage(w, http.StatusOK, msgSpecsDeleted)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, id int64) {
	if errors.Is(err, specsRepo.ErrSpecsNotFound) {
		h.logger.Warn("%s /specs/{id} - Specs not found: id_specs=%d", r.Method, id)
		handlers.RespondNotFound(w, msgSpecsNotFound)
		return
	}
	h.errs.Respond(w, r, err)
}

func specsFromPayload(id int64, p validation.Payload) *domain.Specs {
	return &domain.Specs{
		ID:         id,
		Price:      p.Float("price"),
		Engine:     p.String("engine"),
		Weight:     p.Float("weight"),
		HorsePower: p.String("horse_power"),
	}
}
