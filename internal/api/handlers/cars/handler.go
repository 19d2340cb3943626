package cars

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarSpot/internal/api/handlers"
	"github.com/m04kA/SMC-CarSpot/internal/api/validation"
	"github.com/m04kA/SMC-CarSpot/internal/domain"
	carsRepo "github.com/m04kA/SMC-CarSpot/internal/infra/storage/cars"
)

const (
	msgCarNotFound = "Car not found"
	msgCarDeleted  = "Car deleted"
)

type Handler struct {
	repo   CarRepository
	errs   ErrorResponder
	logger Logger
}

func NewHandler(repo CarRepository, errs ErrorResponder, logger Logger) *Handler {
	return &Handler{
		repo:   repo,
		errs:   errs,
		logger: logger,
	}
}

// Register регистрирует маршруты /cars
func (h *Handler) Register(r *mux.Router, v *validation.Middleware) {
	r.HandleFunc("/cars", h.List).Methods(http.MethodGet)
	r.Handle("/cars", v.Body(validation.Car)(http.HandlerFunc(h.Create))).Methods(http.MethodPost)
	r.Handle("/cars/{id}", v.ID(http.HandlerFunc(h.Get))).Methods(http.MethodGet)
	r.Handle("/cars/{id}", v.ID(v.Body(validation.Car)(http.HandlerFunc(h.Update)))).Methods(http.MethodPut)
	r.Handle("/cars/{id}", v.ID(http.HandlerFunc(h.Delete))).Methods(http.MethodDelete)
}

// List GET /api/cars
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.List(r.Context())
	if err != nil {
		h.errs.Respond(w, r, err)
		return
	}

	rows := make([]CarRow, 0, len(list))
	for _, c := range list {
		rows = append(rows, newCarRow(c))
	}

	h.logger.Info("GET /cars - Cars listed: count=%d", len(rows))
	handlers.RespondJSON(w, http.StatusOK, rows)
}

// Get GET /api/cars/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := validation.RouteID(r, "id")

	car, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, id)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, newCarRow(car))
}

// Create POST /api/cars
// Несуществующие id справочников отклоняются базой (KindNoReferencedRow -> 400)
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	p, _ := validation.PayloadFromContext(r.Context())

	created, err := h.repo.Create(r.Context(), carFromPayload(0, p))
	if err != nil {
		h.errs.Respond(w, r, err)
		return
	}

	h.logger.Info("POST /cars - Car created: id_car=%d", created.ID)
	handlers.RespondJSON(w, http.StatusCreated, newCarResponse(created))
}

// Update PUT /api/cars/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := validation.RouteID(r, "id")
	p, _ := validation.PayloadFromContext(r.Context())

	updated, err := h.repo.Update(r.Context(), carFromPayload(id, p))
	if err != nil {
		h.fail(w, r, err, id)
		return
	}

	h.logger.Info("PUT /cars/{id} - Car updated: id_car=%d", id)
	handlers.RespondJSON(w, http.StatusOK, newCarResponse(updated))
}

// Delete DELETE /api/cars/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := validation.RouteID(r, "id")

	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err, id)
		return
	}

	h.logger.Info("DELETE /cars/{id} - Car deleted: id_car=%d", id)
	handlers.RespondMessage(w, http.StatusOK, msgCarDeleted)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, id int64) {
	if errors.Is(err, carsRepo.ErrCarNotFound) {
		h.logger.Warn("%s /cars/{id} - Car not found: id_car=%d", r.Method, id)
		handlers.RespondNotFound(w, msgCarNotFound)
		return
	}
	h.errs.Respond(w, r, err)
}

func carFromPayload(id int64, p validation.Payload) *domain.Car {
	return &domain.Car{
		ID:      id,
		SpecsID: p.Int("id_specs"),
		TrimID:  p.Int("id_trim"),
		ModelID: p.Int("id_model"),
		BrandID: p.Int("id_brand"),
	}
}
