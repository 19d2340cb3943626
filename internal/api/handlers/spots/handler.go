package spots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarSpot/internal/api/handlers"
	"github.com/m04kA/SMC-CarSpot/internal/api/validation"
	"github.com/m04kA/SMC-CarSpot/internal/domain"
	spotsRepo "github.com/m04kA/SMC-CarSpot/internal/infra/storage/spots"
)

const (
	msgSpotNotFound = "Spot not found"
	msgSpotDeleted  = "Spot deleted"
)

type Handler struct {
	repo   SpotRepository
	errs   ErrorResponder
	logger Logger
}

func NewHandler(repo SpotRepository, errs ErrorResponder, logger Logger) *Handler {
	return &Handler{
		repo:   repo,
		errs:   errs,
		logger: logger,
	}
}

// Register регистрирует маршруты /spots
// Статистика регистрируется раньше /spots/{id_user}/{id_car}, иначе "stats" совпадет с id_user
func (h *Handler) Register(r *mux.Router, v *validation.Middleware) {
	r.HandleFunc("/spots", h.List).Methods(http.MethodGet)
	r.HandleFunc("/spots/stats/locations", h.LocationStats).Methods(http.MethodGet)
	r.HandleFunc("/spots/stats/brands", h.BrandStats).Methods(http.MethodGet)
	r.Handle("/spots", v.Body(validation.Spot)(http.HandlerFunc(h.Create))).Methods(http.MethodPost)

	item := "/spots/{id_user}/{id_car}"
	r.Handle(item, v.CompositeID(http.HandlerFunc(h.Get))).Methods(http.MethodGet)
	r.Handle(item, v.CompositeID(v.Body(validation.SpotLocation)(http.HandlerFunc(h.Update)))).Methods(http.MethodPut)
	r.Handle(item, v.CompositeID(http.HandlerFunc(h.Delete))).Methods(http.MethodDelete)
}

// List GET /api/spots
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.List(r.Context())
	if err != nil {
		h.errs.Respond(w, r, err)
		return
	}

	rows := make([]SpotRow, 0, len(list))
	for _, s := range list {
		rows = append(rows, newSpotRow(s))
	}

	h.logger.Info("GET /spots - Spots listed: count=%d", len(rows))
	handlers.RespondJSON(w, http.StatusOK, rows)
}

// LocationStats GET /api/spots/stats/locations
func (h *Handler) LocationStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.LocationStats(r.Context())
	if err != nil {
		h.errs.Respond(w, r, err)
		return
	}

	resp := make([]LocationStatResponse, 0, len(stats))
	for _, s := range stats {
		resp = append(resp, LocationStatResponse{Location: s.Location, Count: s.Count})
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// BrandStats GET /api/spots/stats/brands
func (h *Handler) BrandStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.BrandStats(r.Context())
	if err != nil {
		h.errs.Respond(w, r, err)
		return
	}

	resp := make([]BrandStatResponse, 0, len(stats))
	for _, s := range stats {
		resp = append(resp, BrandStatResponse{BrandName: s.BrandName, Count: s.Count})
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Get GET /api/spots/{id_user}/{id_car}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, carID := routeKey(r)

	spot, err := h.repo.GetByKey(r.Context(), userID, carID)
	if err != nil {
		h.fail(w, r, err, userID, carID)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, newSpotRow(spot))
}

// Create POST /api/spots
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	p, _ := validation.PayloadFromContext(r.Context())

	created, err := h.repo.Create(r.Context(), &domain.Spot{
		UserID:   p.Int("id_user"),
		CarID:    p.Int("id_car"),
		Location: p.String("location"),
	})
	if err != nil {
		h.errs.Respond(w, r, err)
		return
	}

	h.logger.Info("POST /spots - Spot created: id_user=%d, id_car=%d", created.UserID, created.CarID)
	handlers.RespondJSON(w, http.StatusCreated, newSpotResponse(created))
}

// Update PUT /api/spots/{id_user}/{id_car}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, carID := routeKey(r)
	p, _ := validation.PayloadFromContext(r.Context())

	updated, err := h.repo.UpdateLocation(r.Context(), &domain.Spot{
		UserID:   userID,
		CarID:    carID,
		Location: p.String("location"),
	})
	if err != nil {
		h.fail(w, r, err, userID, carID)
		return
	}

	h.logger.Info("PUT /spots/{id_user}/{id_car} - Spot updated: id_user=%d, id_car=%d", userID, carID)
	handlers.RespondJSON(w, http.StatusOK, newSpotResponse(updated))
}

// Delete DELETE /api/spots/{id_user}/{id_car}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, carID := routeKey(r)

	if err := h.repo.Delete(r.Context(), userID, carID); err != nil {
		h.fail(w, r, err, userID, carID)
		return
	}

	h.logger.Info("DELETE /spots/{id_user}/{id_car} - Spot deleted: id_user=%d, id_car=%d", userID, carID)
	handlers.RespondMessage(w, http.StatusOK, msgSpotDeleted)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, userID, carID int64) {
	if errors.Is(err, spotsRepo.ErrSpotNotFound) {
		h.logger.Warn("%s /spots/{id_user}/{id_car} - Spot not found: id_user=%d, id_car=%d", r.Method, userID, carID)
		handlers.RespondNotFound(w, msgSpotNotFound)
		return
	}
	h.errs.Respond(w, r, err)
}

func routeKey(r *http.Request) (int64, int64) {
	return validation.RouteID(r, "id_user"), validation.RouteID(r, "id_car")
}
