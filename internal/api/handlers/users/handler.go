package users

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarSpot/internal/api/handlers"
	"github.com/m04kA/SMC-CarSpot/internal/api/validation"
	"github.com/m04kA/SMC-CarSpot/internal/domain"
	usersRepo "github.com/m04kA/SMC-CarSpot/internal/infra/storage/users"
)

const (
	msgUserNotFound = "User not found"
	msgUserDeleted  = "User deleted"
)

type Handler struct {
	users  UserRepository
	spots  SpotRepository
	errs   ErrorResponder
	logger Logger
}

func NewHandler(users UserRepository, spots SpotRepository, errs ErrorResponder, logger Logger) *Handler {
	return &Handler{
		users:  users,
		spots:  spots,
		errs:   errs,
		logger: logger,
	}
}

// Register регистрирует маршруты /users
func (h *Handler) Register(r *mux.Router, v *validation.Middleware) {
	r.HandleFunc("/users", h.List).Methods(http.MethodGet)
	r.Handle("/users", v.Body(validation.User)(http.HandlerFunc(h.Create))).Methods(http.MethodPost)
	r.Handle("/users/{id}", v.ID(http.HandlerFunc(h.Get))).Methods(http.MethodGet)
	r.Handle("/users/{id}/spots", v.ID(http.HandlerFunc(h.ListSpots))).Methods(http.MethodGet)
	r.Handle("/users/{id}", v.ID(v.Body(validation.User)(http.HandlerFunc(h.Update)))).Methods(http.MethodPut)
	r.Handle("/users/{id}", v.ID(http.HandlerFunc(h.Delete))).Methods(http.MethodDelete)
}

// List GET /api/users
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.users.List(r.Context())
	if err != nil {
		h.errs.Respond(w, r, err)
		return
	}

	rows := make([]UserRow, 0, len(list))
	for _, u := range list {
		rows = append(rows, newUserRow(u))
	}

	h.logger.Info("GET /users - Users listed: count=%d", len(rows))
	handlers.RespondJSON(w, http.StatusOK, rows)
}

// Get GET /api/users/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := validation.RouteID(r, "id")

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, usersRepo.ErrUserNotFound) {
			h.logger.Warn("GET /users/{id} - User not found: user_id=%d", id)
			handlers.RespondNotFound(w, msgUserNotFound)
			return
		}
		h.errs.Respond(w, r, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, newUserRow(user))
}

// ListSpots GET /api/users/{id}/spots
func (h *Handler) ListSpots(w http.ResponseWriter, r *http.Request) {
	id := validation.RouteID(r, "id")

	list, err := h.spots.GetByUser(r.Context(), id)
	if err != nil {
		h.errs.Respond(w, r, err)
		return
	}

	rows := make([]UserSpotRow, 0, len(list))
	for _, s := range list {
		rows = append(rows, newUserSpotRow(s))
	}

	h.logger.Info("GET /users/{id}/spots - Spots listed: user_id=%d, count=%d", id, len(rows))
	handlers.RespondJSON(w, http.StatusOK, rows)
}

// Create POST /api/users
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	p, _ := validation.PayloadFromContext(r.Context())

	created, err := h.users.Create(r.Context(), &domain.User{
		Username: p.String("username"),
		Email:    p.String("email"),
	})
	if err != nil {
		h.errs.Respond(w, r, err)
		return
	}

	h.logger.Info("POST /users - User created: user_id=%d", created.ID)
	handlers.RespondJSON(w, http.StatusCreated, newUserResponse(created))
}

// Update PUT /api/users/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := validation.RouteID(r, "id")
	p, _ := validation.PayloadFromContext(r.Context())

	updated, err := h.users.Update(r.Context(), &domain.User{
		ID:       id,
		Username: p.String("username"),
		Email:    p.String("email"),
	})
	if err != nil {
		if errors.Is(err, usersRepo.ErrUserNotFound) {
			h.logger.Warn("PUT /users/{id} - User not found: user_id=%d", id)
			handlers.RespondNotFound(w, msgUserNotFound)
			return
		}
		h.errs.Respond(w, r, err)
		return
	}

	h.logger.Info("PUT /users/{id} - User updated: user_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, newUserResponse(updated))
}

// Delete DELETE /api/users/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := validation.RouteID(r, "id")

	if err := h.users.Delete(r.Context(), id); err != nil {
		if errors.Is(err, usersRepo.ErrUserNotFound) {
			h.logger.Warn("DELETE /users/{id} - User not found: user_id=%d", id)
			handlers.RespondNotFound(w, msgUserNotFound)
			return
		}
		h.errs.Respond(w, r, err)
		return
	}

	h.logger.Info("DELETE /users/{id} - User deleted: user_id=%d", id)
	handlers.RespondMessage(w, http.StatusOK, msgUserDeleted)
}
