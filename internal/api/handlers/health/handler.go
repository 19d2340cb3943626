package health

import (
	"net/http"

	"github.com/m04kA/SMC-CarSpot/internal/api/handlers"
)

const (
	statusOK = "ok"
	msgAlive = "CarSpot API is running"
	tsLayout = "2006-01-02T15:04:05.000Z07:00"
)

type Handler struct {
	environment string
	clock       Clock
}

func NewHandler(environment string, clock Clock) *Handler {
	return &Handler{
		environment: environment,
		clock:       clock,
	}
}

// Handle GET /api/health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Response{
		Status:      statusOK,
		Message:     msgAlive,
		Timestamp:   h.clock.Now().UTC().Format(tsLayout),
		Environment: h.environment,
	})
}
