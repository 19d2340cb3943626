package specs

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-CarSpot/internal/domain"
)

type SpecsRepository interface {
	List(ctx context.Context) ([]*domain.Specs, error)
	GetByID(ctx context.Context, id int64) (*domain.Specs, error)
	Create(ctx context.Context, s *domain.Specs) (*domain.Specs, error)
	Update(ctx context.Context, s *domain.Specs) (*domain.Specs, error)
	Delete(ctx context.Context, id int64) error
}

type ErrorResponder interface {
	Respond(w http.ResponseWriter, r *http.Request, err error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}
