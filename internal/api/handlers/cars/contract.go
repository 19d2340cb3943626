package cars

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-CarSpot/internal/domain"
)

type CarRepository interface {
	List(ctx context.Context) ([]*domain.CarDetails, error)
	GetByID(ctx context.Context, id int64) (*domain.CarDetails, error)
	Create(ctx context.Context, car *domain.Car) (*domain.Car, error)
	Update(ctx context.Context, car *domain.Car) (*domain.Car, error)
	Delete(ctx context.Context, id int64) error
}

type ErrorResponder interface {
	Respond(w http.ResponseWriter, r *http.Request, err error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}
