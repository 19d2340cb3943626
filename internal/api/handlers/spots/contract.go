package spots

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-CarSpot/internal/domain"
)

type SpotRepository interface {
	List(ctx context.Context) ([]*domain.SpotDetails, error)
	GetByKey(ctx context.Context, userID, carID int64) (*domain.SpotDetails, error)
	Create(ctx context.Context, spot *domain.Spot) (*domain.Spot, error)
	UpdateLocation(ctx context.Context, spot *domain.Spot) (*domain.Spot, error)
	Delete(ctx context.Context, userID, carID int64) error
	LocationStats(ctx context.Context) ([]*domain.LocationStat, error)
	BrandStats(ctx context.Context) ([]*domain.BrandStat, error)
}

type ErrorResponder interface {
	Respond(w http.ResponseWriter, r *http.Request, err error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}
