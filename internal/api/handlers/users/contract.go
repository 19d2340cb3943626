package users

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-CarSpot/internal/domain"
)

type UserRepository interface {
	List(ctx context.Context) ([]*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

type SpotRepository interface {
	GetByUser(ctx context.Context, userID int64) ([]*domain.SpotDetails, error)
}

// ErrorResponder отвечает на ошибки хранилища (см. errnorm.Normalizer)
type ErrorResponder interface {
	Respond(w http.ResponseWriter, r *http.Request, err error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}
