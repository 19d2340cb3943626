package reference

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-CarSpot/internal/domain"
)

// Repository справочник (id, name): brands, models или trims
type Repository interface {
	Kind() domain.ReferenceKind
	List(ctx context.Context) ([]*domain.NamedEntity, error)
	GetByID(ctx context.Context, id int64) (*domain.NamedEntity, error)
	Create(ctx context.Context, name string) (*domain.NamedEntity, error)
	Update(ctx context.Context, entity *domain.NamedEntity) (*domain.NamedEntity, error)
	Delete(ctx context.Context, id int64) error
}

type ErrorResponder interface {
	Respond(w http.ResponseWriter, r *http.Request, err error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}
