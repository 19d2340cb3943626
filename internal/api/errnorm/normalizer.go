package errnorm

import (
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-CarSpot/internal/api/handlers"
	"github.com/m04kA/SMC-CarSpot/internal/infra/storage/dberrors"
)

const (
	msgInternalError   = "Internal server error"
	msgUnexpectedError = "An unexpected error occurred"
	msgNotFound        = "Not found"
)

type outcome struct {
	status  int
	errText string
	message string
}

// outcomes ответ для каждого классифицированного вида ошибки хранилища
var outcomes = map[dberrors.Kind]outcome{
	dberrors.KindDuplicate: {
		status:  http.StatusConflict,
		errText: "Duplicate entry",
		message: "This record already exists in the database",
	},
	dberrors.KindNoReferencedRow: {
		status:  http.StatusBadRequest,
		errText: "Invalid reference",
		message: "Referenced record does not exist",
	},
	dberrors.KindRowIsReferenced: {
		status:  http.StatusConflict,
		errText: "Cannot delete",
		message: "This record is referenced by other records",
	},
	dberrors.KindBadField: {
		status:  http.StatusBadRequest,
		errText: "Database error",
		message: "Invalid field in query",
	},
}

// Normalizer переводит ошибки хранилища в HTTP-ответы
type Normalizer struct {
	logger  Logger
	metrics Metrics
	verbose bool
}

// NewNormalizer создает нормализатор; verbose включает текст ошибки в ответ 500
// (только для режима development). metrics может быть nil
func NewNormalizer(logger Logger, metrics Metrics, verbose bool) *Normalizer {
	return &Normalizer{
		logger:  logger,
		metrics: metrics,
		verbose: verbose,
	}
}

// Respond логирует ошибку и пишет ответ по таблице видов
func (n *Normalizer) Respond(w http.ResponseWriter, r *http.Request, err error) {
	kind := dberrors.KindOf(err)
	if n.metrics != nil {
		n.metrics.IncStorageError(kind.String())
	}

	out, ok := outcomes[kind]
	if !ok {
		n.logger.Error("%s %s - Unexpected error: %v", r.Method, r.URL.Path, err)
		n.respondUnknown(w, err)
		return
	}

	n.logger.Warn("%s %s - Storage error: kind=%s, error=%v", r.Method, r.URL.Path, kind, err)
	handlers.RespondErrorMessage(w, out.status, out.errText, out.message)
}

func (n *Normalizer) respondUnknown(w http.ResponseWriter, err error) {
	message := msgUnexpectedError
	if n.verbose && err != nil {
		message = err.Error()
	}
	handlers.RespondErrorMessage(w, http.StatusInternalServerError, msgInternalError, message)
}

// NotFound обработчик несуществующих маршрутов (и неподдерживаемых методов)
func (n *Normalizer) NotFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n.logger.Warn("%s %s - Route not found", r.Method, r.URL.Path)
		handlers.RespondErrorMessage(w, http.StatusNotFound, msgNotFound,
			fmt.Sprintf("Route %s %s not found", r.Method, r.URL.RequestURI()))
	})
}

// Recover перехватывает панику в обработчике и отвечает 500
func (n *Normalizer) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				n.Respond(w, r, fmt.Errorf("panic: %v", rec))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
