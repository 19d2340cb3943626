package dberrors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// Kind нормализованный вид ошибки хранилища
type Kind int

const (
	// KindUnknown любая неклассифицированная ошибка
	KindUnknown Kind = iota
	// KindDuplicate нарушение уникального ограничения
	KindDuplicate
	// KindNoReferencedRow вставка/обновление ссылается на несуществующую запись
	KindNoReferencedRow
	// KindRowIsReferenced удаление записи, на которую ссылаются другие
	KindRowIsReferenced
	// KindBadField запрос обращается к несуществующей колонке
	KindBadField
)

// Коды SQLSTATE PostgreSQL
const (
	codeUniqueViolation     pq.ErrorCode = "23505"
	codeForeignKeyViolation pq.ErrorCode = "23503"
	codeUndefinedColumn     pq.ErrorCode = "42703"
)

// Сообщение PostgreSQL для FK-нарушения со стороны удаляемой записи:
// update or delete on table "brands" violates foreign key constraint ... on table "cars"
const referencedPrefix = "update or delete on table"

func (k Kind) String() string {
	switch k {
	case KindDuplicate:
		return "duplicate"
	case KindNoReferencedRow:
		return "no_referenced_row"
	case KindRowIsReferenced:
		return "row_is_referenced"
	case KindBadField:
		return "bad_field"
	default:
		return "unknown"
	}
}

// Error ошибка хранилища с нормализованным видом
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Classify определяет вид ошибки драйвера
func Classify(err error) Kind {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return KindUnknown
	}

	switch pqErr.Code {
	case codeUniqueViolation:
		return KindDuplicate
	case codeForeignKeyViolation:
		if strings.HasPrefix(pqErr.Message, referencedPrefix) {
			return KindRowIsReferenced
		}
		return KindNoReferencedRow
	case codeUndefinedColumn:
		return KindBadField
	default:
		return KindUnknown
	}
}

// Wrap оборачивает ошибку драйвера в *Error; nil остается nil
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: Classify(err), Op: op, Err: err}
}

// KindOf возвращает вид ошибки из цепочки, KindUnknown если *Error в ней нет
func KindOf(err error) Kind {
	var dbErr *Error
	if errors.As(err, &dbErr) {
		return dbErr.Kind
	}
	return KindUnknown
}
