package reference

import "errors"

var (
	// ErrNotFound возвращается, когда запись справочника не найдена
	ErrNotFound = errors.New("reference.repository: record not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reference.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reference.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reference.repository: failed to scan row")
)
