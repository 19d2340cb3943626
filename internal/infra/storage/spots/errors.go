package spots

import "errors"

var (
	// ErrSpotNotFound возвращается, когда spot не найден
	ErrSpotNotFound = errors.New("spots.repository: spot not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("spots.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("spots.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("spots.repository: failed to scan row")
)
