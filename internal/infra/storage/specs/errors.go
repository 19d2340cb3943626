package specs

import "errors"

var (
	// ErrSpecsNotFound возвращается, когда характеристики не найдены
	ErrSpecsNotFound = errors.New("specs.repository: specs not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("specs.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("specs.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("specs.repository: failed to scan row")
)
