package health

import "time"

// Clock интерфейс для получения текущего времени (для тестирования)
type Clock interface {
	Now() time.Time
}
