package domain

import "time"

// User пользователь, который отмечает замеченные автомобили
type User struct {
	ID        int64
	Username  string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
