package users

import (
	"time"

	"github.com/m04kA/SMC-CarSpot/internal/domain"
)

// UserRow пользователь в формате строки таблицы
type UserRow struct {
	IDUser    int64     `json:"id_user"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserResponse ответ на создание и обновление
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserSpotRow замеченный пользователем автомобиль с характеристиками
type UserSpotRow struct {
	IDUser     int64     `json:"id_user"`
	IDCar      int64     `json:"id_car"`
	SpotedAt   time.Time `json:"spoted_at"`
	Location   string    `json:"location"`
	BrandName  string    `json:"brand_name"`
	ModelName  string    `json:"model_name"`
	TrimName   string    `json:"trim_name"`
	IDSpecs    int64     `json:"id_specs"`
	Price      float64   `json:"price"`
	Engine     string    `json:"engine"`
	Weight     float64   `json:"weight"`
	HorsePower string    `json:"horse_power"`
}

func newUserRow(u *domain.User) UserRow {
	return UserRow{
		IDUser:    u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Email: u.Email}
}

func newUserSpotRow(s *domain.SpotDetails) UserSpotRow {
	return UserSpotRow{
		IDUser:     s.UserID,
		IDCar:      s.CarID,
		SpotedAt:   s.SpottedAt,
		Location:   s.Location,
		BrandName:  s.BrandName,
		ModelName:  s.ModelName,
		TrimName:   s.TrimName,
		IDSpecs:    s.SpecsID,
		Price:      s.Price,
		Engine:     s.Engine,
		Weight:     s.Weight,
		HorsePower: s.HorsePower,
	}
}
