package spots

import (
	"time"

	"github.com/m04kA/SMC-CarSpot/internal/domain"
)

// SpotRow spot вместе с пользователем и автомобилем
type SpotRow struct {
	IDUser     int64     `json:"id_user"`
	IDCar      int64     `json:"id_car"`
	SpotedAt   time.Time `json:"spoted_at"`
	Location   string    `json:"location"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	BrandName  string    `json:"brand_name"`
	ModelName  string    `json:"model_name"`
	TrimName   string    `json:"trim_name"`
	Price      float64   `json:"price"`
	Engine     string    `json:"engine"`
	Weight     float64   `json:"weight"`
	HorsePower string    `json:"horse_power"`
}

// SpotResponse ответ на создание и обновление
type SpotResponse struct {
	IDUser   int64  `json:"id_user"`
	IDCar    int64  `json:"id_car"`
	Location string `json:"location"`
}

type LocationStatResponse struct {
	Location string `json:"location"`
	Count    int64  `json:"count"`
}

type BrandStatResponse struct {
	BrandName string `json:"brand_name"`
	Count     int64  `json:"count"`
}

func newSpotRow(s *domain.SpotDetails) SpotRow {
	return SpotRow{
		IDUser:     s.UserID,
		IDCar:      s.CarID,
		SpotedAt:   s.SpottedAt,
		Location:   s.Location,
		Username:   s.Username,
		Email:      s.Email,
		BrandName:  s.BrandName,
		ModelName:  s.ModelName,
		TrimName:   s.TrimName,
		Price:      s.Price,
		Engine:     s.Engine,
		Weight:     s.Weight,
		HorsePower: s.HorsePower,
	}
}

func newSpotResponse(s *domain.Spot) SpotResponse {
	return SpotResponse{IDUser: s.UserID, IDCar: s.CarID, Location: s.Location}
}
