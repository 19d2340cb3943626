package cars

import "github.com/m04kA/SMC-CarSpot/internal/domain"

// CarRow автомобиль с названиями марки, модели, комплектации и характеристиками
type CarRow struct {
	IDCar      int64   `json:"id_car"`
	IDSpecs    int64   `json:"id_specs"`
	IDTrim     int64   `json:"id_trim"`
	IDModel    int64   `json:"id_model"`
	IDBrand    int64   `json:"id_brand"`
	BrandName  string  `json:"brand_name"`
	ModelName  string  `json:"model_name"`
	TrimName   string  `json:"trim_name"`
	Price      float64 `json:"price"`
	Engine     string  `json:"engine"`
	Weight     float64 `json:"weight"`
	HorsePower string  `json:"horse_power"`
}

// CarResponse ответ на создание и обновление
type CarResponse struct {
	ID      int64 `json:"id"`
	IDSpecs int64 `json:"id_specs"`
	IDTrim  int64 `json:"id_trim"`
	IDModel int64 `json:"id_model"`
	IDBrand int64 `json:"id_brand"`
}

func newCarRow(c *domain.CarDetails) CarRow {
	return CarRow{
		IDCar:      c.ID,
		IDSpecs:    c.SpecsID,
		IDTrim:     c.TrimID,
		IDModel:    c.ModelID,
		IDBrand:    c.BrandID,
		BrandName:  c.BrandName,
		ModelName:  c.ModelName,
		TrimName:   c.TrimName,
		Price:      c.Price,
		Engine:     c.Engine,
		Weight:     c.Weight,
		HorsePower: c.HorsePower,
	}
}

func newCarResponse(c *domain.Car) CarResponse {
	return CarResponse{
		ID:      c.ID,
		IDSpecs: c.SpecsID,
		IDTrim:  c.TrimID,
		IDModel: c.ModelID,
		IDBrand: c.BrandID,
	}
}
