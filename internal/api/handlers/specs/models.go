package specs

import "github.com/m04kA/SMC-CarSpot/internal/domain"

// SpecsRow характеристики в формате строки таблицы
type SpecsRow struct {
	IDSpecs    int64   `json:"id_specs"`
	Price      float64 `json:"price"`
	Engine     string  `json:"engine"`
	Weight     float64 `json:"weight"`
	HorsePower string  `json:"horse_power"`
}

// SpecsResponse ответ на создание и обновление
type SpecsResponse struct {
	ID         int64   `json:"id"`
	Price      float64 `json:"price"`
	Engine     string  `json:"engine"`
	Weight     float64 `json:"weight"`
	HorsePower string  `json:"horse_power"`
}

func newSpecsRow(s *domain.Specs) SpecsRow {
	return SpecsRow{
		IDSpecs:    s.ID,
		Price:      s.Price,
		Engine:     s.Engine,
		Weight:     s.Weight,
		HorsePower: s.HorsePower,
	}
}

func newSpecsResponse(s *domain.Specs) SpecsResponse {
	return SpecsResponse{
		ID:         s.ID,
		Price:      s.Price,
		Engine:     s.Engine,
		Weight:     s.Weight,
		HorsePower: s.HorsePower,
	}
}
