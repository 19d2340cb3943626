package domain

import "time"

// Spot факт того, что пользователь заметил автомобиль в определенном месте
// Идентифицируется парой (UserID, CarID)
type Spot struct {
	UserID    int64
	CarID     int64
	SpottedAt time.Time
	Location  string
}

// SpotDetails spot вместе с данными пользователя и автомобиля
type SpotDetails struct {
	Spot
	Username   string
	Email      string
	BrandName  string
	ModelName  string
	TrimName   string
	SpecsID    int64
	Price      float64
	Engine     string
	Weight     float64
	HorsePower string
}

// LocationStat количество spots по локации
type LocationStat struct {
	Location string
	Count    int64
}

// BrandStat количество spots по марке
type BrandStat struct {
	BrandName string
	Count     int64
}
