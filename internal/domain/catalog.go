package domain

// ReferenceKind справочная таблица, состоящая только из имени
type ReferenceKind struct {
	Table    string // brands
	IDColumn string // id_brand
	Label    string // Brand
}

var (
	BrandKind = ReferenceKind{Table: "brands", IDColumn: "id_brand", Label: "Brand"}
	ModelKind = ReferenceKind{Table: "models", IDColumn: "id_model", Label: "Model"}
	TrimKind  = ReferenceKind{Table: "trims", IDColumn: "id_trim", Label: "Trim"}
)

// NamedEntity запись справочника (марка, модель, комплектация)
type NamedEntity struct {
	ID   int64
	Name string
}

// Specs технические характеристики
// HorsePower хранится строкой: так исторически принимает API
type Specs struct {
	ID         int64
	Price      float64
	Engine     string
	Weight     float64
	HorsePower string
}

// Car автомобиль как комбинация справочников
type Car struct {
	ID      int64
	SpecsID int64
	TrimID  int64
	ModelID int64
	BrandID int64
}

// CarDetails автомобиль с развернутыми справочниками
type CarDetails struct {
	Car
	BrandName  string
	ModelName  string
	TrimName   string
	Price      float64
	Engine     string
	Weight     float64
	HorsePower string
}
