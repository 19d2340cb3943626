package validation

import "github.com/m04kA/SMC-CarSpot/internal/domain"

var (
	// User тело POST/PUT /users
	User = newValidator("user",
		text("username", "Username", domain.MaxUsernameLength),
		emailField("email", "Email", domain.MaxEmailLength),
	)

	// Spot тело POST /spots
	Spot = newValidator("spot",
		idField("id_user", "user"),
		idField("id_car", "car"),
		text("location", "Location", domain.MaxLocationLength),
	)

	// SpotLocation тело PUT /spots/{id_user}/{id_car}: ключ берется из пути
	SpotLocation = newValidator("spot_location",
		text("location", "Location", domain.MaxLocationLength),
	)

	// Car тело POST/PUT /cars
	Car = newValidator("car",
		idField("id_specs", "specs"),
		idField("id_trim", "trim"),
		idField("id_model", "model"),
		idField("id_brand", "brand"),
	)

	// Specs тело POST/PUT /specs
	// horse_power проверяется как непустая строка, а не как число
	Specs = newValidator("specs",
		nonNegative("price", "price"),
		text("engine", "Engine type", domain.MaxEngineLength),
		nonNegative("weight", "weight"),
		opaque("horse_power", "Horse power"),
	)

	// Name тело справочников: brands, models, trims
	Name = newValidator("name",
		text("name", "Name", domain.MaxNameLength),
	)
)
