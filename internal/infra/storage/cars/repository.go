package cars

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CarSpot/internal/domain"
	"github.com/m04kA/SMC-CarSpot/internal/infra/storage/dberrors"
	"github.com/m04kA/SMC-CarSpot/pkg/psqlbuilder"
)

const table = "cars"

// Repository репозиторий автомобилей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория автомобилей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// selectDetails запрос автомобиля вместе со справочниками и характеристиками
func selectDetails() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"cars.id_car",
		"cars.id_specs",
		"cars.id_trim",
		"cars.id_model",
		"cars.id_brand",
		"brands.name AS brand_name",
		"models.name AS model_name",
		"trims.name AS trim_name",
		"specs.price",
		"specs.engine",
		"specs.weight",
		"specs.horse_power",
	).
		From(table).
		Join("brands ON brands.id_brand = cars.id_brand").
		Join("models ON models.id_model = cars.id_model").
		Join("trims ON trims.id_trim = cars.id_trim").
		Join("specs ON specs.id_specs = cars.id_specs")
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanDetails(row scanner) (*domain.CarDetails, error) {
	var c domain.CarDetails
	err := row.Scan(
		&c.ID,
		&c.SpecsID,
		&c.TrimID,
		&c.ModelID,
		&c.BrandID,
		&c.BrandName,
		&c.ModelName,
		&c.TrimName,
		&c.Price,
		&c.Engine,
		&c.Weight,
		&c.HorsePower,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List возвращает все автомобили, отсортированные по марке и модели
func (r *Repository) List(ctx context.Context) ([]*domain.CarDetails, error) {
	query, args, err := selectDetails().
		OrderBy("brands.name", "models.name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, dberrors.Wrap("cars.List", err))
	}
	defer rows.Close()

	result := make([]*domain.CarDetails, 0)
	for rows.Next() {
		car, err := scanDetails(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan car: %v", ErrScanRow, err)
		}
		result = append(result, car)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - iterate rows: %w", ErrExecQuery, dberrors.Wrap("cars.List", err))
	}

	return result, nil
}

// GetByID получает автомобиль со справочниками по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.CarDetails, error) {
	query, args, err := selectDetails().
		Where(squirrel.Eq{"cars.id_car": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	car, err := scanDetails(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan car: %w", ErrScanRow, dberrors.Wrap("cars.GetByID", err))
	}

	return car, nil
}

// Create создает автомобиль; ссылка на несуществующий справочник
// дает ошибку вида dberrors.KindNoReferencedRow
func (r *Repository) Create(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	query, args, err := psqlbuilder.Insert(table).
		Columns("id_specs", "id_trim", "id_model", "id_brand").
		Values(car.SpecsID, car.TrimID, car.ModelID, car.BrandID).
		Suffix("RETURNING id_car").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&car.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, dberrors.Wrap("cars.Create", err))
	}

	return car, nil
}

// Update заменяет все ссылки автомобиля
func (r *Repository) Update(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	query, args, err := psqlbuilder.Update(table).
		Set("id_specs", car.SpecsID).
		Set("id_trim", car.TrimID).
		Set("id_model", car.ModelID).
		Set("id_brand", car.BrandID).
		Where(squirrel.Eq{"id_car": car.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, dberrors.Wrap("cars.Update", err))
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}

	return car, nil
}

// Delete удаляет автомобиль
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id_car": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, dberrors.Wrap("cars.Delete", err))
	}

	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrCarNotFound
	}
	return nil
}
