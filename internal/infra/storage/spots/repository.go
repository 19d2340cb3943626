package spots

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

const table = "spots"

// Repository репозиторий spots (наблюдений автомобилей)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория spots
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// selectDetails запрос spot вместе с пользователем, автомобилем и его справочниками
func selectDetails() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"spots.id_user",
		"spots.id_car",
		"spots.spoted_at",
		"spots.location",
		"users.username",
		"users.email",
		"brands.name AS brand_name",
		"models.name AS model_name",
		"trims.name AS trim_name",
		"specs.id_specs",
		"specs.price",
		"specs.engine",
		"specs.weight",
		"specs.horse_power",
	).
		From(table).
		Join("users ON users.id_user = spots.id_user").
		Join("cars ON cars.id_car = spots.id_car").
		Join("brands ON brands.id_brand = cars.id_brand").
		Join("models ON models.id_model = cars.id_model").
		Join("trims ON trims.id_trim = cars.id_trim").
		Join("specs ON specs.id_specs = cars.id_specs")
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanDetails(row scanner) (*domain.SpotDetails, error) {
	var s domain.SpotDetails
	err := row.Scan(
		&s.UserID,
		&s.CarID,
		&s.SpottedAt,
		&s.Location,
		&s.Username,
		&s.Email,
		&s.BrandName,
		&s.ModelName,
		&s.TrimName,
		&s.SpecsID,
		&s.Price,
		&s.Engine,
		&s.Weight,
		&s.HorsePower,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// List возвращает все spots, новые первыми
func (r *Repository) List(ctx context.Context) ([]*domain.SpotDetails, error) {
	return r.listDetails(ctx, "List", selectDetails())
}

// GetByUser возвращает spots пользователя, новые первыми
func (r *Repository) GetByUser(ctx context.Context, userID int64) ([]*domain.SpotDetails, error) {
	return r.listDetails(ctx, "GetByUser", selectDetails().Where(squirrel.Eq{"spots.id_user": userID}))
}

func (r *Repository) listDetails(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.SpotDetails, error) {
	query, args, err := builder.OrderBy("spots.spoted_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, dberrors.Wrap("spots."+op, err))
	}
	defer rows.Close()

	result := make([]*domain.SpotDetails, 0)
	for rows.Next() {
		spot, err := scanDetails(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan spot: %v", ErrScanRow, op, err)
		}
		result = append(result, spot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - iterate rows: %w", ErrExecQuery, op, dberrors.Wrap("spots."+op, err))
	}

	return result, nil
}

// GetByKey получает spot по составному ключу (id_user, id_car)
func (r *Repository) GetByKey(ctx context.Context, userID, carID int64) (*domain.SpotDetails, error) {
	query, args, err := selectDetails().
		Where(squirrel.Eq{"spots.id_user": userID, "spots.id_car": carID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByKey - build select query: %v", ErrBuildQuery, err)
	}

	spot, err := scanDetails(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSpotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByKey - scan spot: %w", ErrScanRow, dberrors.Wrap("spots.GetByKey", err))
	}

	return spot, nil
}

// Create регистрирует spot с текущим временем; повторный spot той же пары
// (id_user, id_car) дает ошибку вида dberrors.KindDuplicate
func (r *Repository) Create(ctx context.Context, spot *domain.Spot) (*domain.Spot, error) {
	query, args, err := psqlbuilder.Insert(table).
		Columns("id_user", "id_car", "spoted_at", "location").
		Values(spot.UserID, spot.CarID, squirrel.Expr("NOW()"), spot.Location).
		Suffix("RETURNING spoted_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&spot.SpottedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, dberrors.Wrap("spots.Create", err))
	}

	return spot, nil
}

// UpdateLocation меняет локацию spot и обновляет время наблюдения
func (r *Repository) UpdateLocation(ctx context.Context, spot *domain.Spot) (*domain.Spot, error) {
	query, args, err := psqlbuilder.Update(table).
		Set("location", spot.Location).
		Set("spoted_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id_user": spot.UserID, "id_car": spot.CarID}).
		Suffix("RETURNING spoted_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateLocation - build update query: %v", ErrBuildQuery, err)
	}

	err = r.db.QueryRowContext(ctx, query, args...).Scan(&spot.SpottedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSpotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateLocation - execute update: %w", ErrExecQuery, dberrors.Wrap("spots.UpdateLocation", err))
	}

	return spot, nil
}

// Delete удаляет spot по составному ключу
func (r *Repository) Delete(ctx context.Context, userID, carID int64) error {
	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id_user": userID, "id_car": carID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, dberrors.Wrap("spots.Delete", err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrSpotNotFound
	}

	return nil
}

// LocationStats количество spots по локациям, по убыванию
func (r *Repository) LocationStats(ctx context.Context) ([]*domain.LocationStat, error) {
	query, args, err := psqlbuilder.Select("location", "COUNT(*) AS count").
		From(table).
		GroupBy("location").
		OrderBy("count DESC", "location").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: LocationStats - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: LocationStats - execute query: %w", ErrExecQuery, dberrors.Wrap("spots.LocationStats", err))
	}
	defer rows.Close()

	result := make([]*domain.LocationStat, 0)
	for rows.Next() {
		var stat domain.LocationStat
		if err := rows.Scan(&stat.Location, &stat.Count); err != nil {
			return nil, fmt.Errorf("%w: LocationStats - scan row: %v", ErrScanRow, err)
		}
		result = append(result, &stat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: LocationStats - iterate rows: %w", ErrExecQuery, dberrors.Wrap("spots.LocationStats", err))
	}

	return result, nil
}

// BrandStats количество spots по маркам, по убыванию
func (r *Repository) BrandStats(ctx context.Context) ([]*domain.BrandStat, error) {
	query, args, err := psqlbuilder.Select("brands.name AS brand_name", "COUNT(*) AS count").
		From(table).
		Join("cars ON cars.id_car = spots.id_car").
		Join("brands ON brands.id_brand = cars.id_brand").
		GroupBy("brands.name").
		OrderBy("count DESC", "brand_name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: BrandStats - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: BrandStats - execute query: %w", ErrExecQuery, dberrors.Wrap("spots.BrandStats", err))
	}
	defer rows.Close()

	result := make([]*domain.BrandStat, 0)
	for rows.Next() {
		var stat domain.BrandStat
		if err := rows.Scan(&stat.BrandName, &stat.Count); err != nil {
			return nil, fmt.Errorf("%w: BrandStats - scan row: %v", ErrScanRow, err)
		}
		result = append(result, &stat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: BrandStats - iterate rows: %w", ErrExecQuery, dberrors.Wrap("spots.BrandStats", err))
	}

	return result, nil
}
