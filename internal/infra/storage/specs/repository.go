package specs

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

const table = "specs"

var columns = []string{"id_specs", "price", "engine", "weight", "horse_power"}

// Repository репозиторий технических характеристик
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория характеристик
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает все характеристики в порядке создания
func (r *Repository) List(ctx context.Context) ([]*domain.Specs, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("id_specs").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, dberrors.Wrap("specs.List", err))
	}
	defer rows.Close()

	result := make([]*domain.Specs, 0)
	for rows.Next() {
		var s domain.Specs
		if err := rows.Scan(&s.ID, &s.Price, &s.Engine, &s.Weight, &s.HorsePower); err != nil {
			return nil, fmt.Errorf("%w: List - scan specs: %v", ErrScanRow, err)
		}
		result = append(result, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - iterate rows: %w", ErrExecQuery, dberrors.Wrap("specs.List", err))
	}

	return result, nil
}

// GetByID получает характеристики по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Specs, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id_specs": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Specs
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.Price, &s.Engine, &s.Weight, &s.HorsePower)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSpecsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan specs: %w", ErrScanRow, dberrors.Wrap("specs.GetByID", err))
	}

	return &s, nil
}

// Create создает характеристики
func (r *Repository) Create(ctx context.Context, s *domain.Specs) (*domain.Specs, error) {
	query, args, err := psqlbuilder.Insert(table).
		Columns("price", "engine", "weight", "horse_power").
		Values(s.Price, s.Engine, s.Weight, s.HorsePower).
		Suffix("RETURNING id_specs").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&s.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, dberrors.Wrap("specs.Create", err))
	}

	return s, nil
}

// Update полностью заменяет характеристики
func (r *Repository) Update(ctx context.Context, s *domain.Specs) (*domain.Specs, error) {
	query, args, err := psqlbuilder.Update(table).
		Set("price", s.Price).
		Set("engine", s.Engine).
		Set("weight", s.Weight).
		Set("horse_power", s.HorsePower).
		Where(squirrel.Eq{"id_specs": s.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, dberrors.Wrap("specs.Update", err))
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}

	return s, nil
}

// Delete удаляет характеристики
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id_specs": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, dberrors.Wrap("specs.Delete", err))
	}

	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrSpecsNotFound
	}
	return nil
}
