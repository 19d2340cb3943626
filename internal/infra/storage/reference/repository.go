package reference

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

// Repository общий репозиторий для справочников вида (id, name):
// brands, models, trims
type Repository struct {
	db   DBExecutor
	kind domain.ReferenceKind
}

// NewRepository создает репозиторий для указанной таблицы справочника
func NewRepository(db DBExecutor, kind domain.ReferenceKind) *Repository {
	return &Repository{db: db, kind: kind}
}

// Kind возвращает описание таблицы, с которой работает репозиторий
func (r *Repository) Kind() domain.ReferenceKind {
	return r.kind
}

// List возвращает все записи, отсортированные по имени
func (r *Repository) List(ctx context.Context) ([]*domain.NamedEntity, error) {
	query, args, err := psqlbuilder.Select(r.kind.IDColumn, "name").
		From(r.kind.Table).
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List %s - execute query: %w", ErrExecQuery, r.kind.Table, r.wrap("List", err))
	}
	defer rows.Close()

	result := make([]*domain.NamedEntity, 0)
	for rows.Next() {
		var entity domain.NamedEntity
		if err := rows.Scan(&entity.ID, &entity.Name); err != nil {
			return nil, fmt.Errorf("%w: List %s - scan row: %v", ErrScanRow, r.kind.Table, err)
		}
		result = append(result, &entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List %s - iterate rows: %w", ErrExecQuery, r.kind.Table, r.wrap("List", err))
	}

	return result, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.NamedEntity, error) {
	query, args, err := psqlbuilder.Select(r.kind.IDColumn, "name").
		From(r.kind.Table).
		Where(squirrel.Eq{r.kind.IDColumn: id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var entity domain.NamedEntity
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&entity.ID, &entity.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID %s - scan row: %w", ErrScanRow, r.kind.Table, r.wrap("GetByID", err))
	}

	return &entity, nil
}

// Create создает запись и возвращает ее с присвоенным ID
func (r *Repository) Create(ctx context.Context, name string) (*domain.NamedEntity, error) {
	query, args, err := psqlbuilder.Insert(r.kind.Table).
		Columns("name").
		Values(name).
		Suffix("RETURNING " + r.kind.IDColumn).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	entity := domain.NamedEntity{Name: name}
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&entity.ID); err != nil {
		return nil, fmt.Errorf("%w: Create %s - execute insert: %w", ErrExecQuery, r.kind.Table, r.wrap("Create", err))
	}

	return &entity, nil
}

// Update переименовывает запись
func (r *Repository) Update(ctx context.Context, entity *domain.NamedEntity) (*domain.NamedEntity, error) {
	query, args, err := psqlbuilder.Update(r.kind.Table).
		Set("name", entity.Name).
		Where(squirrel.Eq{r.kind.IDColumn: entity.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Update %s - execute update: %w", ErrExecQuery, r.kind.Table, r.wrap("Update", err))
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}

	return entity, nil
}

// Delete удаляет запись; если на нее ссылаются автомобили,
// возвращается ошибка вида dberrors.KindRowIsReferenced
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Delete(r.kind.Table).
		Where(squirrel.Eq{r.kind.IDColumn: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete %s - execute delete: %w", ErrExecQuery, r.kind.Table, r.wrap("Delete", err))
	}

	return requireAffected(res)
}

func (r *Repository) wrap(op string, err error) error {
	return dberrors.Wrap(r.kind.Table+"."+op, err)
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
