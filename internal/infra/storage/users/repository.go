package users

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

const table = "users"

var columns = []string{"id_user", "username", "email", "created_at", "updated_at"}

// Repository репозиторий пользователей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает всех пользователей, новые первыми
func (r *Repository) List(ctx context.Context) ([]*domain.User, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, dberrors.Wrap("users.List", err))
	}
	defer rows.Close()

	result := make([]*domain.User, 0)
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: List - scan user: %v", ErrScanRow, err)
		}
		result = append(result, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - iterate rows: %w", ErrExecQuery, dberrors.Wrap("users.List", err))
	}

	return result, nil
}

// GetByID получает пользователя по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id_user": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var user domain.User
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&user.ID, &user.Username, &user.Email, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan user: %w", ErrScanRow, dberrors.Wrap("users.GetByID", err))
	}

	return &user, nil
}

// Create создает пользователя; ID и метки времени заполняются из БД
func (r *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query, args, err := psqlbuilder.Insert(table).
		Columns("username", "email", "created_at", "updated_at").
		Values(user.Username, user.Email, squirrel.Expr("NOW()"), squirrel.Expr("NOW()")).
		Suffix("RETURNING id_user, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = r.db.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, dberrors.Wrap("users.Create", err))
	}

	return user, nil
}

// Update обновляет имя и email пользователя
func (r *Repository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	query, args, err := psqlbuilder.Update(table).
		Set("username", user.Username).
		Set("email", user.Email).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id_user": user.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, dberrors.Wrap("users.Update", err))
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}

	return user, nil
}

// Delete удаляет пользователя
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id_user": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, dberrors.Wrap("users.Delete", err))
	}

	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
