package spots

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarSpot/internal/domain"
	"github.com/m04kA/SMC-CarSpot/internal/infra/storage/dberrors"
)

var detailColumns = []string{
	"id_user", "id_car", "spoted_at", "location", "username", "email",
	"brand_name", "model_name", "trim_name",
	"id_specs", "price", "engine", "weight", "horse_power",
}

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO spots \(id_user,id_car,spoted_at,location\) VALUES \(\$1,\$2,NOW\(\),\$3\) RETURNING spoted_at`).
		WithArgs(int64(1), int64(2), "Downtown").
		WillReturnRows(sqlmock.NewRows([]string{"spoted_at"}).AddRow(now))

	spot, err := repo.Create(context.Background(), &domain.Spot{UserID: 1, CarID: 2, Location: "Downtown"})
	require.NoError(t, err)
	assert.Equal(t, now, spot.SpottedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_Duplicate(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO spots`).
		WillReturnError(&pq.Error{Code: "23505", Message: `duplicate key value violates unique constraint "spots_pkey"`})

	_, err := repo.Create(context.Background(), &domain.Spot{UserID: 1, CarID: 2, Location: "Downtown"})
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.Equal(t, dberrors.KindDuplicate, dberrors.KindOf(err))
}

func TestRepository_GetByUser(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(`WHERE spots.id_user = \$1 ORDER BY spots.spoted_at DESC`).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(detailColumns).
			AddRow(4, 2, now, "Harbor", "eve", "eve@example.com", "BMW", "M3", "CS", 3, 80000.0, "I6", 1700.0, "510"))

	list, err := repo.GetByUser(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Harbor", list[0].Location)
	assert.Equal(t, int64(3), list[0].SpecsID)
}

func TestRepository_UpdateLocation_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`UPDATE spots SET location = \$1, spoted_at = NOW\(\) WHERE id_car = \$2 AND id_user = \$3 RETURNING spoted_at`).
		WithArgs("Airport", int64(2), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"spoted_at"}))

	_, err := repo.UpdateLocation(context.Background(), &domain.Spot{UserID: 1, CarID: 2, Location: "Airport"})
	assert.ErrorIs(t, err, ErrSpotNotFound)
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`DELETE FROM spots WHERE id_car = \$1 AND id_user = \$2`).
		WithArgs(int64(2), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 1, 2))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_BrandStats(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT brands.name AS brand_name, COUNT\(\*\) AS count FROM spots JOIN cars ON cars.id_car = spots.id_car JOIN brands ON brands.id_brand = cars.id_brand GROUP BY brands.name ORDER BY count DESC, brand_name`).
		WillReturnRows(sqlmock.NewRows([]string{"brand_name", "count"}).
			AddRow("Audi", 5).
			AddRow("BMW", 2))

	stats, err := repo.BrandStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []*domain.BrandStat{{BrandName: "Audi", Count: 5}, {BrandName: "BMW", Count: 2}}, stats)
}

func TestRepository_LocationStats(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT location, COUNT\(\*\) AS count FROM spots GROUP BY location ORDER BY count DESC, location`).
		WillReturnRows(sqlmock.NewRows([]string{"location", "count"}).AddRow("Downtown", 3))

	stats, err := repo.LocationStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []*domain.LocationStat{{Location: "Downtown", Count: 3}}, stats)
}
