package dbmetrics

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observation struct {
	operation string
	failed    bool
}

type fakeCollector struct {
	observed []observation
	pools    int
}

func (f *fakeCollector) ObserveDBQuery(operation string, failed bool, _ time.Duration) {
	f.observed = append(f.observed, observation{operation: operation, failed: failed})
}

func (f *fakeCollector) SetDBPoolStats(_, _, _ int, _ int64) {
	f.pools++
}

func TestDB_RecordsOperations(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	collector := &fakeCollector{}
	db := Wrap(sqlDB, collector)

	mock.ExpectExec("DELETE FROM brands").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id_brand").WillReturnRows(sqlmock.NewRows([]string{"id_brand"}).AddRow(1))

	_, err = db.ExecContext(context.Background(), "DELETE FROM brands WHERE id_brand = $1", 1)
	require.NoError(t, err)

	rows, err := db.QueryContext(context.Background(), "SELECT id_brand FROM brands")
	require.NoError(t, err)
	rows.Close()

	require.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, []observation{
		{operation: "delete", failed: false},
		{operation: "select", failed: false},
	}, collector.observed)
}

func TestDB_CollectPoolStatsStops(t *testing.T) {
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	collector := &fakeCollector{}
	db := Wrap(sqlDB, collector)

	stopCh := make(chan struct{})
	done := make(chan struct{})
	go func() {
		db.collectPoolStats(time.Hour, stopCh)
		close(done)
	}()
	close(stopCh)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("collector did not stop")
	}
	assert.Equal(t, 1, collector.pools)
}

func TestOperationOf(t *testing.T) {
	assert.Equal(t, "insert", operationOf("  INSERT INTO users"))
	assert.Equal(t, "unknown", operationOf(""))
}
