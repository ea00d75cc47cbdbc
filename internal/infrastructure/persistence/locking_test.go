package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// The lock clause is gated on the dialect, so the sqlite-backed tests never
// see it. These verify the postgres side with a mocked connection.

func setupMockPostgres(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestGormBranchRepository_FindByIDForUpdate_LocksOnPostgres(t *testing.T) {
	db, mock := setupMockPostgres(t)
	repo := NewGormBranchRepository(db)

	rows := sqlmock.NewRows([]string{
		"id", "code", "name", "role", "allocated_syp", "allocated_usd", "tax_rate", "created_at", "updated_at",
	}).AddRow(int64(1), "DMS", "Damascus Central", "NORMAL", "250000", "75", "5", time.Now(), time.Now())

	mock.ExpectQuery(`SELECT (.+) FROM "branches" WHERE id = \$1(.+)FOR UPDATE`).
		WithArgs(int64(1), 1).
		WillReturnRows(rows)

	branch, err := repo.FindByIDForUpdate(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "DMS", branch.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTransactionRepository_FindByIDForUpdate_LocksOnPostgres(t *testing.T) {
	db, mock := setupMockPostgres(t)
	repo := NewGormTransactionRepository(db)

	id := uuid.New()
	rows := sqlmock.NewRows([]string{
		"id", "sender_name", "receiver_name", "amount", "base_amount", "benefited_amount",
		"tax_rate", "tax_amount", "currency", "destination_branch_id", "status", "employee_id", "date",
	}).AddRow(id.String(), "Ahmad", "Samir", "100000", "90000", "10000",
		"5", "500", "SYP", int64(2), "processing", int64(7), time.Now())

	mock.ExpectQuery(`SELECT (.+) FROM "transactions" WHERE id = \$1(.+)FOR UPDATE`).
		WithArgs(id, 1).
		WillReturnRows(rows)

	txn, err := repo.FindByIDForUpdate(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, txn.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormNotificationRepository_UpdateStatusByTransaction_SQL(t *testing.T) {
	db, mock := setupMockPostgres(t)
	repo := NewGormNotificationRepository(db)

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "notifications" SET (.+) WHERE transaction_id = \$3`).
		WithArgs("sent", sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateStatusByTransaction(context.Background(), id, "sent")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
