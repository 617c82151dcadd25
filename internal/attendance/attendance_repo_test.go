package attendance

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// The repository returned by WithTx must execute on the transaction itself,
// not the pooled handle; the ordered mock would reject an UPDATE arriving
// outside the Begin/Commit bracket.
func TestRepository_WithTx_RunsStatementsOnTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	repo := NewRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "attendance" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	assert.NoError(t, err)

	now := time.Now().UTC()
	row := &Attendance{
		ID:         uuid.New(),
		EmployeeID: uuid.New(),
		Date:       now.Truncate(24 * time.Hour),
		CheckIn:    &now,
		Status:     StatusCheckIn,
	}
	assert.NoError(t, repo.WithTx(tx).Update(context.Background(), row))
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
