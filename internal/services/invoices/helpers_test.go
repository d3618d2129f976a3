package invoices

import (
	"context"
	"fmt"
	"testing"
	"time"

	"invoice-dashboard-backend/internal/clock"
	"invoice-dashboard-backend/internal/migration"
	"invoice-dashboard-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testNow = time.Date(2024, 5, 6, 21, 15, 0, 0, time.UTC)

type revalidatorMock struct {
	mock.Mock
}

func (m *revalidatorMock) Revalidate(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func newRevalidator(err error) *revalidatorMock {
	m := &revalidatorMock{}
	m.On("Revalidate", mock.Anything, InvoicesPath).Return(err)
	return m
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migration.AutoMigrate(db))
	return db
}

func newTestService(t *testing.T, db *gorm.DB, rv *revalidatorMock) *Service {
	t.Helper()
	return New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		Revalidator: rv,
		Clock:       clock.NewFakeClock(testNow),
	})
}

func seedCustomer(t *testing.T, db *gorm.DB, name, email string) models.Customer {
	t.Helper()
	c := models.Customer{ID: uuid.New(), Name: name, Email: email, ImageURL: "/customers/" + name + ".png"}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func seedInvoice(t *testing.T, db *gorm.DB, customer models.Customer, amount int64, status, date string) models.Invoice {
	t.Helper()
	inv := models.Invoice{ID: uuid.New(), CustomerID: customer.ID, Amount: amount, Status: status, Date: date}
	require.NoError(t, db.Create(&inv).Error)
	return inv
}

func countInvoices(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Invoice{}).Count(&n).Error)
	return n
}
