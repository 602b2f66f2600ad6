package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/hiramaya/reservation-app/models"
	"github.com/hiramaya/reservation-app/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testBranch = "hirama"

var bookingSeq uint64

// setupTestDB membuat database SQLite in-memory terisolasi per test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Table{}, &models.Booking{}, &models.TableAssignment{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func createTable(t *testing.T, db *gorm.DB, table models.Table) models.Table {
	t.Helper()
	if table.BranchCode == "" {
		table.BranchCode = testBranch
	}
	if table.MinCapacity == 0 {
		table.MinCapacity = 1
	}
	if table.TableType == "" {
		table.TableType = models.TableTypeRegular
	}
	table.IsActive = true
	if err := db.Create(&table).Error; err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	return table
}

func createBooking(t *testing.T, db *gorm.DB, booking models.Booking) models.Booking {
	t.Helper()
	if booking.BranchCode == "" {
		booking.BranchCode = testBranch
	}
	if booking.Reference == "" {
		booking.Reference = fmt.Sprintf("ref-%s-%d", t.Name(), atomic.AddUint64(&bookingSeq, 1))
	}
	if booking.Status == "" {
		booking.Status = models.BookingStatusPending
	}
	if booking.Source == "" {
		booking.Source = "web"
	}
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("failed to create booking: %v", err)
	}
	return booking
}

func assignBookingToTable(t *testing.T, db *gorm.DB, bookingID, tableID uint) {
	t.Helper()
	assignment := models.TableAssignment{BookingID: bookingID, TableID: tableID}
	if err := db.Create(&assignment).Error; err != nil {
		t.Fatalf("failed to create assignment: %v", err)
	}
}
