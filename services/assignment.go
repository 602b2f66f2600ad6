package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/hiramaya/reservation-app/models"
	"github.com/hiramaya/reservation-app/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrTableUnavailable = errors.New("table is not available for this slot")
	ErrTableTooSmall    = errors.New("table capacity is below the party size")
	ErrTableInactive    = errors.New("table is not active")
)

// AssignmentService menulis tautan booking-meja. Pengecekan
// ketersediaan dan insert berjalan dalam satu transaksi, dengan row
// lock pada meja tujuan sebagai titik serialisasi: snapshot read di
// MySQL tidak saling memblokir, jadi transaksi saja tidak cukup.
type AssignmentService struct {
	DB         *gorm.DB
	BranchCode string
}

func NewAssignmentService(db *gorm.DB, branchCode string) *AssignmentService {
	return &AssignmentService{DB: db, BranchCode: branchCode}
}

// lockForUpdate menambahkan SELECT ... FOR UPDATE. SQLite tidak
// mengenal sintaksnya dan memang single-writer, jadi dilewati.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// slotConflicts menghitung booking aktif lain yang sudah menahan meja
// pada (tanggal, slot) yang sama.
func slotConflicts(tx *gorm.DB, tableID, excludeBookingID uint, date, timeSlot string) (int64, error) {
	var conflicts int64
	err := tx.Model(&models.TableAssignment{}).
		Joins("JOIN bookings ON bookings.id = table_assignments.booking_id").
		Where("table_assignments.table_id = ? AND table_assignments.booking_id <> ?", tableID, excludeBookingID).
		Where("bookings.date = ? AND bookings.time = ? AND bookings.status IN ?",
			date, timeSlot, models.ActiveBookingStatuses).
		Count(&conflicts).Error
	return conflicts, err
}

// AutoAssign memilih meja peringkat teratas untuk booking dan
// menyimpan assignment. Tidak ada kandidat bukan error: booking boleh
// berjalan tanpa meja dan staff menindaklanjuti manual (soft-fail).
func (s *AssignmentService) AutoAssign(bookingID uint, guests int, date, timeSlot string, strategy OptimizationStrategy) (*models.TableAssignment, error) {
	var assignment *models.TableAssignment

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		optimizer := NewTableOptimizer(tx, s.BranchCode)
		suggestions, err := optimizer.FindBestTables(guests, date, timeSlot, strategy)
		if err != nil {
			return err
		}

		// Scoring membaca snapshot; transaksi lain bisa saja merebut
		// kandidat sebelum insert di bawah. Kunci baris mejanya dulu
		// lalu cek ulang sebelum menulis, kandidat yang keburu terisi
		// dilewati.
		for _, candidate := range suggestions {
			var table models.Table
			if err := lockForUpdate(tx).First(&table, candidate.TableID).Error; err != nil {
				return err
			}

			conflicts, err := slotConflicts(tx, candidate.TableID, bookingID, date, timeSlot)
			if err != nil {
				return err
			}
			if conflicts > 0 {
				continue
			}

			assignment = &models.TableAssignment{
				BookingID:  bookingID,
				TableID:    candidate.TableID,
				AssignedAt: time.Now(),
				Notes:      fmt.Sprintf("Auto-assigned: %s", candidate.Reason),
			}
			return tx.Create(assignment).Error
		}

		utils.InfoLogger.Printf("No table for booking %d (%s %s, %d guests)", bookingID, date, timeSlot, guests)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if assignment != nil {
		utils.InfoLogger.Printf("Booking %d assigned to table %d", bookingID, assignment.TableID)
	}
	return assignment, nil
}

// Reassign memindahkan booking ke meja lain. Meja tujuan divalidasi
// dengan pengecekan yang sama seperti AutoAssign: harus aktif, cukup
// besar, dan belum terpakai pada slot booking. Assignment lama dihapus
// utuh lalu diganti record baru.
func (s *AssignmentService) Reassign(bookingID, newTableID uint, reason string) (*models.TableAssignment, error) {
	var assignment *models.TableAssignment

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.First(&booking, bookingID).Error; err != nil {
			return fmt.Errorf("load booking: %w", err)
		}

		// Lock dulu baru cek: dua reassign ke meja yang sama harus
		// antre di baris ini, bukan sama-sama lolos dari snapshot.
		var table models.Table
		if err := lockForUpdate(tx).First(&table, newTableID).Error; err != nil {
			return fmt.Errorf("load table: %w", err)
		}

		if !table.IsActive {
			return ErrTableInactive
		}
		if table.MaxCapacity < booking.Guests {
			return ErrTableTooSmall
		}

		// Meja tujuan tidak boleh menahan booking aktif lain di slot ini.
		conflicts, err := slotConflicts(tx, newTableID, bookingID, booking.Date, booking.Time)
		if err != nil {
			return err
		}
		if conflicts > 0 {
			return ErrTableUnavailable
		}

		if err := tx.Where("booking_id = ?", bookingID).Delete(&models.TableAssignment{}).Error; err != nil {
			return err
		}

		notes := "Reassigned"
		if reason != "" {
			notes = fmt.Sprintf("Reassigned: %s", reason)
		}
		assignment = &models.TableAssignment{
			BookingID:  bookingID,
			TableID:    newTableID,
			AssignedAt: time.Now(),
			Notes:      notes,
		}
		return tx.Create(assignment).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Booking %d reassigned to table %d", bookingID, newTableID)
	return assignment, nil
}
