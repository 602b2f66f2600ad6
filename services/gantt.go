package services

import (
	"fmt"

	"github.com/hiramaya/reservation-app/models"
	"gorm.io/gorm"
)

// Setiap booking dirender 90 menit (3 slot) terlepas dari waktu duduk
// aktual; ini aproksimasi tampilan, bukan durasi sebenarnya.
const ganttDurationSlots = 3

// GanttBooking adalah satu blok booking pada grid visualisasi.
type GanttBooking struct {
	ID            uint                 `json:"id"`
	Reference     string               `json:"reference"`
	Time          string               `json:"time"`
	SlotIndex     int                  `json:"slot_index"` // -1 jika waktu booking di luar grid
	Guests        int                  `json:"guests"`
	CustomerName  string               `json:"customer_name"`
	Status        models.BookingStatus `json:"status"`
	DurationSlots int                  `json:"duration_slots"`
	Notes         string               `json:"notes"`
}

// GanttTable adalah satu baris meja beserta blok bookingnya.
type GanttTable struct {
	ID          uint             `json:"id"`
	TableNumber string           `json:"table_number"`
	Name        string           `json:"name"`
	MaxCapacity int              `json:"max_capacity"`
	TableType   models.TableType `json:"table_type"`
	Zone        string           `json:"zone"`
	Bookings    []GanttBooking   `json:"bookings"`
}

// GanttData adalah payload lengkap untuk UI visualisasi jadwal.
type GanttData struct {
	Tables             []GanttTable   `json:"tables"`
	TimeSlots          []string       `json:"time_slots"`
	UnassignedBookings []GanttBooking `json:"unassigned_bookings"`
	SlotDuration       int            `json:"slot_duration"`
}

// GanttService memproyeksikan booking satu hari ke grid meja x slot.
type GanttService struct {
	DB         *gorm.DB
	BranchCode string
	Hours      OperatingHours
}

func NewGanttService(db *gorm.DB, branchCode string) *GanttService {
	return &GanttService{DB: db, BranchCode: branchCode, Hours: DefaultOperatingHours}
}

// BuildGanttData memuat roster dan booking (kecuali cancelled/no_show)
// lalu menempelkan blok booking ke setiap meja yang di-assign. Booking
// tanpa assignment dikumpulkan terpisah untuk triase manual.
func (s *GanttService) BuildGanttData(date string) (*GanttData, error) {
	var tables []models.Table
	err := s.DB.
		Where("branch_code = ? AND is_active = ?", s.BranchCode, true).
		Order("zone, table_number").
		Find(&tables).Error
	if err != nil {
		return nil, fmt.Errorf("load tables: %w", err)
	}

	var bookings []models.Booking
	err = s.DB.
		Preload("TableAssignments").
		Where("branch_code = ? AND date = ? AND status NOT IN ?", s.BranchCode, date,
			[]string{string(models.BookingStatusCancelled), string(models.BookingStatusNoShow)}).
		Order("time").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}

	timeSlots := s.Hours.DisplaySlots()
	slotIndex := make(map[string]int, len(timeSlots))
	for i, slot := range timeSlots {
		slotIndex[slot] = i
	}

	bookingsByTable := make(map[uint][]GanttBooking, len(tables))
	for _, t := range tables {
		bookingsByTable[t.ID] = []GanttBooking{}
	}
	unassigned := make([]GanttBooking, 0)

	for _, booking := range bookings {
		timeLabel := booking.Time
		if len(timeLabel) > 5 {
			timeLabel = timeLabel[:5]
		}

		// Waktu di luar grid diberi indeks -1 dan tetap dirender best-effort.
		index, ok := slotIndex[timeLabel]
		if !ok {
			index = -1
		}

		name := booking.GuestName
		if name == "" {
			name = "Guest"
		}

		block := GanttBooking{
			ID:            booking.ID,
			Reference:     booking.Reference,
			Time:          timeLabel,
			SlotIndex:     index,
			Guests:        booking.Guests,
			CustomerName:  name,
			Status:        booking.Status,
			DurationSlots: ganttDurationSlots,
			Notes:         booking.Note,
		}

		if len(booking.TableAssignments) == 0 {
			unassigned = append(unassigned, block)
			continue
		}
		for _, assignment := range booking.TableAssignments {
			if _, known := bookingsByTable[assignment.TableID]; known {
				bookingsByTable[assignment.TableID] = append(bookingsByTable[assignment.TableID], block)
			}
		}
	}

	ganttTables := make([]GanttTable, 0, len(tables))
	for _, t := range tables {
		ganttTables = append(ganttTables, GanttTable{
			ID:          t.ID,
			TableNumber: t.TableNumber,
			Name:        t.Name,
			MaxCapacity: t.MaxCapacity,
			TableType:   t.TableType,
			Zone:        t.Zone,
			Bookings:    bookingsByTable[t.ID],
		})
	}

	return &GanttData{
		Tables:             ganttTables,
		TimeSlots:          timeSlots,
		UnassignedBookings: unassigned,
		SlotDuration:       SlotDurationMinutes,
	}, nil
}
