package services

import (
	"fmt"
	"math"
	"sort"

	"github.com/hiramaya/reservation-app/models"
	"gorm.io/gorm"
)

// TimeSlotSummary merangkum okupansi satu slot dalam sehari.
// OccupiedTables dihitung dari jumlah booking pada slot tersebut
// dengan asumsi satu meja per booking.
type TimeSlotSummary struct {
	TimeSlot          string  `json:"time_slot"`
	TotalTables       int     `json:"total_tables"`
	AvailableTables   int     `json:"available_tables"`
	OccupiedTables    int     `json:"occupied_tables"`
	TotalCapacity     int     `json:"total_capacity"`
	UsedCapacity      int     `json:"used_capacity"`
	AvailableCapacity int     `json:"available_capacity"`
	UtilizationRate   float64 `json:"utilization_rate"` // persen, 1 desimal
}

// OptimizationInsight adalah observasi turunan untuk staff dashboard.
type OptimizationInsight struct {
	Type     string                 `json:"type"` // "warning", "opportunity", "suggestion"
	Title    string                 `json:"title"`
	Message  string                 `json:"message"`
	Priority int                    `json:"priority"` // 1-5
	Action   string                 `json:"action,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

// Ambang insight utilization.
const (
	highUtilizationRate     = 80.0
	criticalUtilizationRate = 90.0
	lowUtilizationRate      = 30.0
	lowUtilizationFromSlot  = "18:00"
	wasteInsightThreshold   = 3
)

// AnalyticsService menghitung utilisasi dan insight per cabang.
type AnalyticsService struct {
	DB         *gorm.DB
	BranchCode string
	Hours      OperatingHours
}

func NewAnalyticsService(db *gorm.DB, branchCode string) *AnalyticsService {
	return &AnalyticsService{DB: db, BranchCode: branchCode, Hours: DefaultOperatingHours}
}

// TimeSlotSummaries menghasilkan satu ringkasan per slot bookable
// untuk tanggal target, termasuk slot tanpa booking sama sekali.
func (s *AnalyticsService) TimeSlotSummaries(date string) ([]TimeSlotSummary, error) {
	var tables []models.Table
	err := s.DB.
		Where("branch_code = ? AND is_active = ?", s.BranchCode, true).
		Find(&tables).Error
	if err != nil {
		return nil, fmt.Errorf("load tables: %w", err)
	}

	totalCapacity := 0
	for _, t := range tables {
		totalCapacity += t.MaxCapacity
	}

	var bookings []models.Booking
	err = s.DB.
		Where("branch_code = ? AND date = ? AND status IN ?", s.BranchCode, date, models.ActiveBookingStatuses).
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}

	bookingsByTime := make(map[string][]models.Booking)
	for _, b := range bookings {
		bookingsByTime[b.Time] = append(bookingsByTime[b.Time], b)
	}

	var summaries []TimeSlotSummary
	for _, slot := range s.Hours.BookableSlots() {
		slotBookings := bookingsByTime[slot]

		usedCapacity := 0
		for _, b := range slotBookings {
			usedCapacity += b.Guests
		}

		occupied := len(slotBookings)
		utilization := 0.0
		if totalCapacity > 0 {
			utilization = float64(usedCapacity) / float64(totalCapacity) * 100
		}

		summaries = append(summaries, TimeSlotSummary{
			TimeSlot:          slot,
			TotalTables:       len(tables),
			AvailableTables:   len(tables) - occupied,
			OccupiedTables:    occupied,
			TotalCapacity:     totalCapacity,
			UsedCapacity:      usedCapacity,
			AvailableCapacity: totalCapacity - usedCapacity,
			UtilizationRate:   math.Round(utilization*10) / 10,
		})
	}
	return summaries, nil
}

// GenerateInsights menurunkan insight warning/opportunity/suggestion
// dari ringkasan slot dan deteksi pemborosan kursi, diurutkan menurun
// berdasarkan prioritas.
func (s *AnalyticsService) GenerateInsights(date string) ([]OptimizationInsight, error) {
	summaries, err := s.TimeSlotSummaries(date)
	if err != nil {
		return nil, err
	}

	insights := make([]OptimizationInsight, 0)
	for _, summary := range summaries {
		if summary.UtilizationRate >= highUtilizationRate {
			priority := 3
			if summary.UtilizationRate >= criticalUtilizationRate {
				priority = 4
			}
			insights = append(insights, OptimizationInsight{
				Type:     "warning",
				Title:    fmt.Sprintf("%s nearly full", summary.TimeSlot),
				Message:  fmt.Sprintf("Utilization %.1f%% - %d tables left", summary.UtilizationRate, summary.AvailableTables),
				Priority: priority,
				Action:   "Limit new bookings or offer alternative times",
				Data: map[string]interface{}{
					"time_slot":   summary.TimeSlot,
					"utilization": summary.UtilizationRate,
					"available":   summary.AvailableTables,
				},
			})
			continue
		}

		if summary.UtilizationRate < lowUtilizationRate && summary.TimeSlot >= lowUtilizationFromSlot {
			insights = append(insights, OptimizationInsight{
				Type:     "opportunity",
				Title:    fmt.Sprintf("%s has open tables", summary.TimeSlot),
				Message:  fmt.Sprintf("Utilization %.1f%% - %d tables open", summary.UtilizationRate, summary.AvailableTables),
				Priority: 2,
				Action:   "Consider promotions or moving bookings into this slot",
				Data: map[string]interface{}{
					"time_slot": summary.TimeSlot,
					"available": summary.AvailableTables,
				},
			})
		}
	}

	wasteInsights, err := s.capacityWasteInsights(date)
	if err != nil {
		return nil, err
	}
	insights = append(insights, wasteInsights...)

	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Priority > insights[j].Priority
	})
	return insights, nil
}

type wasteRow struct {
	Time        string
	Guests      int
	TableNumber string
	MaxCapacity int
}

// capacityWasteInsights memindai semua booking aktif yang sudah punya
// meja dan menandai kasus dengan 3+ kursi tersisa. Semua kasus
// digabung menjadi satu insight agregat.
func (s *AnalyticsService) capacityWasteInsights(date string) ([]OptimizationInsight, error) {
	var rows []wasteRow
	err := s.DB.Model(&models.TableAssignment{}).
		Select("bookings.time, bookings.guests, tables.table_number, tables.max_capacity").
		Joins("JOIN bookings ON bookings.id = table_assignments.booking_id").
		Joins("JOIN tables ON tables.id = table_assignments.table_id").
		Where("bookings.branch_code = ? AND bookings.date = ? AND bookings.status IN ?",
			s.BranchCode, date, models.ActiveBookingStatuses).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load assignments: %w", err)
	}

	totalWaste := 0
	cases := make([]map[string]interface{}, 0)
	for _, row := range rows {
		waste := row.MaxCapacity - row.Guests
		if waste < wasteInsightThreshold {
			continue
		}
		totalWaste += waste
		cases = append(cases, map[string]interface{}{
			"time":     row.Time,
			"guests":   row.Guests,
			"table":    row.TableNumber,
			"capacity": row.MaxCapacity,
		})
	}

	if len(cases) == 0 {
		return nil, nil
	}

	return []OptimizationInsight{{
		Type:     "suggestion",
		Title:    "Seating efficiency can be improved",
		Message:  fmt.Sprintf("%d bookings leave %d seats to spare in total", len(cases), totalWaste),
		Priority: 2,
		Action:   "Consider moving these parties to smaller tables",
		Data: map[string]interface{}{
			"waste_cases": cases,
		},
	}}, nil
}
