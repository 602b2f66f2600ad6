package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hiramaya/reservation-app/models"
	"gorm.io/gorm"
)

// OptimizationStrategy menentukan cara scoring meja. Hanya dua
// strategi yang didukung; input lain jatuh ke default.
type OptimizationStrategy string

const (
	StrategyMinimizeWaste    OptimizationStrategy = "minimize_waste"
	StrategyMaximizeCapacity OptimizationStrategy = "maximize_capacity"
)

// ParseStrategy memetakan input bebas ke strategi yang valid.
func ParseStrategy(s string) OptimizationStrategy {
	if OptimizationStrategy(s) == StrategyMaximizeCapacity {
		return StrategyMaximizeCapacity
	}
	return StrategyMinimizeWaste
}

// TableSuggestion adalah kandidat meja hasil ranking untuk satu
// request. Nilai ini tidak pernah dipersist.
type TableSuggestion struct {
	TableID     uint    `json:"table_id"`
	TableNumber string  `json:"table_number"`
	Capacity    int     `json:"capacity"`
	Score       float64 `json:"score"`
	Reason      string  `json:"reason"`
	Waste       int     `json:"waste"`
}

// SlotAlternative adalah slot pengganti ketika slot yang diminta penuh.
type SlotAlternative struct {
	Time        string            `json:"time"`
	DiffMinutes int               `json:"diff_minutes"`
	Tables      []TableSuggestion `json:"tables"`
}

// AvailabilityResult adalah hasil terstruktur pengecekan ketersediaan.
// Slot penuh bukan error; caller memutuskan menolak atau menawar ulang.
type AvailabilityResult struct {
	Available    bool              `json:"available"`
	Message      string            `json:"message"`
	Tables       []TableSuggestion `json:"tables"`
	Alternatives []SlotAlternative `json:"alternatives"`
}

const (
	maxSuggestions        = 5
	maxAlternatives       = 5
	alternativeTableLimit = 2
)

// TableOptimizer mencari dan menilai meja untuk satu cabang.
type TableOptimizer struct {
	DB            *gorm.DB
	BranchCode    string
	Hours         OperatingHours
	WindowMinutes int // jarak maksimum slot alternatif dari slot yang diminta
}

func NewTableOptimizer(db *gorm.DB, branchCode string) *TableOptimizer {
	return &TableOptimizer{
		DB:            db,
		BranchCode:    branchCode,
		Hours:         DefaultOperatingHours,
		WindowMinutes: 120,
	}
}

// AvailableTables mengembalikan meja aktif cabang yang belum ditautkan
// ke booking pending/confirmed pada (tanggal, slot) persis tersebut.
// Pencocokan slot-exact: durasi makan tidak dimodelkan sebagai interval.
func (o *TableOptimizer) AvailableTables(date, timeSlot string) ([]models.Table, error) {
	var tables []models.Table
	err := o.DB.
		Where("branch_code = ? AND is_active = ?", o.BranchCode, true).
		Order("zone, table_number").
		Find(&tables).Error
	if err != nil {
		return nil, fmt.Errorf("load tables: %w", err)
	}

	var bookedIDs []uint
	err = o.DB.Model(&models.TableAssignment{}).
		Joins("JOIN bookings ON bookings.id = table_assignments.booking_id").
		Where("bookings.branch_code = ? AND bookings.date = ? AND bookings.time = ? AND bookings.status IN ?",
			o.BranchCode, date, timeSlot, models.ActiveBookingStatuses).
		Pluck("table_assignments.table_id", &bookedIDs).Error
	if err != nil {
		return nil, fmt.Errorf("load booked tables: %w", err)
	}

	booked := make(map[uint]bool, len(bookedIDs))
	for _, id := range bookedIDs {
		booked[id] = true
	}

	available := make([]models.Table, 0, len(tables))
	for _, t := range tables {
		if !booked[t.ID] {
			available = append(available, t)
		}
	}
	return available, nil
}

// FindBestTables mengembalikan maksimal 5 kandidat meja untuk jumlah
// tamu pada slot tertentu, diurutkan menurun berdasarkan skor. Meja
// dengan kapasitas di bawah jumlah tamu tidak pernah ikut dinilai.
func (o *TableOptimizer) FindBestTables(guests int, date, timeSlot string, strategy OptimizationStrategy) ([]TableSuggestion, error) {
	available, err := o.AvailableTables(date, timeSlot)
	if err != nil {
		return nil, err
	}

	suggestions := make([]TableSuggestion, 0, len(available))
	for _, table := range available {
		if table.MaxCapacity < guests {
			continue
		}

		score, reason := scoreTable(table, guests, strategy)
		suggestions = append(suggestions, TableSuggestion{
			TableID:     table.ID,
			TableNumber: table.TableNumber,
			Capacity:    table.MaxCapacity,
			Score:       score,
			Reason:      reason,
			Waste:       table.MaxCapacity - guests,
		})
	}

	// Stable: skor seri mempertahankan urutan roster (zone, nomor meja).
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions, nil
}

// scoreTable menghitung skor kecocokan 0-100 beserta alasannya.
func scoreTable(table models.Table, guests int, strategy OptimizationStrategy) (float64, string) {
	score := 100.0
	var reasons []string

	waste := table.MaxCapacity - guests

	switch strategy {
	case StrategyMaximizeCapacity:
		score += float64(table.MaxCapacity) * 5
		reasons = append(reasons, fmt.Sprintf("seats up to %d guests", table.MaxCapacity))
	default: // StrategyMinimizeWaste
		score -= float64(waste) * 10
		switch {
		case waste == 0:
			reasons = append(reasons, "perfect match")
		case waste <= 2:
			reasons = append(reasons, fmt.Sprintf("%d seats extra", waste))
		default:
			reasons = append(reasons, fmt.Sprintf("%d seats extra (oversized)", waste))
		}
	}

	if table.TableType == models.TableTypePrivate {
		score += 15
		reasons = append(reasons, "private room")
	}
	if table.HasWindow {
		score += 5
		reasons = append(reasons, "window seat")
	}
	score += float64(table.Priority) * 2

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	reason := "standard seat"
	if len(reasons) > 0 {
		reason = strings.Join(reasons, ", ")
	}
	return score, reason
}

// FindAlternativeSlots mencari slot pengganti di dalam window waktu
// ketika slot yang diminta tidak punya kandidat. Hasil diurutkan dari
// yang paling dekat dengan waktu yang diminta, maksimal 5 slot dengan
// masing-masing 2 kandidat teratas.
func (o *TableOptimizer) FindAlternativeSlots(guests int, date, requestedSlot string, strategy OptimizationStrategy) ([]SlotAlternative, error) {
	requestedMinutes, err := SlotMinutes(requestedSlot)
	if err != nil {
		return nil, err
	}

	alternatives := make([]SlotAlternative, 0)
	for _, slot := range o.Hours.BookableSlots() {
		if slot == requestedSlot {
			continue
		}

		slotMinutes, err := SlotMinutes(slot)
		if err != nil {
			return nil, err
		}
		diff := slotMinutes - requestedMinutes
		if abs(diff) > o.WindowMinutes {
			continue
		}

		tables, err := o.FindBestTables(guests, date, slot, strategy)
		if err != nil {
			return nil, err
		}
		if len(tables) == 0 {
			continue
		}

		if len(tables) > alternativeTableLimit {
			tables = tables[:alternativeTableLimit]
		}
		alternatives = append(alternatives, SlotAlternative{
			Time:        slot,
			DiffMinutes: diff,
			Tables:      tables,
		})
	}

	sort.SliceStable(alternatives, func(i, j int) bool {
		return abs(alternatives[i].DiffMinutes) < abs(alternatives[j].DiffMinutes)
	})

	if len(alternatives) > maxAlternatives {
		alternatives = alternatives[:maxAlternatives]
	}
	return alternatives, nil
}

// CheckAvailability mengecek apakah slot bisa menampung jumlah tamu.
// Ketika penuh, hasilnya tetap sukses dengan daftar slot alternatif.
func (o *TableOptimizer) CheckAvailability(guests int, date, timeSlot string, strategy OptimizationStrategy) (*AvailabilityResult, error) {
	suggestions, err := o.FindBestTables(guests, date, timeSlot, strategy)
	if err != nil {
		return nil, err
	}

	if len(suggestions) > 0 {
		return &AvailabilityResult{
			Available:    true,
			Message:      fmt.Sprintf("%d tables available", len(suggestions)),
			Tables:       suggestions,
			Alternatives: []SlotAlternative{},
		}, nil
	}

	alternatives, err := o.FindAlternativeSlots(guests, date, timeSlot, strategy)
	if err != nil {
		return nil, err
	}

	message := "requested time is fully booked"
	if len(alternatives) > 0 {
		message = fmt.Sprintf("requested time is fully booked, %d alternative times available", len(alternatives))
	}
	return &AvailabilityResult{
		Available:    false,
		Message:      message,
		Tables:       []TableSuggestion{},
		Alternatives: alternatives,
	}, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
