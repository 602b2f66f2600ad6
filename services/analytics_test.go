package services

import (
	"testing"

	"github.com/hiramaya/reservation-app/models"
	"github.com/stretchr/testify/assert"
)

func TestTimeSlotSummaries(t *testing.T) {
	db := setupTestDB(t)
	createTable(t, db, models.Table{TableNumber: "T1", MaxCapacity: 4})
	createTable(t, db, models.Table{TableNumber: "T2", MaxCapacity: 6})
	createBooking(t, db, models.Booking{Date: "2026-03-14", Time: "18:00", Guests: 4})

	analytics := NewAnalyticsService(db, testBranch)
	summaries, err := analytics.TimeSlotSummaries("2026-03-14")

	assert.NoError(t, err)
	assert.Len(t, summaries, 11) // satu record per slot bookable

	bySlot := make(map[string]TimeSlotSummary, len(summaries))
	for _, s := range summaries {
		bySlot[s.TimeSlot] = s
	}

	slot := bySlot["18:00"]
	assert.Equal(t, 2, slot.TotalTables)
	assert.Equal(t, 1, slot.OccupiedTables)
	assert.Equal(t, 1, slot.AvailableTables)
	assert.Equal(t, 10, slot.TotalCapacity)
	assert.Equal(t, 4, slot.UsedCapacity)
	assert.Equal(t, 6, slot.AvailableCapacity)
	assert.Equal(t, 40.0, slot.UtilizationRate)
}

func TestEmptySlotHasZeroUtilization(t *testing.T) {
	db := setupTestDB(t)
	createTable(t, db, models.Table{TableNumber: "T1", MaxCapacity: 4})
	createBooking(t, db, models.Booking{Date: "2026-03-14", Time: "18:00", Guests: 4})

	analytics := NewAnalyticsService(db, testBranch)
	summaries, err := analytics.TimeSlotSummaries("2026-03-14")

	assert.NoError(t, err)
	for _, s := range summaries {
		if s.TimeSlot == "18:00" {
			continue
		}
		assert.Equal(t, 0.0, s.UtilizationRate, "slot %s", s.TimeSlot)
		assert.Zero(t, s.UsedCapacity)
	}
}

func TestUtilizationRoundsToOneDecimal(t *testing.T) {
	db := setupTestDB(t)
	createTable(t, db, models.Table{TableNumber: "T1", MaxCapacity: 6})
	createBooking(t, db, models.Booking{Date: "2026-03-14", Time: "18:00", Guests: 2})

	analytics := NewAnalyticsService(db, testBranch)
	summaries, err := analytics.TimeSlotSummaries("2026-03-14")

	assert.NoError(t, err)
	for _, s := range summaries {
		if s.TimeSlot == "18:00" {
			assert.Equal(t, 33.3, s.UtilizationRate) // 2/6 = 33.33...
		}
	}
}

func TestSummariesIgnoreCancelledBookings(t *testing.T) {
	db := setupTestDB(t)
	createTable(t, db, models.Table{TableNumber: "T1", MaxCapacity: 4})
	createBooking(t, db, models.Booking{Date: "2026-03-14", Time: "18:00", Guests: 4, Status: models.BookingStatusCancelled})

	analytics := NewAnalyticsService(db, testBranch)
	summaries, err := analytics.TimeSlotSummaries("2026-03-14")

	assert.NoError(t, err)
	for _, s := range summaries {
		assert.Zero(t, s.UsedCapacity)
	}
}

func TestInsightsWarningPriorities(t *testing.T) {
	db := setupTestDB(t)
	createTable(t, db, models.Table{TableNumber: "T1", MaxCapacity: 10})
	// 18:00 -> 90% (kritis), 19:00 -> 80% (tinggi)
	createBooking(t, db, models.Booking{Date: "2026-03-14", Time: "18:00", Guests: 9})
	createBooking(t, db, models.Booking{Date: "2026-03-14", Time: "19:00", Guests: 8})

	analytics := NewAnalyticsService(db, testBranch)
	insights, err := analytics.GenerateInsights("2026-03-14")

	assert.NoError(t, err)

	var critical, high *OptimizationInsight
	for i := range insights {
		if insights[i].Type != "warning" {
			continue
		}
		switch insights[i].Data["time_slot"] {
		case "18:00":
			critical = &insights[i]
		case "19:00":
			high = &insights[i]
		}
	}

	assert.NotNil(t, critical)
	assert.Equal(t, 4, critical.Priority)
	assert.NotNil(t, high)
	assert.Equal(t, 3, high.Priority)
}

func TestInsightsOpportunityOnlyFromEvening(t *testing.T) {
	db := setupTestDB(t)
	createTable(t, db, models.Table{TableNumber: "T1", MaxCapacity: 4})

	analytics := NewAnalyticsService(db, testBranch)
	insights, err := analytics.GenerateInsights("2026-03-14")

	assert.NoError(t, err)
	assert.NotEmpty(t, insights)

	for _, insight := range insights {
		assert.Equal(t, "opportunity", insight.Type)
		slot, _ := insight.Data["time_slot"].(string)
		assert.GreaterOrEqual(t, slot, "18:00")
	}
}

func TestWasteInsightFiresOnBigGap(t *testing.T) {
	db := setupTestDB(t)
	big := createTable(t, db, models.Table{TableNumber: "VIP1", MaxCapacity: 8})
	booking := createBooking(t, db, models.Booking{Date: "2026-03-14", Time: "18:00", Guests: 2})
	assignBookingToTable(t, db, booking.ID, big.ID)

	analytics := NewAnalyticsService(db, testBranch)
	insights, err := analytics.GenerateInsights("2026-03-14")

	assert.NoError(t, err)

	var waste *OptimizationInsight
	for i := range insights {
		if insights[i].Type == "suggestion" {
			waste = &insights[i]
		}
	}

	assert.NotNil(t, waste)
	assert.Equal(t, 2, waste.Priority)
	assert.Contains(t, waste.Message, "6 seats")

	cases, ok := waste.Data["waste_cases"].([]map[string]interface{})
	assert.True(t, ok)
	assert.Len(t, cases, 1)
	assert.Equal(t, "18:00", cases[0]["time"])
	assert.Equal(t, 2, cases[0]["guests"])
	assert.Equal(t, "VIP1", cases[0]["table"])
	assert.Equal(t, 8, cases[0]["capacity"])
}

func TestWasteInsightSilentBelowThreshold(t *testing.T) {
	db := setupTestDB(t)
	table := createTable(t, db, models.Table{TableNumber: "T1", MaxCapacity: 6})
	booking := createBooking(t, db, models.Booking{Date: "2026-03-14", Time: "18:00", Guests: 4})
	assignBookingToTable(t, db, booking.ID, table.ID)

	analytics := NewAnalyticsService(db, testBranch)
	insights, err := analytics.GenerateInsights("2026-03-14")

	assert.NoError(t, err)
	for _, insight := range insights {
		assert.NotEqual(t, "suggestion", insight.Type)
	}
}

func TestInsightsSortedByPriority(t *testing.T) {
	db := setupTestDB(t)
	big := createTable(t, db, models.Table{TableNumber: "VIP1", MaxCapacity: 10})
	// Warning prioritas 4 di 18:00 plus waste case prioritas 2
	booking := createBooking(t, db, models.Booking{Date: "2026-03-14", Time: "18:00", Guests: 2})
	assignBookingToTable(t, db, booking.ID, big.ID)
	createBooking(t, db, models.Booking{Date: "2026-03-14", Time: "19:00", Guests: 9})

	analytics := NewAnalyticsService(db, testBranch)
	insights, err := analytics.GenerateInsights("2026-03-14")

	assert.NoError(t, err)
	assert.NotEmpty(t, insights)
	for i := 1; i < len(insights); i++ {
		assert.GreaterOrEqual(t, insights[i-1].Priority, insights[i].Priority)
	}
}
