package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hiramaya/reservation-app/models"
	"github.com/hiramaya/reservation-app/services"
	"github.com/hiramaya/reservation-app/utils"
	"gorm.io/gorm"
)

// OptimizationController membuka engine alokasi meja lewat HTTP:
// cek ketersediaan, ringkasan utilisasi, insight, assignment dan
// data gantt.
type OptimizationController struct {
	DB *gorm.DB
}

func NewOptimizationController(db *gorm.DB) *OptimizationController {
	return &OptimizationController{DB: db}
}

func dateFromQuery(c *gin.Context) string {
	if date := c.Query("date"); date != "" {
		return date
	}
	return time.Now().Format("2006-01-02")
}

// CheckAvailability -> GET /tables/optimization/check
// Slot penuh bukan error: respons tetap 200 dengan daftar alternatif.
func (oc *OptimizationController) CheckAvailability(c *gin.Context) {
	date := c.Query("date")
	timeSlot := c.Query("time_slot")
	if date == "" || timeSlot == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("date and time_slot are required"))
		return
	}

	guests, err := strconv.Atoi(c.Query("guests"))
	if err != nil || guests < 1 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("guests must be a positive number"))
		return
	}

	optimizer := services.NewTableOptimizer(oc.DB, branchFromQuery(c))
	result, err := optimizer.CheckAvailability(guests, date, timeSlot, services.ParseStrategy(c.Query("strategy")))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, result.Message, result)
}

// GetSlotSummary -> GET /tables/optimization/summary
func (oc *OptimizationController) GetSlotSummary(c *gin.Context) {
	analytics := services.NewAnalyticsService(oc.DB, branchFromQuery(c))
	summaries, err := analytics.TimeSlotSummaries(dateFromQuery(c))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Time slot summary", summaries)
}

// GetInsights -> GET /tables/optimization/insights
func (oc *OptimizationController) GetInsights(c *gin.Context) {
	analytics := services.NewAnalyticsService(oc.DB, branchFromQuery(c))
	insights, err := analytics.GenerateInsights(dateFromQuery(c))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Optimization insights", insights)
}

// AssignTable -> POST /tables/optimization/assign/:booking_id
// Dengan query table_id staff memindahkan booking secara manual,
// tanpa table_id engine memilih meja terbaik sendiri.
func (oc *OptimizationController) AssignTable(c *gin.Context) {
	var booking models.Booking
	if err := oc.DB.First(&booking, c.Param("booking_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("booking not found"))
		return
	}

	assigner := services.NewAssignmentService(oc.DB, booking.BranchCode)

	var assignment *models.TableAssignment
	var err error
	if tableParam := c.Query("table_id"); tableParam != "" {
		tableID, convErr := strconv.ParseUint(tableParam, 10, 64)
		if convErr != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid table_id"))
			return
		}
		assignment, err = assigner.Reassign(booking.ID, uint(tableID), "manual assignment")
	} else {
		assignment, err = assigner.AutoAssign(booking.ID, booking.Guests, booking.Date, booking.Time, services.StrategyMinimizeWaste)
	}

	switch {
	case errors.Is(err, services.ErrTableUnavailable),
		errors.Is(err, services.ErrTableTooSmall),
		errors.Is(err, services.ErrTableInactive):
		utils.RespondError(c, http.StatusConflict, err)
		return
	case err != nil:
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	case assignment == nil:
		utils.RespondJSON(c, http.StatusOK, "No suitable table found", gin.H{
			"assigned": false,
		})
		return
	}

	var table models.Table
	if err := oc.DB.First(&table, assignment.TableID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table assigned", gin.H{
		"assigned":      true,
		"assignment_id": assignment.ID,
		"table": gin.H{
			"id":           table.ID,
			"table_number": table.TableNumber,
			"capacity":     table.MaxCapacity,
		},
		"notes": assignment.Notes,
	})
}

// GetGanttData -> GET /tables/gantt
func (oc *OptimizationController) GetGanttData(c *gin.Context) {
	gantt := services.NewGanttService(oc.DB, branchFromQuery(c))
	data, err := gantt.BuildGanttData(dateFromQuery(c))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Gantt data", data)
}
