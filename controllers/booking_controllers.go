package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hiramaya/reservation-app/models"
	"github.com/hiramaya/reservation-app/services"
	"github.com/hiramaya/reservation-app/utils"
	"gorm.io/gorm"
)

// BookingController adalah permukaan tipis Booking Store. Engine
// alokasi hanya membaca booking; controller ini yang membuatnya dan
// (opsional) memicu auto-assign.
type BookingController struct {
	DB *gorm.DB
}

func NewBookingController(db *gorm.DB) *BookingController {
	return &BookingController{DB: db}
}

// CreateBooking -> membuat reservasi baru. Dengan auto_assign=true
// engine langsung mencarikan meja; gagal dapat meja tidak membatalkan
// booking (staff menindaklanjuti lewat dashboard).
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req struct {
		Date       string `json:"date" binding:"required"`
		Time       string `json:"time" binding:"required"`
		Guests     int    `json:"guests" binding:"required,min=1"`
		GuestName  string `json:"guest_name"`
		GuestPhone string `json:"guest_phone"`
		Note       string `json:"note"`
		Source     string `json:"source"`
		AutoAssign bool   `json:"auto_assign"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if _, err := services.SlotMinutes(req.Time); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	booking := models.Booking{
		Reference:  uuid.NewString(),
		BranchCode: branchFromQuery(c),
		Date:       req.Date,
		Time:       req.Time,
		Guests:     req.Guests,
		GuestName:  req.GuestName,
		GuestPhone: req.GuestPhone,
		Status:     models.BookingStatusPending,
		Note:       req.Note,
		Source:     "web",
	}
	if req.Source != "" {
		booking.Source = req.Source
	}

	if err := bc.DB.Create(&booking).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var assignment *models.TableAssignment
	if req.AutoAssign {
		assigner := services.NewAssignmentService(bc.DB, booking.BranchCode)
		var err error
		assignment, err = assigner.AutoAssign(booking.ID, booking.Guests, booking.Date, booking.Time, services.StrategyMinimizeWaste)
		if err != nil {
			// Booking tetap tersimpan; assignment menyusul manual.
			utils.ErrorLogger.Printf("Auto-assign failed for booking %d: %v", booking.ID, err)
		}
	}

	utils.InfoLogger.Printf("New booking %s: %s %s, %d guests", booking.Reference, booking.Date, booking.Time, booking.Guests)
	utils.RespondJSON(c, http.StatusCreated, "Booking created", gin.H{
		"booking":    booking,
		"assignment": assignment,
	})
}

// GetBookings -> daftar booking per tanggal
func (bc *BookingController) GetBookings(c *gin.Context) {
	query := bc.DB.Where("branch_code = ?", branchFromQuery(c))
	if date := c.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var bookings []models.Booking
	if err := query.Preload("TableAssignments").Order("date, time").Find(&bookings).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of bookings", bookings)
}

// GetBookingByID -> detail satu booking
func (bc *BookingController) GetBookingByID(c *gin.Context) {
	var booking models.Booking
	if err := bc.DB.Preload("TableAssignments").First(&booking, c.Param("booking_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking detail", booking)
}

var validBookingStatuses = map[models.BookingStatus]bool{
	models.BookingStatusPending:   true,
	models.BookingStatusConfirmed: true,
	models.BookingStatusCancelled: true,
	models.BookingStatusCompleted: true,
	models.BookingStatusNoShow:    true,
}

// UpdateBookingStatus -> transisi status dari flow booking eksternal
func (bc *BookingController) UpdateBookingStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	status := models.BookingStatus(req.Status)
	if !validBookingStatuses[status] {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid booking status"))
		return
	}

	var booking models.Booking
	if err := bc.DB.First(&booking, c.Param("booking_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	booking.Status = status
	if err := bc.DB.Save(&booking).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Booking %d status changed to %s", booking.ID, booking.Status)
	utils.RespondJSON(c, http.StatusOK, "Booking status updated", booking)
}
