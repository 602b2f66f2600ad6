package router

import (
	"github.com/gin-gonic/gin"
	"github.com/hiramaya/reservation-app/controllers"
	"github.com/hiramaya/reservation-app/middlewares"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	// Rate limiter global per IP; gin membekukan chain middleware saat
	// route didaftarkan, jadi Use harus terjadi sebelum registrasi.
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	// Inisialisasi controller
	userCtrl := controllers.NewUserController(db)
	tableCtrl := controllers.NewTableController(db)
	bookingCtrl := controllers.NewBookingController(db)
	optimizationCtrl := controllers.NewOptimizationController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter ketat untuk login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// -- BOOKING FLOW (tanpa auth) --
	r.GET("/tables", tableCtrl.GetAllTables)
	r.GET("/optimization/check", optimizationCtrl.CheckAvailability)
	r.POST("/bookings", bookingCtrl.CreateBooking)
	r.GET("/bookings/:booking_id", bookingCtrl.GetBookingByID)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)

	// TABLE ROSTER (mutasi roster khusus admin)
	adminOnly := middlewares.RequireRole("admin")
	auth.GET("/tables", tableCtrl.GetAllTables)
	auth.POST("/tables", adminOnly, tableCtrl.CreateTable)
	auth.GET("/tables/:table_id", tableCtrl.GetTableByID)
	auth.PATCH("/tables/:table_id", adminOnly, tableCtrl.UpdateTable)
	auth.DELETE("/tables/:table_id", adminOnly, tableCtrl.DeactivateTable)
	auth.POST("/tables/seed", adminOnly, tableCtrl.SeedTables)

	// BOOKINGS (staff/admin)
	auth.GET("/bookings", bookingCtrl.GetBookings)
	auth.GET("/bookings/:booking_id", bookingCtrl.GetBookingByID)
	auth.PATCH("/bookings/:booking_id/status", bookingCtrl.UpdateBookingStatus)

	// TABLE OPTIMIZATION ENGINE
	auth.GET("/optimization/summary", optimizationCtrl.GetSlotSummary)
	auth.GET("/optimization/insights", optimizationCtrl.GetInsights)
	auth.POST("/optimization/assign/:booking_id", optimizationCtrl.AssignTable)
	auth.GET("/optimization/gantt", optimizationCtrl.GetGanttData)

	return r
}
