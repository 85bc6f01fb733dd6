package api

import (
	"log"
	stdhttp "net/http"

	intconfig "ferryops/internal/config"
	h "ferryops/internal/http/handlers"
	"ferryops/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.SetJWTSecret(env.JWTSecret)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"success": false,
			"message": "route tidak ditemukan",
			"path":    c.Request.URL.Path,
			"method":  c.Request.Method,
		})
	})

	auth := middleware.Auth(env.JWTSecret)
	adminOnly := middleware.RequireRoles("admin", "owner", "operator")

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		authGroup := api.Group("/auth")
		authGroup.POST("/login", h.Login)
		authGroup.POST("/register", h.Register)

		// Public catalogue
		api.GET("/routes", h.GetRoutes)
		api.GET("/routes/:id", h.GetRouteByID)
		api.GET("/ferries", h.GetFerries)
		api.GET("/ferries/:id", h.GetFerryByID)
		api.GET("/schedules", h.GetSchedules)
		api.GET("/schedules/:id", h.GetScheduleByID)
		api.GET("/schedules/:id/dates", h.GetScheduleDates)
		api.GET("/schedules/:id/availability", h.GetAvailability)

		// Tickets (code or QR token)
		api.GET("/tickets/:key", h.GetTicket)
		api.GET("/tickets/:key/e-ticket", h.GetTicketPDF)

		// Bookings (authenticated)
		bookings := api.Group("/bookings", auth)
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/:id", h.GetBookingDetail)
		bookings.GET("/:id/logs", h.GetBookingLogs)
		bookings.GET("/:id/payments", h.ListBookingPayments)
		bookings.POST("/:id/check-payment", h.CheckPayment)

		// Operations (admin)
		admin := api.Group("/admin", auth, adminOnly)
		{
			admin.POST("/routes", h.CreateRoute)
			admin.PUT("/routes/:id", h.UpdateRoute)
			admin.POST("/ferries", h.CreateFerry)
			admin.PUT("/ferries/:id", h.UpdateFerry)

			admin.POST("/schedules", h.CreateSchedule)
			admin.PUT("/schedules/:id", h.UpdateSchedule)
			admin.PATCH("/schedules/:id/status", h.UpdateScheduleStatus)
			admin.POST("/schedules/:id/dates", h.GenerateScheduleDates)
			admin.PATCH("/schedule-dates/:id/status", h.UpdateScheduleDateStatus)

			admin.PATCH("/bookings/:id/status", h.UpdateBookingStatus)
			admin.POST("/bookings/:id/reschedule", h.RescheduleBooking)
			admin.GET("/bookings/:id/refund-suggestion", h.GetRefundSuggestion)

			admin.POST("/tickets/:key/check-in", h.CheckInTicket)

			admin.GET("/refunds", h.ListRefunds)
			admin.POST("/refunds", h.CreateRefund)
			admin.PUT("/refunds/:id/approve", h.ApproveRefund)
			admin.PUT("/refunds/:id/complete", h.CompleteRefund)
			admin.PUT("/refunds/:id/reject", h.RejectRefund)

			reports := admin.Group("/reports")
			reports.GET("/bookings", h.GetBookingReport)
			reports.GET("/bookings/csv", h.GetBookingReportCSV)
			reports.GET("/revenue", h.GetRevenueReport)
			reports.GET("/revenue/csv", h.GetRevenueReportCSV)
			reports.GET("/occupancy", h.GetOccupancyReport)
			reports.GET("/occupancy/csv", h.GetOccupancyReportCSV)
		}
	}

	return r
}
