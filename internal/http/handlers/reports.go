package handlers

import (
	"net/http"
	"strconv"

	"ferryops/internal/repositories"
	"ferryops/internal/services"

	"github.com/gin-gonic/gin"
)

func reportService() services.ReportService {
	return services.ReportService{ReportRepo: repositories.ReportRepo{}}
}

func reportRange(c *gin.Context) (string, string) {
	return c.Query("date_from"), c.Query("date_to")
}

// GET /api/admin/reports/bookings
func GetBookingReport(c *gin.Context) {
	from, to := reportRange(c)
	scheduleID, _ := strconv.ParseInt(c.Query("schedule_id"), 10, 64)
	buckets, err := reportService().Bookings(from, to, scheduleID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "laporan booking", buckets)
}

// GET /api/admin/reports/bookings/csv
func GetBookingReportCSV(c *gin.Context) {
	from, to := reportRange(c)
	scheduleID, _ := strconv.ParseInt(c.Query("schedule_id"), 10, 64)
	data, err := reportService().BookingsCSV(from, to, scheduleID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="laporan_booking_`+from+`_`+to+`.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// GET /api/admin/reports/revenue
func GetRevenueReport(c *gin.Context) {
	from, to := reportRange(c)
	buckets, err := reportService().Revenue(from, to)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "laporan pendapatan", buckets)
}

// GET /api/admin/reports/revenue/csv
func GetRevenueReportCSV(c *gin.Context) {
	from, to := reportRange(c)
	data, err := reportService().RevenueCSV(from, to)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="laporan_pendapatan_`+from+`_`+to+`.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// GET /api/admin/reports/occupancy
func GetOccupancyReport(c *gin.Context) {
	from, to := reportRange(c)
	buckets, err := reportService().Occupancy(from, to)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "laporan okupansi", buckets)
}

// GET /api/admin/reports/occupancy/csv
func GetOccupancyReportCSV(c *gin.Context) {
	from, to := reportRange(c)
	data, err := reportService().OccupancyCSV(from, to)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="laporan_okupansi_`+from+`_`+to+`.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
