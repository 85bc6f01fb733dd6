package handlers

import (
	"net/http"

	intconfig "ferryops/internal/config"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "layanan penyeberangan berjalan"})
}

func DBCheck(c *gin.Context) {
	if intconfig.DB == nil {
		RespondError(c, http.StatusInternalServerError, "database belum terhubung")
		return
	}
	var count int
	if err := intconfig.DB.QueryRow("SELECT COUNT(*) FROM schedules").Scan(&count); err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal query ke database")
		return
	}
	Respond(c, http.StatusOK, "koneksi database OK", gin.H{"schedules_in_db": count})
}
