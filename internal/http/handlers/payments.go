package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"ferryops/internal/domain"
	"ferryops/internal/repositories"
	"ferryops/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/bookings/:id/payments
func ListBookingPayments(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id booking tidak valid")
		return
	}
	if _, err := (repositories.BookingRepo{}).GetByID(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	payments, err := repositories.PaymentRepo{}.ListByBooking(id)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}
	Respond(c, http.StatusOK, "daftar pembayaran", payments)
}

// POST /api/bookings/:id/check-payment asks the gateway for the current
// transaction status and applies the outcome immediately.
func CheckPayment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id booking tidak valid")
		return
	}
	booking, err := repositories.BookingRepo{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if gatewayClient == nil {
		RespondError(c, http.StatusServiceUnavailable, "gateway pembayaran belum dikonfigurasi")
		return
	}

	status, err := gatewayClient.CheckTransaction(c.Request.Context(), booking.Code)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "gagal menghubungi gateway", Err: err})
		return
	}

	if booking.Status == domain.BookingPending {
		switch strings.ToLower(status.Status) {
		case "settlement", "capture":
			if booking, err = statusService().Transition(services.TransitionInput{
				BookingID: booking.ID,
				To:        domain.BookingConfirmed,
				Notes:     "pembayaran terverifikasi dari gateway",
				ActorType: domain.ActorSystem,
			}); err != nil {
				RespondDomainError(c, err)
				return
			}
		case "expire", "cancel", "deny":
			if booking, err = statusService().Transition(services.TransitionInput{
				BookingID: booking.ID,
				To:        domain.BookingCancelled,
				Reason:    "pembayaran " + strings.ToLower(status.Status) + " di gateway",
				ActorType: domain.ActorSystem,
			}); err != nil {
				RespondDomainError(c, err)
				return
			}
		}
	}

	Respond(c, http.StatusOK, "status pembayaran", gin.H{
		"booking": booking,
		"gateway": status,
	})
}
