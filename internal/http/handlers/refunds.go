package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"ferryops/internal/domain"
	"ferryops/internal/gateway"
	"ferryops/internal/repositories"
	"ferryops/internal/services"

	"github.com/gin-gonic/gin"
)

var gatewayClient gateway.Client

// SetGatewayClient wires the payment gateway at startup; nil keeps refunds
// on the manual path.
func SetGatewayClient(client gateway.Client) {
	gatewayClient = client
}

func refundService() services.RefundService {
	return services.RefundService{
		Gateway:          gatewayClient,
		BookingRepo:      repositories.BookingRepo{},
		PaymentRepo:      repositories.PaymentRepo{},
		RefundRepo:       repositories.RefundRepo{},
		RefundPolicyRepo: repositories.RefundPolicyRepo{},
		BookingLogRepo:   repositories.BookingLogRepo{},
	}
}

// GET /api/admin/bookings/:id/refund-suggestion
func GetRefundSuggestion(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id booking tidak valid")
		return
	}
	suggestion, err := refundService().Suggest(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "saran refund", suggestion)
}

type createRefundRequest struct {
	BookingID int64  `json:"booking_id"`
	Amount    int64  `json:"amount"`
	Reason    string `json:"reason"`
}

// POST /api/admin/refunds
func CreateRefund(c *gin.Context) {
	var req createRefundRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	actorType, actorID := actorFrom(c)
	refund, err := refundService().Create(services.CreateRefundInput{
		BookingID: req.BookingID,
		Amount:    req.Amount,
		Reason:    req.Reason,
		ActorType: actorType,
		ActorID:   actorID,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusCreated, "refund diajukan", refund)
}

// GET /api/admin/refunds?status=PENDING
func ListRefunds(c *gin.Context) {
	status := domain.RefundStatus(strings.ToUpper(strings.TrimSpace(c.Query("status"))))
	refunds, err := repositories.RefundRepo{}.List(status)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}
	Respond(c, http.StatusOK, "daftar refund", refunds)
}

// PUT /api/admin/refunds/:id/approve
func ApproveRefund(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id refund tidak valid")
		return
	}
	_, actorID := actorFrom(c)
	refund, err := refundService().Approve(c.Request.Context(), id, strconv.FormatInt(actorID, 10))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "refund disetujui", refund)
}

// PUT /api/admin/refunds/:id/complete
func CompleteRefund(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id refund tidak valid")
		return
	}
	actorType, actorID := actorFrom(c)
	refund, err := refundService().Complete(id, actorType, actorID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "refund selesai", refund)
}

type rejectRefundRequest struct {
	Reason string `json:"reason"`
}

// PUT /api/admin/refunds/:id/reject
func RejectRefund(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id refund tidak valid")
		return
	}
	var req rejectRefundRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	actorType, actorID := actorFrom(c)
	refund, err := refundService().Reject(id, req.Reason, actorType, actorID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "refund ditolak", refund)
}
