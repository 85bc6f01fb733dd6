package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	intconfig "ferryops/internal/config"
	intdb "ferryops/internal/db"
	"ferryops/internal/domain"
	"ferryops/internal/domain/models"
	"ferryops/internal/gateway"
	"ferryops/internal/repositories"
	"ferryops/internal/utils"

	"github.com/shopspring/decimal"
)

// RefundSuggestion is the evaluator output shown to the operator before a
// refund is created. It never blocks a manually chosen amount.
type RefundSuggestion struct {
	PolicyID        int64   `json:"policy_id"`
	DaysBefore      int     `json:"days_before_departure"`
	Percentage      float64 `json:"percentage"`
	SuggestedAmount int64   `json:"suggested_amount"`
	Message         string  `json:"message"`
}

// EvaluateRefundPolicy selects the first policy (descending day threshold)
// whose threshold is met and computes the clamped refund amount.
func EvaluateRefundPolicy(amount int64, daysBefore int, policies []models.RefundPolicy) RefundSuggestion {
	for _, p := range policies {
		if daysBefore < p.DaysBeforeDeparture {
			continue
		}
		suggested := decimal.NewFromInt(amount).
			Mul(decimal.NewFromFloat(p.Percentage)).
			Div(decimal.NewFromInt(100)).
			Round(0).IntPart()
		if p.MinFee > 0 && suggested < p.MinFee {
			suggested = p.MinFee
		}
		if p.MaxFee > 0 && suggested > p.MaxFee {
			suggested = p.MaxFee
		}
		return RefundSuggestion{
			PolicyID:        p.ID,
			DaysBefore:      p.DaysBeforeDeparture,
			Percentage:      p.Percentage,
			SuggestedAmount: suggested,
			Message: fmt.Sprintf("kebijakan H-%d: refund %.0f%% dari %s",
				p.DaysBeforeDeparture, p.Percentage, utils.FormatRupiah(amount)),
		}
	}
	return RefundSuggestion{
		Message: "tidak ada kebijakan refund yang cocok; jumlah refund ditentukan operator",
	}
}

// RefundService runs the refund workflow against the payment gateway.
type RefundService struct {
	DB      *sql.DB
	Gateway gateway.Client

	BookingRepo      repositories.BookingRepo
	PaymentRepo      repositories.PaymentRepo
	RefundRepo       repositories.RefundRepo
	RefundPolicyRepo repositories.RefundPolicyRepo
	BookingLogRepo   repositories.BookingLogRepo
}

func (s RefundService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

// Suggest previews the policy evaluation for a booking.
func (s RefundService) Suggest(bookingID int64) (RefundSuggestion, error) {
	booking, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return RefundSuggestion{}, err
	}
	depDate, err := utils.ParseDate(booking.Date)
	if err != nil {
		return RefundSuggestion{}, domain.InternalError{Err: err}
	}
	policies, err := s.RefundPolicyRepo.ListActive()
	if err != nil {
		return RefundSuggestion{}, domain.InternalError{Err: err}
	}
	return EvaluateRefundPolicy(booking.Amount, utils.DaysUntil(depDate), policies), nil
}

type CreateRefundInput struct {
	BookingID int64
	Amount    int64 // 0 = take the policy suggestion
	Reason    string
	ActorType domain.ActorType
	ActorID   int64
}

// Create opens a refund request for a cancelled or completed booking with a
// settled payment, moving the booking to REFUND_PENDING.
func (s RefundService) Create(in CreateRefundInput) (models.Refund, error) {
	booking, err := s.BookingRepo.GetByID(in.BookingID)
	if err != nil {
		return models.Refund{}, err
	}
	if !booking.Status.CanTransitionTo(domain.BookingRefundPending) {
		return models.Refund{}, domain.ValidationError{
			Field: "status",
			Msg:   fmt.Sprintf("booking %s tidak bisa direfund", booking.Status),
		}
	}

	payment, ok, err := s.PaymentRepo.FindSuccess(in.BookingID)
	if err != nil {
		return models.Refund{}, domain.InternalError{Err: err}
	}
	if !ok {
		return models.Refund{}, domain.ValidationError{Field: "payment", Msg: "tidak ada pembayaran sukses untuk direfund"}
	}

	amount := in.Amount
	if amount <= 0 {
		suggestion, err := s.Suggest(in.BookingID)
		if err != nil {
			return models.Refund{}, err
		}
		amount = suggestion.SuggestedAmount
	}
	if amount <= 0 {
		return models.Refund{}, domain.ValidationError{Field: "amount", Msg: "jumlah refund harus lebih dari nol"}
	}
	if amount > payment.Amount {
		return models.Refund{}, domain.ValidationError{Field: "amount", Msg: "jumlah refund melebihi pembayaran"}
	}

	method := "MANUAL"
	if s.Gateway != nil && s.Gateway.IsRefundable(string(payment.Method), payment.Channel) {
		method = "GATEWAY"
	}

	var refund models.Refund
	err = intdb.WithTx(s.db(), func(tx *sql.Tx) error {
		refund = models.Refund{
			BookingID:    in.BookingID,
			PaymentID:    payment.ID,
			Amount:       amount,
			Reason:       strings.TrimSpace(in.Reason),
			Status:       domain.RefundPending,
			RefundMethod: method,
		}
		id, err := s.RefundRepo.Insert(tx, refund)
		if err != nil {
			return domain.InternalError{Err: err}
		}
		refund.ID = id

		if err := s.BookingRepo.UpdateStatus(tx, booking.ID, domain.BookingRefundPending, "", ""); err != nil {
			return domain.InternalError{Err: err}
		}
		return s.BookingLogRepo.Insert(tx, models.BookingLog{
			BookingID:      booking.ID,
			PreviousStatus: booking.Status,
			NewStatus:      domain.BookingRefundPending,
			ChangedByType:  in.ActorType,
			ChangedByID:    in.ActorID,
			Notes:          fmt.Sprintf("refund %s diajukan", utils.FormatRupiah(amount)),
		})
	})
	if err != nil {
		return models.Refund{}, err
	}
	return refund, nil
}

// Approve forwards a PENDING refund to the gateway (or marks it manual).
func (s RefundService) Approve(ctx context.Context, refundID int64, approvedBy string) (models.Refund, error) {
	refund, err := s.RefundRepo.GetByID(refundID)
	if err != nil {
		return models.Refund{}, err
	}
	if refund.Status != domain.RefundPending {
		return models.Refund{}, domain.ValidationError{
			Field: "status",
			Msg:   fmt.Sprintf("refund berstatus %s, hanya PENDING yang bisa disetujui", refund.Status),
		}
	}

	transactionID := ""
	if refund.RefundMethod == "GATEWAY" && s.Gateway != nil {
		payment, err := s.PaymentRepo.GetByID(refund.PaymentID)
		if err != nil {
			return models.Refund{}, err
		}
		result, err := s.Gateway.RequestRefund(ctx, payment.ExternalID, refund.Amount, refund.Reason)
		if err != nil {
			return models.Refund{}, domain.InternalError{Msg: "gagal mengajukan refund ke gateway", Err: err}
		}
		transactionID = result.RefundID
	}

	if err := s.RefundRepo.UpdateStatus(s.db(), refundID, domain.RefundApproved, transactionID, approvedBy); err != nil {
		return models.Refund{}, domain.InternalError{Err: err}
	}
	refund.Status = domain.RefundApproved
	refund.TransactionID = transactionID
	refund.RefundedBy = approvedBy
	return refund, nil
}

// Complete settles an APPROVED refund: payment REFUNDED, booking REFUNDED.
func (s RefundService) Complete(refundID int64, actor domain.ActorType, actorID int64) (models.Refund, error) {
	refund, err := s.RefundRepo.GetByID(refundID)
	if err != nil {
		return models.Refund{}, err
	}
	if refund.Status != domain.RefundApproved {
		return models.Refund{}, domain.ValidationError{
			Field: "status",
			Msg:   fmt.Sprintf("refund berstatus %s, hanya APPROVED yang bisa diselesaikan", refund.Status),
		}
	}

	err = intdb.WithTx(s.db(), func(tx *sql.Tx) error {
		booking, err := s.BookingRepo.LockByID(tx, refund.BookingID)
		if err != nil {
			return err
		}
		if !booking.Status.CanTransitionTo(domain.BookingRefunded) {
			return domain.ValidationError{
				Field: "status",
				Msg:   fmt.Sprintf("booking %s tidak bisa menjadi REFUNDED", booking.Status),
			}
		}

		if err := s.RefundRepo.UpdateStatus(tx, refundID, domain.RefundCompleted, "", ""); err != nil {
			return domain.InternalError{Err: err}
		}
		if err := s.PaymentRepo.UpdateStatus(tx, refund.PaymentID, domain.PaymentRefunded, false); err != nil {
			return domain.InternalError{Err: err}
		}
		if err := s.BookingRepo.UpdateStatus(tx, booking.ID, domain.BookingRefunded, "", ""); err != nil {
			return domain.InternalError{Err: err}
		}
		return s.BookingLogRepo.Insert(tx, models.BookingLog{
			BookingID:      booking.ID,
			PreviousStatus: booking.Status,
			NewStatus:      domain.BookingRefunded,
			ChangedByType:  actor,
			ChangedByID:    actorID,
			Notes:          fmt.Sprintf("refund %s selesai", utils.FormatRupiah(refund.Amount)),
		})
	})
	if err != nil {
		return models.Refund{}, err
	}
	refund.Status = domain.RefundCompleted
	return refund, nil
}

// Reject closes a PENDING refund and puts the booking back to CANCELLED.
func (s RefundService) Reject(refundID int64, reason string, actor domain.ActorType, actorID int64) (models.Refund, error) {
	refund, err := s.RefundRepo.GetByID(refundID)
	if err != nil {
		return models.Refund{}, err
	}
	if refund.Status != domain.RefundPending {
		return models.Refund{}, domain.ValidationError{
			Field: "status",
			Msg:   fmt.Sprintf("refund berstatus %s, hanya PENDING yang bisa ditolak", refund.Status),
		}
	}

	err = intdb.WithTx(s.db(), func(tx *sql.Tx) error {
		booking, err := s.BookingRepo.LockByID(tx, refund.BookingID)
		if err != nil {
			return err
		}
		if err := s.RefundRepo.UpdateStatus(tx, refundID, domain.RefundRejected, "", ""); err != nil {
			return domain.InternalError{Err: err}
		}
		if booking.Status == domain.BookingRefundPending {
			if err := s.BookingRepo.UpdateStatus(tx, booking.ID, domain.BookingCancelled, "", ""); err != nil {
				return domain.InternalError{Err: err}
			}
			if err := s.BookingLogRepo.Insert(tx, models.BookingLog{
				BookingID:      booking.ID,
				PreviousStatus: booking.Status,
				NewStatus:      domain.BookingCancelled,
				ChangedByType:  actor,
				ChangedByID:    actorID,
				Notes:          utils.AppendNote("refund ditolak", reason),
			}); err != nil {
				return domain.InternalError{Err: err}
			}
		}
		return nil
	})
	if err != nil {
		return models.Refund{}, err
	}
	refund.Status = domain.RefundRejected
	return refund, nil
}
