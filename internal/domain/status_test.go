package domain

import "testing"

func TestBookingTransitions(t *testing.T) {
	allowed := []struct {
		from, to BookingStatus
	}{
		{BookingPending, BookingConfirmed},
		{BookingPending, BookingCancelled},
		{BookingConfirmed, BookingCompleted},
		{BookingConfirmed, BookingCancelled},
		{BookingCancelled, BookingRefundPending},
		{BookingCancelled, BookingRefunded},
		{BookingCompleted, BookingRefundPending},
		{BookingRefundPending, BookingRefunded},
		{BookingRefundPending, BookingCancelled},
	}
	for _, tc := range allowed {
		if !tc.from.CanTransitionTo(tc.to) {
			t.Errorf("%s -> %s harus diizinkan", tc.from, tc.to)
		}
	}

	denied := []struct {
		from, to BookingStatus
	}{
		{BookingPending, BookingCompleted},
		{BookingPending, BookingRefunded},
		{BookingCancelled, BookingConfirmed},
		{BookingCompleted, BookingCancelled},
		{BookingRefunded, BookingPending},
		{BookingRefunded, BookingCancelled},
		{BookingRescheduled, BookingConfirmed},
		{BookingConfirmed, BookingPending},
	}
	for _, tc := range denied {
		if tc.from.CanTransitionTo(tc.to) {
			t.Errorf("%s -> %s harus ditolak", tc.from, tc.to)
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	if !BookingRefunded.IsTerminal() {
		t.Error("REFUNDED harus terminal")
	}
	if !BookingRescheduled.IsTerminal() {
		t.Error("RESCHEDULED harus terminal")
	}
	for _, s := range []BookingStatus{BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted, BookingRefundPending} {
		if s.IsTerminal() {
			t.Errorf("%s tidak boleh terminal", s)
		}
	}
}

func TestBookingStatusIsValid(t *testing.T) {
	if BookingStatus("UNKNOWN").IsValid() {
		t.Error("status asing tidak boleh valid")
	}
	if !BookingPending.IsValid() {
		t.Error("PENDING harus valid")
	}
	// NEW is virtual: legal in audit logs, never as a stored status.
	if BookingNew.IsValid() {
		t.Error("NEW tidak boleh menjadi status tersimpan")
	}
}

func TestPaymentMethodIsValid(t *testing.T) {
	for _, m := range []PaymentMethod{MethodCash, MethodBankTransfer, MethodVirtualAccount, MethodEWallet} {
		if !m.IsValid() {
			t.Errorf("%s harus valid", m)
		}
	}
	if PaymentMethod("CHEQUE").IsValid() {
		t.Error("CHEQUE tidak boleh valid")
	}
}
