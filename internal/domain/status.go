package domain

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	// BookingNew is the virtual pre-persistence state, only ever seen as
	// previous_status in the first audit log row of a booking.
	BookingNew           BookingStatus = "NEW"
	BookingPending       BookingStatus = "PENDING"
	BookingConfirmed     BookingStatus = "CONFIRMED"
	BookingCancelled     BookingStatus = "CANCELLED"
	BookingCompleted     BookingStatus = "COMPLETED"
	BookingRefundPending BookingStatus = "REFUND_PENDING"
	BookingRefunded      BookingStatus = "REFUNDED"
	BookingRescheduled   BookingStatus = "RESCHEDULED"
)

// bookingTransitions is the single source of truth for legal status moves.
// RESCHEDULED is terminal and only ever set by the reschedule transfer.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:       {BookingConfirmed, BookingCancelled},
	BookingConfirmed:     {BookingCompleted, BookingCancelled},
	BookingCancelled:     {BookingRefundPending, BookingRefunded},
	BookingCompleted:     {BookingRefundPending, BookingRefunded},
	BookingRefundPending: {BookingRefunded, BookingCancelled},
	BookingRefunded:      {},
	BookingRescheduled:   {},
}

func (s BookingStatus) IsValid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, t := range bookingTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

type TicketStatus string

const (
	TicketActive    TicketStatus = "ACTIVE"
	TicketCancelled TicketStatus = "CANCELLED"
	TicketUsed      TicketStatus = "USED"
	TicketExpired   TicketStatus = "EXPIRED"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentSuccess  PaymentStatus = "SUCCESS"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

type PaymentMethod string

const (
	MethodCash           PaymentMethod = "CASH"
	MethodBankTransfer   PaymentMethod = "BANK_TRANSFER"
	MethodVirtualAccount PaymentMethod = "VIRTUAL_ACCOUNT"
	MethodEWallet        PaymentMethod = "E_WALLET"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodVirtualAccount, MethodEWallet:
		return true
	}
	return false
}

type ScheduleDateStatus string

const (
	DateAvailable    ScheduleDateStatus = "AVAILABLE"
	DateInactive     ScheduleDateStatus = "INACTIVE"
	DateFull         ScheduleDateStatus = "FULL"
	DateCancelled    ScheduleDateStatus = "CANCELLED"
	DateDeparted     ScheduleDateStatus = "DEPARTED"
	DateWeatherIssue ScheduleDateStatus = "WEATHER_ISSUE"
)

func (s ScheduleDateStatus) IsValid() bool {
	switch s {
	case DateAvailable, DateInactive, DateFull, DateCancelled, DateDeparted, DateWeatherIssue:
		return true
	}
	return false
}

// StatusSource records whether a schedule date status was set by an operator
// or inherited from its parent schedule.
type StatusSource string

const (
	SourceManual    StatusSource = "MANUAL"
	SourceInherited StatusSource = "INHERITED"
)

type RefundStatus string

const (
	RefundPending   RefundStatus = "PENDING"
	RefundApproved  RefundStatus = "APPROVED"
	RefundRejected  RefundStatus = "REJECTED"
	RefundCompleted RefundStatus = "COMPLETED"
)

type ScheduleStatus string

const (
	ScheduleActive   ScheduleStatus = "ACTIVE"
	ScheduleInactive ScheduleStatus = "INACTIVE"
)

// ActorType identifies who performed a booking status change in the audit log.
type ActorType string

const (
	ActorAdmin  ActorType = "ADMIN"
	ActorUser   ActorType = "USER"
	ActorSystem ActorType = "SYSTEM"
)

type VehicleType string

const (
	VehicleMotorcycle VehicleType = "MOTORCYCLE"
	VehicleCar        VehicleType = "CAR"
	VehicleBus        VehicleType = "BUS"
	VehicleTruck      VehicleType = "TRUCK"
)

// VehicleTypes lists every class in ledger column order.
var VehicleTypes = []VehicleType{VehicleMotorcycle, VehicleCar, VehicleBus, VehicleTruck}

func (t VehicleType) IsValid() bool {
	switch t {
	case VehicleMotorcycle, VehicleCar, VehicleBus, VehicleTruck:
		return true
	}
	return false
}

// Label is the Indonesian display name used in error messages and exports.
func (t VehicleType) Label() string {
	switch t {
	case VehicleMotorcycle:
		return "motor"
	case VehicleCar:
		return "mobil"
	case VehicleBus:
		return "bus"
	case VehicleTruck:
		return "truk"
	}
	return string(t)
}

// Field is the request field name the class maps to in validation payloads.
func (t VehicleType) Field() string {
	switch t {
	case VehicleMotorcycle:
		return "motorcycle_count"
	case VehicleCar:
		return "car_count"
	case VehicleBus:
		return "bus_count"
	case VehicleTruck:
		return "truck_count"
	}
	return "vehicle_count"
}
