package domain

// Business validation constants
const (
	MinSlotMinutes         = 5
	MaxSlotMinutes         = 480 // 8 hours
	MaxAdvanceDays         = 365
	MaxNoticeMinutes       = 10080 // 1 week
	MaxCancelCutoffMinutes = 10080
	MaxSlotsPerBooking     = 24
)

// Notification kinds
const (
	NotificationBookingConfirmed = "booking_confirmed"
	NotificationBookingCancelled = "booking_cancelled"
)
