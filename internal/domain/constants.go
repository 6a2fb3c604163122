package domain

// Business rule constants
const (
	// DailyCapMinutes максимум минут блокирующих резервирований студента в день.
	// Ровно 120 минут ещё допустимо, 121 и больше — отказ.
	DailyCapMinutes = 120

	MinLabCapacity = 1
	MaxLabCapacity = 500

	MaxLabNameLength      = 150
	MaxComputerNameLength = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses статусы, учитываемые в проверках конфликтов и дневной квоты.
// Pending включён намеренно: слот считается занятым уже на время ожидания
// подтверждения, иначе два студента могут запросить один слот до одобрения.
var BlockingStatuses = []ReservationStatus{
	StatusPending,
	StatusApproved,
}

// IsBlockingStatus reports whether the status counts toward conflict and
// quota checks.
func IsBlockingStatus(status ReservationStatus) bool {
	for _, s := range BlockingStatuses {
		if s == status {
			return true
		}
	}
	return false
}
