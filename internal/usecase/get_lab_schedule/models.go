package get_lab_schedule

import (
	"time"

	"github.com/ekarahan/LCR-ReservationService/internal/domain"
	"github.com/ekarahan/LCR-ReservationService/pkg/types"
)

// Request модель запроса расписания лаборатории на дату
type Request struct {
	LabID int64
	Date  *time.Time // nil = сегодня
}

// Response расписание лаборатории на дату
type Response struct {
	LabID          int64
	LabName        string
	Capacity       int
	OperatingStart *types.TimeString
	OperatingEnd   *types.TimeString
	Date           time.Time
	Computers      []ComputerSchedule
}

// ComputerSchedule занятость одного компьютера на дату
type ComputerSchedule struct {
	ComputerID    int64
	ComputerName  string
	Reservations  []ReservedSlot
	BookedMinutes int
	FullyBooked   bool
	OccupancyRate float64 // процент занятости рабочего окна (0-100)
}

// ReservedSlot один занятый интервал
type ReservedSlot struct {
	ReservationID int64
	StartTime     types.TimeString
	EndTime       types.TimeString
	Status        domain.ReservationStatus
}
