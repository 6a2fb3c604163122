package get_lab_schedule

import (
	"github.com/ekarahan/LCR-ReservationService/internal/domain"
	getLabSchedule "github.com/ekarahan/LCR-ReservationService/internal/usecase/get_lab_schedule"
)

// LabScheduleResponse HTTP response model
type LabScheduleResponse struct {
	LabID          int64                      `json:"labId"`
	LabName        string                     `json:"labName"`
	Capacity       int                        `json:"capacity"`
	OperatingStart *string                    `json:"operatingStart,omitempty"`
	OperatingEnd   *string                    `json:"operatingEnd,omitempty"`
	Date           string                     `json:"date"`
	Computers      []ComputerScheduleResponse `json:"computers"`
}

// ComputerScheduleResponse занятость одного компьютера
type ComputerScheduleResponse struct {
	ComputerID    int64                  `json:"computerId"`
	ComputerName  string                 `json:"computerName"`
	Reservations  []ReservedSlotResponse `json:"reservations"`
	BookedMinutes int                    `json:"bookedMinutes"`
	FullyBooked   bool                   `json:"fullyBooked"`
	OccupancyRate float64                `json:"occupancyRate"`
}

// ReservedSlotResponse один занятый интервал
type ReservedSlotResponse struct {
	ReservationID int64  `json:"reservationId"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	Status        string `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getLabSchedule.Response) *LabScheduleResponse {
	out := &LabScheduleResponse{
		LabID:     resp.LabID,
		LabName:   resp.LabName,
		Capacity:  resp.Capacity,
		Date:      resp.Date.Format(domain.DateFormat),
		Computers: make([]ComputerScheduleResponse, len(resp.Computers)),
	}

	if resp.OperatingStart != nil && resp.OperatingEnd != nil {
		start := resp.OperatingStart.String()
		end := resp.OperatingEnd.String()
		out.OperatingStart = &start
		out.OperatingEnd = &end
	}

	for i, c := range resp.Computers {
		slots := make([]ReservedSlotResponse, len(c.Reservations))
		for j, slot := range c.Reservations {
			slots[j] = ReservedSlotResponse{
				ReservationID: slot.ReservationID,
				StartTime:     slot.StartTime.String(),
				EndTime:       slot.EndTime.String(),
				Status:        string(slot.Status),
			}
		}
		out.Computers[i] = ComputerScheduleResponse{
			ComputerID:    c.ComputerID,
			ComputerName:  c.ComputerName,
			Reservations:  slots,
			BookedMinutes: c.BookedMinutes,
			FullyBooked:   c.FullyBooked,
			OccupancyRate: c.OccupancyRate,
		}
	}

	return out
}
