package domain

// ComputerAvailability describes one computer's occupancy on a single date
type ComputerAvailability struct {
	Computer     Computer
	Reservations []*Reservation // blocking reservations on the date
	BookedMinutes int
	WindowMinutes int // length of the lab's operating window, 0 = unrestricted
}

// IsFree returns true if the computer has no blocking reservations that day
func (c *ComputerAvailability) IsFree() bool {
	return len(c.Reservations) == 0
}

// IsFullyBooked returns true if the whole operating window is reserved.
// Without an operating window the computer is never considered fully booked.
func (c *ComputerAvailability) IsFullyBooked() bool {
	return c.WindowMinutes > 0 && c.BookedMinutes >= c.WindowMinutes
}

// OccupancyRate returns the booked share of the operating window as a
// percentage (0-100). Returns 0 when the lab has no operating window.
func (c *ComputerAvailability) OccupancyRate() float64 {
	if c.WindowMinutes == 0 {
		return 0
	}
	rate := float64(c.BookedMinutes) / float64(c.WindowMinutes) * 100
	if rate > 100 {
		return 100
	}
	return rate
}
