package admission

import "errors"

var (
	// ErrInvalidInterval возвращается, когда запрошенный интервал нельзя построить (end <= start)
	ErrInvalidInterval = errors.New("admission: invalid time interval")

	// ErrSlotUnavailable возвращается, когда интервал пересекается с существующим блокирующим резервированием
	ErrSlotUnavailable = errors.New("admission: slot is not available")

	// ErrDailyLimitExceeded возвращается, когда суммарное время студента за день превысило бы лимит
	ErrDailyLimitExceeded = errors.New("admission: daily limit exceeded")

	// ErrMultipleLabsPerDay возвращается, когда студент уже занят в другой лаборатории в этот день
	ErrMultipleLabsPerDay = errors.New("admission: multiple labs per day")

	// ErrOutsideOperatingHours возвращается, когда интервал выходит за рабочие часы лаборатории
	ErrOutsideOperatingHours = errors.New("admission: outside operating hours")
)
