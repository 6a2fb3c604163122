package create_reservation

import "errors"

// Ошибки этапа допуска (ErrInvalidInterval, ErrSlotUnavailable,
// ErrDailyLimitExceeded, ErrMultipleLabsPerDay, ErrOutsideOperatingHours)
// пробрасываются из пакета admission без переупаковки, чтобы сообщение
// сохранило контекст отказа.
var (
	// ErrAccountNotFound возвращается, когда запрашивающий не найден в справочнике
	ErrAccountNotFound = errors.New("create_reservation: requester account not found")

	// ErrRoleMismatch возвращается, когда заявленная роль не совпадает со справочником
	ErrRoleMismatch = errors.New("create_reservation: claimed role does not match directory")

	// ErrComputerNotFound возвращается, когда компьютер не найден
	ErrComputerNotFound = errors.New("create_reservation: computer not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
