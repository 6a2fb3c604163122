package get_lab_schedule

import "errors"

var (
	// ErrLabNotFound возвращается, когда лаборатория не найдена
	ErrLabNotFound = errors.New("get_lab_schedule: laboratory not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_lab_schedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_lab_schedule: internal error")
)
