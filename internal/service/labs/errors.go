package labs

import "errors"

var (
	// ErrLabNotFound возвращается, когда лаборатория не найдена
	ErrLabNotFound = errors.New("laboratory not found")

	// ErrComputerNotFound возвращается, когда компьютер не найден
	ErrComputerNotFound = errors.New("computer not found")

	// ErrDuplicateLab возвращается при попытке создать лабораторию с занятым именем
	ErrDuplicateLab = errors.New("laboratory name already exists")

	// ErrAccessDenied возвращается, когда у запрашивающего нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
