package lab

import "errors"

var (
	// ErrLabNotFound возвращается, когда лаборатория не найдена
	ErrLabNotFound = errors.New("lab.repository: laboratory not found")

	// ErrComputerNotFound возвращается, когда компьютер не найден
	ErrComputerNotFound = errors.New("lab.repository: computer not found")

	// ErrDuplicateLab возвращается при попытке создать лабораторию с занятым именем
	ErrDuplicateLab = errors.New("lab.repository: laboratory name already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("lab.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("lab.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("lab.repository: failed to scan row")
)
