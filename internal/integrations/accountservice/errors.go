package accountservice

import "errors"

var (
	// ErrAccountNotFound возвращается, когда учетная запись не найдена
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountInactive возвращается, когда учетная запись заблокирована
	ErrAccountInactive = errors.New("account is inactive")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("accountservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("accountservice client: invalid response")
)
