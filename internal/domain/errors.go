package domain

import "errors"

// Классы ошибок. Конкретные ошибки оборачивают один из них через %w,
// транспорт выбирает HTTP-статус по errors.Is.
var (
	ErrValidation     = errors.New("некорректные данные")
	ErrNotFound       = errors.New("не найдено")
	ErrConflict       = errors.New("конфликт")
	ErrAuthentication = errors.New("ошибка аутентификации")
	ErrStore          = errors.New("ошибка хранилища")
)

var (
	ErrAppointmentNotFound = wrap(ErrNotFound, "запись не найдена")
	ErrUserNotFound        = wrap(ErrNotFound, "пользователь не найден")
	ErrAlreadyBooked       = wrap(ErrConflict, "запись уже забронирована")
	ErrEmailTaken          = wrap(ErrConflict, "пользователь с таким email уже существует")
	ErrInvalidCredentials  = wrap(ErrAuthentication, "неверный email или пароль")
)

type kindError struct {
	kind error
	msg  string
}

func wrap(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// ValidationError возвращает ошибку валидации с понятным пользователю текстом.
func ValidationError(msg string) error {
	return wrap(ErrValidation, msg)
}
