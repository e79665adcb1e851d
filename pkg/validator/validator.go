package validator

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

const MinPasswordLength = 6

func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidatePhone(phone string) bool {
	return phoneRegex.MatchString(CleanPhone(phone))
}

// CleanPhone оставляет в номере только цифры и ведущий плюс.
func CleanPhone(phone string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '+' {
			return r
		}
		return -1
	}, phone)
}

func ValidatePassword(password string) bool {
	return len(password) >= MinPasswordLength
}

// ValidateDate проверяет календарную дату в формате YYYY-MM-DD.
func ValidateDate(date string) bool {
	if len(date) != 10 {
		return false
	}
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

// ValidateClock проверяет время в формате HH:MM с ведущими нулями.
func ValidateClock(clock string) bool {
	return clockRegex.MatchString(clock)
}

func SanitizeString(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if r == '<' || r == '>' || r == '`' {
			return -1
		}
		return r
	}, s))
}
