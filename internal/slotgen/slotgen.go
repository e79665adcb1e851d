// Package slotgen разворачивает правило повторения (месяц, дни недели,
// окно времени, шаг) в упорядоченный список слотов дата+время.
package slotgen

import (
	"fmt"
	"strings"
	"time"

	"slotbook/internal/domain"
)

type Recurrence struct {
	Month           string
	Year            int
	Weekdays        []string
	Start           string
	End             string
	IntervalMinutes int
}

type Slot struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

var months = map[string]time.Month{}

var weekdays = map[string]time.Weekday{}

func init() {
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		months[name] = m
		months[name[:3]] = m
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		weekdays[name] = d
		weekdays[name[:3]] = d
	}
}

func ParseMonth(name string) (time.Month, error) {
	m, ok := months[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, domain.ValidationError(fmt.Sprintf("неизвестный месяц: %q", name))
	}
	return m, nil
}

func ParseWeekday(name string) (time.Weekday, error) {
	d, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, domain.ValidationError(fmt.Sprintf("неизвестный день недели: %q", name))
	}
	return d, nil
}

// ParseClock разбирает время в формате HH:MM и возвращает минуты от полуночи.
func ParseClock(s string) (int, error) {
	if len(s) != len(domain.TimeLayout) {
		return 0, domain.ValidationError(fmt.Sprintf("неверный формат времени: %q", s))
	}
	t, err := time.Parse(domain.TimeLayout, s)
	if err != nil {
		return 0, domain.ValidationError(fmt.Sprintf("неверный формат времени: %q", s))
	}
	return t.Hour()*60 + t.Minute(), nil
}

// endOfDay допускается только как конец окна: "24:00" означает полночь следующих суток.
const endOfDay = "24:00"

func parseWindowEnd(s string) (int, error) {
	if s == endOfDay {
		return 24 * 60, nil
	}
	return ParseClock(s)
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// DaysIn возвращает число дней в месяце по реальному календарю.
func DaysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Generate возвращает слоты по возрастанию даты, внутри дня по возрастанию времени.
// Слот попадает в результат, только если целиком помещается в окно [Start, End).
func Generate(r Recurrence) ([]Slot, error) {
	month, err := ParseMonth(r.Month)
	if err != nil {
		return nil, err
	}

	if r.Year < 1 || r.Year > 9999 {
		return nil, domain.ValidationError(fmt.Sprintf("некорректный год: %d", r.Year))
	}

	if len(r.Weekdays) == 0 {
		return nil, domain.ValidationError("не выбраны дни недели")
	}

	selected := make(map[time.Weekday]bool, len(r.Weekdays))
	for _, name := range r.Weekdays {
		d, err := ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		selected[d] = true
	}

	start, err := ParseClock(r.Start)
	if err != nil {
		return nil, err
	}

	end, err := parseWindowEnd(r.End)
	if err != nil {
		return nil, err
	}

	if start >= end {
		return nil, domain.ValidationError("время начала должно быть раньше времени окончания")
	}

	if r.IntervalMinutes <= 0 {
		return nil, domain.ValidationError("интервал должен быть положительным")
	}

	var times []string
	for t := start; t+r.IntervalMinutes <= end; t += r.IntervalMinutes {
		times = append(times, formatClock(t))
	}

	slots := make([]Slot, 0, len(times)*5)
	days := DaysIn(month, r.Year)
	for day := 1; day <= days; day++ {
		date := time.Date(r.Year, month, day, 0, 0, 0, 0, time.UTC)
		if !selected[date.Weekday()] {
			continue
		}

		dateStr := date.Format(domain.DateLayout)
		for _, t := range times {
			slots = append(slots, Slot{Date: dateStr, Time: t})
		}
	}

	return slots, nil
}
