// Package view содержит чистые функции построения отображения записей:
// отбор по зрителю, группировку по пакетам, заголовки пакетов и пагинацию.
package view

import (
	"fmt"
	"sort"

	"slotbook/internal/domain"
)

type Mode string

const (
	ModeAuth                   Mode = "auth"
	ModeDashboardMain          Mode = "dashboard-main"
	ModeBook                   Mode = "book"
	ModeList                   Mode = "list"
	ModeView                   Mode = "view"
	ModeSpecialistAppointments Mode = "specialist-appointments"
)

func (m Mode) IsValid() bool {
	switch m {
	case ModeAuth, ModeDashboardMain, ModeBook, ModeList, ModeView, ModeSpecialistAppointments:
		return true
	}
	return false
}

type Viewer struct {
	UserID string
	Name   string
	Role   domain.UserRole
}

func ViewerOf(u *domain.User) Viewer {
	return Viewer{UserID: u.ID, Name: u.Name, Role: u.UserType}
}

// Sees сообщает, относится ли запись к зрителю: участник видит свои брони,
// специалист видит созданные им слоты.
func (v Viewer) Sees(a domain.Appointment) bool {
	if v.Role == domain.UserRoleSpecialist {
		return a.SpecialistID == v.UserID
	}
	return a.IsBooked && a.Member() == v.Name
}

// Relevant оставляет записи, относящиеся к зрителю, сохраняя исходный порядок.
func Relevant(v Viewer, all []domain.Appointment) []domain.Appointment {
	out := make([]domain.Appointment, 0, len(all))
	for _, a := range all {
		if v.Sees(a) {
			out = append(out, a)
		}
	}
	return out
}

type Grouping struct {
	Batches    map[string][]domain.Appointment
	Individual []domain.Appointment
}

// BatchIDs возвращает идентификаторы пакетов в порядке первого появления.
func (g Grouping) BatchIDs(order []domain.Appointment) []string {
	seen := make(map[string]bool, len(g.Batches))
	ids := make([]string, 0, len(g.Batches))
	for _, a := range order {
		if a.BulkID == "" || seen[a.BulkID] {
			continue
		}
		if _, ok := g.Batches[a.BulkID]; ok {
			seen[a.BulkID] = true
			ids = append(ids, a.BulkID)
		}
	}
	return ids
}

// Group разбивает видимые зрителю записи на пакеты и одиночные записи.
// Пакет, в котором у участника нет броней, в результат не попадает.
func Group(v Viewer, all []domain.Appointment) Grouping {
	g := Grouping{
		Batches:    make(map[string][]domain.Appointment),
		Individual: make([]domain.Appointment, 0),
	}

	for _, a := range Relevant(v, all) {
		if a.BulkID == "" {
			g.Individual = append(g.Individual, a)
			continue
		}
		g.Batches[a.BulkID] = append(g.Batches[a.BulkID], a)
	}

	return g
}

// BatchTitle формирует подпись пакета: специализация, число слотов,
// диапазон дат и диапазон времени.
func BatchTitle(group []domain.Appointment) string {
	if len(group) == 0 {
		return ""
	}

	dates := make([]string, 0, len(group))
	times := make([]string, 0, len(group))
	for _, a := range group {
		dates = append(dates, a.Date)
		times = append(times, a.Time)
	}

	noun := "slots"
	if len(group) == 1 {
		noun = "slot"
	}

	return fmt.Sprintf("%s - %d %s (%s, %s)",
		group[0].Specialization,
		len(group),
		noun,
		span(dates),
		span(times),
	)
}

func span(values []string) string {
	distinct := uniqueSorted(values)
	if len(distinct) == 1 {
		return distinct[0]
	}
	return distinct[0] + " – " + distinct[len(distinct)-1]
}

func uniqueSorted(values []string) []string {
	set := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := set[v]; ok {
			continue
		}
		set[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
