package view

import "slotbook/internal/domain"

type BatchGroup struct {
	BulkID       string               `json:"bulkId"`
	Title        string               `json:"title"`
	Appointments []domain.Appointment `json:"appointments"`
}

// Dashboard собирает все, что нужно экрану "мои записи": пакеты с подписями,
// страницу одиночных записей и окно номеров страниц.
type Dashboard struct {
	Mode       Mode                     `json:"mode"`
	Batches    []BatchGroup             `json:"batches"`
	Individual Page[domain.Appointment] `json:"individual"`
	PageWindow []int                    `json:"pageWindow"`
}

func ModeFor(v Viewer) Mode {
	if v.Role == domain.UserRoleSpecialist {
		return ModeSpecialistAppointments
	}
	return ModeList
}

func BuildDashboard(v Viewer, all []domain.Appointment, page, pageSize int) Dashboard {
	g := Group(v, all)

	batches := make([]BatchGroup, 0, len(g.Batches))
	for _, id := range g.BatchIDs(all) {
		group := g.Batches[id]
		batches = append(batches, BatchGroup{
			BulkID:       id,
			Title:        BatchTitle(group),
			Appointments: group,
		})
	}

	individual := Paginate(g.Individual, page, pageSize)

	return Dashboard{
		Mode:       ModeFor(v),
		Batches:    batches,
		Individual: individual,
		PageWindow: PageWindow(individual.Page, individual.TotalPages, MaxVisiblePages),
	}
}
