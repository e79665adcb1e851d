package domain

import "time"

type EventType string

const (
	EventCreated     EventType = "created"
	EventBulkCreated EventType = "bulk_created"
	EventBooked      EventType = "booked"
	EventUpdated     EventType = "updated"
	EventDeleted     EventType = "deleted"
)

// AppointmentEvent рассылается подключенным клиентам после каждого изменения записей.
// Для удаленной забронированной записи MemberName сообщает, кого нужно уведомить.
type AppointmentEvent struct {
	Type         EventType     `json:"type"`
	Appointment  *Appointment  `json:"appointment,omitempty"`
	Appointments []Appointment `json:"appointments,omitempty"`
	BulkID       string        `json:"bulkId,omitempty"`
	MemberName   string        `json:"memberName,omitempty"`
	Timestamp    time.Time     `json:"timestamp"`
}

type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"`
	Cache     string    `json:"cache,omitempty"`
}
