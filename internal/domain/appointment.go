package domain

import (
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type Appointment struct {
	ID             string    `json:"_id" bson:"_id"`
	SpecialistID   string    `json:"specialistId" bson:"specialistId"`
	SpecialistName string    `json:"specialistName" bson:"specialistName"`
	Specialization string    `json:"specialization" bson:"specialization"`
	Category       Category  `json:"category" bson:"category"`
	Date           string    `json:"date" bson:"date"`
	Time           string    `json:"time" bson:"time"`
	Venue          string    `json:"venue,omitempty" bson:"venue,omitempty"`
	Phone          string    `json:"phone,omitempty" bson:"phone,omitempty"`
	MemberName     *string   `json:"memberName" bson:"memberName"`
	IsBooked       bool      `json:"isBooked" bson:"isBooked"`
	BulkID         string    `json:"bulkId,omitempty" bson:"bulkId,omitempty"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Member возвращает имя забронировавшего участника или пустую строку.
func (a *Appointment) Member() string {
	if a.MemberName == nil {
		return ""
	}
	return *a.MemberName
}

type CreateAppointmentDTO struct {
	SpecialistID   string   `json:"specialistId"`
	SpecialistName string   `json:"specialistName"`
	Specialization string   `json:"specialization"`
	Category       Category `json:"category"`
	Date           string   `json:"date"`
	Time           string   `json:"time"`
	Venue          string   `json:"venue"`
	Phone          string   `json:"phone"`
}

// RecurrenceDTO описывает повторяющиеся слоты: месяц, дни недели и окно времени.
type RecurrenceDTO struct {
	Month           string   `json:"month"`
	Year            int      `json:"year"`
	Weekdays        []string `json:"weekdays"`
	StartTime       string   `json:"startTime"`
	EndTime         string   `json:"endTime"`
	IntervalMinutes int      `json:"interval"`
}

type BulkCreateDTO struct {
	Appointments []CreateAppointmentDTO `json:"appointments"`

	Recurrence     *RecurrenceDTO `json:"recurrence,omitempty"`
	SpecialistID   string         `json:"specialistId,omitempty"`
	SpecialistName string         `json:"specialistName,omitempty"`
	Specialization string         `json:"specialization,omitempty"`
	Category       Category       `json:"category,omitempty"`
	Venue          string         `json:"venue,omitempty"`
	Phone          string         `json:"phone,omitempty"`
}

type BulkResult struct {
	Appointments []Appointment `json:"appointments"`
	BulkID       string        `json:"bulkId"`
	Count        int           `json:"count"`
}

type BookAppointmentDTO struct {
	MemberName string `json:"memberName"`
}

type UpdateAppointmentDTO struct {
	Venue *string `json:"venue"`
	Phone *string `json:"phone"`
	Time  *string `json:"time"`
}

type AppointmentFilter struct {
	SpecialistID string
	Date         string
	Category     Category
	MemberName   string
	BulkID       string
	IsBooked     *bool
}
