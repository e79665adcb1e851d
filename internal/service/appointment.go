package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"slotbook/internal/domain"
	"slotbook/internal/repository"
	"slotbook/internal/slotgen"
	"slotbook/internal/view"
	"slotbook/pkg/validator"
)

type AppointmentServiceImpl struct {
	repo     repository.AppointmentRepository
	userRepo repository.UserRepository
	events   EventPublisher
	logger   *zap.Logger
}

func NewAppointmentService(
	repo repository.AppointmentRepository,
	userRepo repository.UserRepository,
	events EventPublisher,
	logger *zap.Logger,
) *AppointmentServiceImpl {
	return &AppointmentServiceImpl{
		repo:     repo,
		userRepo: userRepo,
		events:   events,
		logger:   logger,
	}
}

// newAppointment проверяет поля слота и собирает свободную запись.
func newAppointment(dto domain.CreateAppointmentDTO, now time.Time) (domain.Appointment, error) {
	if strings.TrimSpace(dto.SpecialistID) == "" {
		return domain.Appointment{}, domain.ValidationError("не указан идентификатор специалиста")
	}

	specialistName := validator.SanitizeString(dto.SpecialistName)
	if specialistName == "" {
		return domain.Appointment{}, domain.ValidationError("не указано имя специалиста")
	}

	specialization := validator.SanitizeString(dto.Specialization)
	if specialization == "" {
		return domain.Appointment{}, domain.ValidationError("не указана специализация")
	}

	if !dto.Category.IsValid() {
		return domain.Appointment{}, domain.ValidationError(fmt.Sprintf("неизвестная категория: %q", dto.Category))
	}

	if !validator.ValidateDate(dto.Date) {
		return domain.Appointment{}, domain.ValidationError(fmt.Sprintf("некорректная дата: %q, ожидается YYYY-MM-DD", dto.Date))
	}

	if !validator.ValidateClock(dto.Time) {
		return domain.Appointment{}, domain.ValidationError(fmt.Sprintf("некорректное время: %q, ожидается HH:MM", dto.Time))
	}

	return domain.Appointment{
		ID:             uuid.New().String(),
		SpecialistID:   strings.TrimSpace(dto.SpecialistID),
		SpecialistName: specialistName,
		Specialization: specialization,
		Category:       dto.Category,
		Date:           dto.Date,
		Time:           dto.Time,
		Venue:          validator.SanitizeString(dto.Venue),
		Phone:          strings.TrimSpace(dto.Phone),
		IsBooked:       false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

func (s *AppointmentServiceImpl) publish(eventType domain.EventType, build func(*domain.AppointmentEvent)) {
	event := domain.AppointmentEvent{Type: eventType, Timestamp: time.Now()}
	build(&event)
	s.events.Publish(event)
}

func (s *AppointmentServiceImpl) Create(ctx context.Context, dto domain.CreateAppointmentDTO) (*domain.Appointment, error) {
	appointment, err := newAppointment(dto, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, &appointment); err != nil {
		s.logger.Error("ошибка создания записи", zap.String("specialistId", appointment.SpecialistID), zap.Error(err))
		return nil, storeError(err)
	}

	s.publish(domain.EventCreated, func(e *domain.AppointmentEvent) {
		e.Appointment = &appointment
	})

	return &appointment, nil
}

// expandRecurrence превращает правило повторения в явный список слотов
// с общими полями специалиста.
func expandRecurrence(dto domain.BulkCreateDTO) ([]domain.CreateAppointmentDTO, error) {
	r := dto.Recurrence
	slots, err := slotgen.Generate(slotgen.Recurrence{
		Month:           r.Month,
		Year:            r.Year,
		Weekdays:        r.Weekdays,
		Start:           r.StartTime,
		End:             r.EndTime,
		IntervalMinutes: r.IntervalMinutes,
	})
	if err != nil {
		return nil, err
	}

	items := make([]domain.CreateAppointmentDTO, 0, len(slots))
	for _, slot := range slots {
		items = append(items, domain.CreateAppointmentDTO{
			SpecialistID:   dto.SpecialistID,
			SpecialistName: dto.SpecialistName,
			Specialization: dto.Specialization,
			Category:       dto.Category,
			Date:           slot.Date,
			Time:           slot.Time,
			Venue:          dto.Venue,
			Phone:          dto.Phone,
		})
	}

	return items, nil
}

func (s *AppointmentServiceImpl) CreateBulk(ctx context.Context, dto domain.BulkCreateDTO) (*domain.BulkResult, error) {
	items := dto.Appointments
	if dto.Recurrence != nil {
		if len(items) > 0 {
			return nil, domain.ValidationError("укажите либо список записей, либо правило повторения")
		}
		expanded, err := expandRecurrence(dto)
		if err != nil {
			return nil, err
		}
		items = expanded
	}

	if len(items) == 0 {
		return nil, domain.ValidationError("требуется непустой список записей")
	}

	bulkID := uuid.New().String()
	now := time.Now()

	appointments := make([]domain.Appointment, 0, len(items))
	for i, item := range items {
		appointment, err := newAppointment(item, now)
		if err != nil {
			return nil, fmt.Errorf("запись %d: %w", i+1, err)
		}
		appointment.BulkID = bulkID
		appointments = append(appointments, appointment)
	}

	if err := s.repo.CreateBatch(ctx, appointments); err != nil {
		s.logger.Error("ошибка пакетного создания записей", zap.String("bulkId", bulkID), zap.Int("count", len(appointments)), zap.Error(err))
		return nil, storeError(err)
	}

	s.logger.Info("создан пакет записей", zap.String("bulkId", bulkID), zap.Int("count", len(appointments)))

	s.publish(domain.EventBulkCreated, func(e *domain.AppointmentEvent) {
		e.Appointments = appointments
		e.BulkID = bulkID
	})

	return &domain.BulkResult{
		Appointments: appointments,
		BulkID:       bulkID,
		Count:        len(appointments),
	}, nil
}

func (s *AppointmentServiceImpl) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	return appointment, nil
}

func (s *AppointmentServiceImpl) list(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	appointments, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка записей", zap.Error(err))
		return nil, storeError(err)
	}
	return appointments, nil
}

func (s *AppointmentServiceImpl) ListAll(ctx context.Context) ([]domain.Appointment, error) {
	return s.list(ctx, domain.AppointmentFilter{})
}

func (s *AppointmentServiceImpl) AvailableForSpecialist(ctx context.Context, specialistID string) ([]domain.Appointment, error) {
	if strings.TrimSpace(specialistID) == "" {
		return nil, domain.ValidationError("не указан идентификатор специалиста")
	}

	booked := false
	return s.list(ctx, domain.AppointmentFilter{SpecialistID: specialistID, IsBooked: &booked})
}

func (s *AppointmentServiceImpl) AvailableOnDate(ctx context.Context, date string, category domain.Category) ([]domain.Appointment, error) {
	if !validator.ValidateDate(date) {
		return nil, domain.ValidationError(fmt.Sprintf("некорректная дата: %q, ожидается YYYY-MM-DD", date))
	}

	if category != "" && !category.IsValid() {
		return nil, domain.ValidationError(fmt.Sprintf("неизвестная категория: %q", category))
	}

	booked := false
	return s.list(ctx, domain.AppointmentFilter{Date: date, Category: category, IsBooked: &booked})
}

func (s *AppointmentServiceImpl) Book(ctx context.Context, id, memberName string) (*domain.Appointment, error) {
	memberName = validator.SanitizeString(memberName)
	if memberName == "" {
		return nil, domain.ValidationError("не указано имя участника")
	}

	appointment, err := s.repo.Book(ctx, id, memberName)
	if err != nil {
		s.logger.Warn("бронирование отклонено", zap.String("appointmentId", id), zap.Error(err))
		return nil, storeError(err)
	}

	s.logger.Info("запись забронирована", zap.String("appointmentId", id))

	s.publish(domain.EventBooked, func(e *domain.AppointmentEvent) {
		e.Appointment = appointment
		e.MemberName = memberName
	})

	return appointment, nil
}

func (s *AppointmentServiceImpl) Update(ctx context.Context, id string, dto domain.UpdateAppointmentDTO) (*domain.Appointment, error) {
	update := domain.UpdateAppointmentDTO{}

	if dto.Venue != nil {
		venue := validator.SanitizeString(*dto.Venue)
		update.Venue = &venue
	}

	if dto.Phone != nil {
		phone := strings.TrimSpace(*dto.Phone)
		update.Phone = &phone
	}

	if dto.Time != nil {
		if !validator.ValidateClock(*dto.Time) {
			return nil, domain.ValidationError(fmt.Sprintf("некорректное время: %q, ожидается HH:MM", *dto.Time))
		}
		update.Time = dto.Time
	}

	appointment, err := s.repo.Update(ctx, id, update)
	if err != nil {
		s.logger.Error("ошибка обновления записи", zap.String("appointmentId", id), zap.Error(err))
		return nil, storeError(err)
	}

	s.publish(domain.EventUpdated, func(e *domain.AppointmentEvent) {
		e.Appointment = appointment
	})

	return appointment, nil
}

// Delete удаляет запись независимо от того, забронирована ли она.
// Событие об удалении несет имя участника, чтобы его интерфейс мог показать уведомление.
func (s *AppointmentServiceImpl) Delete(ctx context.Context, id string) (*domain.Appointment, error) {
	appointment, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("ошибка удаления записи", zap.String("appointmentId", id), zap.Error(err))
		return nil, storeError(err)
	}

	if appointment.IsBooked {
		s.logger.Info("удалена забронированная запись", zap.String("appointmentId", id), zap.String("memberName", appointment.Member()))
	}

	s.publish(domain.EventDeleted, func(e *domain.AppointmentEvent) {
		e.Appointment = appointment
		e.MemberName = appointment.Member()
	})

	return appointment, nil
}

func (s *AppointmentServiceImpl) Dashboard(ctx context.Context, userID string, page, pageSize int) (*view.Dashboard, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}

	viewer := view.ViewerOf(user)

	filter := domain.AppointmentFilter{SpecialistID: user.ID}
	if !user.IsSpecialist() {
		booked := true
		filter = domain.AppointmentFilter{MemberName: user.Name, IsBooked: &booked}
	}

	appointments, err := s.list(ctx, filter)
	if err != nil {
		return nil, err
	}

	dashboard := view.BuildDashboard(viewer, appointments, page, pageSize)
	return &dashboard, nil
}
