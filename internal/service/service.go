package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"slotbook/config"
	"slotbook/internal/cache"
	"slotbook/internal/domain"
	"slotbook/internal/repository"
	"slotbook/internal/storage"
	"slotbook/internal/view"
)

type Deps struct {
	Repos  *repository.Repositories
	Logger *zap.Logger
	Config *config.Config
	// Photos может быть nil: тогда фото профиля хранится прямо в записи пользователя.
	Photos storage.PhotoStorage
	Cache  *cache.Client
	Events EventPublisher
}

type Services struct {
	Auth        AuthService
	User        UserService
	Appointment AppointmentService
	Health      HealthService
}

func NewServices(deps Deps) *Services {
	events := deps.Events
	if events == nil {
		events = NopPublisher{}
	}

	directory := newDirectoryCache(deps.Cache, deps.Config.Redis.SearchTTL)

	return &Services{
		Auth:        NewAuthService(deps.Repos.User, directory, deps.Config.JWT, deps.Logger),
		User:        NewUserService(deps.Repos.User, deps.Photos, directory, deps.Logger),
		Appointment: NewAppointmentService(deps.Repos.Appointment, deps.Repos.User, events, deps.Logger),
		Health:      NewHealthService(deps.Repos.Store, deps.Cache),
	}
}

type AuthService interface {
	Register(ctx context.Context, dto domain.RegisterRequest) (*domain.AuthResult, error)
	Login(ctx context.Context, dto domain.LoginRequest) (*domain.AuthResult, error)
	ParseToken(ctx context.Context, token string) (string, domain.UserRole, error)
}

type UserService interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, dto domain.UpdateProfileDTO) (*domain.User, error)
	SearchSpecialists(ctx context.Context, filter domain.SpecialistFilter) ([]domain.User, error)
}

type AppointmentService interface {
	Create(ctx context.Context, dto domain.CreateAppointmentDTO) (*domain.Appointment, error)
	CreateBulk(ctx context.Context, dto domain.BulkCreateDTO) (*domain.BulkResult, error)
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	ListAll(ctx context.Context) ([]domain.Appointment, error)
	AvailableForSpecialist(ctx context.Context, specialistID string) ([]domain.Appointment, error)
	AvailableOnDate(ctx context.Context, date string, category domain.Category) ([]domain.Appointment, error)
	Book(ctx context.Context, id, memberName string) (*domain.Appointment, error)
	Update(ctx context.Context, id string, dto domain.UpdateAppointmentDTO) (*domain.Appointment, error)
	Delete(ctx context.Context, id string) (*domain.Appointment, error)
	Dashboard(ctx context.Context, userID string, page, pageSize int) (*view.Dashboard, error)
}

type HealthService interface {
	Check(ctx context.Context) domain.HealthStatus
}

// EventPublisher получает события об изменении записей. Реализация не должна блокировать.
type EventPublisher interface {
	Publish(event domain.AppointmentEvent)
}

type NopPublisher struct{}

func (NopPublisher) Publish(domain.AppointmentEvent) {}

// storeError относит неклассифицированные ошибки хранилища к ErrStore,
// ошибки из таксономии домена возвращаются как есть.
func storeError(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range []error{domain.ErrValidation, domain.ErrNotFound, domain.ErrConflict, domain.ErrAuthentication, domain.ErrStore} {
		if errors.Is(err, kind) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", domain.ErrStore, err)
}
