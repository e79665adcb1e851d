package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"

	"slotbook/internal/domain"
)

type Repositories struct {
	User        UserRepository
	Appointment AppointmentRepository
	Store       StorePinger
}

func NewPostgresRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Appointment: NewAppointmentRepository(db),
		Store:       db,
	}
}

func NewMongoRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		User:        NewUserMongoRepository(db),
		Appointment: NewAppointmentMongoRepository(db),
		Store:       mongoPinger{client: db.Client()},
	}
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, id string, dto domain.UpdateProfileDTO) (*domain.User, error)
	SearchSpecialists(ctx context.Context, filter domain.SpecialistFilter) ([]domain.User, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) error
	// CreateBatch сохраняет все записи или ни одной.
	CreateBatch(ctx context.Context, appointments []domain.Appointment) error
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error)
	Update(ctx context.Context, id string, dto domain.UpdateAppointmentDTO) (*domain.Appointment, error)
	// Book атомарно переводит свободную запись в забронированную.
	// Возвращает domain.ErrAlreadyBooked, если запись уже занята.
	Book(ctx context.Context, id, memberName string) (*domain.Appointment, error)
	Delete(ctx context.Context, id string) (*domain.Appointment, error)
}

type StorePinger interface {
	Ping(ctx context.Context) error
}
