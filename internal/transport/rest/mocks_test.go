package rest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"slotbook/internal/domain"
	"slotbook/internal/view"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, dto domain.RegisterRequest) (*domain.AuthResult, error) {
	args := m.Called(ctx, dto)
	r, _ := args.Get(0).(*domain.AuthResult)
	return r, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, dto domain.LoginRequest) (*domain.AuthResult, error) {
	args := m.Called(ctx, dto)
	r, _ := args.Get(0).(*domain.AuthResult)
	return r, args.Error(1)
}

func (m *mockAuthService) ParseToken(ctx context.Context, token string) (string, domain.UserRole, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Get(1).(domain.UserRole), args.Error(2)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserService) UpdateProfile(ctx context.Context, id string, dto domain.UpdateProfileDTO) (*domain.User, error) {
	args := m.Called(ctx, id, dto)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserService) SearchSpecialists(ctx context.Context, filter domain.SpecialistFilter) ([]domain.User, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]domain.User)
	return list, args.Error(1)
}

type mockAppointmentService struct {
	mock.Mock
}

func (m *mockAppointmentService) Create(ctx context.Context, dto domain.CreateAppointmentDTO) (*domain.Appointment, error) {
	args := m.Called(ctx, dto)
	a, _ := args.Get(0).(*domain.Appointment)
	return a, args.Error(1)
}

func (m *mockAppointmentService) CreateBulk(ctx context.Context, dto domain.BulkCreateDTO) (*domain.BulkResult, error) {
	args := m.Called(ctx, dto)
	r, _ := args.Get(0).(*domain.BulkResult)
	return r, args.Error(1)
}

func (m *mockAppointmentService) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*domain.Appointment)
	return a, args.Error(1)
}

func (m *mockAppointmentService) ListAll(ctx context.Context) ([]domain.Appointment, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]domain.Appointment)
	return list, args.Error(1)
}

func (m *mockAppointmentService) AvailableForSpecialist(ctx context.Context, specialistID string) ([]domain.Appointment, error) {
	args := m.Called(ctx, specialistID)
	list, _ := args.Get(0).([]domain.Appointment)
	return list, args.Error(1)
}

func (m *mockAppointmentService) AvailableOnDate(ctx context.Context, date string, category domain.Category) ([]domain.Appointment, error) {
	args := m.Called(ctx, date, category)
	list, _ := args.Get(0).([]domain.Appointment)
	return list, args.Error(1)
}

func (m *mockAppointmentService) Book(ctx context.Context, id, memberName string) (*domain.Appointment, error) {
	args := m.Called(ctx, id, memberName)
	a, _ := args.Get(0).(*domain.Appointment)
	return a, args.Error(1)
}

func (m *mockAppointmentService) Update(ctx context.Context, id string, dto domain.UpdateAppointmentDTO) (*domain.Appointment, error) {
	args := m.Called(ctx, id, dto)
	a, _ := args.Get(0).(*domain.Appointment)
	return a, args.Error(1)
}

func (m *mockAppointmentService) Delete(ctx context.Context, id string) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*domain.Appointment)
	return a, args.Error(1)
}

func (m *mockAppointmentService) Dashboard(ctx context.Context, userID string, page, pageSize int) (*view.Dashboard, error) {
	args := m.Called(ctx, userID, page, pageSize)
	d, _ := args.Get(0).(*view.Dashboard)
	return d, args.Error(1)
}

type stubHealthService struct {
	status domain.HealthStatus
}

func (s stubHealthService) Check(context.Context) domain.HealthStatus {
	return s.status
}
