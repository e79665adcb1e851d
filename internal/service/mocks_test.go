package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"slotbook/config"
	"slotbook/internal/domain"
	"slotbook/internal/storage"
)

type mockAppointmentRepo struct {
	mock.Mock
}

func (m *mockAppointmentRepo) Create(ctx context.Context, a *domain.Appointment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockAppointmentRepo) CreateBatch(ctx context.Context, list []domain.Appointment) error {
	return m.Called(ctx, list).Error(0)
}

func (m *mockAppointmentRepo) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*domain.Appointment)
	return a, args.Error(1)
}

func (m *mockAppointmentRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]domain.Appointment)
	return list, args.Error(1)
}

func (m *mockAppointmentRepo) Update(ctx context.Context, id string, dto domain.UpdateAppointmentDTO) (*domain.Appointment, error) {
	args := m.Called(ctx, id, dto)
	a, _ := args.Get(0).(*domain.Appointment)
	return a, args.Error(1)
}

func (m *mockAppointmentRepo) Book(ctx context.Context, id, memberName string) (*domain.Appointment, error) {
	args := m.Called(ctx, id, memberName)
	a, _ := args.Get(0).(*domain.Appointment)
	return a, args.Error(1)
}

func (m *mockAppointmentRepo) Delete(ctx context.Context, id string) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*domain.Appointment)
	return a, args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, id string, dto domain.UpdateProfileDTO) (*domain.User, error) {
	args := m.Called(ctx, id, dto)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) SearchSpecialists(ctx context.Context, filter domain.SpecialistFilter) ([]domain.User, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]domain.User)
	return list, args.Error(1)
}

type mockPhotoStorage struct {
	mock.Mock
}

func (m *mockPhotoStorage) Upload(ctx context.Context, owner string, photo storage.Photo) (string, error) {
	args := m.Called(ctx, owner, photo)
	return args.String(0), args.Error(1)
}

func (m *mockPhotoStorage) Owns(fileURL string) bool {
	return m.Called(fileURL).Bool(0)
}

func (m *mockPhotoStorage) Delete(ctx context.Context, fileURL string) error {
	return m.Called(ctx, fileURL).Error(0)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.AppointmentEvent
}

func (p *recordingPublisher) Publish(event domain.AppointmentEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) types() []domain.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func (p *recordingPublisher) last() domain.AppointmentEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events[len(p.events)-1]
}

// memoryAppointmentRepo хранит записи в памяти и бронирует под мьютексом,
// повторяя семантику условного UPDATE.
type memoryAppointmentRepo struct {
	mu    sync.Mutex
	items map[string]domain.Appointment
}

func newMemoryAppointmentRepo() *memoryAppointmentRepo {
	return &memoryAppointmentRepo{items: make(map[string]domain.Appointment)}
}

func (r *memoryAppointmentRepo) Create(_ context.Context, a *domain.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[a.ID] = *a
	return nil
}

func (r *memoryAppointmentRepo) CreateBatch(_ context.Context, list []domain.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range list {
		r.items[a.ID] = a
	}
	return nil
}

func (r *memoryAppointmentRepo) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	return &a, nil
}

func (r *memoryAppointmentRepo) List(_ context.Context, f domain.AppointmentFilter) ([]domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Appointment, 0)
	for _, a := range r.items {
		switch {
		case f.SpecialistID != "" && a.SpecialistID != f.SpecialistID,
			f.Date != "" && a.Date != f.Date,
			f.Category != "" && a.Category != f.Category,
			f.MemberName != "" && a.Member() != f.MemberName,
			f.BulkID != "" && a.BulkID != f.BulkID,
			f.IsBooked != nil && a.IsBooked != *f.IsBooked:
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (r *memoryAppointmentRepo) Update(_ context.Context, id string, dto domain.UpdateAppointmentDTO) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	if dto.Venue != nil {
		a.Venue = *dto.Venue
	}
	if dto.Phone != nil {
		a.Phone = *dto.Phone
	}
	if dto.Time != nil {
		a.Time = *dto.Time
	}
	r.items[id] = a
	return &a, nil
}

func (r *memoryAppointmentRepo) Book(_ context.Context, id, memberName string) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	if a.IsBooked {
		return nil, domain.ErrAlreadyBooked
	}
	a.IsBooked = true
	a.MemberName = &memberName
	r.items[id] = a
	return &a, nil
}

func (r *memoryAppointmentRepo) Delete(_ context.Context, id string) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	delete(r.items, id)
	return &a, nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{SigningKey: "test-signing-key", AccessTokenTTL: time.Hour}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
