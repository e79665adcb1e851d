package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"slotbook/config"
	"slotbook/internal/domain"
	"slotbook/internal/service"
	"slotbook/internal/view"
)

type testAPI struct {
	router       *gin.Engine
	auth         *mockAuthService
	users        *mockUserService
	appointments *mockAppointmentService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	return newTestAPIWithConfig(t, &config.Config{
		HTTP:      config.HTTPConfig{AllowedOrigin: []string{"*"}, MaxBodyMB: 1, PageSize: config.DefaultPageSize},
		RateLimit: config.RateLimitConfig{RPS: 0.001, Burst: 3},
	})
}

func newTestAPIWithConfig(t *testing.T, cfg *config.Config) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := &testAPI{
		auth:         new(mockAuthService),
		users:        new(mockUserService),
		appointments: new(mockAppointmentService),
	}

	services := &service.Services{
		Auth:        api.auth,
		User:        api.users,
		Appointment: api.appointments,
		Health: stubHealthService{status: domain.HealthStatus{
			Status: "healthy", Timestamp: time.Now(), Database: "connected",
		}},
	}

	api.router = gin.New()
	NewHandler(services, zap.NewNop(), cfg, nil).InitRoutes(api.router)
	return api
}

func (a *testAPI) do(method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ValidationError("x"), http.StatusBadRequest},
		{domain.ErrAlreadyBooked, http.StatusBadRequest},
		{domain.ErrEmailTaken, http.StatusBadRequest},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrAppointmentNotFound, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", domain.ErrUserNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: pool closed", domain.ErrStore), http.StatusInternalServerError},
		{errors.New("unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFromError(tt.err), tt.err.Error())
	}
}

func TestRegister(t *testing.T) {
	api := newTestAPI(t)

	req := domain.RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "secret1", UserType: domain.UserRoleMember}
	api.auth.On("Register", mock.Anything, req).Return(&domain.AuthResult{
		User:  &domain.User{ID: "u1", Name: "Ann", Email: "ann@example.com", PasswordHash: "hash", UserType: domain.UserRoleMember},
		Token: "jwt",
	}, nil).Once()

	w := api.do(http.MethodPost, "/api/register", req)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "jwt", body["token"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "u1", user["_id"])
	assert.NotContains(t, user, "passwordHash")

	api.auth.On("Register", mock.Anything, req).Return(nil, domain.ErrEmailTaken).Once()
	w = api.do(http.MethodPost, "/api/register", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, domain.ErrEmailTaken.Error(), decode(t, w)["message"])

	w = api.do(http.MethodPost, "/api/register", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginAndRateLimit(t *testing.T) {
	api := newTestAPI(t)

	api.auth.On("Login", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidCredentials)

	for i := 0; i < 3; i++ {
		w := api.do(http.MethodPost, "/api/login", domain.LoginRequest{Email: "a@b.co", Password: "wrong1"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}

	w := api.do(http.MethodPost, "/api/login", domain.LoginRequest{Email: "a@b.co", Password: "wrong1"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestGetCurrentUser(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/api/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(http.MethodGet, "/api/me", nil, "Authorization", "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	api.auth.On("ParseToken", mock.Anything, "good").Return("u1", domain.UserRoleMember, nil)
	api.users.On("GetByID", mock.Anything, "u1").Return(&domain.User{ID: "u1", Name: "Ann"}, nil)

	w = api.do(http.MethodGet, "/api/me", nil, "Authorization", "Bearer good")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ann", decode(t, w)["user"].(map[string]interface{})["name"])
}

func TestUpdateProfile(t *testing.T) {
	api := newTestAPI(t)

	api.users.On("UpdateProfile", mock.Anything, "missing", mock.Anything).Return(nil, domain.ErrUserNotFound)
	api.users.On("UpdateProfile", mock.Anything, "u1", domain.UpdateProfileDTO{Phone: "+15550100"}).
		Return(&domain.User{ID: "u1", Phone: "+15550100"}, nil)

	w := api.do(http.MethodPut, "/api/profile/missing", domain.UpdateProfileDTO{Name: "X"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(http.MethodPut, "/api/profile/u1", domain.UpdateProfileDTO{Phone: "+15550100"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "+15550100", decode(t, w)["user"].(map[string]interface{})["phone"])
}

func TestSearchSpecialists(t *testing.T) {
	api := newTestAPI(t)

	api.users.On("SearchSpecialists", mock.Anything, domain.SpecialistFilter{Query: "math", Category: domain.CategoryEducation}).
		Return([]domain.User{{ID: "s1", Name: "Dana"}}, nil)

	w := api.do(http.MethodGet, "/api/search/specialists?q=math&category=education", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["specialists"], 1)
}

func TestAppointmentRoutes(t *testing.T) {
	api := newTestAPI(t)
	member := "Ann"
	slot := &domain.Appointment{ID: "a1", SpecialistID: "s1", Date: "2025-10-01", Time: "09:00"}
	booked := &domain.Appointment{ID: "a1", SpecialistID: "s1", Date: "2025-10-01", Time: "09:00", IsBooked: true, MemberName: &member}

	api.appointments.On("ListAll", mock.Anything).Return([]domain.Appointment{*slot}, nil)
	api.appointments.On("Create", mock.Anything, mock.Anything).Return(slot, nil)
	api.appointments.On("AvailableForSpecialist", mock.Anything, "s1").Return([]domain.Appointment{*slot}, nil)
	api.appointments.On("AvailableOnDate", mock.Anything, "2025-10-01", domain.CategoryPersonalCare).Return([]domain.Appointment{}, nil)
	api.appointments.On("Book", mock.Anything, "a1", "Ann").Return(booked, nil).Once()
	api.appointments.On("Book", mock.Anything, "a1", "Bob").Return(nil, domain.ErrAlreadyBooked)
	api.appointments.On("Book", mock.Anything, "zzz", "Ann").Return(nil, domain.ErrAppointmentNotFound)
	api.appointments.On("Delete", mock.Anything, "a1").Return(booked, nil)

	w := api.do(http.MethodGet, "/api/appointments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["appointments"], 1)

	w = api.do(http.MethodPost, "/api/appointments", domain.CreateAppointmentDTO{SpecialistID: "s1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a1", decode(t, w)["appointment"].(map[string]interface{})["_id"])

	w = api.do(http.MethodGet, "/api/appointments/specialist/s1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodGet, "/api/appointments/date/2025-10-01?category=personal%20care", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{}, decode(t, w)["appointments"])

	w = api.do(http.MethodPut, "/api/appointments/a1/book", domain.BookAppointmentDTO{MemberName: "Ann"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["appointment"].(map[string]interface{})["isBooked"])

	w = api.do(http.MethodPut, "/api/appointments/a1/book", domain.BookAppointmentDTO{MemberName: "Bob"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, domain.ErrAlreadyBooked.Error(), decode(t, w)["message"])

	w = api.do(http.MethodPut, "/api/appointments/zzz/book", domain.BookAppointmentDTO{MemberName: "Ann"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(http.MethodDelete, "/api/appointments/a1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Appointment deleted successfully", body["message"])
	assert.Equal(t, "Ann", body["appointment"].(map[string]interface{})["memberName"])

	api.appointments.AssertExpectations(t)
}

func TestUpdateAppointment(t *testing.T) {
	api := newTestAPI(t)

	venue := "Room 7"
	api.appointments.On("Update", mock.Anything, "a1", domain.UpdateAppointmentDTO{Venue: &venue}).
		Return(&domain.Appointment{ID: "a1", Venue: venue}, nil)
	api.appointments.On("Update", mock.Anything, "a2", mock.Anything).
		Return(nil, fmt.Errorf("%w: connection refused", domain.ErrStore))

	w := api.do(http.MethodPut, "/api/appointments/a1", `{"venue":"Room 7"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Room 7", decode(t, w)["appointment"].(map[string]interface{})["venue"])

	w = api.do(http.MethodPut, "/api/appointments/a2", `{"venue":"Room 7"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestCreateBulkAppointments(t *testing.T) {
	api := newTestAPI(t)

	api.appointments.On("CreateBulk", mock.Anything, mock.MatchedBy(func(dto domain.BulkCreateDTO) bool {
		return dto.Recurrence != nil && dto.Recurrence.IntervalMinutes == 30
	})).Return(&domain.BulkResult{
		Appointments: []domain.Appointment{{ID: "a1", BulkID: "b1"}, {ID: "a2", BulkID: "b1"}},
		BulkID:       "b1",
		Count:        2,
	}, nil)
	api.appointments.On("CreateBulk", mock.Anything, mock.MatchedBy(func(dto domain.BulkCreateDTO) bool {
		return dto.Recurrence == nil
	})).Return(nil, domain.ValidationError("требуется непустой список записей"))

	w := api.do(http.MethodPost, "/api/appointments/bulk", `{
		"specialistId": "s1",
		"recurrence": {"month": "October", "year": 2025, "weekdays": ["Monday"], "startTime": "09:00", "endTime": "10:00", "interval": 30}
	}`)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "b1", body["bulkId"])
	assert.Equal(t, float64(2), body["count"])

	w = api.do(http.MethodPost, "/api/appointments/bulk", `{"appointments": []}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodPost, "/api/appointments/bulk", `{"appointments": "nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUserAppointments(t *testing.T) {
	api := newTestAPI(t)

	api.appointments.On("Dashboard", mock.Anything, "u1", 2, 10).Return(&view.Dashboard{Mode: view.ModeList, PageWindow: []int{1, 2}}, nil)
	api.appointments.On("Dashboard", mock.Anything, "u1", 1, 5).Return(&view.Dashboard{Mode: view.ModeList}, nil)
	api.appointments.On("Dashboard", mock.Anything, "missing", 1, 10).Return(nil, domain.ErrUserNotFound)

	w := api.do(http.MethodGet, "/api/users/u1/appointments?page=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "list", decode(t, w)["mode"])

	w = api.do(http.MethodGet, "/api/users/u1/appointments?page=x&page_size=5", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodGet, "/api/users/missing/appointments", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthAndCORS(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "connected", body["database"])

	w = api.do(http.MethodOptions, "/api/appointments", nil, "Origin", "http://localhost:3000")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestGetUserAppointments_ConfiguredPageSize(t *testing.T) {
	api := newTestAPIWithConfig(t, &config.Config{
		HTTP: config.HTTPConfig{AllowedOrigin: []string{"*"}, PageSize: 4},
	})

	api.appointments.On("Dashboard", mock.Anything, "u1", 1, 4).Return(&view.Dashboard{Mode: view.ModeList}, nil).Twice()
	api.appointments.On("Dashboard", mock.Anything, "u1", 1, 7).Return(&view.Dashboard{Mode: view.ModeList}, nil).Once()

	w := api.do(http.MethodGet, "/api/users/u1/appointments", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodGet, "/api/users/u1/appointments?page_size=0", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodGet, "/api/users/u1/appointments?page_size=7", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	api.appointments.AssertExpectations(t)
}
