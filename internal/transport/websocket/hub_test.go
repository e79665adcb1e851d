package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"slotbook/internal/domain"
)

func startHub(t *testing.T) (*AppointmentHub, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewAppointmentHub(zap.NewNop(), []string{"http://localhost:3000"})
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	router := gin.New()
	router.GET("/ws/appointments", hub.HandleWebSocket)
	server := httptest.NewServer(router)

	t.Cleanup(func() {
		cancel()
		server.Close()
	})

	return hub, "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/appointments"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) domain.AppointmentEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event domain.AppointmentEvent
	require.NoError(t, json.Unmarshal(data, &event))
	return event
}

func TestHub_BroadcastsEvents(t *testing.T) {
	hub, url := startHub(t)

	all := dial(t, url)
	onlyOther := dial(t, url+"?specialistId=spec-2")
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, 2*time.Second, 10*time.Millisecond)

	member := "Ann"
	hub.Publish(domain.AppointmentEvent{
		Type:        domain.EventBooked,
		Appointment: &domain.Appointment{ID: "a1", SpecialistID: "spec-1", MemberName: &member, IsBooked: true},
		MemberName:  member,
		Timestamp:   time.Now(),
	})
	hub.Publish(domain.AppointmentEvent{
		Type:         domain.EventBulkCreated,
		Appointments: []domain.Appointment{{ID: "b1", SpecialistID: "spec-2"}},
		BulkID:       "batch-1",
		Timestamp:    time.Now(),
	})

	first := readEvent(t, all)
	assert.Equal(t, domain.EventBooked, first.Type)
	assert.Equal(t, "a1", first.Appointment.ID)
	assert.Equal(t, "Ann", first.MemberName)

	second := readEvent(t, all)
	assert.Equal(t, domain.EventBulkCreated, second.Type)

	filtered := readEvent(t, onlyOther)
	assert.Equal(t, domain.EventBulkCreated, filtered.Type)
	assert.Equal(t, "batch-1", filtered.BulkID)
}

func TestHub_UnregistersClosedClients(t *testing.T) {
	hub, url := startHub(t)

	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"http://localhost:3000"})

	req := httptest.NewRequest(http.MethodGet, "/ws/appointments", nil)
	assert.True(t, check(req))

	req.Header.Set("Origin", "http://localhost:3000")
	assert.True(t, check(req))

	req.Header.Set("Origin", "http://evil.example")
	assert.False(t, check(req))

	req.Header.Set("Origin", "http://anything.example")
	assert.True(t, originChecker([]string{"*"})(req))
}
