package rest

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"slotbook/config"
	"slotbook/internal/service"
	"slotbook/internal/transport/websocket"
)

type Handler struct {
	services    *service.Services
	logger      *zap.Logger
	config      *config.Config
	hub         *websocket.AppointmentHub
	authLimiter *ipRateLimiter
}

func NewHandler(services *service.Services, logger *zap.Logger, config *config.Config, hub *websocket.AppointmentHub) *Handler {
	h := &Handler{
		services: services,
		logger:   logger,
		config:   config,
		hub:      hub,
	}

	if config.RateLimit.RPS > 0 {
		h.authLimiter = newIPRateLimiter(config.RateLimit.RPS, config.RateLimit.Burst)
	}

	return h
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.loggerMiddleware())

	router.Use(h.errorMiddleware())

	router.Use(h.corsMiddleware())

	router.Use(h.bodyLimitMiddleware())

	api := router.Group("/api")
	{
		credentials := api.Group("/", h.rateLimitMiddleware(h.authLimiter))
		{
			credentials.POST("/register", h.register)
			credentials.POST("/login", h.login)
		}

		api.GET("/me", h.authMiddleware(), h.getCurrentUser)
		api.PUT("/profile/:id", h.updateProfile)
		api.GET("/users/:id/appointments", h.getUserAppointments)
		api.GET("/search/specialists", h.searchSpecialists)

		appointments := api.Group("/appointments")
		{
			appointments.GET("", h.getAppointments)
			appointments.POST("", h.createAppointment)
			appointments.POST("/bulk", h.createBulkAppointments)
			appointments.GET("/specialist/:id", h.getSpecialistAppointments)
			appointments.GET("/date/:date", h.getDateAppointments)
			appointments.PUT("/:id/book", h.bookAppointment)
			appointments.PUT("/:id", h.updateAppointment)
			appointments.DELETE("/:id", h.deleteAppointment)
		}

		api.GET("/health", h.health)
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if h.hub != nil {
		router.GET("/ws/appointments", h.hub.HandleWebSocket)
	}
}
