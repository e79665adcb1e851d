package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotbook/internal/domain"
)

type errorResponseBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
}

type messageResponseBody struct {
	Message     string              `json:"message"`
	Appointment *domain.Appointment `json:"appointment,omitempty"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

type appointmentResponse struct {
	Appointment *domain.Appointment `json:"appointment"`
}

type appointmentsResponse struct {
	Appointments []domain.Appointment `json:"appointments"`
}

type specialistsResponse struct {
	Specialists []domain.User `json:"specialists"`
}

func errorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, errorResponseBody{
		Status:  "error",
		Message: message,
		Code:    statusCode,
	})
}

func badRequestResponse(c *gin.Context, message string) {
	errorResponse(c, http.StatusBadRequest, message)
}

func unauthorizedResponse(c *gin.Context) {
	errorResponse(c, http.StatusUnauthorized, "требуется авторизация")
}

func internalServerErrorResponse(c *gin.Context) {
	errorResponse(c, http.StatusInternalServerError, "внутренняя ошибка сервера")
}

// statusFromError сопоставляет класс доменной ошибки с HTTP-статусом.
// Конфликты отдаются как 400: так клиенты различали "уже забронировано"
// и "email занят" с самого начала.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// serviceErrorResponse пишет ответ по ошибке сервиса. Текст внутренних ошибок
// клиенту не раскрывается, он попадает только в лог.
func (h *Handler) serviceErrorResponse(c *gin.Context, err error, msg string) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(msg, zap.Error(err))
		_ = c.Error(err)
		internalServerErrorResponse(c)
		return
	}

	h.logger.Debug(msg, zap.Error(err))
	errorResponse(c, status, err.Error())
}
