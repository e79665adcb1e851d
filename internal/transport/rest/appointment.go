package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotbook/internal/domain"
)

// @Summary Все записи
// @Description Возвращает полный список записей, отсортированный по дате и времени
// @Tags Записи
// @Produce json
// @Success 200 {object} appointmentsResponse
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /appointments [get]
func (h *Handler) getAppointments(c *gin.Context) {
	appointments, err := h.services.Appointment.ListAll(c.Request.Context())
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка при получении записей")
		return
	}

	c.JSON(http.StatusOK, appointmentsResponse{Appointments: appointments})
}

// @Summary Создать слот
// @Description Создает одну свободную запись специалиста
// @Tags Записи
// @Accept json
// @Produce json
// @Param input body domain.CreateAppointmentDTO true "Данные слота"
// @Success 200 {object} appointmentResponse
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /appointments [post]
func (h *Handler) createAppointment(c *gin.Context) {
	var input domain.CreateAppointmentDTO

	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	appointment, err := h.services.Appointment.Create(c.Request.Context(), input)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка при создании записи")
		return
	}

	c.JSON(http.StatusOK, appointmentResponse{Appointment: appointment})
}

// @Summary Создать пакет слотов
// @Description Принимает явный список слотов или правило повторения (месяц, дни недели, окно времени, интервал). Все слоты получают общий bulkId. При ошибке в любом элементе ничего не сохраняется
// @Tags Записи
// @Accept json
// @Produce json
// @Param input body domain.BulkCreateDTO true "Список слотов или правило повторения"
// @Success 200 {object} domain.BulkResult
// @Failure 400 {object} errorResponseBody "Некорректные данные пакета"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /appointments/bulk [post]
func (h *Handler) createBulkAppointments(c *gin.Context) {
	var input domain.BulkCreateDTO

	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат пакета записей", zap.Error(err))
		badRequestResponse(c, "некорректные данные пакета записей")
		return
	}

	result, err := h.services.Appointment.CreateBulk(c.Request.Context(), input)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка при создании пакета записей")
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary Свободные слоты специалиста
// @Tags Записи
// @Produce json
// @Param id path string true "ID специалиста"
// @Success 200 {object} appointmentsResponse
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /appointments/specialist/{id} [get]
func (h *Handler) getSpecialistAppointments(c *gin.Context) {
	appointments, err := h.services.Appointment.AvailableForSpecialist(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка при получении записей специалиста")
		return
	}

	c.JSON(http.StatusOK, appointmentsResponse{Appointments: appointments})
}

// @Summary Свободные слоты на дату
// @Tags Записи
// @Produce json
// @Param date path string true "Дата в формате YYYY-MM-DD"
// @Param category query string false "Категория" Enums(healthcare, personal care, education, homeservice)
// @Success 200 {object} appointmentsResponse
// @Failure 400 {object} errorResponseBody "Некорректная дата или категория"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /appointments/date/{date} [get]
func (h *Handler) getDateAppointments(c *gin.Context) {
	category := domain.Category(c.Query("category"))

	appointments, err := h.services.Appointment.AvailableOnDate(c.Request.Context(), c.Param("date"), category)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка при получении записей на дату")
		return
	}

	c.JSON(http.StatusOK, appointmentsResponse{Appointments: appointments})
}

// @Summary Забронировать слот
// @Description Атомарно переводит свободный слот в забронированный. Повторное бронирование отклоняется
// @Tags Записи
// @Accept json
// @Produce json
// @Param id path string true "ID записи"
// @Param input body domain.BookAppointmentDTO true "Имя участника"
// @Success 200 {object} appointmentResponse
// @Failure 400 {object} errorResponseBody "Слот уже забронирован"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /appointments/{id}/book [put]
func (h *Handler) bookAppointment(c *gin.Context) {
	var input domain.BookAppointmentDTO

	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	appointment, err := h.services.Appointment.Book(c.Request.Context(), c.Param("id"), input.MemberName)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка при бронировании записи")
		return
	}

	c.JSON(http.StatusOK, appointmentResponse{Appointment: appointment})
}

// @Summary Изменить слот
// @Description Меняет место, телефон или время. Отсутствующие поля не меняются
// @Tags Записи
// @Accept json
// @Produce json
// @Param id path string true "ID записи"
// @Param input body domain.UpdateAppointmentDTO true "Новые значения"
// @Success 200 {object} appointmentResponse
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /appointments/{id} [put]
func (h *Handler) updateAppointment(c *gin.Context) {
	var input domain.UpdateAppointmentDTO

	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	appointment, err := h.services.Appointment.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка при обновлении записи")
		return
	}

	c.JSON(http.StatusOK, appointmentResponse{Appointment: appointment})
}

// @Summary Удалить слот
// @Description Удаляет запись независимо от брони и возвращает удаленную запись
// @Tags Записи
// @Produce json
// @Param id path string true "ID записи"
// @Success 200 {object} messageResponseBody
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /appointments/{id} [delete]
func (h *Handler) deleteAppointment(c *gin.Context) {
	appointment, err := h.services.Appointment.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка при удалении записи")
		return
	}

	c.JSON(http.StatusOK, messageResponseBody{
		Message:     "Appointment deleted successfully",
		Appointment: appointment,
	})
}
