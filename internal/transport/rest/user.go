package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotbook/config"
	"slotbook/internal/domain"
)

// @Summary Обновить профиль
// @Description Обновляет имя, телефон и фото. Пустые поля не меняются. Фото принимается в base64 или как data URL
// @Tags Пользователи
// @Accept json
// @Produce json
// @Param id path string true "ID пользователя"
// @Param input body domain.UpdateProfileDTO true "Новые данные профиля"
// @Success 200 {object} userResponse
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 404 {object} errorResponseBody "Пользователь не найден"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /profile/{id} [put]
func (h *Handler) updateProfile(c *gin.Context) {
	var input domain.UpdateProfileDTO

	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	user, err := h.services.User.UpdateProfile(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка при обновлении профиля")
		return
	}

	c.JSON(http.StatusOK, userResponse{User: user})
}

// @Summary Поиск специалистов
// @Description Ищет подстроку в имени или специализации без учета регистра и фильтрует по категории
// @Tags Пользователи
// @Produce json
// @Param q query string false "Строка поиска"
// @Param category query string false "Категория" Enums(healthcare, personal care, education, homeservice)
// @Success 200 {object} specialistsResponse
// @Failure 400 {object} errorResponseBody "Неизвестная категория"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /search/specialists [get]
func (h *Handler) searchSpecialists(c *gin.Context) {
	filter := domain.SpecialistFilter{
		Query:    c.Query("q"),
		Category: domain.Category(c.Query("category")),
	}

	specialists, err := h.services.User.SearchSpecialists(c.Request.Context(), filter)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка при поиске специалистов")
		return
	}

	c.JSON(http.StatusOK, specialistsResponse{Specialists: specialists})
}

// @Summary Записи пользователя
// @Description Для специалиста возвращает созданные им слоты, для участника его брони. Пакетные слоты сгруппированы, одиночные разбиты на страницы
// @Tags Пользователи
// @Produce json
// @Param id path string true "ID пользователя"
// @Param page query int false "Номер страницы" default(1)
// @Param page_size query int false "Размер страницы" default(10)
// @Success 200 {object} view.Dashboard
// @Failure 404 {object} errorResponseBody "Пользователь не найден"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /users/{id}/appointments [get]
func (h *Handler) getUserAppointments(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}

	defaultSize := h.config.HTTP.PageSize
	if defaultSize <= 0 {
		defaultSize = config.DefaultPageSize
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultSize)))
	if err != nil || pageSize <= 0 {
		pageSize = defaultSize
	}

	dashboard, err := h.services.Appointment.Dashboard(c.Request.Context(), c.Param("id"), page, pageSize)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка при получении записей пользователя")
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
