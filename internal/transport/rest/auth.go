package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotbook/internal/domain"
)

// @Summary Регистрация нового пользователя
// @Description Создает участника или специалиста и возвращает профиль без пароля и токен доступа
// @Tags Авторизация
// @Accept json
// @Produce json
// @Param input body domain.RegisterRequest true "Данные для регистрации"
// @Success 200 {object} domain.AuthResult "Пользователь и токен"
// @Failure 400 {object} errorResponseBody "Ошибка валидации или email уже занят"
// @Failure 429 {object} errorResponseBody "Слишком много запросов"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /register [post]
func (h *Handler) register(c *gin.Context) {
	var input domain.RegisterRequest

	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	result, err := h.services.Auth.Register(c.Request.Context(), input)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка при регистрации")
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary Вход в систему
// @Description Проверяет email и пароль, возвращает профиль и токен доступа
// @Tags Авторизация
// @Accept json
// @Produce json
// @Param input body domain.LoginRequest true "Данные для входа"
// @Success 200 {object} domain.AuthResult "Пользователь и токен"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 401 {object} errorResponseBody "Неверные учетные данные"
// @Failure 429 {object} errorResponseBody "Слишком много запросов"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /login [post]
func (h *Handler) login(c *gin.Context) {
	var input domain.LoginRequest

	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	result, err := h.services.Auth.Login(c.Request.Context(), input)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка при входе")
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary Текущий пользователь
// @Description Возвращает профиль владельца токена
// @Tags Авторизация
// @Produce json
// @Success 200 {object} userResponse
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 404 {object} errorResponseBody "Пользователь не найден"
// @Security ApiKeyAuth
// @Router /me [get]
func (h *Handler) getCurrentUser(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	user, err := h.services.User.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка при получении текущего пользователя")
		return
	}

	c.JSON(http.StatusOK, userResponse{User: user})
}
