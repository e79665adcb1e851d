package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Проверка состояния
// @Description Сервис жив, если отвечает. Поле database показывает доступность хранилища
// @Tags Служебные
// @Produce json
// @Success 200 {object} domain.HealthStatus
// @Router /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Health.Check(c.Request.Context()))
}
