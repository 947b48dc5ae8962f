package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"winecompare/matching"
	"winecompare/server/models"
)

// PresetsHandler обработчик встроенных пресетов политики сопоставления
type PresetsHandler struct {
	defaultPreset string
}

// NewPresetsHandler создает обработчик пресетов.
// defaultPreset — имя пресета, действующего без явного выбора клиента
func NewPresetsHandler(defaultPreset string) *PresetsHandler {
	if defaultPreset == "" {
		defaultPreset = matching.PresetDefault
	}
	return &PresetsHandler{defaultPreset: defaultPreset}
}

// HandlePresets возвращает встроенные пресеты с их действующими значениями
// @Summary Пресеты политики сопоставления
// @Description Возвращает встроенные пресеты (пороги, допуски, границы года) и имя пресета по умолчанию
// @Tags policy
// @Produce json
// @Success 200 {object} models.PresetsResponse "Пресеты"
// @Router /api/policy/presets [get]
func (h *PresetsHandler) HandlePresets(c *gin.Context) {
	SendJSONResponse(c, http.StatusOK, models.PresetsResponse{
		Presets: matching.Presets(),
		Default: h.defaultPreset,
	})
}
