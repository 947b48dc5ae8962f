package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "winecompare/server/errors"
	"winecompare/websearch"
)

// LookupHandler обработчик внешнего поиска кодов LWIN.
// Поиск необязателен: без настроенного клиента endpoint отвечает 503,
// сверка при этом полностью работоспособна.
type LookupHandler struct {
	client *websearch.Client
}

// NewLookupHandler создает обработчик поиска кодов LWIN.
// client может быть nil, если поиск выключен конфигурацией
func NewLookupHandler(client *websearch.Client) *LookupHandler {
	return &LookupHandler{client: client}
}

// LookupRequest запрос поиска кода LWIN по описанию вина
type LookupRequest struct {
	// Name название производителя/вина из журнала погреба
	Name string `json:"name" binding:"required"`

	// Vintage год урожая, уточняет запрос; 0 = не указан
	Vintage int `json:"vintage,omitempty"`
}

// HandleLookupLWIN ищет кандидатов кода LWIN для записи без идентификатора
// @Summary Поиск кода LWIN
// @Description Ищет кандидатов семизначного кода LWIN по названию вина через веб-поиск
// @Tags lookup
// @Accept json
// @Produce json
// @Param request body LookupRequest true "Описание вина"
// @Success 200 {object} websearch.LookupResult "Кандидаты кода LWIN"
// @Failure 400 {object} ErrorResponse "Неверный запрос"
// @Failure 503 {object} ErrorResponse "Поиск выключен или недоступен"
// @Router /api/lookup/lwin [post]
func (h *LookupHandler) HandleLookupLWIN(c *gin.Context) {
	if h.client == nil {
		SendJSONError(c, http.StatusServiceUnavailable, "поиск кодов LWIN выключен")
		return
	}

	var req LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewValidationError("неверный формат тела запроса", err)
		SendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	query := strings.TrimSpace(req.Name)
	if query == "" {
		SendJSONError(c, http.StatusBadRequest, "name не может быть пустым")
		return
	}
	if req.Vintage > 0 {
		query = fmt.Sprintf("%s %d", query, req.Vintage)
	}

	result, err := h.client.LookupLWIN(c.Request.Context(), query)
	if err != nil {
		log.Printf("[HandleLookupLWIN] ✗ Ошибка поиска %q: %v", query, err)
		SendJSONError(c, http.StatusServiceUnavailable, "поиск кодов LWIN недоступен")
		return
	}

	log.Printf("[HandleLookupLWIN] ✓ Поиск %q: найдено кандидатов %d", query, len(result.Candidates))
	SendJSONResponse(c, http.StatusOK, result)
}
