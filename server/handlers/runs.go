package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"winecompare/database"
	"winecompare/server/models"
)

// RunsHandler обработчик истории завершенных сверок
type RunsHandler struct {
	history      *database.HistoryDB
	defaultLimit int
}

// NewRunsHandler создает обработчик истории сверок
func NewRunsHandler(history *database.HistoryDB, defaultLimit int) *RunsHandler {
	if defaultLimit <= 0 {
		defaultLimit = 50
	}
	return &RunsHandler{history: history, defaultLimit: defaultLimit}
}

// HandleListRuns возвращает последние сверки, новые первыми
// @Summary История сверок
// @Description Возвращает итоги последних сверок из истории
// @Tags runs
// @Produce json
// @Param limit query int false "Максимум записей (по умолчанию 50)"
// @Success 200 {object} models.RunsListResponse "Список сверок"
// @Failure 503 {object} ErrorResponse "История не ведется"
// @Failure 500 {object} ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/runs [get]
func (h *RunsHandler) HandleListRuns(c *gin.Context) {
	if h.history == nil {
		SendJSONError(c, http.StatusServiceUnavailable, "история сверок не ведется")
		return
	}

	limit := h.defaultLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			SendJSONError(c, http.StatusBadRequest, "неверный формат limit: "+raw)
			return
		}
		limit = parsed
	}

	runs, err := h.history.ListRuns(limit)
	if err != nil {
		log.Printf("[HandleListRuns] ✗ Ошибка чтения истории: %v", err)
		SendJSONError(c, http.StatusInternalServerError, "не удалось прочитать историю сверок")
		return
	}

	total, err := h.history.CountRuns()
	if err != nil {
		log.Printf("[HandleListRuns] ✗ Ошибка подсчета истории: %v", err)
		SendJSONError(c, http.StatusInternalServerError, "не удалось прочитать историю сверок")
		return
	}

	records := make([]models.RunRecord, 0, len(runs))
	for _, run := range runs {
		records = append(records, models.RunRecord{
			ID:             run.ID,
			CreatedAt:      run.CreatedAt,
			CellarFile:     run.CellarFile,
			ReferenceFile:  run.ReferenceFile,
			TotalCellar:    run.TotalCellar,
			TotalReference: run.TotalReference,
			MatchedExact:   run.MatchedExact,
			MatchedFuzzy:   run.MatchedFuzzy,
			Missing:        run.Missing,
			SkippedRows:    run.SkippedRows,
			DurationMS:     run.DurationMS,
			Preset:         run.Preset,
			Threshold:      run.Threshold,
		})
	}

	SendJSONResponse(c, http.StatusOK, models.RunsListResponse{
		Runs:  records,
		Total: total,
		Limit: limit,
	})
}
