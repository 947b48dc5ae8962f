// Package handlers содержит Gin-обработчики HTTP API сервиса сверки.
package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	apperrors "winecompare/server/errors"
	"winecompare/server/middleware"
)

// ErrorResponse тело JSON ошибки API
type ErrorResponse struct {
	Error string `json:"error"`
}

// SendJSONResponse отправляет JSON ответ через Gin context
func SendJSONResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// SendJSONError отправляет JSON ошибку через Gin context, логирует её
// и учитывает в метриках ошибок (видны в /api/stats)
func SendJSONError(c *gin.Context, statusCode int, message string) {
	reqID := middleware.GetRequestIDFromGin(c)

	endpoint := c.FullPath()
	if endpoint == "" {
		endpoint = c.Request.URL.Path
	}
	middleware.GetErrorMetrics().RecordError(
		&apperrors.AppError{Code: statusCode, Message: message}, endpoint, reqID)

	slog.Error("Gin HTTP error",
		"error", message,
		"status_code", statusCode,
		"request_id", reqID,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)

	c.JSON(statusCode, ErrorResponse{Error: message})
}

// SendAppError передает ошибку централизованному обработчику middleware:
// статус и сообщение берутся из AppError, прочие ошибки скрываются за
// generic 500. Ошибка логируется и попадает в метрики
func SendAppError(c *gin.Context, err error) {
	middleware.HandleGinError(c, err)
}
