package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainerrors "f1-bets.backend/internal/domain/errors"
	"f1-bets.backend/pkg/logger"
)

// Success sends {"success": true, ...data}
func Success(c *gin.Context, status int, data gin.H) {
	body := gin.H{"success": true}
	for k, v := range data {
		body[k] = v
	}
	c.JSON(status, body)
}

// Error sends {"success": false, "code", "message"}. Internal errors are logged and
// replaced by a generic message.
func Error(c *gin.Context, err error) {
	appErr := domainerrors.From(err)

	if appErr.Status >= http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "Request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}

	c.AbortWithStatusJSON(appErr.Status, gin.H{
		"success": false,
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}
