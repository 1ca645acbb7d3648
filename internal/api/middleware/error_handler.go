package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "fibernet/internal/pkg/errors"
	"fibernet/internal/pkg/logger"
)

// ErrorHandler renders the last error a handler attached with c.Error as a
// JSON body. Domain errors are mapped onto application errors first.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		appErr := apperrors.FromDomain(c.Errors.Last().Err)
		fields := []zap.Field{
			zap.String("code", appErr.Code),
			zap.Int("status", appErr.HTTPStatus),
			zap.String("request_id", GetRequestID(c.Request.Context())),
			zap.Error(appErr.Err),
		}
		if appErr.HTTPStatus >= 500 {
			logger.L().Error("unhandled request error", fields...)
		} else {
			logger.L().Warn("request error", fields...)
		}

		body := gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		}
		if len(appErr.Violations) > 0 {
			body["violations"] = appErr.Violations
		}
		c.JSON(appErr.HTTPStatus, body)
	}
}
