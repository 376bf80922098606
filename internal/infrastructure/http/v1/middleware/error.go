package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog/internal/core/apperror"
	"catalog/internal/infrastructure/http/v1/dto"
	"catalog/pkg/logger"
)

// ErrorHandler middleware transforms errors into consistent JSON responses.
// Internal causes are logged; they reach the client under details.cause only
// when verbose is set.
func ErrorHandler(verbose bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		respondError(c, c.Errors.Last().Err, verbose)
	}
}

// respondError writes err as the JSON error body.
func respondError(c *gin.Context, err error, verbose bool) {
	ctx := c.Request.Context()

	appErr, ok := apperror.AsAppError(err)
	if !ok {
		logger.Error(ctx, "unhandled error", "error", err)
		appErr = apperror.NewInternal(err)
	} else if appErr.Err != nil {
		log := logger.Warn
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			log = logger.Error
		}
		log(ctx, "request error", "code", appErr.Code, "cause", appErr.Err)
	}

	body := dto.ErrorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
		Details: make(map[string]any, len(appErr.Details)+2),
	}
	for k, v := range appErr.Details {
		body.Details[k] = v
	}
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		body.Details["request_id"] = c.GetString("request_id")
	}
	if verbose && appErr.Err != nil {
		body.Details["cause"] = appErr.Err.Error()
	}
	if len(body.Details) == 0 {
		body.Details = nil
	}

	c.IndentedJSON(appErr.HTTPStatus, body)
}
