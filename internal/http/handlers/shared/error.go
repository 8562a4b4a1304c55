package shared

import (
	"errors"

	"github.com/shupin-market/internal/http/response"
	"github.com/shupin-market/internal/logger"
	"github.com/shupin-market/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondErrorWithMsg 返回错误响应，并在有原始错误时记录日志。
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// RespondServiceError 将业务错误映射为统一响应码。
func RespondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrPayloadTooLarge):
		RespondErrorWithMsg(c, response.CodePayloadTooLarge, err.Error(), nil)
	case errors.Is(err, service.ErrSlugExists),
		errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrStoreExists),
		errors.Is(err, service.ErrCategoryExists),
		errors.Is(err, service.ErrCategoryInUse):
		RespondErrorWithMsg(c, response.CodeConflict, err.Error(), nil)
	case errors.Is(err, service.ErrInvalidFileType),
		errors.Is(err, service.ErrCategoryMismatch),
		errors.Is(err, service.ErrOracleResponseInvalid),
		errors.Is(err, service.ErrRatingInvalid),
		errors.Is(err, service.ErrStatusInvalid),
		errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrPriceInvalid),
		errors.Is(err, service.ErrPaymentTypeInvalid):
		response.BadRequest(c, err.Error())
	default:
		RespondErrorWithMsg(c, response.CodeInternal, "internal error", err)
	}
}
