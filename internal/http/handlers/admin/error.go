package admin

import (
	"errors"

	handlershared "github.com/bonus-office/internal/http/handlers/shared"
	"github.com/bonus-office/internal/http/response"
	"github.com/bonus-office/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

// respondServiceError 把 service 层错误映射为统一响应：
// 字段校验错误 422，未找到 404，唯一性冲突 409，非法输入 400，其余 500。
func respondServiceError(c *gin.Context, err error) {
	if validationErr, ok := service.AsValidationError(err); ok {
		handlershared.RespondValidation(c, validationErr)
		return
	}
	switch {
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrBonusNotFound),
		errors.Is(err, service.ErrRewardNotFound),
		errors.Is(err, service.ErrTemplateNotFound),
		errors.Is(err, service.ErrMarketingRequestNotFound),
		errors.Is(err, service.ErrDslTagNotFound),
		errors.Is(err, service.ErrProjectNotFound),
		errors.Is(err, service.ErrPermanentBonusNotFound):
		respondError(c, response.CodeNotFound, err.Error(), nil)
	case errors.Is(err, service.ErrTemplateKeyExists),
		errors.Is(err, service.ErrStagTaken),
		errors.Is(err, service.ErrPromoCodeTaken),
		errors.Is(err, service.ErrDslTagNameExists),
		errors.Is(err, service.ErrProjectNameExists),
		errors.Is(err, service.ErrPermanentExists):
		respondError(c, response.CodeConflict, err.Error(), nil)
	case errors.Is(err, service.ErrUnknownBulkAction),
		errors.Is(err, service.ErrUnknownRewardType),
		errors.Is(err, service.ErrBonusExpired):
		respondError(c, response.CodeBadRequest, err.Error(), nil)
	default:
		respondError(c, response.CodeInternal, "internal error", err)
	}
}
