package service

import (
	"errors"

	"github.com/bonus-office/internal/models"
)

// 业务哨兵错误
var (
	ErrNotFound                 = errors.New("record not found")
	ErrBonusNotFound            = errors.New("bonus not found")
	ErrRewardNotFound           = errors.New("reward not found")
	ErrTemplateNotFound         = errors.New("bonus template not found")
	ErrMarketingRequestNotFound = errors.New("marketing request not found")
	ErrDslTagNotFound           = errors.New("dsl tag not found")
	ErrProjectNotFound          = errors.New("project not found")
	ErrPermanentBonusNotFound   = errors.New("permanent bonus not found")

	ErrBonusExpired       = errors.New("bonus availability window has passed")
	ErrUnknownBulkAction  = errors.New("unknown bulk action")
	ErrUnknownRewardType  = errors.New("unknown reward type")
	ErrTemplateKeyExists  = errors.New("bonus template with same dsl_tag, project and name already exists")
	ErrStagTaken          = errors.New("stag is already taken")
	ErrPromoCodeTaken     = errors.New("promo code is already taken")
	ErrDslTagNameExists   = errors.New("dsl tag name already exists")
	ErrProjectNameExists  = errors.New("project name already exists")
	ErrPermanentExists    = errors.New("bonus is already permanent for this project")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrLoginRateLimited   = errors.New("too many login attempts")
	ErrForbidden          = errors.New("operation not permitted")
)

// ValidationError 字段级校验错误，携带按字段聚合的错误消息
type ValidationError struct {
	Fields models.ValidationErrors
}

// Error 实现 error 接口
func (e *ValidationError) Error() string {
	return e.Fields.Error()
}

// NewValidationError 从字段错误集合构造校验错误，空集合返回 nil
func NewValidationError(fields models.ValidationErrors) error {
	if !fields.Any() {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// AsValidationError 判断并提取校验错误
func AsValidationError(err error) (*ValidationError, bool) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr, true
	}
	return nil, false
}
