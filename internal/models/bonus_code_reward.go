package models

import (
	"strings"
	"time"

	"github.com/bonus-office/internal/constants"
)

// BonusCodeReward 兑换码奖励
type BonusCodeReward struct {
	ID uint `gorm:"primarykey" json:"id"` // 主键
	BonusOwnership
	Code     string `gorm:"type:varchar(50);not null" json:"code"`      // 兑换码
	CodeType string `gorm:"type:varchar(30);not null" json:"code_type"` // 兑换码类型
	RewardConfig
	CreatedAt time.Time `json:"created_at"` // 创建时间
	UpdatedAt time.Time `json:"updated_at"` // 更新时间
}

// TableName 指定表名
func (BonusCodeReward) TableName() string {
	return "bonus_code_rewards"
}

// Validate 字段校验
func (r *BonusCodeReward) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if r.BonusID == 0 {
		errs.Add("bonus_id", "can't be blank")
	}
	if strings.TrimSpace(r.Code) == "" {
		errs.Add("code", "can't be blank")
	}
	if strings.TrimSpace(r.CodeType) == "" {
		errs.Add("code_type", "can't be blank")
	}
	return errs
}

// RewardType 奖励类型标识
func (r *BonusCodeReward) RewardType() string {
	return constants.RewardTypeBonusCode
}

// RewardID 奖励主键
func (r *BonusCodeReward) RewardID() uint {
	return r.ID
}

// OverrideCode 展示用奖金码：优先自身字段，其次配置层覆盖值
func (r *BonusCodeReward) OverrideCode() string {
	if code := strings.TrimSpace(r.Code); code != "" {
		return code
	}
	return r.ConfigCode()
}

// OverrideCurrency 展示用币种覆盖值
func (r *BonusCodeReward) OverrideCurrency() string {
	return r.ConfigCurrency()
}
