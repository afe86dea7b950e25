package models

import (
	"strings"
	"time"

	"github.com/bonus-office/internal/constants"

	"github.com/shopspring/decimal"
)

// MaterialPrizeReward 实物奖品奖励（无扩展配置）
type MaterialPrizeReward struct {
	ID uint `gorm:"primarykey" json:"id"` // 主键
	BonusOwnership
	PrizeName  string    `gorm:"type:varchar(255);not null" json:"prize_name"` // 奖品名称
	PrizeValue *Money    `gorm:"type:decimal(20,2)" json:"prize_value"`        // 奖品估值
	CreatedAt  time.Time `json:"created_at"`                                   // 创建时间
	UpdatedAt  time.Time `json:"updated_at"`                                   // 更新时间
}

// TableName 指定表名
func (MaterialPrizeReward) TableName() string {
	return "material_prize_rewards"
}

// Validate 字段校验
func (r *MaterialPrizeReward) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if r.BonusID == 0 {
		errs.Add("bonus_id", "can't be blank")
	}
	if strings.TrimSpace(r.PrizeName) == "" {
		errs.Add("prize_name", "can't be blank")
	}
	if r.PrizeValue != nil && r.PrizeValue.Decimal.LessThan(decimal.Zero) {
		errs.Add("prize_value", "must be greater than or equal to 0")
	}
	return errs
}

// RewardType 奖励类型标识
func (r *MaterialPrizeReward) RewardType() string {
	return constants.RewardTypeMaterialPrize
}

// RewardID 奖励主键
func (r *MaterialPrizeReward) RewardID() uint {
	return r.ID
}

// OverrideCode 无配置层，恒为空
func (r *MaterialPrizeReward) OverrideCode() string {
	return ""
}

// OverrideCurrency 无配置层，恒为空
func (r *MaterialPrizeReward) OverrideCurrency() string {
	return ""
}

// FormatPrize 奖品展示串，估值缺失显示 N/A
func (r *MaterialPrizeReward) FormatPrize() string {
	return r.PrizeName + " (" + FormatMoney(r.PrizeValue, r.ParentCurrency()) + ")"
}
