package models

import (
	"time"

	"github.com/bonus-office/internal/constants"

	"github.com/shopspring/decimal"
)

// BonusReward 余额奖金奖励
type BonusReward struct {
	ID uint `gorm:"primarykey" json:"id"` // 主键
	BonusOwnership
	Amount     *Money   `gorm:"type:decimal(20,2)" json:"amount"` // 固定金额
	Percentage *float64 `json:"percentage"`                       // 入金百分比
	RewardConfig
	CreatedAt time.Time `json:"created_at"` // 创建时间
	UpdatedAt time.Time `json:"updated_at"` // 更新时间
}

// TableName 指定表名
func (BonusReward) TableName() string {
	return "bonus_rewards"
}

// Validate 字段校验
func (r *BonusReward) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if r.BonusID == 0 {
		errs.Add("bonus_id", "can't be blank")
	}
	if r.Amount == nil && r.Percentage == nil {
		errs.Add("base", "amount or percentage must be present")
	}
	if r.Amount != nil && r.Amount.Decimal.LessThan(decimal.Zero) {
		errs.Add("amount", "must be greater than or equal to 0")
	}
	if r.Percentage != nil && (*r.Percentage < 0 || *r.Percentage > 100) {
		errs.Add("percentage", "must be between 0 and 100")
	}
	return errs
}

// RewardType 奖励类型标识
func (r *BonusReward) RewardType() string {
	return constants.RewardTypeBonus
}

// RewardID 奖励主键
func (r *BonusReward) RewardID() uint {
	return r.ID
}

// OverrideCode 展示用奖金码覆盖值
func (r *BonusReward) OverrideCode() string {
	return r.ConfigCode()
}

// OverrideCurrency 展示用币种覆盖值
func (r *BonusReward) OverrideCurrency() string {
	return r.ConfigCurrency()
}

// FormatAmount 金额展示串，按父奖金币种渲染
func (r *BonusReward) FormatAmount() string {
	return FormatMoney(r.Amount, r.ParentCurrency())
}
