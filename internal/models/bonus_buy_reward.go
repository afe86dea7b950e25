package models

import (
	"time"

	"github.com/bonus-office/internal/constants"

	"github.com/shopspring/decimal"
)

// BonusBuyReward 购买式奖金奖励
type BonusBuyReward struct {
	ID uint `gorm:"primarykey" json:"id"` // 主键
	BonusOwnership
	BuyAmount  Money    `gorm:"type:decimal(20,2);not null" json:"buy_amount"` // 购买金额
	Multiplier *float64 `json:"multiplier"`                                    // 奖励倍数
	RewardConfig
	CreatedAt time.Time `json:"created_at"` // 创建时间
	UpdatedAt time.Time `json:"updated_at"` // 更新时间
}

// TableName 指定表名
func (BonusBuyReward) TableName() string {
	return "bonus_buy_rewards"
}

// Validate 字段校验
func (r *BonusBuyReward) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if r.BonusID == 0 {
		errs.Add("bonus_id", "can't be blank")
	}
	if !r.BuyAmount.Decimal.GreaterThan(decimal.Zero) {
		errs.Add("buy_amount", "must be greater than 0")
	}
	if r.Multiplier != nil && *r.Multiplier <= 0 {
		errs.Add("multiplier", "must be greater than 0")
	}
	return errs
}

// RewardType 奖励类型标识
func (r *BonusBuyReward) RewardType() string {
	return constants.RewardTypeBonusBuy
}

// RewardID 奖励主键
func (r *BonusBuyReward) RewardID() uint {
	return r.ID
}

// OverrideCode 展示用奖金码覆盖值
func (r *BonusBuyReward) OverrideCode() string {
	return r.ConfigCode()
}

// OverrideCurrency 展示用币种覆盖值
func (r *BonusBuyReward) OverrideCurrency() string {
	return r.ConfigCurrency()
}

// FormatBuyAmount 购买金额展示串，按父奖金币种渲染
func (r *BonusBuyReward) FormatBuyAmount() string {
	amount := r.BuyAmount
	return FormatMoney(&amount, r.ParentCurrency())
}

// FormatMultiplier 倍数展示串（"×2.5"），缺失显示 N/A
func (r *BonusBuyReward) FormatMultiplier() string {
	return FormatMultiplier(r.Multiplier)
}
