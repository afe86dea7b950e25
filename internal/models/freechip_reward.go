package models

import (
	"strconv"
	"time"

	"github.com/bonus-office/internal/constants"

	"github.com/shopspring/decimal"
)

// FreechipReward 免费筹码奖励（无扩展配置）
type FreechipReward struct {
	ID uint `gorm:"primarykey" json:"id"` // 主键
	BonusOwnership
	ChipValue  Money     `gorm:"type:decimal(20,2);not null" json:"chip_value"` // 单枚筹码面值
	ChipsCount int       `gorm:"not null" json:"chips_count"`                   // 筹码数量
	CreatedAt  time.Time `json:"created_at"`                                    // 创建时间
	UpdatedAt  time.Time `json:"updated_at"`                                    // 更新时间
}

// TableName 指定表名
func (FreechipReward) TableName() string {
	return "freechip_rewards"
}

// Validate 字段校验
func (r *FreechipReward) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if r.BonusID == 0 {
		errs.Add("bonus_id", "can't be blank")
	}
	if !r.ChipValue.Decimal.GreaterThan(decimal.Zero) {
		errs.Add("chip_value", "must be greater than 0")
	}
	if r.ChipsCount <= 0 {
		errs.Add("chips_count", "must be greater than 0")
	}
	return errs
}

// RewardType 奖励类型标识
func (r *FreechipReward) RewardType() string {
	return constants.RewardTypeFreechip
}

// RewardID 奖励主键
func (r *FreechipReward) RewardID() uint {
	return r.ID
}

// OverrideCode 无配置层，恒为空
func (r *FreechipReward) OverrideCode() string {
	return ""
}

// OverrideCurrency 无配置层，恒为空
func (r *FreechipReward) OverrideCurrency() string {
	return ""
}

// FormatChips 筹码展示串，按父奖金币种渲染
func (r *FreechipReward) FormatChips() string {
	value := r.ChipValue
	return strconv.Itoa(r.ChipsCount) + " × " + FormatMoney(&value, r.ParentCurrency())
}
