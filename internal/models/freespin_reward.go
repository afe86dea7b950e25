package models

import (
	"strconv"
	"time"

	"github.com/bonus-office/internal/constants"
)

// FreespinReward 免费旋转奖励
type FreespinReward struct {
	ID uint `gorm:"primarykey" json:"id"` // 主键
	BonusOwnership
	SpinsCount int `gorm:"not null" json:"spins_count"` // 旋转次数
	RewardConfig
	CreatedAt time.Time `json:"created_at"` // 创建时间
	UpdatedAt time.Time `json:"updated_at"` // 更新时间
}

// TableName 指定表名
func (FreespinReward) TableName() string {
	return "freespin_rewards"
}

// Validate 字段校验
func (r *FreespinReward) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if r.BonusID == 0 {
		errs.Add("bonus_id", "can't be blank")
	}
	if r.SpinsCount <= 0 {
		errs.Add("spins_count", "must be greater than 0")
	}
	return errs
}

// RewardType 奖励类型标识
func (r *FreespinReward) RewardType() string {
	return constants.RewardTypeFreespin
}

// RewardID 奖励主键
func (r *FreespinReward) RewardID() uint {
	return r.ID
}

// OverrideCode 展示用奖金码覆盖值
func (r *FreespinReward) OverrideCode() string {
	return r.ConfigCode()
}

// OverrideCurrency 展示用币种覆盖值
func (r *FreespinReward) OverrideCurrency() string {
	return r.ConfigCurrency()
}

// FormatSpins 旋转次数展示串
func (r *FreespinReward) FormatSpins() string {
	return strconv.Itoa(r.SpinsCount) + " FS"
}
