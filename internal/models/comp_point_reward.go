package models

import (
	"strconv"
	"time"

	"github.com/bonus-office/internal/constants"
)

// CompPointReward 积分奖励
type CompPointReward struct {
	ID uint `gorm:"primarykey" json:"id"` // 主键
	BonusOwnership
	PointsAmount int      `gorm:"not null;default:0" json:"points_amount"` // 积分数量
	Multiplier   *float64 `json:"multiplier"`                              // 积分倍数
	RewardConfig
	CreatedAt time.Time `json:"created_at"` // 创建时间
	UpdatedAt time.Time `json:"updated_at"` // 更新时间
}

// TableName 指定表名
func (CompPointReward) TableName() string {
	return "comp_point_rewards"
}

// Validate 字段校验
func (r *CompPointReward) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if r.BonusID == 0 {
		errs.Add("bonus_id", "can't be blank")
	}
	if r.PointsAmount < 0 {
		errs.Add("points_amount", "must be greater than or equal to 0")
	}
	if r.Multiplier != nil && *r.Multiplier < 0 {
		errs.Add("multiplier", "must be greater than or equal to 0")
	}
	return errs
}

// RewardType 奖励类型标识
func (r *CompPointReward) RewardType() string {
	return constants.RewardTypeCompPoint
}

// RewardID 奖励主键
func (r *CompPointReward) RewardID() uint {
	return r.ID
}

// OverrideCode 展示用奖金码覆盖值
func (r *CompPointReward) OverrideCode() string {
	return r.ConfigCode()
}

// OverrideCurrency 展示用币种覆盖值
func (r *CompPointReward) OverrideCurrency() string {
	return r.ConfigCurrency()
}

// FormatPoints 积分展示串
func (r *CompPointReward) FormatPoints() string {
	return strconv.Itoa(r.PointsAmount) + " CP"
}

// FormatMultiplier 倍数展示串（"×1.5"），缺失显示 N/A
func (r *CompPointReward) FormatMultiplier() string {
	return FormatMultiplier(r.Multiplier)
}
