package repository

import (
	"errors"
	"fmt"

	"github.com/bonus-office/internal/constants"
	"github.com/bonus-office/internal/models"

	"gorm.io/gorm"
)

// ErrUnknownRewardType 未知奖励类型
var ErrUnknownRewardType = errors.New("unknown reward type")

// RewardRepository 七类奖励的统一数据访问接口
// 奖励是平级的兄弟实体，按 reward_type 路由到各自的表。
type RewardRepository interface {
	Get(rewardType string, id uint) (models.Reward, error)
	ListForBonus(bonusID uint) ([]models.Reward, error)
	Create(reward models.Reward) error
	Update(reward models.Reward) error
	Delete(rewardType string, id uint) error
	DeleteForBonus(bonusID uint) error
	CountForBonus(bonusID uint) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) RewardRepository
}

// GormRewardRepository GORM 实现
type GormRewardRepository struct {
	db *gorm.DB
}

// NewRewardRepository 创建奖励仓库
func NewRewardRepository(db *gorm.DB) *GormRewardRepository {
	return &GormRewardRepository{db: db}
}

// WithTx 绑定事务
func (r *GormRewardRepository) WithTx(tx *gorm.DB) RewardRepository {
	if tx == nil {
		return r
	}
	return &GormRewardRepository{db: tx}
}

// Transaction 执行事务
func (r *GormRewardRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// Get 按类型和 ID 获取奖励，未找到返回 nil
func (r *GormRewardRepository) Get(rewardType string, id uint) (models.Reward, error) {
	reward, err := newRewardModel(rewardType)
	if err != nil {
		return nil, err
	}
	if err := r.db.First(reward, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return reward, nil
}

// ListForBonus 获取奖金下的全部奖励，按固定类型顺序拼接
func (r *GormRewardRepository) ListForBonus(bonusID uint) ([]models.Reward, error) {
	var rewards []models.Reward

	var bonusRewards []models.BonusReward
	if err := r.db.Where("bonus_id = ?", bonusID).Find(&bonusRewards).Error; err != nil {
		return nil, err
	}
	for i := range bonusRewards {
		rewards = append(rewards, &bonusRewards[i])
	}

	var freespinRewards []models.FreespinReward
	if err := r.db.Where("bonus_id = ?", bonusID).Find(&freespinRewards).Error; err != nil {
		return nil, err
	}
	for i := range freespinRewards {
		rewards = append(rewards, &freespinRewards[i])
	}

	var bonusBuyRewards []models.BonusBuyReward
	if err := r.db.Where("bonus_id = ?", bonusID).Find(&bonusBuyRewards).Error; err != nil {
		return nil, err
	}
	for i := range bonusBuyRewards {
		rewards = append(rewards, &bonusBuyRewards[i])
	}

	var compPointRewards []models.CompPointReward
	if err := r.db.Where("bonus_id = ?", bonusID).Find(&compPointRewards).Error; err != nil {
		return nil, err
	}
	for i := range compPointRewards {
		rewards = append(rewards, &compPointRewards[i])
	}

	var bonusCodeRewards []models.BonusCodeReward
	if err := r.db.Where("bonus_id = ?", bonusID).Find(&bonusCodeRewards).Error; err != nil {
		return nil, err
	}
	for i := range bonusCodeRewards {
		rewards = append(rewards, &bonusCodeRewards[i])
	}

	var freechipRewards []models.FreechipReward
	if err := r.db.Where("bonus_id = ?", bonusID).Find(&freechipRewards).Error; err != nil {
		return nil, err
	}
	for i := range freechipRewards {
		rewards = append(rewards, &freechipRewards[i])
	}

	var materialPrizeRewards []models.MaterialPrizeReward
	if err := r.db.Where("bonus_id = ?", bonusID).Find(&materialPrizeRewards).Error; err != nil {
		return nil, err
	}
	for i := range materialPrizeRewards {
		rewards = append(rewards, &materialPrizeRewards[i])
	}

	return rewards, nil
}

// Create 创建奖励
func (r *GormRewardRepository) Create(reward models.Reward) error {
	if reward == nil {
		return ErrUnknownRewardType
	}
	return r.db.Create(reward).Error
}

// Update 更新奖励
func (r *GormRewardRepository) Update(reward models.Reward) error {
	if reward == nil {
		return ErrUnknownRewardType
	}
	return r.db.Save(reward).Error
}

// Delete 按类型和 ID 删除奖励
func (r *GormRewardRepository) Delete(rewardType string, id uint) error {
	reward, err := newRewardModel(rewardType)
	if err != nil {
		return err
	}
	return r.db.Delete(reward, id).Error
}

// DeleteForBonus 删除奖金下的全部奖励
func (r *GormRewardRepository) DeleteForBonus(bonusID uint) error {
	for _, rewardType := range constants.RewardTypes {
		reward, err := newRewardModel(rewardType)
		if err != nil {
			return err
		}
		if err := r.db.Where("bonus_id = ?", bonusID).Delete(reward).Error; err != nil {
			return err
		}
	}
	return nil
}

// CountForBonus 统计奖金下的奖励总数
func (r *GormRewardRepository) CountForBonus(bonusID uint) (int64, error) {
	var total int64
	for _, rewardType := range constants.RewardTypes {
		reward, err := newRewardModel(rewardType)
		if err != nil {
			return 0, err
		}
		var count int64
		if err := r.db.Model(reward).Where("bonus_id = ?", bonusID).Count(&count).Error; err != nil {
			return 0, err
		}
		total += count
	}
	return total, nil
}

// newRewardModel 按奖励类型构造空模型
func newRewardModel(rewardType string) (models.Reward, error) {
	switch rewardType {
	case constants.RewardTypeBonus:
		return &models.BonusReward{}, nil
	case constants.RewardTypeFreespin:
		return &models.FreespinReward{}, nil
	case constants.RewardTypeBonusBuy:
		return &models.BonusBuyReward{}, nil
	case constants.RewardTypeCompPoint:
		return &models.CompPointReward{}, nil
	case constants.RewardTypeBonusCode:
		return &models.BonusCodeReward{}, nil
	case constants.RewardTypeFreechip:
		return &models.FreechipReward{}, nil
	case constants.RewardTypeMaterialPrize:
		return &models.MaterialPrizeReward{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownRewardType, rewardType)
	}
}
