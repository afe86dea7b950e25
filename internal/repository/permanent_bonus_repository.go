package repository

import (
	"errors"
	"strings"

	"github.com/bonus-office/internal/models"

	"gorm.io/gorm"
)

// PermanentBonusRepository 常驻奖金槽位数据访问接口
type PermanentBonusRepository interface {
	List(filter PermanentBonusListFilter) ([]models.PermanentBonus, int64, error)
	ListForProject(project, dslTag string) ([]models.PermanentBonus, error)
	GetByID(id uint) (*models.PermanentBonus, error)
	Create(slot *models.PermanentBonus) error
	Delete(id uint) error
	Exists(project string, bonusID uint) (bool, error)
	WithTx(tx *gorm.DB) PermanentBonusRepository
}

// GormPermanentBonusRepository GORM 实现
type GormPermanentBonusRepository struct {
	db *gorm.DB
}

// NewPermanentBonusRepository 创建常驻奖金仓库
func NewPermanentBonusRepository(db *gorm.DB) *GormPermanentBonusRepository {
	return &GormPermanentBonusRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPermanentBonusRepository) WithTx(tx *gorm.DB) PermanentBonusRepository {
	if tx == nil {
		return r
	}
	return &GormPermanentBonusRepository{db: tx}
}

// List 槽位列表
func (r *GormPermanentBonusRepository) List(filter PermanentBonusListFilter) ([]models.PermanentBonus, int64, error) {
	query := r.db.Model(&models.PermanentBonus{})
	if project := strings.TrimSpace(filter.Project); project != "" {
		query = query.Where("project = ?", project)
	}
	if filter.BonusID > 0 {
		query = query.Where("bonus_id = ?", filter.BonusID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var slots []models.PermanentBonus
	if err := query.Preload("Bonus").Order("project ASC, id ASC").Find(&slots).Error; err != nil {
		return nil, 0, err
	}
	return slots, total, nil
}

// ListForProject 获取项目的常驻槽位（预加载奖金及其全部奖励）。
// dslTag 非空时按关联奖金的 DSL 标签过滤，空串表示不限标签。
func (r *GormPermanentBonusRepository) ListForProject(project, dslTag string) ([]models.PermanentBonus, error) {
	query := r.db.Preload("Bonus")
	for _, preload := range bonusRewardPreloads {
		query = query.Preload("Bonus." + preload)
	}
	query = query.Where("permanent_bonuses.project = ?", project)
	if dslTag = strings.TrimSpace(dslTag); dslTag != "" {
		query = query.
			Joins("JOIN bonuses ON bonuses.id = permanent_bonuses.bonus_id AND bonuses.deleted_at IS NULL").
			Where("bonuses.dsl_tag = ?", dslTag)
	}

	var slots []models.PermanentBonus
	if err := query.
		Order("permanent_bonuses.id ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

// GetByID 根据 ID 获取槽位
func (r *GormPermanentBonusRepository) GetByID(id uint) (*models.PermanentBonus, error) {
	var slot models.PermanentBonus
	if err := r.db.Preload("Bonus").First(&slot, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

// Create 创建槽位
func (r *GormPermanentBonusRepository) Create(slot *models.PermanentBonus) error {
	return r.db.Create(slot).Error
}

// Delete 删除槽位
func (r *GormPermanentBonusRepository) Delete(id uint) error {
	return r.db.Delete(&models.PermanentBonus{}, id).Error
}

// Exists 判断 (project, bonus) 组合是否已存在
func (r *GormPermanentBonusRepository) Exists(project string, bonusID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.PermanentBonus{}).
		Where("project = ? AND bonus_id = ?", project, bonusID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
