package repository

import (
	"errors"
	"strings"

	"github.com/bonus-office/internal/constants"
	"github.com/bonus-office/internal/models"

	"gorm.io/gorm"
)

// DslTagUsage 标签使用统计（实时计算，不落库）
type DslTagUsage struct {
	UsageCount         int64 `json:"usage_count"`          // 引用该标签的奖金总数
	ActiveBonusesCount int64 `json:"active_bonuses_count"` // 其中 active 状态的数量
}

// DslTagRepository DSL 标签数据访问接口
type DslTagRepository interface {
	List(filter DslTagListFilter) ([]models.DslTag, int64, error)
	GetByID(id uint) (*models.DslTag, error)
	GetByName(name string) (*models.DslTag, error)
	Create(tag *models.DslTag) error
	Update(tag *models.DslTag) error
	Delete(id uint) error
	CountByName(name string, excludeID *uint) (int64, error)
	Usage(id uint) (DslTagUsage, error)
	WithTx(tx *gorm.DB) DslTagRepository
}

// GormDslTagRepository GORM 实现
type GormDslTagRepository struct {
	db *gorm.DB
}

// NewDslTagRepository 创建 DSL 标签仓库
func NewDslTagRepository(db *gorm.DB) *GormDslTagRepository {
	return &GormDslTagRepository{db: db}
}

// WithTx 绑定事务
func (r *GormDslTagRepository) WithTx(tx *gorm.DB) DslTagRepository {
	if tx == nil {
		return r
	}
	return &GormDslTagRepository{db: tx}
}

// List 标签列表
func (r *GormDslTagRepository) List(filter DslTagListFilter) ([]models.DslTag, int64, error) {
	query := r.db.Model(&models.DslTag{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var tags []models.DslTag
	if err := query.Order("name ASC").Find(&tags).Error; err != nil {
		return nil, 0, err
	}
	return tags, total, nil
}

// GetByID 根据 ID 获取标签
func (r *GormDslTagRepository) GetByID(id uint) (*models.DslTag, error) {
	var tag models.DslTag
	if err := r.db.First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

// GetByName 根据名称获取标签
func (r *GormDslTagRepository) GetByName(name string) (*models.DslTag, error) {
	var tag models.DslTag
	if err := r.db.Where("name = ?", name).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

// Create 创建标签
func (r *GormDslTagRepository) Create(tag *models.DslTag) error {
	return r.db.Create(tag).Error
}

// Update 更新标签
func (r *GormDslTagRepository) Update(tag *models.DslTag) error {
	return r.db.Save(tag).Error
}

// Delete 删除标签，同事务内将引用该标签的奖金外键置空
func (r *GormDslTagRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Bonus{}).
			Where("dsl_tag_id = ?", id).
			Update("dsl_tag_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.DslTag{}, id).Error
	})
}

// CountByName 统计名称数量（唯一性检查）
func (r *GormDslTagRepository) CountByName(name string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.DslTag{}).Where("name = ?", name)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Usage 实时统计标签使用情况
func (r *GormDslTagRepository) Usage(id uint) (DslTagUsage, error) {
	var usage DslTagUsage
	if err := r.db.Model(&models.Bonus{}).
		Where("dsl_tag_id = ?", id).
		Count(&usage.UsageCount).Error; err != nil {
		return usage, err
	}
	if err := r.db.Model(&models.Bonus{}).
		Where("dsl_tag_id = ? AND status = ?", id, constants.BonusStatusActive).
		Count(&usage.ActiveBonusesCount).Error; err != nil {
		return usage, err
	}
	return usage, nil
}
