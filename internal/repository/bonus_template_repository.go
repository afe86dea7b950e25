package repository

import (
	"errors"
	"strings"

	"github.com/bonus-office/internal/constants"
	"github.com/bonus-office/internal/models"

	"gorm.io/gorm"
)

// BonusTemplateRepository 奖励模板数据访问接口
type BonusTemplateRepository interface {
	List(filter BonusTemplateListFilter) ([]models.BonusTemplate, int64, error)
	GetByID(id uint) (*models.BonusTemplate, error)
	FindByKey(dslTag, project, name string) (*models.BonusTemplate, error)
	Resolve(dslTag, project, name string) (*models.BonusTemplate, error)
	Create(template *models.BonusTemplate) error
	Update(template *models.BonusTemplate) error
	Delete(id uint) error
	CountByKey(dslTag, project, name string, excludeID *uint) (int64, error)
	WithTx(tx *gorm.DB) BonusTemplateRepository
}

// GormBonusTemplateRepository GORM 实现
type GormBonusTemplateRepository struct {
	db *gorm.DB
}

// NewBonusTemplateRepository 创建奖励模板仓库
func NewBonusTemplateRepository(db *gorm.DB) *GormBonusTemplateRepository {
	return &GormBonusTemplateRepository{db: db}
}

// WithTx 绑定事务
func (r *GormBonusTemplateRepository) WithTx(tx *gorm.DB) BonusTemplateRepository {
	if tx == nil {
		return r
	}
	return &GormBonusTemplateRepository{db: tx}
}

// List 模板列表
func (r *GormBonusTemplateRepository) List(filter BonusTemplateListFilter) ([]models.BonusTemplate, int64, error) {
	query := r.db.Model(&models.BonusTemplate{})
	if dslTag := strings.TrimSpace(filter.DslTag); dslTag != "" {
		query = query.Where("dsl_tag = ?", dslTag)
	}
	if project := strings.TrimSpace(filter.Project); project != "" {
		query = query.Where("project = ?", project)
	}
	if event := strings.TrimSpace(filter.Event); event != "" {
		query = query.Where("event = ?", event)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var templates []models.BonusTemplate
	if err := query.Order("dsl_tag ASC, project ASC, name ASC").Find(&templates).Error; err != nil {
		return nil, 0, err
	}
	return templates, total, nil
}

// GetByID 根据 ID 获取模板
func (r *GormBonusTemplateRepository) GetByID(id uint) (*models.BonusTemplate, error) {
	var template models.BonusTemplate
	if err := r.db.First(&template, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &template, nil
}

// FindByKey 按 (dsl_tag, project, name) 精确查找模板
func (r *GormBonusTemplateRepository) FindByKey(dslTag, project, name string) (*models.BonusTemplate, error) {
	var template models.BonusTemplate
	if err := r.db.
		Where("dsl_tag = ? AND project = ? AND name = ?", dslTag, project, name).
		First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &template, nil
}

// Resolve 两步模板解析：先查项目专属模板，未命中再回落 "All" 项目模板。
func (r *GormBonusTemplateRepository) Resolve(dslTag, project, name string) (*models.BonusTemplate, error) {
	if project != "" && project != constants.ProjectAll {
		template, err := r.FindByKey(dslTag, project, name)
		if err != nil {
			return nil, err
		}
		if template != nil {
			return template, nil
		}
	}
	return r.FindByKey(dslTag, constants.ProjectAll, name)
}

// Create 创建模板
func (r *GormBonusTemplateRepository) Create(template *models.BonusTemplate) error {
	return r.db.Create(template).Error
}

// Update 更新模板
func (r *GormBonusTemplateRepository) Update(template *models.BonusTemplate) error {
	return r.db.Save(template).Error
}

// Delete 删除模板
func (r *GormBonusTemplateRepository) Delete(id uint) error {
	return r.db.Delete(&models.BonusTemplate{}, id).Error
}

// CountByKey 统计组合键数量（唯一性检查）
func (r *GormBonusTemplateRepository) CountByKey(dslTag, project, name string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.BonusTemplate{}).
		Where("dsl_tag = ? AND project = ? AND name = ?", dslTag, project, name)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
