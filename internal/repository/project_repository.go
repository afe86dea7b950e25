package repository

import (
	"errors"
	"strings"

	"github.com/bonus-office/internal/models"

	"gorm.io/gorm"
)

// ProjectRepository 项目数据访问接口
type ProjectRepository interface {
	List(filter ProjectListFilter) ([]models.Project, int64, error)
	GetByID(id uint) (*models.Project, error)
	GetByName(name string) (*models.Project, error)
	Create(project *models.Project) error
	Update(project *models.Project) error
	Delete(id uint) error
	CountByName(name string, excludeID *uint) (int64, error)
	WithTx(tx *gorm.DB) ProjectRepository
}

// GormProjectRepository GORM 实现
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository 创建项目仓库
func NewProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProjectRepository) WithTx(tx *gorm.DB) ProjectRepository {
	if tx == nil {
		return r
	}
	return &GormProjectRepository{db: tx}
}

// List 项目列表
func (r *GormProjectRepository) List(filter ProjectListFilter) ([]models.Project, int64, error) {
	query := r.db.Model(&models.Project{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var projects []models.Project
	if err := query.Order("name ASC").Find(&projects).Error; err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// GetByID 根据 ID 获取项目
func (r *GormProjectRepository) GetByID(id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

// GetByName 根据名称获取项目
func (r *GormProjectRepository) GetByName(name string) (*models.Project, error) {
	var project models.Project
	if err := r.db.Where("name = ?", name).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

// Create 创建项目
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// Update 更新项目
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete 删除项目，同事务内级联清理常驻奖金槽位
func (r *GormProjectRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).
			Delete(&models.PermanentBonus{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
}

// CountByName 统计名称数量（唯一性检查）
func (r *GormProjectRepository) CountByName(name string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Project{}).Where("name = ?", name)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
