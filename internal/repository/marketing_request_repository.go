package repository

import (
	"errors"
	"strings"

	"github.com/bonus-office/internal/models"

	"gorm.io/gorm"
)

// MarketingRequestRepository 营销合作申请数据访问接口
type MarketingRequestRepository interface {
	List(filter MarketingRequestListFilter) ([]models.MarketingRequest, int64, error)
	GetByID(id uint) (*models.MarketingRequest, error)
	Create(request *models.MarketingRequest) error
	Update(request *models.MarketingRequest) error
	Delete(id uint) error
	StagTaken(stag string, excludeID uint) (bool, error)
	ListOthers(excludeID uint) ([]models.MarketingRequest, error)
	WithTx(tx *gorm.DB) MarketingRequestRepository
}

// GormMarketingRequestRepository GORM 实现
type GormMarketingRequestRepository struct {
	db *gorm.DB
}

// NewMarketingRequestRepository 创建营销合作申请仓库
func NewMarketingRequestRepository(db *gorm.DB) *GormMarketingRequestRepository {
	return &GormMarketingRequestRepository{db: db}
}

// WithTx 绑定事务
func (r *GormMarketingRequestRepository) WithTx(tx *gorm.DB) MarketingRequestRepository {
	if tx == nil {
		return r
	}
	return &GormMarketingRequestRepository{db: tx}
}

// List 申请列表
func (r *GormMarketingRequestRepository) List(filter MarketingRequestListFilter) ([]models.MarketingRequest, int64, error) {
	query := r.db.Model(&models.MarketingRequest{})
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if requestType := strings.TrimSpace(filter.RequestType); requestType != "" {
		query = query.Where("request_type = ?", requestType)
	}
	if platform := strings.TrimSpace(filter.Platform); platform != "" {
		query = query.Where("platform = ?", platform)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("manager LIKE ? OR partner_email LIKE ? OR stag LIKE ? OR promo_code LIKE ?",
			like, like, like, like)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var requests []models.MarketingRequest
	if err := query.Order("created_at DESC, id DESC").Find(&requests).Error; err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// GetByID 根据 ID 获取申请
func (r *GormMarketingRequestRepository) GetByID(id uint) (*models.MarketingRequest, error) {
	var request models.MarketingRequest
	if err := r.db.First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

// Create 创建申请
func (r *GormMarketingRequestRepository) Create(request *models.MarketingRequest) error {
	return r.db.Create(request).Error
}

// Update 更新申请
func (r *GormMarketingRequestRepository) Update(request *models.MarketingRequest) error {
	return r.db.Save(request).Error
}

// Delete 删除申请
func (r *GormMarketingRequestRepository) Delete(id uint) error {
	return r.db.Delete(&models.MarketingRequest{}, id).Error
}

// StagTaken 判断 stag 是否已被其他申请占用
func (r *GormMarketingRequestRepository) StagTaken(stag string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&models.MarketingRequest{}).Where("stag = ?", stag)
	if excludeID > 0 {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListOthers 获取除指定 ID 外的全部申请（推广码全局唯一性扫描用）
func (r *GormMarketingRequestRepository) ListOthers(excludeID uint) ([]models.MarketingRequest, error) {
	var requests []models.MarketingRequest
	query := r.db.Model(&models.MarketingRequest{})
	if excludeID > 0 {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}
