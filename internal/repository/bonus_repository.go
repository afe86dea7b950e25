package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/bonus-office/internal/constants"
	"github.com/bonus-office/internal/models"

	"gorm.io/gorm"
)

// bonusRewardPreloads 七类奖励关联的统一预加载列表
var bonusRewardPreloads = []string{
	"BonusRewards",
	"FreespinRewards",
	"BonusBuyRewards",
	"CompPointRewards",
	"BonusCodeRewards",
	"FreechipRewards",
	"MaterialPrizeRewards",
}

// BonusRepository 奖金数据访问接口
type BonusRepository interface {
	List(filter BonusListFilter) ([]models.Bonus, int64, error)
	GetByID(id uint) (*models.Bonus, error)
	ListByIDs(ids []uint) ([]models.Bonus, error)
	Create(bonus *models.Bonus) error
	Update(bonus *models.Bonus) error
	Delete(id uint) error
	UpdateStatus(id uint, status string) (int64, error)
	BulkUpdateStatus(ids []uint, status string) (int64, error)
	BulkDelete(ids []uint) (int64, error)
	UpdateExpiredBonuses(now time.Time) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) BonusRepository
}

// GormBonusRepository GORM 实现
// 读取路径内置惰性过期：active 状态且可用窗口终点已过的记录在返回前落库翻转为 expired。
type GormBonusRepository struct {
	db *gorm.DB
}

// NewBonusRepository 创建奖金仓库
func NewBonusRepository(db *gorm.DB) *GormBonusRepository {
	return &GormBonusRepository{db: db}
}

// WithTx 绑定事务
func (r *GormBonusRepository) WithTx(tx *gorm.DB) BonusRepository {
	if tx == nil {
		return r
	}
	return &GormBonusRepository{db: tx}
}

// Transaction 执行事务
func (r *GormBonusRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// List 奖金列表
func (r *GormBonusRepository) List(filter BonusListFilter) ([]models.Bonus, int64, error) {
	query := r.db.Model(&models.Bonus{})
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if event := strings.TrimSpace(filter.Event); event != "" {
		query = query.Where("event = ?", event)
	}
	if currency := strings.TrimSpace(filter.Currency); currency != "" {
		query = query.Where("currencies LIKE ?", "%\""+currency+"\"%")
	}
	if country := strings.TrimSpace(filter.Country); country != "" {
		query = query.Where("country = ?", country)
	}
	if project := strings.TrimSpace(filter.Project); project != "" {
		query = query.Where("project = ?", project)
	}
	if dslTag := strings.TrimSpace(filter.DslTag); dslTag != "" {
		query = query.Where("dsl_tag = ?", dslTag)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR code LIKE ? OR description LIKE ?", like, like, like)
	}
	if filter.AvailableFrom != nil {
		query = query.Where("availability_end_date >= ?", *filter.AvailableFrom)
	}
	if filter.AvailableTo != nil {
		query = query.Where("availability_start_date <= ?", *filter.AvailableTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var bonuses []models.Bonus
	if err := query.Order("created_at DESC, id DESC").Find(&bonuses).Error; err != nil {
		return nil, 0, err
	}
	if err := r.expireLoaded(bonuses); err != nil {
		return nil, 0, err
	}
	return bonuses, total, nil
}

// GetByID 根据 ID 获取奖金（预加载全部奖励）
func (r *GormBonusRepository) GetByID(id uint) (*models.Bonus, error) {
	query := r.db
	for _, preload := range bonusRewardPreloads {
		query = query.Preload(preload)
	}

	var bonus models.Bonus
	if err := query.First(&bonus, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if bonus.Status == constants.BonusStatusActive && bonus.Expired(time.Now()) {
		if err := r.db.Model(&models.Bonus{}).
			Where("id = ? AND status = ?", bonus.ID, constants.BonusStatusActive).
			Update("status", constants.BonusStatusExpired).Error; err != nil {
			return nil, err
		}
		bonus.Status = constants.BonusStatusExpired
	}
	return &bonus, nil
}

// ListByIDs 批量获取奖金
func (r *GormBonusRepository) ListByIDs(ids []uint) ([]models.Bonus, error) {
	if len(ids) == 0 {
		return []models.Bonus{}, nil
	}
	var bonuses []models.Bonus
	if err := r.db.Where("id IN ?", ids).Find(&bonuses).Error; err != nil {
		return nil, err
	}
	return bonuses, nil
}

// Create 创建奖金
func (r *GormBonusRepository) Create(bonus *models.Bonus) error {
	return r.db.Create(bonus).Error
}

// Update 更新奖金
func (r *GormBonusRepository) Update(bonus *models.Bonus) error {
	return r.db.Save(bonus).Error
}

// Delete 删除奖金（软删除，同事务级联清理奖励行由外键约束负责）
func (r *GormBonusRepository) Delete(id uint) error {
	return r.db.Delete(&models.Bonus{}, id).Error
}

// UpdateStatus 更新单条状态
func (r *GormBonusRepository) UpdateStatus(id uint, status string) (int64, error) {
	result := r.db.Model(&models.Bonus{}).
		Where("id = ?", id).
		Update("status", status)
	return result.RowsAffected, result.Error
}

// BulkUpdateStatus 批量更新状态
func (r *GormBonusRepository) BulkUpdateStatus(ids []uint, status string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.Bonus{}).
		Where("id IN ?", ids).
		Update("status", status)
	return result.RowsAffected, result.Error
}

// BulkDelete 批量删除
func (r *GormBonusRepository) BulkDelete(ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Delete(&models.Bonus{}, ids)
	return result.RowsAffected, result.Error
}

// UpdateExpiredBonuses 批量清扫：一条 UPDATE 将所有窗口已过的 active 奖金翻转为 expired。
// 终点等于当前时刻不算过期，条件取严格小于。
func (r *GormBonusRepository) UpdateExpiredBonuses(now time.Time) (int64, error) {
	result := r.db.Model(&models.Bonus{}).
		Where("status = ? AND availability_end_date < ?", constants.BonusStatusActive, now).
		Update("status", constants.BonusStatusExpired)
	return result.RowsAffected, result.Error
}

// expireLoaded 惰性过期：对已加载的记录挑出需翻转的 ID，单条批量 UPDATE 落库并同步内存状态。
func (r *GormBonusRepository) expireLoaded(bonuses []models.Bonus) error {
	now := time.Now()
	var stale []uint
	for i := range bonuses {
		if bonuses[i].Status == constants.BonusStatusActive && bonuses[i].Expired(now) {
			stale = append(stale, bonuses[i].ID)
		}
	}
	if len(stale) == 0 {
		return nil
	}
	if err := r.db.Model(&models.Bonus{}).
		Where("id IN ? AND status = ?", stale, constants.BonusStatusActive).
		Update("status", constants.BonusStatusExpired).Error; err != nil {
		return err
	}
	for i := range bonuses {
		if bonuses[i].Status == constants.BonusStatusActive && bonuses[i].Expired(now) {
			bonuses[i].Status = constants.BonusStatusExpired
		}
	}
	return nil
}
