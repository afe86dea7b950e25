package service

import (
	"strings"
	"time"

	"github.com/bonus-office/internal/constants"
	"github.com/bonus-office/internal/logger"
	"github.com/bonus-office/internal/models"
	"github.com/bonus-office/internal/repository"

	"gorm.io/gorm"
)

// BonusService 奖金业务服务
type BonusService struct {
	bonusRepo  repository.BonusRepository
	rewardRepo repository.RewardRepository
	tagRepo    repository.DslTagRepository
}

// NewBonusService 创建奖金服务
func NewBonusService(
	bonusRepo repository.BonusRepository,
	rewardRepo repository.RewardRepository,
	tagRepo repository.DslTagRepository,
) *BonusService {
	return &BonusService{
		bonusRepo:  bonusRepo,
		rewardRepo: rewardRepo,
		tagRepo:    tagRepo,
	}
}

// BonusInput 创建/更新奖金输入
type BonusInput struct {
	Name                    string
	Code                    string
	Event                   string
	Status                  string
	AvailabilityStartDate   time.Time
	AvailabilityEndDate     time.Time
	Description             string
	Currencies              []string
	Country                 string
	Groups                  []string
	DslTagID                *uint
	Project                 string
	MinimumDeposit          *float64
	Wager                   *float64
	MaximumWinnings         *float64
	CurrencyMinimumDeposits map[string]interface{}
	NoMore                  string
	TotallyNoMore           *int
	Tags                    []string
	WageringStrategy        string
}

// List 奖金列表
func (s *BonusService) List(filter repository.BonusListFilter) ([]models.Bonus, int64, error) {
	return s.bonusRepo.List(filter)
}

// Get 获取奖金详情（含全部奖励）
func (s *BonusService) Get(id uint) (*models.Bonus, error) {
	bonus, err := s.bonusRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if bonus == nil {
		return nil, ErrBonusNotFound
	}
	return bonus, nil
}

// Create 创建奖金
func (s *BonusService) Create(input BonusInput) (*models.Bonus, error) {
	bonus := models.Bonus{}
	applyBonusInput(&bonus, input)
	if bonus.Status == "" {
		bonus.Status = constants.BonusStatusDraft
	}
	if strings.TrimSpace(bonus.Project) == "" {
		bonus.Project = constants.ProjectAll
	}

	if err := s.resolveDslTag(&bonus, input.DslTagID); err != nil {
		return nil, err
	}
	if err := NewValidationError(bonus.Validate()); err != nil {
		return nil, err
	}
	if err := s.bonusRepo.Create(&bonus); err != nil {
		return nil, err
	}
	return &bonus, nil
}

// Update 更新奖金
func (s *BonusService) Update(id uint, input BonusInput) (*models.Bonus, error) {
	bonus, err := s.bonusRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if bonus == nil {
		return nil, ErrBonusNotFound
	}

	applyBonusInput(bonus, input)
	if bonus.Status == "" {
		bonus.Status = constants.BonusStatusDraft
	}
	if strings.TrimSpace(bonus.Project) == "" {
		bonus.Project = constants.ProjectAll
	}
	if err := s.resolveDslTag(bonus, input.DslTagID); err != nil {
		return nil, err
	}
	if err := NewValidationError(bonus.Validate()); err != nil {
		return nil, err
	}
	if err := s.bonusRepo.Update(bonus); err != nil {
		return nil, err
	}
	return bonus, nil
}

// Delete 删除奖金及其全部奖励
func (s *BonusService) Delete(id uint) error {
	bonus, err := s.bonusRepo.GetByID(id)
	if err != nil {
		return err
	}
	if bonus == nil {
		return ErrBonusNotFound
	}
	return s.bonusRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.rewardRepo.WithTx(tx).DeleteForBonus(id); err != nil {
			return err
		}
		return s.bonusRepo.WithTx(tx).Delete(id)
	})
}

// Activate 激活奖金。可用窗口已过的奖金不可激活。
func (s *BonusService) Activate(id uint) (*models.Bonus, error) {
	bonus, err := s.bonusRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if bonus == nil {
		return nil, ErrBonusNotFound
	}
	if bonus.Expired(time.Now()) {
		return nil, ErrBonusExpired
	}
	if _, err := s.bonusRepo.UpdateStatus(id, constants.BonusStatusActive); err != nil {
		return nil, err
	}
	bonus.Status = constants.BonusStatusActive
	return bonus, nil
}

// Deactivate 停用奖金
func (s *BonusService) Deactivate(id uint) (*models.Bonus, error) {
	return s.setStatus(id, constants.BonusStatusInactive)
}

// MarkAsExpired 手动置为过期
func (s *BonusService) MarkAsExpired(id uint) (*models.Bonus, error) {
	return s.setStatus(id, constants.BonusStatusExpired)
}

// BulkAction 批量操作。空 ID 列表是显式允许的空操作；未知动作拒绝。
func (s *BonusService) BulkAction(action string, ids []uint) (int64, error) {
	switch action {
	case constants.BulkActionDelete, constants.BulkActionActivate, constants.BulkActionDeactivate:
	default:
		return 0, ErrUnknownBulkAction
	}
	if len(ids) == 0 {
		return 0, nil
	}

	switch action {
	case constants.BulkActionDelete:
		var affected int64
		err := s.bonusRepo.Transaction(func(tx *gorm.DB) error {
			rewardRepo := s.rewardRepo.WithTx(tx)
			for _, id := range ids {
				if err := rewardRepo.DeleteForBonus(id); err != nil {
					return err
				}
			}
			count, err := s.bonusRepo.WithTx(tx).BulkDelete(ids)
			if err != nil {
				return err
			}
			affected = count
			return nil
		})
		return affected, err
	case constants.BulkActionActivate:
		return s.bonusRepo.BulkUpdateStatus(ids, constants.BonusStatusActive)
	default:
		return s.bonusRepo.BulkUpdateStatus(ids, constants.BonusStatusInactive)
	}
}

// ExpireSweep 批量过期清扫，返回翻转条数
func (s *BonusService) ExpireSweep() (int64, error) {
	count, err := s.bonusRepo.UpdateExpiredBonuses(time.Now())
	if err != nil {
		return 0, err
	}
	if count > 0 {
		logger.Infow("bonus_expire_sweep_done", "expired_count", count)
	}
	return count, nil
}

func (s *BonusService) setStatus(id uint, status string) (*models.Bonus, error) {
	bonus, err := s.bonusRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if bonus == nil {
		return nil, ErrBonusNotFound
	}
	if _, err := s.bonusRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	bonus.Status = status
	return bonus, nil
}

// applyBonusInput 把输入字段写入模型
func applyBonusInput(bonus *models.Bonus, input BonusInput) {
	bonus.Name = strings.TrimSpace(input.Name)
	bonus.Code = strings.TrimSpace(input.Code)
	bonus.Event = strings.TrimSpace(input.Event)
	bonus.Status = strings.TrimSpace(input.Status)
	bonus.AvailabilityStartDate = input.AvailabilityStartDate
	bonus.AvailabilityEndDate = input.AvailabilityEndDate
	bonus.Description = input.Description
	bonus.Currencies = models.NormalizeStringList(input.Currencies...)
	bonus.Country = strings.TrimSpace(input.Country)
	bonus.Groups = models.NormalizeStringList(input.Groups...)
	bonus.Project = strings.TrimSpace(input.Project)
	bonus.MinimumDeposit = moneyFromFloat(input.MinimumDeposit)
	bonus.Wager = moneyFromFloat(input.Wager)
	bonus.MaximumWinnings = moneyFromFloat(input.MaximumWinnings)
	bonus.CurrencyMinimumDeposits = models.NormalizeMoneyMap(input.CurrencyMinimumDeposits)
	bonus.NoMore = strings.TrimSpace(input.NoMore)
	bonus.TotallyNoMore = input.TotallyNoMore
	bonus.SetTagsArray(input.Tags)
	bonus.WageringStrategy = strings.TrimSpace(input.WageringStrategy)
}

// resolveDslTag 维护标签外键与名称冗余串的一致性
func (s *BonusService) resolveDslTag(bonus *models.Bonus, tagID *uint) error {
	if tagID == nil || *tagID == 0 {
		bonus.DslTagID = nil
		bonus.DslTag = ""
		return nil
	}
	tag, err := s.tagRepo.GetByID(*tagID)
	if err != nil {
		return err
	}
	if tag == nil {
		return ErrDslTagNotFound
	}
	bonus.DslTagID = &tag.ID
	bonus.DslTag = tag.Name
	return nil
}

func moneyFromFloat(value *float64) *models.Money {
	if value == nil {
		return nil
	}
	amount := models.NewMoneyFromFloat(*value)
	return &amount
}
