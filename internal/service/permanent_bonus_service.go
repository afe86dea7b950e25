package service

import (
	"context"
	"strings"
	"time"

	"github.com/bonus-office/internal/cache"
	"github.com/bonus-office/internal/logger"
	"github.com/bonus-office/internal/models"
	"github.com/bonus-office/internal/repository"
)

const permanentBonusPreviewTTL = 5 * time.Minute

// PermanentBonusService 常驻奖金业务服务
type PermanentBonusService struct {
	slotRepo    repository.PermanentBonusRepository
	bonusRepo   repository.BonusRepository
	projectRepo repository.ProjectRepository
}

// NewPermanentBonusService 创建常驻奖金服务
func NewPermanentBonusService(
	slotRepo repository.PermanentBonusRepository,
	bonusRepo repository.BonusRepository,
	projectRepo repository.ProjectRepository,
) *PermanentBonusService {
	return &PermanentBonusService{
		slotRepo:    slotRepo,
		bonusRepo:   bonusRepo,
		projectRepo: projectRepo,
	}
}

// PermanentBonusPreview 常驻奖金预览（面向前台展示的裁剪视图）
type PermanentBonusPreview struct {
	SlotID          uint      `json:"slot_id"`
	BonusID         uint      `json:"bonus_id"`
	Name            string    `json:"name"`
	DisplayCode     string    `json:"display_code"`
	DisplayCurrency string    `json:"display_currency"`
	Status          string    `json:"status"`
	Event           string    `json:"event"`
	RewardTypes     []string  `json:"reward_types"`
	StartDate       time.Time `json:"availability_start_date"`
	EndDate         time.Time `json:"availability_end_date"`
}

// List 槽位列表
func (s *PermanentBonusService) List(filter repository.PermanentBonusListFilter) ([]models.PermanentBonus, int64, error) {
	return s.slotRepo.List(filter)
}

// Add 把奖金标记为项目常驻
func (s *PermanentBonusService) Add(project string, bonusID uint) (*models.PermanentBonus, error) {
	project = strings.TrimSpace(project)

	bonus, err := s.bonusRepo.GetByID(bonusID)
	if err != nil {
		return nil, err
	}
	if bonus == nil {
		return nil, ErrBonusNotFound
	}

	slot := models.PermanentBonus{
		Project: project,
		BonusID: bonusID,
	}
	if record, err := s.projectRepo.GetByName(project); err != nil {
		return nil, err
	} else if record != nil {
		slot.ProjectID = record.ID
	}

	if err := NewValidationError(slot.Validate()); err != nil {
		return nil, err
	}
	exists, err := s.slotRepo.Exists(project, bonusID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrPermanentExists
	}
	if err := s.slotRepo.Create(&slot); err != nil {
		return nil, err
	}
	s.invalidatePreviews(project)
	return &slot, nil
}

// Remove 取消常驻标记
func (s *PermanentBonusService) Remove(id uint) error {
	slot, err := s.slotRepo.GetByID(id)
	if err != nil {
		return err
	}
	if slot == nil {
		return ErrPermanentBonusNotFound
	}
	if err := s.slotRepo.Delete(id); err != nil {
		return err
	}
	s.invalidatePreviews(slot.Project)
	return nil
}

// FindForProject 按 (项目, DSL 标签) 查找当前生效的常驻奖金：
// 取第一个状态 active 且处于可用窗口内的槽位奖金。
// dslTag 为空时不限标签，保留取首个生效槽位的行为。
func (s *PermanentBonusService) FindForProject(project, dslTag string) (*models.Bonus, error) {
	slots, err := s.slotRepo.ListForProject(strings.TrimSpace(project), strings.TrimSpace(dslTag))
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range slots {
		if slots[i].Bonus != nil && slots[i].Bonus.Active(now) {
			return slots[i].Bonus, nil
		}
	}
	return nil, ErrPermanentBonusNotFound
}

// PreviewsForProject 项目常驻奖金预览列表，结果带 Redis 缓存
func (s *PermanentBonusService) PreviewsForProject(ctx context.Context, project string) ([]PermanentBonusPreview, error) {
	project = strings.TrimSpace(project)
	cacheKey := previewCacheKey(project)

	var cached []PermanentBonusPreview
	if hit, err := cache.GetJSON(ctx, cacheKey, &cached); err != nil {
		logger.Warnw("permanent_bonus_preview_cache_read_failed", "project", project, "error", err)
	} else if hit {
		return cached, nil
	}

	slots, err := s.slotRepo.ListForProject(project, "")
	if err != nil {
		return nil, err
	}

	previews := make([]PermanentBonusPreview, 0, len(slots))
	for i := range slots {
		bonus := slots[i].Bonus
		if bonus == nil {
			continue
		}
		previews = append(previews, PermanentBonusPreview{
			SlotID:          slots[i].ID,
			BonusID:         bonus.ID,
			Name:            bonus.Name,
			DisplayCode:     bonus.DisplayCode(),
			DisplayCurrency: bonus.DisplayCurrency(),
			Status:          bonus.Status,
			Event:           bonus.Event,
			RewardTypes:     bonus.RewardTypes(),
			StartDate:       bonus.AvailabilityStartDate,
			EndDate:         bonus.AvailabilityEndDate,
		})
	}

	if err := cache.SetJSON(ctx, cacheKey, previews, permanentBonusPreviewTTL); err != nil {
		logger.Warnw("permanent_bonus_preview_cache_write_failed", "project", project, "error", err)
	}
	return previews, nil
}

func (s *PermanentBonusService) invalidatePreviews(project string) {
	if err := cache.Del(context.Background(), previewCacheKey(project)); err != nil {
		logger.Warnw("permanent_bonus_preview_cache_invalidate_failed", "project", project, "error", err)
	}
}

func previewCacheKey(project string) string {
	return "permanent_bonus:previews:" + project
}
