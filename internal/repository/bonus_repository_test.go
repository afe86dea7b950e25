package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bonus-office/internal/constants"
	"github.com/bonus-office/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupBonusRepositoryTest(t *testing.T) (*GormBonusRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Bonus{},
		&models.BonusReward{},
		&models.FreespinReward{},
		&models.BonusBuyReward{},
		&models.CompPointReward{},
		&models.BonusCodeReward{},
		&models.FreechipReward{},
		&models.MaterialPrizeReward{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewBonusRepository(db), db
}

func createTestBonus(t *testing.T, repo *GormBonusRepository, name, status string, start, end time.Time) *models.Bonus {
	t.Helper()
	bonus := models.Bonus{
		Name:                  name,
		Event:                 constants.BonusEventDeposit,
		Status:                status,
		AvailabilityStartDate: start,
		AvailabilityEndDate:   end,
		Project:               constants.ProjectAll,
	}
	if err := repo.Create(&bonus); err != nil {
		t.Fatalf("create bonus %s failed: %v", name, err)
	}
	return &bonus
}

func TestBonusRepositoryGetByIDFlipsStaleActive(t *testing.T) {
	repo, db := setupBonusRepositoryTest(t)
	now := time.Now()
	stale := createTestBonus(t, repo, "Stale Promo", constants.BonusStatusActive,
		now.Add(-48*time.Hour), now.Add(-24*time.Hour))

	loaded, err := repo.GetByID(stale.ID)
	if err != nil {
		t.Fatalf("get bonus failed: %v", err)
	}
	if loaded.Status != constants.BonusStatusExpired {
		t.Fatalf("loaded status want expired, got %q", loaded.Status)
	}

	var persisted models.Bonus
	if err := db.First(&persisted, stale.ID).Error; err != nil {
		t.Fatalf("reload bonus failed: %v", err)
	}
	if persisted.Status != constants.BonusStatusExpired {
		t.Fatalf("persisted status want expired, got %q", persisted.Status)
	}
}

func TestBonusRepositoryGetByIDKeepsCurrentActive(t *testing.T) {
	repo, _ := setupBonusRepositoryTest(t)
	now := time.Now()
	current := createTestBonus(t, repo, "Current Promo", constants.BonusStatusActive,
		now.Add(-time.Hour), now.Add(time.Hour))

	loaded, err := repo.GetByID(current.ID)
	if err != nil {
		t.Fatalf("get bonus failed: %v", err)
	}
	if loaded.Status != constants.BonusStatusActive {
		t.Fatalf("status want active, got %q", loaded.Status)
	}
}

func TestBonusRepositoryGetByIDNotFound(t *testing.T) {
	repo, _ := setupBonusRepositoryTest(t)
	loaded, err := repo.GetByID(9999)
	if err != nil {
		t.Fatalf("get missing bonus failed: %v", err)
	}
	if loaded != nil {
		t.Fatalf("expected nil for missing bonus, got %+v", loaded)
	}
}

func TestBonusRepositoryListFlipsStaleActive(t *testing.T) {
	repo, db := setupBonusRepositoryTest(t)
	now := time.Now()
	stale := createTestBonus(t, repo, "Stale Promo", constants.BonusStatusActive,
		now.Add(-48*time.Hour), now.Add(-24*time.Hour))
	current := createTestBonus(t, repo, "Current Promo", constants.BonusStatusActive,
		now.Add(-time.Hour), now.Add(time.Hour))

	bonuses, total, err := repo.List(BonusListFilter{})
	if err != nil {
		t.Fatalf("list bonuses failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("total want 2, got %d", total)
	}
	statuses := map[uint]string{}
	for _, bonus := range bonuses {
		statuses[bonus.ID] = bonus.Status
	}
	if statuses[stale.ID] != constants.BonusStatusExpired {
		t.Fatalf("stale bonus status want expired, got %q", statuses[stale.ID])
	}
	if statuses[current.ID] != constants.BonusStatusActive {
		t.Fatalf("current bonus status want active, got %q", statuses[current.ID])
	}

	var persisted models.Bonus
	if err := db.First(&persisted, stale.ID).Error; err != nil {
		t.Fatalf("reload stale bonus failed: %v", err)
	}
	if persisted.Status != constants.BonusStatusExpired {
		t.Fatalf("persisted stale status want expired, got %q", persisted.Status)
	}
}

func TestBonusRepositoryListFilters(t *testing.T) {
	repo, _ := setupBonusRepositoryTest(t)
	now := time.Now()
	createTestBonus(t, repo, "Welcome Pack", constants.BonusStatusDraft,
		now.Add(-time.Hour), now.Add(time.Hour))
	inactive := createTestBonus(t, repo, "Reload Friday", constants.BonusStatusInactive,
		now.Add(-time.Hour), now.Add(time.Hour))

	bonuses, total, err := repo.List(BonusListFilter{Status: constants.BonusStatusInactive})
	if err != nil {
		t.Fatalf("list by status failed: %v", err)
	}
	if total != 1 || len(bonuses) != 1 || bonuses[0].ID != inactive.ID {
		t.Fatalf("status filter want single inactive bonus, got total=%d rows=%d", total, len(bonuses))
	}

	bonuses, total, err = repo.List(BonusListFilter{Search: "Welcome"})
	if err != nil {
		t.Fatalf("list by search failed: %v", err)
	}
	if total != 1 || len(bonuses) != 1 || bonuses[0].Name != "Welcome Pack" {
		t.Fatalf("search filter want Welcome Pack, got total=%d rows=%d", total, len(bonuses))
	}
}

func TestBonusRepositoryUpdateExpiredBonuses(t *testing.T) {
	repo, db := setupBonusRepositoryTest(t)
	now := time.Now()
	staleA := createTestBonus(t, repo, "Stale A", constants.BonusStatusActive,
		now.Add(-72*time.Hour), now.Add(-48*time.Hour))
	staleB := createTestBonus(t, repo, "Stale B", constants.BonusStatusActive,
		now.Add(-48*time.Hour), now.Add(-24*time.Hour))
	current := createTestBonus(t, repo, "Current", constants.BonusStatusActive,
		now.Add(-time.Hour), now.Add(time.Hour))
	staleInactive := createTestBonus(t, repo, "Stale Inactive", constants.BonusStatusInactive,
		now.Add(-48*time.Hour), now.Add(-24*time.Hour))

	count, err := repo.UpdateExpiredBonuses(time.Now())
	if err != nil {
		t.Fatalf("expire sweep failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("swept count want 2, got %d", count)
	}

	wantStatus := map[uint]string{
		staleA.ID:        constants.BonusStatusExpired,
		staleB.ID:        constants.BonusStatusExpired,
		current.ID:       constants.BonusStatusActive,
		staleInactive.ID: constants.BonusStatusInactive,
	}
	for id, want := range wantStatus {
		var bonus models.Bonus
		if err := db.First(&bonus, id).Error; err != nil {
			t.Fatalf("reload bonus %d failed: %v", id, err)
		}
		if bonus.Status != want {
			t.Fatalf("bonus %d status want %q, got %q", id, want, bonus.Status)
		}
	}
}

func TestBonusRepositoryBulkUpdateStatus(t *testing.T) {
	repo, _ := setupBonusRepositoryTest(t)
	now := time.Now()
	first := createTestBonus(t, repo, "First", constants.BonusStatusDraft,
		now.Add(-time.Hour), now.Add(time.Hour))
	second := createTestBonus(t, repo, "Second", constants.BonusStatusDraft,
		now.Add(-time.Hour), now.Add(time.Hour))

	count, err := repo.BulkUpdateStatus([]uint{first.ID, second.ID}, constants.BonusStatusActive)
	if err != nil {
		t.Fatalf("bulk update failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("bulk update count want 2, got %d", count)
	}

	count, err = repo.BulkUpdateStatus(nil, constants.BonusStatusActive)
	if err != nil {
		t.Fatalf("bulk update with empty ids failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("empty ids must be a no-op, got count=%d", count)
	}
}
