package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bonus-office/internal/constants"
	"github.com/bonus-office/internal/models"
	"github.com/bonus-office/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupPermanentBonusServiceTest(t *testing.T) (*PermanentBonusService, *gorm.DB) {
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
		&models.PermanentBonus{},
		&models.Project{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewPermanentBonusService(
		repository.NewPermanentBonusRepository(db),
		repository.NewBonusRepository(db),
		repository.NewProjectRepository(db),
	)
	return svc, db
}

func createPermanentTestBonus(t *testing.T, db *gorm.DB, name, status string, start, end time.Time) *models.Bonus {
	t.Helper()
	bonus := models.Bonus{
		Name:                  name,
		Event:                 constants.BonusEventDeposit,
		Status:                status,
		AvailabilityStartDate: start,
		AvailabilityEndDate:   end,
		Project:               constants.ProjectAll,
	}
	if err := db.Create(&bonus).Error; err != nil {
		t.Fatalf("create bonus %s failed: %v", name, err)
	}
	return &bonus
}

func TestPermanentBonusServiceAddAndDuplicate(t *testing.T) {
	svc, db := setupPermanentBonusServiceTest(t)
	now := time.Now()
	bonus := createPermanentTestBonus(t, db, "Welcome Pack", constants.BonusStatusActive,
		now.Add(-time.Hour), now.Add(24*time.Hour))
	project := models.Project{Name: "CasinoX"}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("create project failed: %v", err)
	}

	slot, err := svc.Add("CasinoX", bonus.ID)
	if err != nil {
		t.Fatalf("add permanent bonus failed: %v", err)
	}
	if slot.ProjectID != project.ID {
		t.Fatalf("slot project id want %d linked by name, got %d", project.ID, slot.ProjectID)
	}

	if _, err := svc.Add("CasinoX", bonus.ID); !errors.Is(err, ErrPermanentExists) {
		t.Fatalf("expected ErrPermanentExists, got %v", err)
	}
}

func TestPermanentBonusServiceAddMissingBonus(t *testing.T) {
	svc, _ := setupPermanentBonusServiceTest(t)
	if _, err := svc.Add("CasinoX", 9999); !errors.Is(err, ErrBonusNotFound) {
		t.Fatalf("expected ErrBonusNotFound, got %v", err)
	}
}

func TestPermanentBonusServiceFindForProject(t *testing.T) {
	svc, db := setupPermanentBonusServiceTest(t)
	now := time.Now()
	stale := createPermanentTestBonus(t, db, "Old Promo", constants.BonusStatusActive,
		now.Add(-48*time.Hour), now.Add(-24*time.Hour))
	draft := createPermanentTestBonus(t, db, "Draft Promo", constants.BonusStatusDraft,
		now.Add(-time.Hour), now.Add(24*time.Hour))
	live := createPermanentTestBonus(t, db, "Live Promo", constants.BonusStatusActive,
		now.Add(-time.Hour), now.Add(24*time.Hour))

	for _, bonus := range []*models.Bonus{stale, draft, live} {
		if _, err := svc.Add("CasinoX", bonus.ID); err != nil {
			t.Fatalf("add slot for %s failed: %v", bonus.Name, err)
		}
	}

	found, err := svc.FindForProject("CasinoX", "")
	if err != nil {
		t.Fatalf("find for project failed: %v", err)
	}
	if found.ID != live.ID {
		t.Fatalf("expected live bonus id=%d, got id=%d (%s)", live.ID, found.ID, found.Name)
	}

	if _, err := svc.FindForProject("SpinCity", ""); !errors.Is(err, ErrPermanentBonusNotFound) {
		t.Fatalf("expected ErrPermanentBonusNotFound for empty project, got %v", err)
	}
}

func TestPermanentBonusServiceFindForProjectByDslTag(t *testing.T) {
	svc, db := setupPermanentBonusServiceTest(t)
	now := time.Now()
	welcome := createPermanentTestBonus(t, db, "Welcome", constants.BonusStatusActive,
		now.Add(-time.Hour), now.Add(24*time.Hour))
	welcome.DslTag = "welcome"
	reload := createPermanentTestBonus(t, db, "Reload", constants.BonusStatusActive,
		now.Add(-time.Hour), now.Add(24*time.Hour))
	reload.DslTag = "reload"
	for _, bonus := range []*models.Bonus{welcome, reload} {
		if err := db.Save(bonus).Error; err != nil {
			t.Fatalf("update bonus %s failed: %v", bonus.Name, err)
		}
		if _, err := svc.Add("ROX", bonus.ID); err != nil {
			t.Fatalf("add slot for %s failed: %v", bonus.Name, err)
		}
	}

	found, err := svc.FindForProject("ROX", "reload")
	if err != nil {
		t.Fatalf("find by dsl tag failed: %v", err)
	}
	if found.ID != reload.ID {
		t.Fatalf("expected reload bonus id=%d, got id=%d (%s)", reload.ID, found.ID, found.Name)
	}

	// 不限标签时保持取首个生效槽位
	found, err = svc.FindForProject("ROX", "")
	if err != nil {
		t.Fatalf("find without tag failed: %v", err)
	}
	if found.ID != welcome.ID {
		t.Fatalf("expected first live bonus id=%d, got id=%d (%s)", welcome.ID, found.ID, found.Name)
	}

	if _, err := svc.FindForProject("ROX", "vip"); !errors.Is(err, ErrPermanentBonusNotFound) {
		t.Fatalf("expected ErrPermanentBonusNotFound for unmatched tag, got %v", err)
	}
}

func TestPermanentBonusServicePreviews(t *testing.T) {
	svc, db := setupPermanentBonusServiceTest(t)
	now := time.Now()
	bonus := createPermanentTestBonus(t, db, "Welcome Pack", constants.BonusStatusActive,
		now.Add(-time.Hour), now.Add(24*time.Hour))
	bonus.Code = "WELCOME100"
	bonus.Currencies = models.StringArray{"USD"}
	if err := db.Save(bonus).Error; err != nil {
		t.Fatalf("update bonus failed: %v", err)
	}
	reward := models.FreespinReward{
		BonusOwnership: models.BonusOwnership{BonusID: bonus.ID},
		SpinsCount:     50,
	}
	if err := db.Create(&reward).Error; err != nil {
		t.Fatalf("create reward failed: %v", err)
	}
	if _, err := svc.Add("CasinoX", bonus.ID); err != nil {
		t.Fatalf("add slot failed: %v", err)
	}

	previews, err := svc.PreviewsForProject(context.Background(), "CasinoX")
	if err != nil {
		t.Fatalf("previews failed: %v", err)
	}
	if len(previews) != 1 {
		t.Fatalf("previews want 1 entry, got %d", len(previews))
	}
	preview := previews[0]
	if preview.BonusID != bonus.ID || preview.Name != "Welcome Pack" {
		t.Fatalf("preview identity mismatch: %+v", preview)
	}
	if preview.DisplayCode != "WELCOME100" {
		t.Fatalf("display code want WELCOME100, got %q", preview.DisplayCode)
	}
	if preview.DisplayCurrency != "USD" {
		t.Fatalf("display currency want USD, got %q", preview.DisplayCurrency)
	}
	if len(preview.RewardTypes) != 1 || preview.RewardTypes[0] != constants.RewardTypeFreespin {
		t.Fatalf("reward types want [freespin], got %v", preview.RewardTypes)
	}

	removedAll := models.PermanentBonus{}
	if err := db.Where("project = ?", "CasinoX").First(&removedAll).Error; err != nil {
		t.Fatalf("load slot failed: %v", err)
	}
	if err := svc.Remove(removedAll.ID); err != nil {
		t.Fatalf("remove slot failed: %v", err)
	}
	previews, err = svc.PreviewsForProject(context.Background(), "CasinoX")
	if err != nil {
		t.Fatalf("previews after removal failed: %v", err)
	}
	if len(previews) != 0 {
		t.Fatalf("previews want empty after removal, got %d", len(previews))
	}
}
