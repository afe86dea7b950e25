package service

import (
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

func setupBonusServiceTest(t *testing.T) (*BonusService, *gorm.DB) {
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
		&models.DslTag{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewBonusService(
		repository.NewBonusRepository(db),
		repository.NewRewardRepository(db),
		repository.NewDslTagRepository(db),
	)
	return svc, db
}

func validBonusInput(name string) BonusInput {
	now := time.Now()
	return BonusInput{
		Name:                  name,
		Event:                 constants.BonusEventDeposit,
		AvailabilityStartDate: now.Add(-time.Hour),
		AvailabilityEndDate:   now.Add(24 * time.Hour),
	}
}

func TestBonusServiceCreateDefaults(t *testing.T) {
	svc, _ := setupBonusServiceTest(t)
	bonus, err := svc.Create(validBonusInput("Welcome Pack"))
	if err != nil {
		t.Fatalf("create bonus failed: %v", err)
	}
	if bonus.Status != constants.BonusStatusDraft {
		t.Fatalf("default status want draft, got %q", bonus.Status)
	}
	if bonus.Project != constants.ProjectAll {
		t.Fatalf("default project want All, got %q", bonus.Project)
	}
}

func TestBonusServiceCreateValidationErrors(t *testing.T) {
	svc, _ := setupBonusServiceTest(t)
	input := validBonusInput("")
	_, err := svc.Create(input)
	validationErr, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(validationErr.Fields["name"]) == 0 {
		t.Fatalf("expected name error, got %v", validationErr.Fields)
	}
}

func TestBonusServiceCreateUnknownDslTag(t *testing.T) {
	svc, _ := setupBonusServiceTest(t)
	input := validBonusInput("Welcome Pack")
	missing := uint(777)
	input.DslTagID = &missing
	_, err := svc.Create(input)
	if !errors.Is(err, ErrDslTagNotFound) {
		t.Fatalf("expected ErrDslTagNotFound, got %v", err)
	}
}

func TestBonusServiceCreateResolvesDslTag(t *testing.T) {
	svc, db := setupBonusServiceTest(t)
	tag := models.DslTag{Name: "welcome_pack"}
	if err := db.Create(&tag).Error; err != nil {
		t.Fatalf("create dsl tag failed: %v", err)
	}

	input := validBonusInput("Welcome Pack")
	input.DslTagID = &tag.ID
	bonus, err := svc.Create(input)
	if err != nil {
		t.Fatalf("create bonus failed: %v", err)
	}
	if bonus.DslTagID == nil || *bonus.DslTagID != tag.ID {
		t.Fatalf("dsl tag id want %d, got %v", tag.ID, bonus.DslTagID)
	}
	if bonus.DslTag != "welcome_pack" {
		t.Fatalf("dsl tag name want welcome_pack, got %q", bonus.DslTag)
	}
}

func TestBonusServiceActivateExpiredWindow(t *testing.T) {
	svc, _ := setupBonusServiceTest(t)
	now := time.Now()
	input := validBonusInput("Old Promo")
	input.AvailabilityStartDate = now.Add(-48 * time.Hour)
	input.AvailabilityEndDate = now.Add(-24 * time.Hour)
	bonus, err := svc.Create(input)
	if err != nil {
		t.Fatalf("create bonus failed: %v", err)
	}

	_, err = svc.Activate(bonus.ID)
	if !errors.Is(err, ErrBonusExpired) {
		t.Fatalf("expected ErrBonusExpired, got %v", err)
	}
}

func TestBonusServiceActivateAndDeactivate(t *testing.T) {
	svc, _ := setupBonusServiceTest(t)
	bonus, err := svc.Create(validBonusInput("Welcome Pack"))
	if err != nil {
		t.Fatalf("create bonus failed: %v", err)
	}

	activated, err := svc.Activate(bonus.ID)
	if err != nil {
		t.Fatalf("activate failed: %v", err)
	}
	if activated.Status != constants.BonusStatusActive {
		t.Fatalf("status after activate want active, got %q", activated.Status)
	}

	deactivated, err := svc.Deactivate(bonus.ID)
	if err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if deactivated.Status != constants.BonusStatusInactive {
		t.Fatalf("status after deactivate want inactive, got %q", deactivated.Status)
	}
}

func TestBonusServiceBulkActionUnknown(t *testing.T) {
	svc, _ := setupBonusServiceTest(t)
	_, err := svc.BulkAction("archive", []uint{1})
	if !errors.Is(err, ErrUnknownBulkAction) {
		t.Fatalf("expected ErrUnknownBulkAction, got %v", err)
	}
}

func TestBonusServiceBulkActionEmptyIDs(t *testing.T) {
	svc, _ := setupBonusServiceTest(t)
	count, err := svc.BulkAction(constants.BulkActionActivate, nil)
	if err != nil {
		t.Fatalf("bulk action with empty ids failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("empty ids must be a no-op, got count=%d", count)
	}
}

func TestBonusServiceBulkActivate(t *testing.T) {
	svc, _ := setupBonusServiceTest(t)
	first, err := svc.Create(validBonusInput("First"))
	if err != nil {
		t.Fatalf("create first bonus failed: %v", err)
	}
	second, err := svc.Create(validBonusInput("Second"))
	if err != nil {
		t.Fatalf("create second bonus failed: %v", err)
	}

	count, err := svc.BulkAction(constants.BulkActionActivate, []uint{first.ID, second.ID})
	if err != nil {
		t.Fatalf("bulk activate failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("bulk activate count want 2, got %d", count)
	}
	for _, id := range []uint{first.ID, second.ID} {
		bonus, err := svc.Get(id)
		if err != nil {
			t.Fatalf("get bonus %d failed: %v", id, err)
		}
		if bonus.Status != constants.BonusStatusActive {
			t.Fatalf("bonus %d status want active, got %q", id, bonus.Status)
		}
	}
}

func TestBonusServiceDeleteRemovesRewards(t *testing.T) {
	svc, db := setupBonusServiceTest(t)
	bonus, err := svc.Create(validBonusInput("Welcome Pack"))
	if err != nil {
		t.Fatalf("create bonus failed: %v", err)
	}
	reward := models.FreespinReward{
		BonusOwnership: models.BonusOwnership{BonusID: bonus.ID},
		SpinsCount:     25,
	}
	if err := db.Create(&reward).Error; err != nil {
		t.Fatalf("create reward failed: %v", err)
	}

	if err := svc.Delete(bonus.ID); err != nil {
		t.Fatalf("delete bonus failed: %v", err)
	}

	if _, err := svc.Get(bonus.ID); !errors.Is(err, ErrBonusNotFound) {
		t.Fatalf("expected ErrBonusNotFound after delete, got %v", err)
	}
	var count int64
	if err := db.Model(&models.FreespinReward{}).Where("bonus_id = ?", bonus.ID).Count(&count).Error; err != nil {
		t.Fatalf("count rewards failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("rewards must be removed with bonus, got %d left", count)
	}
}

func TestBonusServiceExpireSweep(t *testing.T) {
	svc, _ := setupBonusServiceTest(t)
	now := time.Now()
	input := validBonusInput("Old Promo")
	input.Status = constants.BonusStatusActive
	input.AvailabilityStartDate = now.Add(-48 * time.Hour)
	input.AvailabilityEndDate = now.Add(-24 * time.Hour)
	if _, err := svc.Create(input); err != nil {
		t.Fatalf("create bonus failed: %v", err)
	}

	count, err := svc.ExpireSweep()
	if err != nil {
		t.Fatalf("expire sweep failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("swept count want 1, got %d", count)
	}
}
