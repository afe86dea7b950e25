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

func setupRewardServiceTest(t *testing.T) (*RewardService, uint) {
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

	now := time.Now()
	bonus := models.Bonus{
		Name:                  "Welcome Pack",
		Event:                 constants.BonusEventDeposit,
		Status:                constants.BonusStatusDraft,
		AvailabilityStartDate: now.Add(-time.Hour),
		AvailabilityEndDate:   now.Add(24 * time.Hour),
		Project:               constants.ProjectAll,
	}
	if err := db.Create(&bonus).Error; err != nil {
		t.Fatalf("create bonus failed: %v", err)
	}

	bonusRepo := repository.NewBonusRepository(db)
	return NewRewardService(bonusRepo, repository.NewRewardRepository(db)), bonus.ID
}

func TestRewardServiceCreateRoutesConfig(t *testing.T) {
	svc, bonusID := setupRewardServiceTest(t)
	input := RewardInput{
		Type:       constants.RewardTypeFreespin,
		SpinsCount: 25,
		Config: map[string]interface{}{
			"games":      "Book of Ra, Starburst",
			"max_win":    "20x",
			"bet_level":  0.2,
			"bet_levels": map[string]interface{}{"EUR": 2},
			"advanced_params": map[string]interface{}{
				"duration": 7,
				"bogus":    true,
			},
			"campaign": "welcome",
		},
	}
	created, err := svc.Create(bonusID, input)
	if err != nil {
		t.Fatalf("create reward failed: %v", err)
	}

	loaded, err := svc.Get(constants.RewardTypeFreespin, created.RewardID())
	if err != nil {
		t.Fatalf("get reward failed: %v", err)
	}
	freespin, ok := loaded.(*models.FreespinReward)
	if !ok {
		t.Fatalf("expected *models.FreespinReward, got %T", loaded)
	}
	if freespin.SpinsCount != 25 {
		t.Fatalf("spins count want 25, got %d", freespin.SpinsCount)
	}
	games := freespin.Games()
	if len(games) != 2 || games[0] != "Book of Ra" || games[1] != "Starburst" {
		t.Fatalf("games want [Book of Ra Starburst], got %v", games)
	}
	if freespin.MaxWinType() != constants.MaxWinTypeMultiplier {
		t.Fatalf("max win type want multiplier, got %q", freespin.MaxWinType())
	}
	if got := freespin.BetLevelForCurrency("eur"); got != 2 {
		t.Fatalf("bet level for eur want 2, got %v", got)
	}
	if got := freespin.BetLevelForCurrency("USD"); got != 0.2 {
		t.Fatalf("bet level for USD want scalar 0.2, got %v", got)
	}
	if models.CoerceInt(freespin.AdvancedParam("duration")) != 7 {
		t.Fatalf("advanced param duration want 7, got %v", freespin.AdvancedParam("duration"))
	}
	if freespin.AdvancedParam("bogus") != nil {
		t.Fatalf("disallowed advanced param must be dropped, got %v", freespin.AdvancedParam("bogus"))
	}
	if models.CoerceString(freespin.Config["campaign"]) != "welcome" {
		t.Fatalf("unknown config key must be kept as-is, got %v", freespin.Config["campaign"])
	}
}

func TestRewardServiceCreateUnknownType(t *testing.T) {
	svc, bonusID := setupRewardServiceTest(t)
	_, err := svc.Create(bonusID, RewardInput{Type: "jackpot"})
	if !errors.Is(err, ErrUnknownRewardType) {
		t.Fatalf("expected ErrUnknownRewardType, got %v", err)
	}
}

func TestRewardServiceCreateMissingBonus(t *testing.T) {
	svc, _ := setupRewardServiceTest(t)
	_, err := svc.Create(9999, RewardInput{Type: constants.RewardTypeFreespin, SpinsCount: 10})
	if !errors.Is(err, ErrBonusNotFound) {
		t.Fatalf("expected ErrBonusNotFound, got %v", err)
	}
}

func TestRewardServiceCreateValidationError(t *testing.T) {
	svc, bonusID := setupRewardServiceTest(t)
	_, err := svc.Create(bonusID, RewardInput{Type: constants.RewardTypeFreespin, SpinsCount: 0})
	validationErr, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(validationErr.Fields["spins_count"]) == 0 {
		t.Fatalf("expected spins_count error, got %v", validationErr.Fields)
	}
}

func TestRewardServiceUpdateTypeImmutable(t *testing.T) {
	svc, bonusID := setupRewardServiceTest(t)
	amount := 100.0
	created, err := svc.Create(bonusID, RewardInput{Type: constants.RewardTypeBonus, Amount: &amount})
	if err != nil {
		t.Fatalf("create reward failed: %v", err)
	}

	_, err = svc.Update(constants.RewardTypeBonus, created.RewardID(), RewardInput{
		Type:       constants.RewardTypeFreespin,
		SpinsCount: 10,
	})
	if !errors.Is(err, ErrUnknownRewardType) {
		t.Fatalf("expected ErrUnknownRewardType on type change, got %v", err)
	}
}

func TestRewardServiceUpdateKeepsOwnership(t *testing.T) {
	svc, bonusID := setupRewardServiceTest(t)
	amount := 100.0
	created, err := svc.Create(bonusID, RewardInput{Type: constants.RewardTypeBonus, Amount: &amount})
	if err != nil {
		t.Fatalf("create reward failed: %v", err)
	}

	newAmount := 250.0
	updated, err := svc.Update(constants.RewardTypeBonus, created.RewardID(), RewardInput{Amount: &newAmount})
	if err != nil {
		t.Fatalf("update reward failed: %v", err)
	}
	if updated.OwnerBonusID() != bonusID {
		t.Fatalf("owner bonus id want %d, got %d", bonusID, updated.OwnerBonusID())
	}
	bonusReward, ok := updated.(*models.BonusReward)
	if !ok {
		t.Fatalf("expected *models.BonusReward, got %T", updated)
	}
	if bonusReward.Amount == nil || bonusReward.Amount.String() != "250.00" {
		t.Fatalf("amount want 250.00, got %v", bonusReward.Amount)
	}
}

func TestRewardServiceDelete(t *testing.T) {
	svc, bonusID := setupRewardServiceTest(t)
	created, err := svc.Create(bonusID, RewardInput{Type: constants.RewardTypeFreespin, SpinsCount: 10})
	if err != nil {
		t.Fatalf("create reward failed: %v", err)
	}

	if err := svc.Delete(constants.RewardTypeFreespin, created.RewardID()); err != nil {
		t.Fatalf("delete reward failed: %v", err)
	}
	if _, err := svc.Get(constants.RewardTypeFreespin, created.RewardID()); !errors.Is(err, ErrRewardNotFound) {
		t.Fatalf("expected ErrRewardNotFound after delete, got %v", err)
	}

	rewards, err := svc.ListForBonus(bonusID)
	if err != nil {
		t.Fatalf("list rewards failed: %v", err)
	}
	if len(rewards) != 0 {
		t.Fatalf("rewards want empty after delete, got %d", len(rewards))
	}
}
