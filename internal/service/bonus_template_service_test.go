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

func setupBonusTemplateServiceTest(t *testing.T) (*BonusTemplateService, *BonusService, *gorm.DB) {
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
		&models.BonusTemplate{},
		&models.DslTag{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	bonusRepo := repository.NewBonusRepository(db)
	tagRepo := repository.NewDslTagRepository(db)
	templateSvc := NewBonusTemplateService(repository.NewBonusTemplateRepository(db), bonusRepo, tagRepo)
	bonusSvc := NewBonusService(bonusRepo, repository.NewRewardRepository(db), tagRepo)
	return templateSvc, bonusSvc, db
}

func validTemplateInput(project, name string) BonusTemplateInput {
	return BonusTemplateInput{
		DslTag:  "welcome_pack",
		Project: project,
		Name:    name,
		Event:   constants.BonusEventDeposit,
	}
}

func TestTemplateServiceCreateDefaultsProjectAll(t *testing.T) {
	svc, _, _ := setupBonusTemplateServiceTest(t)
	template, err := svc.Create(validTemplateInput("", "first_deposit"))
	if err != nil {
		t.Fatalf("create template failed: %v", err)
	}
	if template.Project != constants.ProjectAll {
		t.Fatalf("default project want All, got %q", template.Project)
	}
}

func TestTemplateServiceCreateDuplicateKey(t *testing.T) {
	svc, _, _ := setupBonusTemplateServiceTest(t)
	if _, err := svc.Create(validTemplateInput(constants.ProjectAll, "first_deposit")); err != nil {
		t.Fatalf("create first template failed: %v", err)
	}
	_, err := svc.Create(validTemplateInput(constants.ProjectAll, "first_deposit"))
	if !errors.Is(err, ErrTemplateKeyExists) {
		t.Fatalf("expected ErrTemplateKeyExists, got %v", err)
	}

	// 同 (dsl_tag, name) 下不同 project 允许并存
	if _, err := svc.Create(validTemplateInput("CasinoX", "first_deposit")); err != nil {
		t.Fatalf("create project-specific sibling failed: %v", err)
	}
}

func TestTemplateServiceResolveMatchedRule(t *testing.T) {
	svc, _, _ := setupBonusTemplateServiceTest(t)
	if _, err := svc.Create(validTemplateInput(constants.ProjectAll, "first_deposit")); err != nil {
		t.Fatalf("create All template failed: %v", err)
	}
	if _, err := svc.Create(validTemplateInput("CasinoX", "first_deposit")); err != nil {
		t.Fatalf("create CasinoX template failed: %v", err)
	}

	result, err := svc.Resolve("welcome_pack", "CasinoX", "first_deposit")
	if err != nil {
		t.Fatalf("resolve specific failed: %v", err)
	}
	if result.MatchedRule != "Project: CasinoX" {
		t.Fatalf("matched rule want %q, got %q", "Project: CasinoX", result.MatchedRule)
	}

	result, err = svc.Resolve("welcome_pack", "SpinCity", "first_deposit")
	if err != nil {
		t.Fatalf("resolve fallback failed: %v", err)
	}
	if result.MatchedRule != MatchedRuleAllProjects {
		t.Fatalf("matched rule want %q, got %q", MatchedRuleAllProjects, result.MatchedRule)
	}

	if _, err := svc.Resolve("welcome_pack", "SpinCity", "no_such_template"); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestTemplateServiceApplyOverwritesBonus(t *testing.T) {
	svc, bonusSvc, _ := setupBonusTemplateServiceTest(t)

	wager := 35.0
	maxWin := 500.0
	limit := 1
	input := validTemplateInput(constants.ProjectAll, "first_deposit")
	input.Currencies = []string{"USD", "EUR"}
	input.Groups = []string{"new_players"}
	input.Wager = &wager
	input.MaximumWinnings = &maxWin
	input.NoMore = "1 per day"
	input.TotallyNoMore = &limit
	input.Description = "welcome template"
	template, err := svc.Create(input)
	if err != nil {
		t.Fatalf("create template failed: %v", err)
	}

	bonusInput := validBonusInput("Welcome Pack")
	bonusInput.Project = "SpinCity"
	bonusInput.Event = constants.BonusEventManual
	bonusInput.NoMore = "5 per day"
	bonus, err := bonusSvc.Create(bonusInput)
	if err != nil {
		t.Fatalf("create bonus failed: %v", err)
	}

	applied, err := svc.Apply(template.ID, bonus.ID)
	if err != nil {
		t.Fatalf("apply template failed: %v", err)
	}
	if applied.Event != constants.BonusEventDeposit {
		t.Fatalf("event want overwritten to deposit, got %q", applied.Event)
	}
	if applied.NoMore != "1 per day" {
		t.Fatalf("no_more want overwritten, got %q", applied.NoMore)
	}
	if applied.Wager == nil || applied.Wager.String() != "35.00" {
		t.Fatalf("wager want 35.00, got %v", applied.Wager)
	}
	if applied.TotallyNoMore == nil || *applied.TotallyNoMore != 1 {
		t.Fatalf("totally_no_more want 1, got %v", applied.TotallyNoMore)
	}
	// "All" 模板不覆盖目标奖金的 project
	if applied.Project != "SpinCity" {
		t.Fatalf("project must survive All template, got %q", applied.Project)
	}
}

func TestTemplateServiceApplyProjectSpecificSetsProject(t *testing.T) {
	svc, bonusSvc, _ := setupBonusTemplateServiceTest(t)
	template, err := svc.Create(validTemplateInput("CasinoX", "first_deposit"))
	if err != nil {
		t.Fatalf("create template failed: %v", err)
	}
	bonusInput := validBonusInput("Welcome Pack")
	bonusInput.Project = "SpinCity"
	bonus, err := bonusSvc.Create(bonusInput)
	if err != nil {
		t.Fatalf("create bonus failed: %v", err)
	}

	applied, err := svc.Apply(template.ID, bonus.ID)
	if err != nil {
		t.Fatalf("apply template failed: %v", err)
	}
	if applied.Project != "CasinoX" {
		t.Fatalf("project want CasinoX from specific template, got %q", applied.Project)
	}
}

func TestTemplateServiceCreateBonusFromTemplate(t *testing.T) {
	svc, _, db := setupBonusTemplateServiceTest(t)
	tag := models.DslTag{Name: "welcome_pack"}
	if err := db.Create(&tag).Error; err != nil {
		t.Fatalf("create dsl tag failed: %v", err)
	}

	wager := 40.0
	input := validTemplateInput("CasinoX", "first_deposit")
	input.Wager = &wager
	if _, err := svc.Create(input); err != nil {
		t.Fatalf("create template failed: %v", err)
	}

	bonusInput := BonusInput{
		Name:                "Welcome Pack 100%",
		AvailabilityEndDate: time.Now().Add(30 * 24 * time.Hour),
	}
	bonus, err := svc.CreateBonusFromTemplate("welcome_pack", "CasinoX", "first_deposit", bonusInput)
	if err != nil {
		t.Fatalf("create bonus from template failed: %v", err)
	}
	if bonus.Status != constants.BonusStatusDraft {
		t.Fatalf("status want draft, got %q", bonus.Status)
	}
	if bonus.Project != "CasinoX" {
		t.Fatalf("project want CasinoX, got %q", bonus.Project)
	}
	if bonus.Wager == nil || bonus.Wager.String() != "40.00" {
		t.Fatalf("wager want 40.00 from template, got %v", bonus.Wager)
	}
	if bonus.DslTag != "welcome_pack" {
		t.Fatalf("dsl_tag want welcome_pack, got %q", bonus.DslTag)
	}
	if bonus.DslTagID == nil || *bonus.DslTagID != tag.ID {
		t.Fatalf("dsl_tag_id want %d linked by name, got %v", tag.ID, bonus.DslTagID)
	}
	if bonus.AvailabilityStartDate.IsZero() {
		t.Fatalf("availability_start_date must default to now")
	}
}
