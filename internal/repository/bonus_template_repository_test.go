package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/bonus-office/internal/constants"
	"github.com/bonus-office/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupBonusTemplateRepositoryTest(t *testing.T) *GormBonusTemplateRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.BonusTemplate{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewBonusTemplateRepository(db)
}

func createTestTemplate(t *testing.T, repo *GormBonusTemplateRepository, dslTag, project, name string) *models.BonusTemplate {
	t.Helper()
	template := models.BonusTemplate{
		DslTag:  dslTag,
		Project: project,
		Name:    name,
		Event:   constants.BonusEventDeposit,
	}
	if err := repo.Create(&template); err != nil {
		t.Fatalf("create template %s/%s/%s failed: %v", dslTag, project, name, err)
	}
	return &template
}

func TestBonusTemplateResolveProjectSpecificWins(t *testing.T) {
	repo := setupBonusTemplateRepositoryTest(t)
	createTestTemplate(t, repo, "welcome_pack", constants.ProjectAll, "first_deposit")
	specific := createTestTemplate(t, repo, "welcome_pack", "CasinoX", "first_deposit")

	template, err := repo.Resolve("welcome_pack", "CasinoX", "first_deposit")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if template == nil || template.ID != specific.ID {
		t.Fatalf("expected project-specific template id=%d, got %+v", specific.ID, template)
	}
}

func TestBonusTemplateResolveFallsBackToAll(t *testing.T) {
	repo := setupBonusTemplateRepositoryTest(t)
	all := createTestTemplate(t, repo, "welcome_pack", constants.ProjectAll, "first_deposit")

	template, err := repo.Resolve("welcome_pack", "SpinCity", "first_deposit")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if template == nil || template.ID != all.ID {
		t.Fatalf("expected All fallback template id=%d, got %+v", all.ID, template)
	}
}

func TestBonusTemplateResolveAllProjectSkipsSpecificLookup(t *testing.T) {
	repo := setupBonusTemplateRepositoryTest(t)
	all := createTestTemplate(t, repo, "welcome_pack", constants.ProjectAll, "first_deposit")
	createTestTemplate(t, repo, "welcome_pack", "CasinoX", "first_deposit")

	template, err := repo.Resolve("welcome_pack", constants.ProjectAll, "first_deposit")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if template == nil || template.ID != all.ID {
		t.Fatalf("expected All template id=%d, got %+v", all.ID, template)
	}
}

func TestBonusTemplateResolveMiss(t *testing.T) {
	repo := setupBonusTemplateRepositoryTest(t)
	createTestTemplate(t, repo, "welcome_pack", "CasinoX", "first_deposit")

	template, err := repo.Resolve("welcome_pack", "SpinCity", "first_deposit")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if template != nil {
		t.Fatalf("expected nil when neither specific nor All template exists, got %+v", template)
	}
}

func TestBonusTemplateCountByKeyExcludesID(t *testing.T) {
	repo := setupBonusTemplateRepositoryTest(t)
	template := createTestTemplate(t, repo, "welcome_pack", constants.ProjectAll, "first_deposit")

	count, err := repo.CountByKey("welcome_pack", constants.ProjectAll, "first_deposit", nil)
	if err != nil {
		t.Fatalf("count by key failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("count want 1, got %d", count)
	}

	count, err = repo.CountByKey("welcome_pack", constants.ProjectAll, "first_deposit", &template.ID)
	if err != nil {
		t.Fatalf("count by key with exclusion failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("count with exclusion want 0, got %d", count)
	}
}
