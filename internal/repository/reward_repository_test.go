package repository

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/bonus-office/internal/constants"
	"github.com/bonus-office/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupRewardRepositoryTest(t *testing.T) *GormRewardRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
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
	return NewRewardRepository(db)
}

// 落库再读回后 Config 结构等价。JSON 列的数值统一还原为 float64。
func TestRewardRepositoryConfigRoundTrip(t *testing.T) {
	repo := setupRewardRepositoryTest(t)

	reward := models.FreespinReward{
		BonusOwnership: models.BonusOwnership{BonusID: 1},
		SpinsCount:     50,
		RewardConfig: models.RewardConfig{
			Config: models.JSON{
				"campaign":  "welcome",
				"max_win":   "20x",
				"bet_level": 0.25,
				"rounds":    50,
				"sticky":    true,
				"note":      nil,
				"games":     []interface{}{"Book of Ra", "Starburst"},
				"bet_levels": map[string]interface{}{
					"EUR": 2,
					"USD": 0.5,
				},
				"advanced_params": map[string]interface{}{
					"duration": 7,
					"range":    []interface{}{10, 20},
				},
			},
		},
	}
	if err := repo.Create(&reward); err != nil {
		t.Fatalf("create reward failed: %v", err)
	}

	loaded, err := repo.Get(constants.RewardTypeFreespin, reward.ID)
	if err != nil {
		t.Fatalf("get reward failed: %v", err)
	}
	freespin, ok := loaded.(*models.FreespinReward)
	if !ok {
		t.Fatalf("expected *models.FreespinReward, got %T", loaded)
	}

	expected := models.JSON{
		"campaign":  "welcome",
		"max_win":   "20x",
		"bet_level": float64(0.25),
		"rounds":    float64(50),
		"sticky":    true,
		"note":      nil,
		"games":     []interface{}{"Book of Ra", "Starburst"},
		"bet_levels": map[string]interface{}{
			"EUR": float64(2),
			"USD": float64(0.5),
		},
		"advanced_params": map[string]interface{}{
			"duration": float64(7),
			"range":    []interface{}{float64(10), float64(20)},
		},
	}
	if !reflect.DeepEqual(freespin.Config, expected) {
		t.Fatalf("config round trip mismatch:\n got=%#v\nwant=%#v", freespin.Config, expected)
	}
}
