package main

import (
	"fmt"
	"time"

	"github.com/bonus-office/internal/config"
	"github.com/bonus-office/internal/constants"
	"github.com/bonus-office/internal/logger"
	"github.com/bonus-office/internal/models"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加项目
	projects := []models.Project{
		{Name: "CasinoX"},
		{Name: "SpinCity"},
		{Name: "LuckyStar"},
	}
	for _, project := range projects {
		var existing models.Project
		if err := models.DB.Where("name = ?", project.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&project).Error; err != nil {
				stdLog.Printf("Failed to create project %s: %v", project.Name, err)
			} else {
				stdLog.Printf("Created project: %s", project.Name)
			}
		} else {
			stdLog.Printf("Project already exists: %s", project.Name)
		}
	}

	// 添加 DSL 标签
	tags := []models.DslTag{
		{Name: "welcome_pack", Description: "新玩家欢迎礼包系列"},
		{Name: "reload_friday", Description: "周五复充活动"},
		{Name: "vip_weekly", Description: "VIP 每周回馈"},
	}
	for _, tag := range tags {
		var existing models.DslTag
		if err := models.DB.Where("name = ?", tag.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&tag).Error; err != nil {
				stdLog.Printf("Failed to create dsl tag %s: %v", tag.Name, err)
			} else {
				stdLog.Printf("Created dsl tag: %s", tag.Name)
			}
		} else {
			stdLog.Printf("Dsl tag already exists: %s", tag.Name)
		}
	}

	// 添加奖金模板：同名模板的 All 版本与项目专属版本并存，用于演示解析回退
	wager := models.NewMoneyFromFloat(35)
	maxWin := models.NewMoneyFromFloat(500)
	projectWager := models.NewMoneyFromFloat(40)
	totallyNoMore := 1
	templates := []models.BonusTemplate{
		{
			DslTag:        "welcome_pack",
			Project:       constants.ProjectAll,
			Name:          "first_deposit",
			Event:         constants.BonusEventDeposit,
			Currencies:    models.StringArray{"USD", "EUR"},
			Groups:        models.StringArray{"new_players"},
			Wager:         &wager,
			MaximumWinnings: &maxWin,
			NoMore:        "1 per day",
			TotallyNoMore: &totallyNoMore,
			Description:   "首充欢迎奖金模板",
		},
		{
			DslTag:      "welcome_pack",
			Project:     "CasinoX",
			Name:        "first_deposit",
			Event:       constants.BonusEventDeposit,
			Currencies:  models.StringArray{"USD"},
			Groups:      models.StringArray{"new_players"},
			Wager:       &projectWager,
			NoMore:      "1 per day",
			Description: "CasinoX 专属首充模板",
		},
		{
			DslTag:      "reload_friday",
			Project:     constants.ProjectAll,
			Name:        "friday_reload",
			Event:       constants.BonusEventDeposit,
			Currencies:  models.StringArray{"USD", "EUR", "NOK"},
			Groups:      models.StringArray{"active_players"},
			Wager:       &wager,
			Description: "周五复充模板",
		},
	}
	for _, template := range templates {
		var existing models.BonusTemplate
		if err := models.DB.Where("dsl_tag = ? AND project = ? AND name = ?",
			template.DslTag, template.Project, template.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&template).Error; err != nil {
				stdLog.Printf("Failed to create template %s/%s/%s: %v", template.DslTag, template.Project, template.Name, err)
			} else {
				stdLog.Printf("Created template: %s/%s/%s", template.DslTag, template.Project, template.Name)
			}
		} else {
			stdLog.Printf("Template already exists: %s/%s/%s", template.DslTag, template.Project, template.Name)
		}
	}

	// 添加奖金与奖励
	now := time.Now()
	minDeposit := models.NewMoneyFromFloat(20)
	bonusAmount := models.NewMoneyFromFloat(100)
	percentage := 100.0
	var welcomeTag models.DslTag
	_ = models.DB.Where("name = ?", "welcome_pack").First(&welcomeTag).Error

	bonuses := []models.Bonus{
		{
			Name:                  "Welcome Pack 100%",
			Code:                  "WELCOME100",
			Event:                 constants.BonusEventDeposit,
			Status:                constants.BonusStatusActive,
			AvailabilityStartDate: now.Add(-24 * time.Hour),
			AvailabilityEndDate:   now.AddDate(0, 3, 0),
			Description:           "首充 100% 奖金，最高 100 USD",
			Currencies:            models.StringArray{"USD", "EUR"},
			Groups:                models.StringArray{"new_players"},
			DslTagID:              &welcomeTag.ID,
			DslTag:                welcomeTag.Name,
			Project:               "CasinoX",
			MinimumDeposit:        &minDeposit,
			NoMore:                "1 per day",
			Tags:                  "welcome,deposit",
		},
		{
			Name:                  "Friday Free Spins",
			Code:                  "FRISPINS",
			Event:                 constants.BonusEventInputCoupon,
			Status:                constants.BonusStatusActive,
			AvailabilityStartDate: now.Add(-12 * time.Hour),
			AvailabilityEndDate:   now.AddDate(0, 1, 0),
			Description:           "周五免费旋转",
			Currencies:            models.StringArray{"USD"},
			Project:               constants.ProjectAll,
			Tags:                  "freespin,friday",
		},
		{
			Name:                  "Expired Promo",
			Code:                  "OLDPROMO",
			Event:                 constants.BonusEventManual,
			Status:                constants.BonusStatusActive,
			AvailabilityStartDate: now.AddDate(0, -2, 0),
			AvailabilityEndDate:   now.AddDate(0, -1, 0),
			Description:           "已结束的活动，用于演示惰性过期",
			Project:               constants.ProjectAll,
		},
	}
	bonusIDs := map[string]uint{}
	for _, bonus := range bonuses {
		var existing models.Bonus
		if err := models.DB.Where("name = ?", bonus.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&bonus).Error; err != nil {
				stdLog.Printf("Failed to create bonus %s: %v", bonus.Name, err)
				continue
			}
			stdLog.Printf("Created bonus: %s", bonus.Name)
			bonusIDs[bonus.Name] = bonus.ID
		} else {
			stdLog.Printf("Bonus already exists: %s", bonus.Name)
			bonusIDs[bonus.Name] = existing.ID
		}
	}

	if id := bonusIDs["Welcome Pack 100%"]; id != 0 {
		var count int64
		models.DB.Model(&models.BonusReward{}).Where("bonus_id = ?", id).Count(&count)
		if count == 0 {
			reward := models.BonusReward{
				BonusOwnership: models.BonusOwnership{BonusID: id},
				Amount:         &bonusAmount,
				Percentage:     &percentage,
			}
			reward.SetMaxWin("10x")
			reward.SetConfigCurrency("USD")
			if err := models.DB.Create(&reward).Error; err != nil {
				stdLog.Printf("Failed to create bonus reward: %v", err)
			} else {
				stdLog.Printf("Created bonus reward for Welcome Pack")
			}
		}
	}
	if id := bonusIDs["Friday Free Spins"]; id != 0 {
		var count int64
		models.DB.Model(&models.FreespinReward{}).Where("bonus_id = ?", id).Count(&count)
		if count == 0 {
			reward := models.FreespinReward{
				BonusOwnership: models.BonusOwnership{BonusID: id},
				SpinsCount:     50,
			}
			reward.SetGames("Book of Ra, Starburst")
			reward.SetBetLevel(0.2)
			reward.SetConfigCode("FRISPINS")
			if err := models.DB.Create(&reward).Error; err != nil {
				stdLog.Printf("Failed to create freespin reward: %v", err)
			} else {
				stdLog.Printf("Created freespin reward for Friday Free Spins")
			}
		}
	}

	// 绑定常驻奖励
	if id := bonusIDs["Welcome Pack 100%"]; id != 0 {
		var casinoX models.Project
		var slot models.PermanentBonus
		_ = models.DB.Where("name = ?", "CasinoX").First(&casinoX).Error
		if err := models.DB.Where("project = ? AND bonus_id = ?", "CasinoX", id).First(&slot).Error; err != nil {
			slot = models.PermanentBonus{
				ProjectID: casinoX.ID,
				Project:   "CasinoX",
				BonusID:   id,
			}
			if err := models.DB.Create(&slot).Error; err != nil {
				stdLog.Printf("Failed to create permanent bonus: %v", err)
			} else {
				stdLog.Printf("Created permanent bonus for CasinoX")
			}
		}
	}

	// 添加营销合作申请
	requests := []models.MarketingRequest{
		{
			Manager:      "anna.k",
			Platform:     "YouTube",
			PartnerEmail: "partner@streamers.example",
			PromoCode:    "SPRING25",
			Stag:         "stag_10001",
			Status:       constants.MarketingRequestStatusPending,
			RequestType:  constants.MarketingRequestTypeStreamer,
		},
		{
			Manager:      "oleg.m",
			Platform:     "Telegram",
			PartnerEmail: "media@buyers.example",
			PromoCode:    "VIP50",
			Stag:         "stag_10002",
			Status:       constants.MarketingRequestStatusPending,
			RequestType:  constants.MarketingRequestTypeRevenueShare,
		},
	}
	for _, request := range requests {
		var existing models.MarketingRequest
		if err := models.DB.Where("stag = ?", request.Stag).First(&existing).Error; err != nil {
			request.Normalize()
			if err := models.DB.Create(&request).Error; err != nil {
				stdLog.Printf("Failed to create marketing request %s: %v", request.Stag, err)
			} else {
				stdLog.Printf("Created marketing request: %s", request.Stag)
			}
		} else {
			stdLog.Printf("Marketing request already exists: %s", request.Stag)
		}
	}

	fmt.Println("\n✅ Seed data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 3 Projects")
	fmt.Println("- 3 DSL tags")
	fmt.Println("- 3 Bonus templates (All + project-specific pair)")
	fmt.Println("- 3 Bonuses (1 expired for sweep demo)")
	fmt.Println("- 2 Rewards (bonus + freespin)")
	fmt.Println("- 1 Permanent bonus slot")
	fmt.Println("- 2 Marketing requests")
}
