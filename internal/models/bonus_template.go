package models

import (
	"strings"
	"time"

	"github.com/bonus-office/internal/constants"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BonusTemplate 奖金参数模板。
// 自然键是 (dsl_tag, project, name) 三元组：同一 (dsl_tag, name) 下
// project="All" 与具体项目的模板允许并存。
type BonusTemplate struct {
	ID                      uint           `gorm:"primarykey" json:"id"`                                          // 主键
	DslTag                  string         `gorm:"type:varchar(255);not null;index" json:"dsl_tag"`               // DSL 标签
	Project                 string         `gorm:"type:varchar(100);not null;default:'All';index" json:"project"` // 项目（"All" 表示全部）
	Name                    string         `gorm:"type:varchar(255);not null;index" json:"name"`                  // 模板名称
	Event                   string         `gorm:"type:varchar(30);not null" json:"event"`                        // 触发事件
	Currencies              StringArray    `gorm:"type:json" json:"currencies"`                                   // 目标币种
	Groups                  StringArray    `gorm:"type:json" json:"groups"`                                       // 目标玩家分组
	CurrencyMinimumDeposits MoneyMap       `gorm:"type:json" json:"currency_minimum_deposits"`                    // 分币种最低入金
	Wager                   *Money         `gorm:"type:decimal(20,2)" json:"wager"`                               // 流水倍数
	MaximumWinnings         *Money         `gorm:"type:decimal(20,2)" json:"maximum_winnings"`                    // 最高赢取
	NoMore                  string         `gorm:"type:varchar(100)" json:"no_more"`                              // 周期内领取上限
	TotallyNoMore           *int           `json:"totally_no_more"`                                               // 终身领取上限
	Description             string         `gorm:"type:varchar(1000)" json:"description"`                         // 描述
	CreatedAt               time.Time      `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt               time.Time      `json:"updated_at"`                                                    // 更新时间
	DeletedAt               gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间
}

// TableName 指定表名
func (BonusTemplate) TableName() string {
	return "bonus_templates"
}

// Validate 字段校验（三元组唯一性在仓库层检查）
func (t *BonusTemplate) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(t.Name) == "" {
		errs.Add("name", "can't be blank")
	} else if len(t.Name) > 255 {
		errs.Add("name", "is too long (maximum is 255 characters)")
	}
	if strings.TrimSpace(t.DslTag) == "" {
		errs.Add("dsl_tag", "can't be blank")
	}
	if strings.TrimSpace(t.Project) == "" {
		errs.Add("project", "can't be blank")
	}
	if !containsString(constants.BonusEvents, t.Event) {
		errs.Add("event", "is not included in the list")
	}
	if len(t.Description) > 1000 {
		errs.Add("description", "is too long (maximum is 1000 characters)")
	}
	validateNonNegativeMoney(errs, "wager", t.Wager)
	validateNonNegativeMoney(errs, "maximum_winnings", t.MaximumWinnings)
	if t.TotallyNoMore != nil && *t.TotallyNoMore < 0 {
		errs.Add("totally_no_more", "must be greater than or equal to 0")
	}
	t.validateCurrencyMinimumDeposits(errs)
	return errs
}

// validateCurrencyMinimumDeposits 与 Bonus 相同的分币种最低入金合法性规则
func (t *BonusTemplate) validateCurrencyMinimumDeposits(errs ValidationErrors) {
	if len(t.CurrencyMinimumDeposits) == 0 {
		return
	}
	if t.Event != constants.BonusEventDeposit {
		errs.Add("currency_minimum_deposits", "is only allowed for deposit bonuses")
		return
	}
	for currency, amount := range t.CurrencyMinimumDeposits {
		if !amount.Decimal.GreaterThan(decimal.Zero) {
			errs.Add("currency_minimum_deposits", "amount for "+currency+" must be greater than 0")
		}
		if !containsString(t.Currencies, currency) {
			errs.Add("currency_minimum_deposits", currency+" is not among template currencies")
		}
		if !containsString(constants.SupportedCurrencies, currency) {
			errs.Add("currency_minimum_deposits", currency+" is not a supported currency")
		}
	}
}

// ProjectSpecific 是否为项目专属模板
func (t *BonusTemplate) ProjectSpecific() bool {
	return t.Project != constants.ProjectAll
}

// ApplyToBonus 把模板字段盖写到目标奖金上。
// 除 project 外全部无条件覆盖；project 仅当模板为项目专属时覆盖，
// "All" 模板保留目标奖金原有的 project。
func (t *BonusTemplate) ApplyToBonus(bonus *Bonus) {
	if bonus == nil {
		return
	}
	bonus.DslTag = t.DslTag
	bonus.Event = t.Event
	bonus.Currencies = append(StringArray{}, t.Currencies...)
	bonus.Groups = append(StringArray{}, t.Groups...)
	bonus.CurrencyMinimumDeposits = cloneMoneyMap(t.CurrencyMinimumDeposits)
	bonus.Wager = cloneMoney(t.Wager)
	bonus.MaximumWinnings = cloneMoney(t.MaximumWinnings)
	bonus.NoMore = t.NoMore
	bonus.TotallyNoMore = cloneInt(t.TotallyNoMore)
	bonus.Description = t.Description
	if t.ProjectSpecific() {
		bonus.Project = t.Project
	}
}

func cloneMoney(amount *Money) *Money {
	if amount == nil {
		return nil
	}
	copied := *amount
	return &copied
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}

func cloneMoneyMap(source MoneyMap) MoneyMap {
	if source == nil {
		return nil
	}
	copied := make(MoneyMap, len(source))
	for key, value := range source {
		copied[key] = value
	}
	return copied
}
