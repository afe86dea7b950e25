package models

import (
	"strings"
	"time"

	"github.com/bonus-office/internal/constants"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Bonus 促销奖金聚合根
type Bonus struct {
	ID                      uint           `gorm:"primarykey" json:"id"`                                          // 主键
	Name                    string         `gorm:"type:varchar(255);not null;index" json:"name"`                  // 名称
	Code                    string         `gorm:"type:varchar(50);index" json:"code"`                            // 奖金码（可重复）
	Event                   string         `gorm:"type:varchar(30);not null;index" json:"event"`                  // 触发事件
	Status                  string         `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"` // 状态
	AvailabilityStartDate   time.Time      `gorm:"not null;index" json:"availability_start_date"`                 // 可用窗口起点
	AvailabilityEndDate     time.Time      `gorm:"not null;index" json:"availability_end_date"`                   // 可用窗口终点
	Description             string         `gorm:"type:varchar(1000)" json:"description"`                         // 描述
	Currencies              StringArray    `gorm:"type:json" json:"currencies"`                                   // 目标币种（空 = 全部币种）
	Country                 string         `gorm:"type:varchar(10);index" json:"country"`                         // 目标国家
	Groups                  StringArray    `gorm:"type:json" json:"groups"`                                       // 目标玩家分组
	DslTagID                *uint          `gorm:"index" json:"dsl_tag_id"`                                       // DSL 标签ID（标签删除时置空）
	DslTag                  string         `gorm:"type:varchar(255);index" json:"dsl_tag"`                        // DSL 标签名冗余串
	Project                 string         `gorm:"type:varchar(100);not null;default:'All';index" json:"project"` // 项目（"All" 表示全部）
	MinimumDeposit          *Money         `gorm:"type:decimal(20,2)" json:"minimum_deposit"`                     // 最低入金
	Wager                   *Money         `gorm:"type:decimal(20,2)" json:"wager"`                               // 流水倍数
	MaximumWinnings         *Money         `gorm:"type:decimal(20,2)" json:"maximum_winnings"`                    // 最高赢取
	CurrencyMinimumDeposits MoneyMap       `gorm:"type:json" json:"currency_minimum_deposits"`                    // 分币种最低入金（仅 deposit 事件）
	NoMore                  string         `gorm:"type:varchar(100)" json:"no_more"`                              // 周期内领取上限
	TotallyNoMore           *int           `json:"totally_no_more"`                                               // 终身领取上限
	Tags                    string         `gorm:"type:text" json:"tags"`                                         // 逗号分隔标签串
	WageringStrategy        string         `gorm:"type:varchar(50)" json:"wagering_strategy"`                     // 流水策略
	CreatedAt               time.Time      `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt               time.Time      `json:"updated_at"`                                                    // 更新时间
	DeletedAt               gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间

	// 关联（七类奖励均随奖金级联删除）
	BonusRewards         []BonusReward         `gorm:"foreignKey:BonusID;constraint:OnDelete:CASCADE" json:"bonus_rewards,omitempty"`
	FreespinRewards      []FreespinReward      `gorm:"foreignKey:BonusID;constraint:OnDelete:CASCADE" json:"freespin_rewards,omitempty"`
	BonusBuyRewards      []BonusBuyReward      `gorm:"foreignKey:BonusID;constraint:OnDelete:CASCADE" json:"bonus_buy_rewards,omitempty"`
	CompPointRewards     []CompPointReward     `gorm:"foreignKey:BonusID;constraint:OnDelete:CASCADE" json:"comp_point_rewards,omitempty"`
	BonusCodeRewards     []BonusCodeReward     `gorm:"foreignKey:BonusID;constraint:OnDelete:CASCADE" json:"bonus_code_rewards,omitempty"`
	FreechipRewards      []FreechipReward      `gorm:"foreignKey:BonusID;constraint:OnDelete:CASCADE" json:"freechip_rewards,omitempty"`
	MaterialPrizeRewards []MaterialPrizeReward `gorm:"foreignKey:BonusID;constraint:OnDelete:CASCADE" json:"material_prize_rewards,omitempty"`
}

// TableName 指定表名
func (Bonus) TableName() string {
	return "bonuses"
}

// Validate 运行全部字段校验，返回按字段聚合的错误集合（不会 panic）
func (b *Bonus) Validate() ValidationErrors {
	errs := ValidationErrors{}

	name := strings.TrimSpace(b.Name)
	if name == "" {
		errs.Add("name", "can't be blank")
	} else if len(b.Name) > 255 {
		errs.Add("name", "is too long (maximum is 255 characters)")
	}
	if len(b.Code) > 50 {
		errs.Add("code", "is too long (maximum is 50 characters)")
	}
	if !containsString(constants.BonusEvents, b.Event) {
		errs.Add("event", "is not included in the list")
	}
	if !containsString(constants.BonusStatuses, b.Status) {
		errs.Add("status", "is not included in the list")
	}
	if len(b.Description) > 1000 {
		errs.Add("description", "is too long (maximum is 1000 characters)")
	}
	if b.AvailabilityStartDate.IsZero() {
		errs.Add("availability_start_date", "can't be blank")
	}
	if b.AvailabilityEndDate.IsZero() {
		errs.Add("availability_end_date", "can't be blank")
	}
	// 窗口终点必须严格晚于起点，相等也非法
	if !b.AvailabilityStartDate.IsZero() && !b.AvailabilityEndDate.IsZero() &&
		!b.AvailabilityEndDate.After(b.AvailabilityStartDate) {
		errs.Add("availability_end_date", "must be after availability_start_date")
	}

	validateNonNegativeMoney(errs, "minimum_deposit", b.MinimumDeposit)
	validateNonNegativeMoney(errs, "wager", b.Wager)
	validateNonNegativeMoney(errs, "maximum_winnings", b.MaximumWinnings)
	if b.TotallyNoMore != nil && *b.TotallyNoMore < 0 {
		errs.Add("totally_no_more", "must be greater than or equal to 0")
	}

	b.validateCurrencyMinimumDeposits(errs)
	return errs
}

// validateCurrencyMinimumDeposits 分币种最低入金规则：
// 仅 deposit 事件允许；金额必须大于 0；币种必须同时属于奖金 currencies 与支持白名单。
func (b *Bonus) validateCurrencyMinimumDeposits(errs ValidationErrors) {
	if len(b.CurrencyMinimumDeposits) == 0 {
		return
	}
	if b.Event != constants.BonusEventDeposit {
		errs.Add("currency_minimum_deposits", "is only allowed for deposit bonuses")
		return
	}
	for currency, amount := range b.CurrencyMinimumDeposits {
		if !amount.Decimal.GreaterThan(decimal.Zero) {
			errs.Add("currency_minimum_deposits", "amount for "+currency+" must be greater than 0")
		}
		if !containsString(b.Currencies, currency) {
			errs.Add("currency_minimum_deposits", currency+" is not among bonus currencies")
		}
		if !containsString(constants.SupportedCurrencies, currency) {
			errs.Add("currency_minimum_deposits", currency+" is not a supported currency")
		}
	}
}

// AvailableNow 判断当前时刻是否落在可用窗口内（两端均含）
func (b *Bonus) AvailableNow(now time.Time) bool {
	return !now.Before(b.AvailabilityStartDate) && !now.After(b.AvailabilityEndDate)
}

// Expired 判断是否已过期（终点严格早于当前时刻；终点等于当前时刻不算过期）
func (b *Bonus) Expired(now time.Time) bool {
	return b.AvailabilityEndDate.Before(now)
}

// Active 判断奖金是否生效：状态为 active 且处于可用窗口内
func (b *Bonus) Active(now time.Time) bool {
	return b.Status == constants.BonusStatusActive && b.AvailableNow(now)
}

// Reward 七类奖励的共同只读视角（兄弟实体，不是继承层级）
type Reward interface {
	RewardType() string
	RewardID() uint
	OwnerBonusID() uint
	OverrideCode() string
	OverrideCurrency() string
}

// AllRewards 按固定顺序拼接全部七类奖励
func (b *Bonus) AllRewards() []Reward {
	rewards := make([]Reward, 0,
		len(b.BonusRewards)+len(b.FreespinRewards)+len(b.BonusBuyRewards)+
			len(b.CompPointRewards)+len(b.BonusCodeRewards)+len(b.FreechipRewards)+
			len(b.MaterialPrizeRewards))
	for i := range b.BonusRewards {
		rewards = append(rewards, &b.BonusRewards[i])
	}
	for i := range b.FreespinRewards {
		rewards = append(rewards, &b.FreespinRewards[i])
	}
	for i := range b.BonusBuyRewards {
		rewards = append(rewards, &b.BonusBuyRewards[i])
	}
	for i := range b.CompPointRewards {
		rewards = append(rewards, &b.CompPointRewards[i])
	}
	for i := range b.BonusCodeRewards {
		rewards = append(rewards, &b.BonusCodeRewards[i])
	}
	for i := range b.FreechipRewards {
		rewards = append(rewards, &b.FreechipRewards[i])
	}
	for i := range b.MaterialPrizeRewards {
		rewards = append(rewards, &b.MaterialPrizeRewards[i])
	}
	return rewards
}

// HasRewards 是否挂有任意奖励
func (b *Bonus) HasRewards() bool {
	return len(b.AllRewards()) > 0
}

// RewardTypes 当前挂载的奖励类型去重列表（保持固定顺序）
func (b *Bonus) RewardTypes() []string {
	present := make(map[string]bool)
	for _, reward := range b.AllRewards() {
		present[reward.RewardType()] = true
	}
	types := make([]string, 0, len(present))
	for _, rewardType := range constants.RewardTypes {
		if present[rewardType] {
			types = append(types, rewardType)
		}
	}
	return types
}

// DisplayCode 展示用奖金码：优先第一条带覆盖值的奖励，否则回落到奖金自身的 code
func (b *Bonus) DisplayCode() string {
	for _, reward := range b.AllRewards() {
		if code := reward.OverrideCode(); code != "" {
			return code
		}
	}
	return b.Code
}

// DisplayCurrency 展示用币种：优先第一条带覆盖值的奖励，否则回落到奖金自身的首个币种
func (b *Bonus) DisplayCurrency() string {
	for _, reward := range b.AllRewards() {
		if currency := reward.OverrideCurrency(); currency != "" {
			return currency
		}
	}
	if len(b.Currencies) > 0 {
		return b.Currencies[0]
	}
	return ""
}

// TagsArray tags 逗号串的数组视角
func (b *Bonus) TagsArray() []string {
	return SplitTags(b.Tags)
}

// SetTagsArray 以数组写入 tags 逗号串
func (b *Bonus) SetTagsArray(tags []string) {
	b.Tags = JoinTags(tags)
}

func validateNonNegativeMoney(errs ValidationErrors, field string, amount *Money) {
	if amount == nil {
		return
	}
	if amount.Decimal.LessThan(decimal.Zero) {
		errs.Add(field, "must be greater than or equal to 0")
	}
}

func containsString(list []string, target string) bool {
	for _, item := range list {
		if item == target {
			return true
		}
	}
	return false
}
