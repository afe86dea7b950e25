package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bonus-office/internal/constants"
)

// BonusOwnership 奖励对所属奖金的归属关系。
// groups/tags/currencies 等派生属性不落在奖励行上，而是穿透读取父奖金，
// 这里是显式的委托访问器，七类奖励是兄弟实体而非继承层级。
type BonusOwnership struct {
	BonusID uint   `gorm:"not null;index" json:"bonus_id"` // 所属奖金ID
	Bonus   *Bonus `gorm:"foreignKey:BonusID" json:"-"`    // 所属奖金
}

// OwnerBonusID 所属奖金 ID
func (o *BonusOwnership) OwnerBonusID() uint {
	return o.BonusID
}

// ParentGroups 穿透读取父奖金的玩家分组
func (o *BonusOwnership) ParentGroups() []string {
	if o.Bonus == nil {
		return nil
	}
	return o.Bonus.Groups
}

// ParentTags 穿透读取父奖金的标签数组
func (o *BonusOwnership) ParentTags() []string {
	if o.Bonus == nil {
		return nil
	}
	return o.Bonus.TagsArray()
}

// ParentCurrencies 穿透读取父奖金的目标币种
func (o *BonusOwnership) ParentCurrencies() []string {
	if o.Bonus == nil {
		return nil
	}
	return o.Bonus.Currencies
}

// ParentCurrencyMinimumDeposits 穿透读取父奖金的分币种最低入金
func (o *BonusOwnership) ParentCurrencyMinimumDeposits() MoneyMap {
	if o.Bonus == nil {
		return nil
	}
	return o.Bonus.CurrencyMinimumDeposits
}

// ParentNoMore 穿透读取父奖金的周期领取上限
func (o *BonusOwnership) ParentNoMore() string {
	if o.Bonus == nil {
		return ""
	}
	return o.Bonus.NoMore
}

// ParentTotallyNoMore 穿透读取父奖金的终身领取上限
func (o *BonusOwnership) ParentTotallyNoMore() *int {
	if o.Bonus == nil {
		return nil
	}
	return o.Bonus.TotallyNoMore
}

// ParentWageringStrategy 穿透读取父奖金的流水策略
func (o *BonusOwnership) ParentWageringStrategy() string {
	if o.Bonus == nil {
		return ""
	}
	return o.Bonus.WageringStrategy
}

// ParentCurrency 展示用父币种（奖金目标币种的第一项）
func (o *BonusOwnership) ParentCurrency() string {
	if o.Bonus == nil || len(o.Bonus.Currencies) == 0 {
		return ""
	}
	return o.Bonus.Currencies[0]
}

// FormatNoMore 周期领取上限展示串，空值显示 Unlimited
func (o *BonusOwnership) FormatNoMore() string {
	if value := strings.TrimSpace(o.ParentNoMore()); value != "" {
		return value
	}
	return constants.FormatUnlimited
}

// FormatTotallyNoMore 终身领取上限展示串，空值显示 Unlimited
func (o *BonusOwnership) FormatTotallyNoMore() string {
	if limit := o.ParentTotallyNoMore(); limit != nil {
		return strconv.Itoa(*limit)
	}
	return constants.FormatUnlimited
}

// 配置 blob 键名
const (
	configKeyGames          = "games"
	configKeyBetLevel       = "bet_level"
	configKeyBetLevels      = "bet_levels"
	configKeyMaxWin         = "max_win"
	configKeyAvailable      = "available"
	configKeyCode           = "code"
	configKeyCurrency       = "currency"
	configKeyAdvancedParams = "advanced_params"
)

// RewardConfig 奖励配置 blob 的类型化访问层。
// 写入宽容、读取归一：非法数值串按 0 处理，越界键静默丢弃，永远不报错。
type RewardConfig struct {
	Config JSON `gorm:"type:json" json:"config"` // 类型专属扩展配置
}

func (r *RewardConfig) ensureConfig() {
	if r.Config == nil {
		r.Config = JSON{}
	}
}

// Games 游戏列表：逗号串或数组皆可读，空项被过滤
func (r *RewardConfig) Games() []string {
	raw, ok := r.Config[configKeyGames]
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case string:
		return NormalizeStringList(v)
	case []interface{}:
		items := make([]string, 0, len(v))
		for _, item := range v {
			items = append(items, CoerceString(item))
		}
		return NormalizeStringList(items...)
	case []string:
		return NormalizeStringList(v...)
	default:
		return nil
	}
}

// SetGames 以逗号串写入游戏列表（存储归一后的数组）
func (r *RewardConfig) SetGames(games string) {
	r.SetGamesList(NormalizeStringList(games))
}

// SetGamesList 以数组写入游戏列表
func (r *RewardConfig) SetGamesList(games []string) {
	r.ensureConfig()
	cleaned := NormalizeStringList(games...)
	list := make([]interface{}, 0, len(cleaned))
	for _, game := range cleaned {
		list = append(list, game)
	}
	r.Config[configKeyGames] = list
}

// BetLevel 标量投注档位
func (r *RewardConfig) BetLevel() float64 {
	return CoerceFloat(r.Config[configKeyBetLevel])
}

// SetBetLevel 写入标量投注档位
func (r *RewardConfig) SetBetLevel(level float64) {
	r.ensureConfig()
	r.Config[configKeyBetLevel] = level
}

// BetLevelForCurrency 分币种投注档位：命中覆盖值则返回覆盖值，否则回落到标量档位。
// 币种键匹配不区分大小写。
func (r *RewardConfig) BetLevelForCurrency(currency string) float64 {
	if overrides, ok := r.Config[configKeyBetLevels].(map[string]interface{}); ok {
		for key, value := range overrides {
			if strings.EqualFold(strings.TrimSpace(key), strings.TrimSpace(currency)) {
				return CoerceFloat(value)
			}
		}
	}
	return r.BetLevel()
}

// SetBetLevelForCurrency 写入分币种投注档位覆盖值
func (r *RewardConfig) SetBetLevelForCurrency(currency string, level float64) {
	r.ensureConfig()
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return
	}
	overrides, ok := r.Config[configKeyBetLevels].(map[string]interface{})
	if !ok {
		overrides = map[string]interface{}{}
	}
	overrides[currency] = level
	r.Config[configKeyBetLevels] = overrides
}

// MaxWin 最大赢取原始值
func (r *RewardConfig) MaxWin() string {
	return CoerceString(r.Config[configKeyMaxWin])
}

// SetMaxWin 写入最大赢取
func (r *RewardConfig) SetMaxWin(maxWin string) {
	r.ensureConfig()
	r.Config[configKeyMaxWin] = maxWin
}

// MaxWinType 最大赢取类型：值中含 "x"（区分大小写）即为 multiplier，否则 fixed；
// 空白值按 fixed 处理。
func (r *RewardConfig) MaxWinType() string {
	if strings.Contains(r.MaxWin(), "x") {
		return constants.MaxWinTypeMultiplier
	}
	return constants.MaxWinTypeFixed
}

// FormatMaxWin 最大赢取展示串，空值显示 No limit
func (r *RewardConfig) FormatMaxWin() string {
	if value := strings.TrimSpace(r.MaxWin()); value != "" {
		return value
	}
	return constants.FormatNoLimit
}

// Available 可领取数量
func (r *RewardConfig) Available() int {
	return CoerceInt(r.Config[configKeyAvailable])
}

// SetAvailable 写入可领取数量
func (r *RewardConfig) SetAvailable(available int) {
	r.ensureConfig()
	r.Config[configKeyAvailable] = available
}

// ConfigCode 配置层的奖金码覆盖值
func (r *RewardConfig) ConfigCode() string {
	return CoerceString(r.Config[configKeyCode])
}

// SetConfigCode 写入奖金码覆盖值
func (r *RewardConfig) SetConfigCode(code string) {
	r.ensureConfig()
	r.Config[configKeyCode] = code
}

// ConfigCurrency 配置层的币种覆盖值
func (r *RewardConfig) ConfigCurrency() string {
	return CoerceString(r.Config[configKeyCurrency])
}

// SetConfigCurrency 写入币种覆盖值
func (r *RewardConfig) SetConfigCurrency(currency string) {
	r.ensureConfig()
	r.Config[configKeyCurrency] = currency
}

// AdvancedParam 读取高级参数
func (r *RewardConfig) AdvancedParam(key string) interface{} {
	params, ok := r.Config[configKeyAdvancedParams].(map[string]interface{})
	if !ok {
		return nil
	}
	return params[key]
}

// AdvancedParams 高级参数全集
func (r *RewardConfig) AdvancedParams() map[string]interface{} {
	params, ok := r.Config[configKeyAdvancedParams].(map[string]interface{})
	if !ok {
		return map[string]interface{}{}
	}
	return params
}

// SetAdvancedParam 写入高级参数。键不在白名单内时静默忽略，不报错。
func (r *RewardConfig) SetAdvancedParam(key string, value interface{}) {
	if !containsString(constants.AdvancedParamsAllowlist, key) {
		return
	}
	r.ensureConfig()
	params, ok := r.Config[configKeyAdvancedParams].(map[string]interface{})
	if !ok {
		params = map[string]interface{}{}
	}
	params[key] = value
	r.Config[configKeyAdvancedParams] = params
}

// FormatMoney 金额展示串（"100.00 USD"），金额缺失显示 N/A
func FormatMoney(amount *Money, currency string) string {
	if amount == nil {
		return constants.FormatNA
	}
	currency = strings.TrimSpace(currency)
	if currency == "" {
		return amount.String()
	}
	return amount.String() + " " + currency
}

// FormatMultiplier 倍数展示串（"×2.5"），缺失显示 N/A
func FormatMultiplier(multiplier *float64) string {
	if multiplier == nil {
		return constants.FormatNA
	}
	return fmt.Sprintf("×%s", strconv.FormatFloat(*multiplier, 'f', -1, 64))
}
