package constants

// 奖金状态常量
const (
	BonusStatusDraft    = "draft"
	BonusStatusActive   = "active"
	BonusStatusInactive = "inactive"
	BonusStatusExpired  = "expired"
)

// BonusStatuses 奖金状态全集（顺序固定，用于校验与下拉展示）
var BonusStatuses = []string{
	BonusStatusDraft,
	BonusStatusActive,
	BonusStatusInactive,
	BonusStatusExpired,
}

// BonusStatusLabels 奖金状态展示名
var BonusStatusLabels = map[string]string{
	BonusStatusDraft:    "Draft",
	BonusStatusActive:   "Active",
	BonusStatusInactive: "Inactive",
	BonusStatusExpired:  "Expired",
}

// 奖金触发事件常量
const (
	BonusEventDeposit      = "deposit"
	BonusEventInputCoupon  = "input_coupon"
	BonusEventManual       = "manual"
	BonusEventCollection   = "collection"
	BonusEventGroupsUpdate = "groups_update"
	BonusEventScheduler    = "scheduler"
)

// BonusEvents 奖金触发事件全集
var BonusEvents = []string{
	BonusEventDeposit,
	BonusEventInputCoupon,
	BonusEventManual,
	BonusEventCollection,
	BonusEventGroupsUpdate,
	BonusEventScheduler,
}

// BonusEventLabels 奖金触发事件展示名
var BonusEventLabels = map[string]string{
	BonusEventDeposit:      "Deposit",
	BonusEventInputCoupon:  "Coupon input",
	BonusEventManual:       "Manual",
	BonusEventCollection:   "Collection",
	BonusEventGroupsUpdate: "Groups update",
	BonusEventScheduler:    "Scheduler",
}

// 奖励类型常量（七类奖励的固定顺序也以此为准）
const (
	RewardTypeBonus         = "bonus"
	RewardTypeFreespin      = "freespin"
	RewardTypeBonusBuy      = "bonus_buy"
	RewardTypeCompPoint     = "comp_point"
	RewardTypeBonusCode     = "bonus_code"
	RewardTypeFreechip      = "freechip"
	RewardTypeMaterialPrize = "material_prize"
)

// RewardTypes 奖励类型全集（拼接 all_rewards 时的稳定顺序）
var RewardTypes = []string{
	RewardTypeBonus,
	RewardTypeFreespin,
	RewardTypeBonusBuy,
	RewardTypeCompPoint,
	RewardTypeBonusCode,
	RewardTypeFreechip,
	RewardTypeMaterialPrize,
}

// 最大赢取类型常量
const (
	MaxWinTypeMultiplier = "multiplier"
	MaxWinTypeFixed      = "fixed"
)

// 营销合作请求状态常量
const (
	MarketingRequestStatusPending   = "pending"
	MarketingRequestStatusActivated = "activated"
	MarketingRequestStatusRejected  = "rejected"
)

// MarketingRequestStatuses 营销合作请求状态全集
var MarketingRequestStatuses = []string{
	MarketingRequestStatusPending,
	MarketingRequestStatusActivated,
	MarketingRequestStatusRejected,
}

// 营销合作计划类型常量
const (
	MarketingRequestTypeRevenueShare   = "revenue_share"
	MarketingRequestTypeCPA            = "cpa"
	MarketingRequestTypeHybrid         = "hybrid"
	MarketingRequestTypeFlatFee        = "flat_fee"
	MarketingRequestTypeStreamer       = "streamer"
	MarketingRequestTypeContentPartner = "content_partner"
	MarketingRequestTypeOther          = "other"
)

// MarketingRequestTypes 营销合作计划类型全集
var MarketingRequestTypes = []string{
	MarketingRequestTypeRevenueShare,
	MarketingRequestTypeCPA,
	MarketingRequestTypeHybrid,
	MarketingRequestTypeFlatFee,
	MarketingRequestTypeStreamer,
	MarketingRequestTypeContentPartner,
	MarketingRequestTypeOther,
}

// MarketingRequestTypeLabels 营销合作计划类型展示名
var MarketingRequestTypeLabels = map[string]string{
	MarketingRequestTypeRevenueShare:   "Revenue share",
	MarketingRequestTypeCPA:            "CPA",
	MarketingRequestTypeHybrid:         "Hybrid",
	MarketingRequestTypeFlatFee:        "Flat fee",
	MarketingRequestTypeStreamer:       "Streamer",
	MarketingRequestTypeContentPartner: "Content partner",
	MarketingRequestTypeOther:          "Other",
}

// 项目常量
const (
	// ProjectAll 表示模板/奖金对全部项目生效的哨兵值
	ProjectAll = "All"
)

// SupportedCurrencies 支持的币种白名单（currency_minimum_deposits 的键必须在此集合内）
var SupportedCurrencies = []string{
	"USD", "EUR", "RUB", "UAH", "KZT", "NOK", "PLN", "CAD", "AUD", "NZD", "JPY",
}

// AdvancedParamsAllowlist 高级参数白名单（bonus/freespin/bonus_buy 共用一套）
var AdvancedParamsAllowlist = []string{
	"auto_activate",
	"duration",
	"email_template",
	"range",
	"last_login_country",
	"total_deposits",
}

// 批量操作常量
const (
	BulkActionDelete     = "delete"
	BulkActionActivate   = "activate"
	BulkActionDeactivate = "deactivate"
)

// BulkActions 批量操作全集
var BulkActions = []string{
	BulkActionDelete,
	BulkActionActivate,
	BulkActionDeactivate,
}

// 后台角色常量
const (
	AdminRoleSuper   = "super"
	AdminRoleManager = "manager"
	AdminRoleViewer  = "viewer"
)

// 队列常量
const (
	QueueDefault         = "default"
	TaskBonusExpireSweep = "bonus:expire_sweep"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "bo"
)

// 格式化哨兵串（展示层合同的一部分，测试会对字面值断言）
const (
	FormatNoLimit   = "No limit"
	FormatUnlimited = "Unlimited"
	FormatNA        = "N/A"
)
