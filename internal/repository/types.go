package repository

import "time"

// BonusListFilter 查询奖励活动列表的过滤条件
type BonusListFilter struct {
	Page          int
	PageSize      int
	Status        string
	Event         string
	Currency      string
	Country       string
	Project       string
	DslTag        string
	Search        string
	AvailableFrom *time.Time
	AvailableTo   *time.Time
}

// BonusTemplateListFilter 查询奖励模板列表的过滤条件
type BonusTemplateListFilter struct {
	Page     int
	PageSize int
	DslTag   string
	Project  string
	Event    string
	Search   string
}

// MarketingRequestListFilter 查询营销合作申请列表的过滤条件
type MarketingRequestListFilter struct {
	Page        int
	PageSize    int
	Status      string
	RequestType string
	Platform    string
	Search      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// DslTagListFilter 查询 DSL 标签列表的过滤条件
type DslTagListFilter struct {
	Page     int
	PageSize int
	Search   string
}

// ProjectListFilter 查询项目列表的过滤条件
type ProjectListFilter struct {
	Page     int
	PageSize int
	Search   string
}

// PermanentBonusListFilter 查询常驻奖励列表的过滤条件
type PermanentBonusListFilter struct {
	Page     int
	PageSize int
	Project  string
	BonusID  uint
}
