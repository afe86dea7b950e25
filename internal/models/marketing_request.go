package models

import (
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/bonus-office/internal/constants"

	"gorm.io/gorm"
)

var promoCodePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
var whitespacePattern = regexp.MustCompile(`\s`)

// MarketingRequest 合作伙伴推广请求（独立聚合，与 Bonus 无关联）
type MarketingRequest struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                            // 主键
	Manager        string         `gorm:"type:varchar(255);not null" json:"manager"`                       // 负责经理
	Platform       string         `gorm:"type:varchar(255)" json:"platform"`                               // 推广平台
	PartnerEmail   string         `gorm:"type:varchar(255)" json:"partner_email"`                          // 伙伴邮箱
	PromoCode      string         `gorm:"type:text;not null" json:"promo_code"`                            // 推广码列表（逗号分隔）
	Stag           string         `gorm:"type:varchar(255);not null;index" json:"stag"`                    // 跟踪标识（全局唯一）
	Status         string         `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"` // 状态
	RequestType    string         `gorm:"type:varchar(30);not null;index" json:"request_type"`             // 合作计划类型
	ActivationDate *time.Time     `json:"activation_date"`                                                 // 激活时间
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                         // 创建时间
	UpdatedAt      time.Time      `json:"updated_at"`                                                      // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                                  // 软删除时间
}

// TableName 指定表名
func (MarketingRequest) TableName() string {
	return "marketing_requests"
}

// Normalize 每次校验前执行的归一化：
// promo_code 按逗号与任意换行（CRLF/LF）切分、去空白、转大写、按 ", " 重拼；
// stag 去掉全部空白字符。
func (m *MarketingRequest) Normalize() {
	m.PromoCode = strings.Join(m.PromoCodes(), ", ")
	m.Stag = whitespacePattern.ReplaceAllString(m.Stag, "")
}

// PromoCodes 归一化后的推广码列表
func (m *MarketingRequest) PromoCodes() []string {
	replaced := strings.NewReplacer("\r\n", ",", "\n", ",", "\r", ",").Replace(m.PromoCode)
	codes := make([]string, 0)
	for _, part := range strings.Split(replaced, ",") {
		trimmed := strings.ToUpper(strings.TrimSpace(part))
		if trimmed == "" {
			continue
		}
		codes = append(codes, trimmed)
	}
	return codes
}

// Validate 归一化后的格式校验（stag / 推广码的全局唯一性在仓库层检查）
func (m *MarketingRequest) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(m.Manager) == "" {
		errs.Add("manager", "can't be blank")
	}
	if email := strings.TrimSpace(m.PartnerEmail); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			errs.Add("partner_email", "is invalid")
		}
	}
	if strings.TrimSpace(m.Stag) == "" {
		errs.Add("stag", "can't be blank")
	} else if whitespacePattern.MatchString(m.Stag) {
		errs.Add("stag", "must not contain whitespace")
	}
	if !containsString(constants.MarketingRequestStatuses, m.Status) {
		errs.Add("status", "is not included in the list")
	}
	if !containsString(constants.MarketingRequestTypes, m.RequestType) {
		errs.Add("request_type", "is not included in the list")
	}

	codes := m.PromoCodes()
	if len(codes) == 0 {
		errs.Add("promo_code", "must contain at least one code")
	}
	for _, code := range codes {
		if whitespacePattern.MatchString(code) {
			errs.Add("promo_code", code+" must not contain whitespace")
			continue
		}
		if !promoCodePattern.MatchString(code) {
			errs.Add("promo_code", code+" must contain only letters, digits and underscores")
		}
	}
	return errs
}

// Activate 置为已激活并盖上激活时间（任何状态均可达）
func (m *MarketingRequest) Activate(now time.Time) {
	m.Status = constants.MarketingRequestStatusActivated
	m.ActivationDate = &now
}

// Reject 置为已拒绝并清空激活时间（任何状态均可达）
func (m *MarketingRequest) Reject() {
	m.Status = constants.MarketingRequestStatusRejected
	m.ActivationDate = nil
}

// ResetToPending 重置为待审核并清空激活时间（任何状态均可达）
func (m *MarketingRequest) ResetToPending() {
	m.Status = constants.MarketingRequestStatusPending
	m.ActivationDate = nil
}
