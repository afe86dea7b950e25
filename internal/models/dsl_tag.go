package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// DslTag DSL 标签参照实体。
// 奖金对标签是弱引用：删除标签时奖金的 dsl_tag_id 置空，绝不级联删除。
type DslTag struct {
	ID          uint           `gorm:"primarykey" json:"id"`                              // 主键
	Name        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"` // 名称（唯一）
	Description string         `gorm:"type:varchar(1000)" json:"description"`             // 描述
	CreatedAt   time.Time      `json:"created_at"`                                        // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                        // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                    // 软删除时间

	// 关联
	Bonuses []Bonus `gorm:"foreignKey:DslTagID;constraint:OnDelete:SET NULL" json:"bonuses,omitempty"`
}

// TableName 指定表名
func (DslTag) TableName() string {
	return "dsl_tags"
}

// Validate 字段校验（名称唯一性在仓库层检查）
func (t *DslTag) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(t.Name) == "" {
		errs.Add("name", "can't be blank")
	} else if len(t.Name) > 255 {
		errs.Add("name", "is too long (maximum is 255 characters)")
	}
	if len(t.Description) > 1000 {
		errs.Add("description", "is too long (maximum is 1000 characters)")
	}
	return errs
}
