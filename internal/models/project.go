package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Project 项目参照实体
type Project struct {
	ID        uint           `gorm:"primarykey" json:"id"`                               // 主键
	Name      string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"` // 名称（唯一）
	CreatedAt time.Time      `json:"created_at"`                                         // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                         // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                     // 软删除时间

	// 关联（常驻奖金随项目级联删除）
	PermanentBonuses []PermanentBonus `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"permanent_bonuses,omitempty"`
}

// TableName 指定表名
func (Project) TableName() string {
	return "projects"
}

// Validate 字段校验（名称唯一性在仓库层检查）
func (p *Project) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(p.Name) == "" {
		errs.Add("name", "can't be blank")
	} else if len(p.Name) > 100 {
		errs.Add("name", "is too long (maximum is 100 characters)")
	}
	return errs
}
