package models

import (
	"strings"
	"time"
)

// PermanentBonus 项目常驻奖金槽位：标记"该奖金是此项目的常驻奖金"。
// (bonus, project) 组合唯一。
type PermanentBonus struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                                        // 主键
	ProjectID uint      `gorm:"index" json:"project_id"`                                                     // 项目ID
	Project   string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_permanent_bonus" json:"project"`   // 项目名
	BonusID   uint      `gorm:"not null;uniqueIndex:idx_permanent_bonus" json:"bonus_id"`                    // 奖金ID
	Bonus     *Bonus    `gorm:"foreignKey:BonusID" json:"bonus,omitempty"`                                   // 奖金
	CreatedAt time.Time `json:"created_at"`                                                                  // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                                                  // 更新时间
}

// TableName 指定表名
func (PermanentBonus) TableName() string {
	return "permanent_bonuses"
}

// Validate 字段校验（组合唯一性由唯一索引与仓库层共同保证）
func (p *PermanentBonus) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(p.Project) == "" {
		errs.Add("project", "can't be blank")
	}
	if p.BonusID == 0 {
		errs.Add("bonus_id", "can't be blank")
	}
	return errs
}
