package queue

import (
	"encoding/json"
	"time"

	"github.com/bonus-office/internal/constants"

	"github.com/hibiken/asynq"
)

// TaskBonusExpireSweep 奖金过期清扫任务
const TaskBonusExpireSweep = constants.TaskBonusExpireSweep

// BonusExpireSweepPayload 过期清扫任务载荷
type BonusExpireSweepPayload struct {
	RequestedAt time.Time `json:"requested_at"`
	Reason      string    `json:"reason"` // manual / scheduler
}

// NewBonusExpireSweepTask 创建过期清扫任务
func NewBonusExpireSweepTask(payload BonusExpireSweepPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskBonusExpireSweep, body), nil
}
