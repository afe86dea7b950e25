package worker

import (
	"context"
	"encoding/json"

	"github.com/bonus-office/internal/logger"
	"github.com/bonus-office/internal/provider"
	"github.com/bonus-office/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskBonusExpireSweep, c.handleBonusExpireSweep)
}

func (c *Consumer) handleBonusExpireSweep(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_expire_sweep_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.BonusExpireSweepPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_expire_sweep_unmarshal_failed", "error", err)
		return err
	}
	if c.BonusService == nil {
		logger.Warnw("worker_expire_sweep_skip_bonus_service_nil")
		return nil
	}
	count, err := c.BonusService.ExpireSweep()
	if err != nil {
		logger.Warnw("worker_expire_sweep_failed", "reason", payload.Reason, "error", err)
		return err
	}
	logger.Infow("worker_expire_sweep_done", "reason", payload.Reason, "expired_count", count)
	return nil
}
