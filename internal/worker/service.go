package worker

import (
	"context"
	"errors"
	"time"

	"github.com/bonus-office/internal/config"
	"github.com/bonus-office/internal/logger"
	"github.com/bonus-office/internal/queue"

	"github.com/hibiken/asynq"
)

// Service 异步队列服务
type Service struct {
	name          string
	server        *asynq.Server
	mux           *asynq.ServeMux
	consumer      *Consumer
	sweepInterval time.Duration
}

// NewService 创建异步队列服务
func NewService(cfg *config.Config, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Queue.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(&cfg.Queue)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)

	sweepInterval := time.Duration(cfg.Sweep.IntervalMinutes) * time.Minute
	return &Service{
		name:          "worker",
		server:        server,
		mux:           mux,
		consumer:      consumer,
		sweepInterval: sweepInterval,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.sweepInterval > 0 {
		go s.runExpireSweepLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runExpireSweepLoop 周期过期清扫：启动时先清一次，随后按配置间隔循环。
// 清扫是幂等的单条 UPDATE，与读取路径的惰性过期并发执行也安全。
func (s *Service) runExpireSweepLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.BonusService == nil {
		return
	}
	runOnce := func() {
		if _, err := s.consumer.BonusService.ExpireSweep(); err != nil {
			logger.Warnw("worker_expire_sweep_tick_failed", "error", err)
		}
	}
	runOnce()

	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
